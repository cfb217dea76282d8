package save

import (
	"bytes"
	"errors"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec("device-1", "1.0.0")
	plaintext := []byte(`{"bolts":120,"level":3}`)

	blob, err := c.Encode(plaintext)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, err := c.Decode(blob)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestCodecDetectsEverySingleCharacterFlip(t *testing.T) {
	c := NewCodec("device-1", "1.0.0")
	blob, err := c.Encode([]byte(`{"bolts":120,"level":3,"energy":4}`))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	for i := 0; i < len(blob); i++ {
		tampered := []byte(blob)
		tampered[i] ^= 0x01
		if string(tampered) == blob {
			continue
		}
		if _, err := c.Decode(string(tampered)); err == nil {
			t.Errorf("flip at index %d went undetected", i)
		}
	}
}

func TestCodecRejectsForeignKey(t *testing.T) {
	a := NewCodec("device-1", "1.0.0")
	b := NewCodec("device-2", "1.0.0")

	blob, err := a.Encode([]byte(`{"level":1}`))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if _, err := b.Decode(blob); err == nil {
		t.Error("blob decoded under a different device key")
	}
}

func TestCodecVersionChangesKey(t *testing.T) {
	a := NewCodec("device-1", "1.0.0")
	b := NewCodec("device-1", "1.1.0")

	blob, err := a.Encode([]byte(`{"level":1}`))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if _, err := b.Decode(blob); err == nil {
		t.Error("blob decoded under a different app version key")
	}
}

func TestCodecRejectsTruncation(t *testing.T) {
	c := NewCodec("device-1", "1.0.0")
	blob, err := c.Encode([]byte(`{"level":1}`))
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	if _, err := c.Decode(blob[:len(blob)/2]); err == nil {
		t.Error("truncated blob decoded")
	}
	if _, err := c.Decode(""); !errors.Is(err, ErrEncoding) {
		t.Errorf("Decode(empty) = %v, want ErrEncoding", err)
	}
}
