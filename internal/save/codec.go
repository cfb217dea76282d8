// Package save serializes the player profile to a single integrity-protected
// text blob and manages its on-disk lifecycle: atomic writes, backup, and
// the recovery chain back to defaults.
//
// Encoded layout, outside in: a trailing CRC-32 of the encoded text, base64
// over an AES-CTR cipher stream, zstd compression, and a SHA-256 digest line
// prepended to the JSON plaintext. Checksum, decoding and digest are three
// independent corruption detectors; Decode checks all three.
package save

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var (
	// ErrChecksum means the trailing CRC-32 does not match the encoded text.
	ErrChecksum = errors.New("save: checksum mismatch")
	// ErrEncoding means a decode stage (base64, cipher, zstd, layout) failed.
	ErrEncoding = errors.New("save: malformed encoding")
	// ErrDigest means the plaintext does not match its embedded digest.
	ErrDigest = errors.New("save: digest mismatch")
	// ErrVersion means the embedded save version is unsupported.
	ErrVersion = errors.New("save: unsupported version")
	// ErrInvalid means the payload decoded but fails semantic validation.
	ErrInvalid = errors.New("save: invalid state")
)

// appKey is the fixed application component of the cipher key. Changing it
// invalidates every existing save.
const appKey = "botcircuit-v1-9d41c6e0"

const checksumSep = "#"

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// Codec encodes and decodes save blobs under a key derived from the device
// identity, the fixed application key and the application version.
type Codec struct {
	key [32]byte
}

// NewCodec derives the cipher key for the given device and app version.
func NewCodec(deviceID, appVersion string) *Codec {
	return &Codec{key: sha256.Sum256([]byte(deviceID + appKey + appVersion))}
}

// Encode wraps the plaintext in all four protection layers.
func (c *Codec) Encode(plaintext []byte) (string, error) {
	digest := sha256.Sum256(plaintext)
	payload := make([]byte, 0, hex.EncodedLen(len(digest))+1+len(plaintext))
	payload = append(payload, []byte(hex.EncodeToString(digest[:]))...)
	payload = append(payload, '\n')
	payload = append(payload, plaintext...)

	compressed := zstdEncoder.EncodeAll(payload, nil)

	ciphertext, err := c.applyStream(compressed)
	if err != nil {
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString(ciphertext)
	return fmt.Sprintf("%s%s%08x", encoded, checksumSep, crc32.ChecksumIEEE([]byte(encoded))), nil
}

// Decode unwraps all four layers, failing loudly on the first detector that
// does not match.
func (c *Codec) Decode(blob string) ([]byte, error) {
	sep := strings.LastIndex(blob, checksumSep)
	if sep < 0 || len(blob)-sep-1 != 8 {
		return nil, fmt.Errorf("%w: missing checksum", ErrEncoding)
	}
	encoded, sumHex := blob[:sep], blob[sep+1:]

	var sum uint32
	if _, err := fmt.Sscanf(sumHex, "%08x", &sum); err != nil {
		return nil, fmt.Errorf("%w: bad checksum field", ErrEncoding)
	}
	if crc32.ChecksumIEEE([]byte(encoded)) != sum {
		return nil, ErrChecksum
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrEncoding, err)
	}

	compressed, err := c.applyStream(ciphertext)
	if err != nil {
		return nil, err
	}

	payload, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrEncoding, err)
	}

	nl := bytes.IndexByte(payload, '\n')
	if nl != hex.EncodedLen(sha256.Size) {
		return nil, fmt.Errorf("%w: missing digest line", ErrEncoding)
	}
	wantDigest, plaintext := payload[:nl], payload[nl+1:]
	digest := sha256.Sum256(plaintext)
	if hex.EncodeToString(digest[:]) != string(wantDigest) {
		return nil, ErrDigest
	}
	return plaintext, nil
}

// applyStream runs the AES-CTR keystream over data. CTR is symmetric, so
// the same transform both encrypts and decrypts.
func (c *Codec) applyStream(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: cipher: %v", ErrEncoding, err)
	}
	iv := sha256.Sum256(append(c.key[:], []byte("-iv")...))
	out := make([]byte, len(data))
	cipher.NewCTR(block, iv[:aes.BlockSize]).XORKeyStream(out, data)
	return out, nil
}
