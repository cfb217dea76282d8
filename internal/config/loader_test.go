package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWeightsCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "weights.yaml")

	yaml := `
safety_bias: 2.0
detection_range: 20
critical_impact_time: 0.8
action_preference:
  dash: 0.5
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	w, err := LoadWeights(path)
	if err != nil {
		t.Fatalf("LoadWeights() failed: %v", err)
	}
	if w.SafetyBias != 2.0 {
		t.Errorf("SafetyBias = %v, want 2.0", w.SafetyBias)
	}
	if w.DetectionRange != 20 {
		t.Errorf("DetectionRange = %v, want 20", w.DetectionRange)
	}
	if w.CriticalImpactTime != 0.8 {
		t.Errorf("CriticalImpactTime = %v, want 0.8", w.CriticalImpactTime)
	}
	if got := w.Preference("dash"); got != 0.5 {
		t.Errorf("Preference(dash) = %v, want 0.5", got)
	}
	if got := w.Preference("jump"); got != 1.0 {
		t.Errorf("Preference(jump) = %v, want default 1.0", got)
	}
}

func TestLoadWeightsMissingCustomPath(t *testing.T) {
	_, err := LoadWeights(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("LoadWeights() with missing custom path should fail")
	}
}

func TestLoadTuningDefaults(t *testing.T) {
	tun, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning() failed: %v", err)
	}
	if tun.Gravity >= 0 {
		t.Errorf("default gravity should be negative, got %v", tun.Gravity)
	}
	if tun.MaxSpeed <= tun.MinSpeed {
		t.Errorf("speed clamp range inverted: [%v, %v]", tun.MinSpeed, tun.MaxSpeed)
	}
}

func TestLoadCatalogCustomPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "parts.yaml")

	yaml := `
parts:
  - id: test-legs
    name: Test Legs
    slot: legs
    rarity: common
    modifiers:
      speed: 3.5
    unlock_level: 1
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	p := c.Get("test-legs")
	if p == nil {
		t.Fatal("catalog missing test-legs")
	}
	if p.Modifiers.Speed != 3.5 {
		t.Errorf("speed modifier = %v, want 3.5", p.Modifiers.Speed)
	}
}

func TestCatalogRejectsDuplicatesAndUnknownSlots(t *testing.T) {
	if _, err := NewCatalog([]Part{
		{ID: "a", Slot: SlotHead},
		{ID: "a", Slot: SlotCore},
	}); err == nil {
		t.Error("NewCatalog() should reject duplicate IDs")
	}

	if _, err := NewCatalog([]Part{{ID: "b", Slot: PartSlot("wheels")}}); err == nil {
		t.Error("NewCatalog() should reject unknown slots")
	}
}

func TestDefaultCatalogValid(t *testing.T) {
	c := DefaultCatalog()
	if len(c.All()) == 0 {
		t.Fatal("default catalog is empty")
	}
	for _, p := range c.All() {
		if !p.Slot.Valid() {
			t.Errorf("part %s has invalid slot %s", p.ID, p.Slot)
		}
		for _, pre := range p.Prerequisites {
			if c.Get(pre) == nil {
				t.Errorf("part %s prerequisite %s not in catalog", p.ID, pre)
			}
		}
	}
}
