package save

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"botcircuit/internal/config"
	"botcircuit/internal/economy"
)

var anchor = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.sav")
	return NewStore(path, NewCodec("test-device", "1.0.0"), log.New(io.Discard))
}

func sampleEnvelope() Envelope {
	state := economy.DefaultState(anchor)
	state.Bolts = 420
	state.Chips = 3
	state.Level = 7
	state.TotalXP = 1360
	state.Energy = 2
	state.UnlockedFeatures = []string{"part-equipping", "daily-challenges"}
	state.Achievements = []string{"first-run"}
	state.Stats.TotalRuns = 12
	state.Stats.BestDistance = 512.5
	state.Stats.RunsByArchetype = map[string]int{"speed": 8, "tank": 4}

	return Envelope{
		Economy: state,
		Bots: []config.Summary{
			{Name: "rusty", Archetype: config.ArchetypeSpeed, Level: 4, PartIDs: []string{"sprint-servos"}},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sampleEnvelope()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got := s.Load()

	if got.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", got.Version, CurrentVersion)
	}
	assertEconomyEqual(t, got.Economy, want.Economy)
	if len(got.Bots) != 1 || got.Bots[0].Name != "rusty" || got.Bots[0].PartIDs[0] != "sprint-servos" {
		t.Errorf("bots = %+v", got.Bots)
	}
}

func assertEconomyEqual(t *testing.T, got, want economy.EconomyState) {
	t.Helper()
	if got.Bolts != want.Bolts || got.Chips != want.Chips || got.Tokens != want.Tokens {
		t.Errorf("balances = %d/%d/%d, want %d/%d/%d",
			got.Bolts, got.Chips, got.Tokens, want.Bolts, want.Chips, want.Tokens)
	}
	if got.Level != want.Level || got.TotalXP != want.TotalXP {
		t.Errorf("progression = %d/%d, want %d/%d", got.Level, got.TotalXP, want.Level, want.TotalXP)
	}
	if got.Energy != want.Energy || got.MaxEnergy != want.MaxEnergy {
		t.Errorf("energy = %d/%d, want %d/%d", got.Energy, got.MaxEnergy, want.Energy, want.MaxEnergy)
	}
	if !got.EnergyAnchor.Equal(want.EnergyAnchor) {
		t.Errorf("anchor = %v, want %v", got.EnergyAnchor, want.EnergyAnchor)
	}
	if len(got.UnlockedFeatures) != len(want.UnlockedFeatures) {
		t.Errorf("features = %v, want %v", got.UnlockedFeatures, want.UnlockedFeatures)
	}
	if got.Stats.TotalRuns != want.Stats.TotalRuns || got.Stats.BestDistance != want.Stats.BestDistance {
		t.Errorf("stats = %+v, want %+v", got.Stats, want.Stats)
	}
	if got.Stats.ArchetypeRuns("speed") != want.Stats.ArchetypeRuns("speed") {
		t.Errorf("archetype counters = %v, want %v", got.Stats.RunsByArchetype, want.Stats.RunsByArchetype)
	}
}

func TestLoadFallsBackToBackup(t *testing.T) {
	s := newTestStore(t)

	first := sampleEnvelope()
	if err := s.Save(first); err != nil {
		t.Fatalf("first Save() failed: %v", err)
	}
	second := sampleEnvelope()
	second.Economy.Bolts = 999
	if err := s.Save(second); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	// Corrupt the main file; the backup still holds the first save.
	if err := os.WriteFile(s.Path(), []byte("garbage"), 0o600); err != nil {
		t.Fatalf("corrupting save: %v", err)
	}

	got := s.Load()
	if got.Economy.Bolts != first.Economy.Bolts {
		t.Errorf("loaded bolts = %d, want backup value %d", got.Economy.Bolts, first.Economy.Bolts)
	}
}

func TestSaveDoesNotPromoteCorruptMainToBackup(t *testing.T) {
	s := newTestStore(t)

	first := sampleEnvelope()
	if err := s.Save(first); err != nil {
		t.Fatalf("first Save() failed: %v", err)
	}
	second := sampleEnvelope()
	second.Economy.Bolts = 999
	if err := s.Save(second); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	// Main goes bad on disk while the backup still holds the first save.
	if err := os.WriteFile(s.Path(), []byte("garbage"), 0o600); err != nil {
		t.Fatalf("corrupting save: %v", err)
	}

	third := sampleEnvelope()
	third.Economy.Bolts = 777
	if err := s.Save(third); err != nil {
		t.Fatalf("third Save() failed: %v", err)
	}

	// The corrupt main must not have displaced the valid backup.
	backup, err := s.loadFile(s.backupPath())
	if err != nil {
		t.Fatalf("backup unreadable after save over corrupt main: %v", err)
	}
	if backup.Economy.Bolts != first.Economy.Bolts {
		t.Errorf("backup bolts = %d, want %d", backup.Economy.Bolts, first.Economy.Bolts)
	}
}

func TestLoadFallsBackToDefaultsAndPersists(t *testing.T) {
	s := newTestStore(t)

	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(), []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := s.Load()
	if got.Economy.Level != 1 || got.Economy.Bolts != 0 {
		t.Errorf("defaults not returned: %+v", got.Economy)
	}

	// The defaults must have been written back immediately.
	reloaded, err := s.loadFile(s.Path())
	if err != nil {
		t.Fatalf("persisted defaults unreadable: %v", err)
	}
	if reloaded.Economy.Level != 1 {
		t.Errorf("persisted defaults wrong: %+v", reloaded.Economy)
	}
}

func TestLoadRejectsBadVersion(t *testing.T) {
	for _, version := range []int{-1, 99} {
		s := newTestStore(t)
		env := sampleEnvelope()
		env.Version = version
		if err := s.Save(env); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
		if _, err := s.loadFile(s.Path()); err == nil {
			t.Errorf("version %d accepted", version)
		}
	}
}

func TestLoadTreatsSemanticInvalidAsCorrupt(t *testing.T) {
	s := newTestStore(t)
	env := sampleEnvelope()
	env.Economy.Energy = env.Economy.MaxEnergy + 5

	if err := s.Save(env); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := s.loadFile(s.Path()); err == nil {
		t.Error("semantically invalid state accepted")
	}
	// The full fallback chain lands on defaults.
	if got := s.Load(); got.Economy.Energy > got.Economy.MaxEnergy {
		t.Errorf("Load returned invalid state: %+v", got.Economy)
	}
}

func TestSaveKeepsPlaintextOffDisk(t *testing.T) {
	s := newTestStore(t)
	env := sampleEnvelope()
	env.Bots[0].Name = "plaintext-marker"

	if err := s.Save(env); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, []byte("plaintext-marker")) || bytes.Contains(raw, []byte("bolts")) {
		t.Error("save file leaks plaintext fields")
	}
}

func TestDeviceIDStable(t *testing.T) {
	dir := t.TempDir()

	first, err := DeviceID(dir)
	if err != nil {
		t.Fatalf("DeviceID() failed: %v", err)
	}
	if first == "" {
		t.Fatal("empty device ID")
	}
	second, err := DeviceID(dir)
	if err != nil {
		t.Fatalf("second DeviceID() failed: %v", err)
	}
	if first != second {
		t.Errorf("device ID changed: %q then %q", first, second)
	}
}
