package course

import "testing"

func TestGenerateDeterministicPerSeed(t *testing.T) {
	cfg := DefaultGeneratorConfig()

	a := Generate(42, 300, cfg)
	b := Generate(42, 300, cfg)

	if len(a.Entities()) != len(b.Entities()) {
		t.Fatalf("entity counts differ for same seed: %d vs %d", len(a.Entities()), len(b.Entities()))
	}
	for i := range a.Entities() {
		ea, eb := a.Entities()[i], b.Entities()[i]
		if ea.Kind != eb.Kind || ea.Position != eb.Position || ea.BaseDamage != eb.BaseDamage {
			t.Errorf("entity %d differs: %+v vs %+v", i, ea, eb)
		}
	}

	c := Generate(43, 300, cfg)
	if len(a.Entities()) == len(c.Entities()) {
		same := true
		for i := range a.Entities() {
			if a.Entities()[i].Position != c.Entities()[i].Position {
				same = false
				break
			}
		}
		if same {
			t.Error("different seeds produced identical tracks")
		}
	}
}

func TestGenerateEndsWithFinishMarker(t *testing.T) {
	track := Generate(1, 200, DefaultGeneratorConfig())
	entities := track.Entities()
	if len(entities) == 0 {
		t.Fatal("empty track")
	}
	last := entities[len(entities)-1]
	if last.Kind != KindFinish {
		t.Errorf("last entity kind = %v, want finish", last.Kind)
	}
	if last.Position != 200 {
		t.Errorf("finish position = %v, want 200", last.Position)
	}
}

func TestScanWindowAndDistances(t *testing.T) {
	track := &Track{Length: 100, entities: []*Entity{
		{ID: 1, Kind: KindObstacle, Position: 5, Length: 1, Active: true},
		{ID: 2, Kind: KindCollectible, Position: 12, Length: 0.5, Active: true},
		{ID: 3, Kind: KindObstacle, Position: 30, Length: 1, Active: true},
	}}

	scanned := track.Scan(4, 10)
	if len(scanned) != 2 {
		t.Fatalf("Scan(4, 10) returned %d entities, want 2", len(scanned))
	}
	if scanned[0].Entity.ID != 1 || scanned[0].Distance != 1 {
		t.Errorf("first scanned = id %d dist %v, want id 1 dist 1", scanned[0].Entity.ID, scanned[0].Distance)
	}
	if scanned[1].Entity.ID != 2 || scanned[1].Distance != 8 {
		t.Errorf("second scanned = id %d dist %v, want id 2 dist 8", scanned[1].Entity.ID, scanned[1].Distance)
	}
}

func TestScanSkipsInactiveAndBehind(t *testing.T) {
	track := &Track{Length: 100, entities: []*Entity{
		{ID: 1, Kind: KindObstacle, Position: 5, Length: 1, Active: false},
		{ID: 2, Kind: KindObstacle, Position: 3, Length: 1, Active: true},
		{ID: 3, Kind: KindObstacle, Position: 8, Length: 1, Active: true},
	}}

	scanned := track.Scan(4, 20)
	if len(scanned) != 1 || scanned[0].Entity.ID != 3 {
		t.Errorf("Scan should skip inactive and passed entities, got %d results", len(scanned))
	}
}

func TestAtCoversExtent(t *testing.T) {
	track := &Track{Length: 100, entities: []*Entity{
		{ID: 1, Kind: KindObstacle, Position: 10, Length: 2, Active: true},
	}}

	if got := track.At(11); len(got) != 1 {
		t.Errorf("At(11) inside extent returned %d entities, want 1", len(got))
	}
	if got := track.At(13); len(got) != 0 {
		t.Errorf("At(13) past extent returned %d entities, want 0", len(got))
	}
}
