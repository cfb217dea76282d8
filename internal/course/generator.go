package course

import "math/rand"

// GeneratorConfig controls procedural track generation.
type GeneratorConfig struct {
	MinSpacing float64 `yaml:"min_spacing"` // Spacing between entities at max pacing
	MaxSpacing float64 `yaml:"max_spacing"` // Spacing at the start of the track

	// Pacing interpolates spacing from MaxSpacing down to MinSpacing as the
	// track progresses, reaching max pacing at PacingMaxAt distance.
	PacingInitial float64 `yaml:"pacing_initial"` // 0.0 = relaxed, 1.0 = dense
	PacingMaxAt   float64 `yaml:"pacing_max_at"`

	LeadIn float64 `yaml:"lead_in"` // Entity-free distance at the start

	// Relative spawn weights.
	WeightObstacle    int `yaml:"weight_obstacle"`
	WeightCollectible int `yaml:"weight_collectible"`
	WeightHazard      int `yaml:"weight_hazard"`
	WeightPowerUp     int `yaml:"weight_powerup"`

	ObstacleDamageMin int     `yaml:"obstacle_damage_min"`
	ObstacleDamageMax int     `yaml:"obstacle_damage_max"`
	CollectibleValue  int     `yaml:"collectible_value"`
	PowerUpDuration   float64 `yaml:"powerup_duration"`
}

// DefaultGeneratorConfig returns the built-in generation parameters.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinSpacing:        4.0,
		MaxSpacing:        9.0,
		PacingInitial:     0.0,
		PacingMaxAt:       400.0,
		LeadIn:            6.0,
		WeightObstacle:    50,
		WeightCollectible: 30,
		WeightHazard:      8,
		WeightPowerUp:     12,
		ObstacleDamageMin: 10,
		ObstacleDamageMax: 30,
		CollectibleValue:  5,
		PowerUpDuration:   5.0,
	}
}

// Generate builds a deterministic track of the given length from a seed.
// A terminal finish marker is always placed at the track length.
func Generate(seed int64, length float64, cfg GeneratorConfig) *Track {
	rng := rand.New(rand.NewSource(seed))
	t := &Track{Seed: seed, Length: length}

	var nextID int64 = 1
	cursor := cfg.LeadIn

	for cursor < length-cfg.MaxSpacing {
		e := rollEntity(rng, cfg, nextID, cursor)
		t.entities = append(t.entities, e)
		nextID++

		cursor += e.Length + spacingAt(cfg, cursor, rng)
	}

	t.entities = append(t.entities, &Entity{
		ID:       nextID,
		Kind:     KindFinish,
		Position: length,
		Length:   0.5,
		Active:   true,
	})

	return t
}

// spacingAt interpolates spacing from relaxed to dense as distance grows,
// with a small random variation.
func spacingAt(cfg GeneratorConfig, distance float64, rng *rand.Rand) float64 {
	progress := distance / cfg.PacingMaxAt
	if progress > 1 {
		progress = 1
	}
	level := cfg.PacingInitial + progress*(1-cfg.PacingInitial)

	base := cfg.MaxSpacing - level*(cfg.MaxSpacing-cfg.MinSpacing)
	if base < cfg.MinSpacing {
		base = cfg.MinSpacing
	}
	return base + rng.Float64()*1.5
}

// rollEntity picks and places one entity at the cursor position.
func rollEntity(rng *rand.Rand, cfg GeneratorConfig, id int64, position float64) *Entity {
	total := cfg.WeightObstacle + cfg.WeightCollectible + cfg.WeightHazard + cfg.WeightPowerUp
	if total <= 0 {
		total = 1
	}
	roll := rng.Intn(total)

	switch {
	case roll < cfg.WeightObstacle:
		return rollObstacle(rng, cfg, id, position)
	case roll < cfg.WeightObstacle+cfg.WeightCollectible:
		return rollCollectible(rng, cfg, id, position)
	case roll < cfg.WeightObstacle+cfg.WeightCollectible+cfg.WeightHazard:
		return &Entity{
			ID: id, Kind: KindHazard, Position: position,
			Length: 1.0, Severity: 10.0, Hint: HintJump, Active: true,
		}
	default:
		return rollPowerUp(rng, cfg, id, position)
	}
}

func rollObstacle(rng *rand.Rand, cfg GeneratorConfig, id int64, position float64) *Entity {
	hints := []ActionHint{HintJump, HintJump, HintSlide, HintDash}
	hint := hints[rng.Intn(len(hints))]

	damage := cfg.ObstacleDamageMin
	if cfg.ObstacleDamageMax > cfg.ObstacleDamageMin {
		damage += rng.Intn(cfg.ObstacleDamageMax - cfg.ObstacleDamageMin + 1)
	}

	height := 1.0
	if hint == HintSlide {
		height = 2.0 // Overhead bar; clearance is underneath
	}

	return &Entity{
		ID:         id,
		Kind:       KindObstacle,
		Position:   position,
		Length:     0.8 + rng.Float64()*0.7,
		Hint:       hint,
		Severity:   1.0 + float64(damage)/10.0,
		BaseDamage: damage,
		Height:     height,
		Active:     true,
	}
}

func rollCollectible(rng *rand.Rand, cfg GeneratorConfig, id int64, position float64) *Entity {
	// Roughly half at ground level, the rest high or low.
	offset := 0.0
	switch rng.Intn(4) {
	case 0:
		offset = 1.5 // Requires a jump
	case 1:
		offset = -0.5 // Requires a slide
	}

	value := cfg.CollectibleValue
	if rng.Intn(10) == 0 {
		value *= 5 // Rare bonus collectible
	}

	return &Entity{
		ID:             id,
		Kind:           KindCollectible,
		Position:       position,
		Length:         0.5,
		Value:          value,
		VerticalOffset: offset,
		Active:         true,
	}
}

func rollPowerUp(rng *rand.Rand, cfg GeneratorConfig, id int64, position float64) *Entity {
	kinds := []PowerKind{PowerSpeedBoost, PowerPriorityBoost, PowerShield}
	return &Entity{
		ID:       id,
		Kind:     KindPowerUp,
		Position: position,
		Length:   0.5,
		Power:    kinds[rng.Intn(len(kinds))],
		Duration: cfg.PowerUpDuration,
		Active:   true,
	}
}
