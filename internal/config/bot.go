package config

import (
	"errors"
	"fmt"
)

// Equip errors. Rejected mutations leave the configuration unchanged.
var (
	ErrNilPart          = errors.New("config: part is nil")
	ErrSlotOccupied     = errors.New("config: slot already occupied")
	ErrIncompatiblePart = errors.New("config: part incompatible with archetype")
	ErrNotEquipped      = errors.New("config: no part equipped in slot")
)

// BotConfiguration is a committed bot build: archetype, equipped parts and
// cosmetic fields. The builder mutates it between runs; run completion
// updates the lifetime best records.
type BotConfiguration struct {
	Name      string    `json:"name" yaml:"name"`
	Archetype Archetype `json:"archetype" yaml:"archetype"`
	Level     int       `json:"level" yaml:"level"`
	XP        int64     `json:"xp" yaml:"xp"`

	// Cosmetics.
	PrimaryColor   string `json:"primary_color" yaml:"primary_color"`
	SecondaryColor string `json:"secondary_color" yaml:"secondary_color"`
	StyleIndex     int    `json:"style_index" yaml:"style_index"`

	// Lifetime records.
	BestDistance     float64 `json:"best_distance" yaml:"best_distance"`
	BestSurvivalTime float64 `json:"best_survival_time" yaml:"best_survival_time"`
	TotalRuns        int     `json:"total_runs" yaml:"total_runs"`

	// equipped holds at most one part per slot; slotOrder preserves
	// the order parts were equipped in.
	equipped  map[PartSlot]*Part
	slotOrder []PartSlot
}

// NewBot creates a bot configuration for the given archetype.
func NewBot(name string, archetype Archetype) (*BotConfiguration, error) {
	if !archetype.Valid() {
		return nil, fmt.Errorf("config: unknown archetype %q", archetype)
	}
	return &BotConfiguration{
		Name:      name,
		Archetype: archetype,
		Level:     1,
		equipped:  make(map[PartSlot]*Part),
	}, nil
}

// Equip attaches a part to its slot. It fails on a nil part, an incompatible
// archetype, or an occupied slot; prior state is retained on failure.
func (b *BotConfiguration) Equip(p *Part) error {
	if p == nil {
		return ErrNilPart
	}
	if !p.Compatible(b.Archetype) {
		return fmt.Errorf("%w: %s on %s", ErrIncompatiblePart, p.ID, b.Archetype)
	}
	if b.equipped == nil {
		b.equipped = make(map[PartSlot]*Part)
	}
	if _, occupied := b.equipped[p.Slot]; occupied {
		return fmt.Errorf("%w: %s", ErrSlotOccupied, p.Slot)
	}
	b.equipped[p.Slot] = p
	b.slotOrder = append(b.slotOrder, p.Slot)
	return nil
}

// Unequip removes the part in the given slot and returns it.
func (b *BotConfiguration) Unequip(slot PartSlot) (*Part, error) {
	p, ok := b.equipped[slot]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotEquipped, slot)
	}
	delete(b.equipped, slot)
	for i, s := range b.slotOrder {
		if s == slot {
			b.slotOrder = append(b.slotOrder[:i], b.slotOrder[i+1:]...)
			break
		}
	}
	return p, nil
}

// PartIn returns the part equipped in the given slot, or nil.
func (b *BotConfiguration) PartIn(slot PartSlot) *Part {
	return b.equipped[slot]
}

// Parts returns the equipped parts in the order they were equipped.
func (b *BotConfiguration) Parts() []*Part {
	out := make([]*Part, 0, len(b.slotOrder))
	for _, slot := range b.slotOrder {
		if p, ok := b.equipped[slot]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PartIDs returns the equipped part IDs in equip order.
func (b *BotConfiguration) PartIDs() []string {
	parts := b.Parts()
	ids := make([]string, len(parts))
	for i, p := range parts {
		ids[i] = p.ID
	}
	return ids
}

// TotalModifiers returns the field-wise sum of every equipped part's
// modifiers. The sum is order-independent.
func (b *BotConfiguration) TotalModifiers() Modifiers {
	var total Modifiers
	for _, p := range b.equipped {
		total = total.Add(p.Modifiers)
	}
	return total
}

// BaseSpeed returns the archetype base speed plus part speed deltas,
// before clamping and temporary multipliers.
func (b *BotConfiguration) BaseSpeed() float64 {
	return b.Archetype.Stats().BaseSpeed + b.TotalModifiers().Speed
}

// MaxHealth returns the archetype max health plus part health deltas,
// floored at 1.
func (b *BotConfiguration) MaxHealth() int {
	h := b.Archetype.Stats().MaxHealth + b.TotalModifiers().Health
	if h < 1 {
		h = 1
	}
	return h
}

// CollectibleBias returns the archetype bias plus part priority deltas.
func (b *BotConfiguration) CollectibleBias() float64 {
	return b.Archetype.Stats().CollectibleBias + b.TotalModifiers().CollectiblePriority
}

// DashCooldown returns the archetype base cooldown minus part reductions,
// floored at the configured minimum.
func (b *BotConfiguration) DashCooldown(floor float64) float64 {
	cd := b.Archetype.Stats().DashCooldown - b.TotalModifiers().CooldownReduction
	if cd < floor {
		cd = floor
	}
	return cd
}

// RecordRun updates the lifetime records after a completed or terminated run.
func (b *BotConfiguration) RecordRun(distance, survival float64) {
	b.TotalRuns++
	if distance > b.BestDistance {
		b.BestDistance = distance
	}
	if survival > b.BestSurvivalTime {
		b.BestSurvivalTime = survival
	}
}

// Summary is the serializable view of a bot configuration stored in saves.
type Summary struct {
	Name             string    `json:"name"`
	Archetype        Archetype `json:"archetype"`
	Level            int       `json:"level"`
	XP               int64     `json:"xp"`
	PartIDs          []string  `json:"part_ids"`
	PrimaryColor     string    `json:"primary_color"`
	SecondaryColor   string    `json:"secondary_color"`
	StyleIndex       int       `json:"style_index"`
	BestDistance     float64   `json:"best_distance"`
	BestSurvivalTime float64   `json:"best_survival_time"`
	TotalRuns        int       `json:"total_runs"`
}

// Summarize captures the bot configuration for persistence.
func (b *BotConfiguration) Summarize() Summary {
	return Summary{
		Name:             b.Name,
		Archetype:        b.Archetype,
		Level:            b.Level,
		XP:               b.XP,
		PartIDs:          b.PartIDs(),
		PrimaryColor:     b.PrimaryColor,
		SecondaryColor:   b.SecondaryColor,
		StyleIndex:       b.StyleIndex,
		BestDistance:     b.BestDistance,
		BestSurvivalTime: b.BestSurvivalTime,
		TotalRuns:        b.TotalRuns,
	}
}

// RestoreBot rebuilds a bot configuration from a persisted summary,
// resolving parts against the catalog. Unknown part IDs are skipped.
func RestoreBot(s Summary, catalog *Catalog) (*BotConfiguration, error) {
	b, err := NewBot(s.Name, s.Archetype)
	if err != nil {
		return nil, err
	}
	b.Level = s.Level
	b.XP = s.XP
	b.PrimaryColor = s.PrimaryColor
	b.SecondaryColor = s.SecondaryColor
	b.StyleIndex = s.StyleIndex
	b.BestDistance = s.BestDistance
	b.BestSurvivalTime = s.BestSurvivalTime
	b.TotalRuns = s.TotalRuns
	if catalog != nil {
		for _, id := range s.PartIDs {
			if p := catalog.Get(id); p != nil {
				if err := b.Equip(p); err != nil {
					return nil, err
				}
			}
		}
	}
	return b, nil
}
