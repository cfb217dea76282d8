package config

import "fmt"

// PartSlot is a slot category; a bot equips at most one part per slot.
type PartSlot string

const (
	SlotHead    PartSlot = "head"
	SlotCore    PartSlot = "core"
	SlotLegs    PartSlot = "legs"
	SlotArms    PartSlot = "arms"
	SlotFrame   PartSlot = "frame"
	SlotUtility PartSlot = "utility"
)

// Slots lists every slot category in equip order.
var Slots = []PartSlot{SlotHead, SlotCore, SlotLegs, SlotArms, SlotFrame, SlotUtility}

// Valid reports whether the slot is one of the known categories.
func (s PartSlot) Valid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// Rarity is a part rarity tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Modifiers are the numeric deltas a part contributes.
// The zero value contributes nothing.
type Modifiers struct {
	Speed               float64 `yaml:"speed"`
	Jump                float64 `yaml:"jump"`
	Dash                float64 `yaml:"dash"`
	Health              int     `yaml:"health"`
	DamageReduction     int     `yaml:"damage_reduction"`
	RiskTolerance       float64 `yaml:"risk_tolerance"`
	CollectiblePriority float64 `yaml:"collectible_priority"`
	CooldownReduction   float64 `yaml:"cooldown_reduction"`
}

// Add returns the field-wise sum of two modifier sets.
func (m Modifiers) Add(other Modifiers) Modifiers {
	return Modifiers{
		Speed:               m.Speed + other.Speed,
		Jump:                m.Jump + other.Jump,
		Dash:                m.Dash + other.Dash,
		Health:              m.Health + other.Health,
		DamageReduction:     m.DamageReduction + other.DamageReduction,
		RiskTolerance:       m.RiskTolerance + other.RiskTolerance,
		CollectiblePriority: m.CollectiblePriority + other.CollectiblePriority,
		CooldownReduction:   m.CooldownReduction + other.CooldownReduction,
	}
}

// Part is an immutable catalog entry. Bot configurations reference parts by
// pointer into the catalog and never copy them.
type Part struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Slot          PartSlot  `yaml:"slot"`
	Rarity        Rarity    `yaml:"rarity"`
	Modifiers     Modifiers `yaml:"modifiers"`
	UnlockLevel   int       `yaml:"unlock_level"`
	UnlockCost    int64     `yaml:"unlock_cost"`
	Prerequisites []string  `yaml:"prerequisites"`

	// CompatibleWith restricts which archetypes can equip the part.
	// Empty means compatible with all.
	CompatibleWith []Archetype `yaml:"compatible_with"`
}

// Compatible reports whether the part can be equipped by the given archetype.
func (p *Part) Compatible(a Archetype) bool {
	if len(p.CompatibleWith) == 0 {
		return true
	}
	for _, c := range p.CompatibleWith {
		if c == a {
			return true
		}
	}
	return false
}

// Catalog is the immutable set of parts available to bots.
type Catalog struct {
	parts []*Part
	byID  map[string]*Part
}

// NewCatalog builds a catalog from part entries, rejecting duplicates and
// entries with unknown slots.
func NewCatalog(entries []Part) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Part, len(entries))}
	for i := range entries {
		p := entries[i]
		if p.ID == "" {
			return nil, fmt.Errorf("config: part %d has no id", i)
		}
		if !p.Slot.Valid() {
			return nil, fmt.Errorf("config: part %q has unknown slot %q", p.ID, p.Slot)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("config: duplicate part id %q", p.ID)
		}
		cp := p
		c.parts = append(c.parts, &cp)
		c.byID[p.ID] = &cp
	}
	return c, nil
}

// Get returns the part with the given ID, or nil if unknown.
func (c *Catalog) Get(id string) *Part {
	return c.byID[id]
}

// All returns every part in catalog order.
func (c *Catalog) All() []*Part {
	return c.parts
}

// BySlot returns every part occupying the given slot, in catalog order.
func (c *Catalog) BySlot(slot PartSlot) []*Part {
	var out []*Part
	for _, p := range c.parts {
		if p.Slot == slot {
			out = append(out, p)
		}
	}
	return out
}
