package config

// DefaultWeights returns the built-in decision-engine tunables.
func DefaultWeights() BehaviorWeights {
	return BehaviorWeights{
		SafetyBias:         1.0,
		Aggressiveness:     1.0,
		CollectibleBias:    1.0,
		MinThreatDistance:  2.0,
		MaxReactionTime:    0.4,
		DetectionRange:     12.0,
		CriticalImpactTime: 1.5,
		SafetyMargin:       1.5,
		ActionPreference: map[string]float64{
			"continue": 1.0,
			"jump":     1.0,
			"slide":    1.0,
			"dash":     1.0,
		},
	}
}

// DefaultTuning returns the built-in physics and timing constants.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:         -22.0,
		MaxFallSpeed:    18.0,
		MinSpeed:        1.0,
		MaxSpeed:        15.0,
		SlideLength:     3.0,
		DashCooldownMin: 1.0,
		DashDuration:    0.5,
		StallTimeout:    5.0,
		FloorThreshold:  -10.0,
		GroundProbe:     0.1,
	}
}

// defaultParts is the built-in part catalog, used when no catalog file is
// present. Entries here mirror what a content-authored parts.yaml carries.
var defaultParts = []Part{
	{
		ID: "optic-visor", Name: "Optic Visor", Slot: SlotHead, Rarity: RarityCommon,
		Modifiers: Modifiers{CollectiblePriority: 0.2},
		UnlockLevel: 1, UnlockCost: 50,
	},
	{
		ID: "threat-scanner", Name: "Threat Scanner", Slot: SlotHead, Rarity: RarityRare,
		Modifiers: Modifiers{RiskTolerance: -0.2, CollectiblePriority: 0.1},
		UnlockLevel: 6, UnlockCost: 400,
	},
	{
		ID: "surge-core", Name: "Surge Core", Slot: SlotCore, Rarity: RarityUncommon,
		Modifiers: Modifiers{Speed: 1.0, CooldownReduction: 0.25},
		UnlockLevel: 3, UnlockCost: 150,
	},
	{
		ID: "fusion-core", Name: "Fusion Core", Slot: SlotCore, Rarity: RarityEpic,
		Modifiers: Modifiers{Speed: 2.0, Health: 10, CooldownReduction: 0.5},
		UnlockLevel: 12, UnlockCost: 1200, Prerequisites: []string{"surge-core"},
	},
	{
		ID: "sprint-servos", Name: "Sprint Servos", Slot: SlotLegs, Rarity: RarityCommon,
		Modifiers: Modifiers{Speed: 2.0},
		UnlockLevel: 1, UnlockCost: 100,
	},
	{
		ID: "coil-springs", Name: "Coil Springs", Slot: SlotLegs, Rarity: RarityUncommon,
		Modifiers: Modifiers{Jump: 1.5},
		UnlockLevel: 4, UnlockCost: 250,
		CompatibleWith: []Archetype{ArchetypeJumper, ArchetypeBalanced, ArchetypeCollector},
	},
	{
		ID: "grip-claws", Name: "Grip Claws", Slot: SlotArms, Rarity: RarityCommon,
		Modifiers: Modifiers{CollectiblePriority: 0.3},
		UnlockLevel: 2, UnlockCost: 120,
	},
	{
		ID: "ram-plating", Name: "Ram Plating", Slot: SlotFrame, Rarity: RarityUncommon,
		Modifiers: Modifiers{Health: 20, DamageReduction: 5, Speed: -0.5},
		UnlockLevel: 5, UnlockCost: 300,
	},
	{
		ID: "ablative-shell", Name: "Ablative Shell", Slot: SlotFrame, Rarity: RarityLegendary,
		Modifiers: Modifiers{Health: 40, DamageReduction: 12, Speed: -1.0},
		UnlockLevel: 18, UnlockCost: 2500, Prerequisites: []string{"ram-plating"},
		CompatibleWith: []Archetype{ArchetypeTank, ArchetypeBalanced},
	},
	{
		ID: "dash-capacitor", Name: "Dash Capacitor", Slot: SlotUtility, Rarity: RarityRare,
		Modifiers: Modifiers{Dash: 1.5, CooldownReduction: 0.75},
		UnlockLevel: 8, UnlockCost: 600,
	},
	{
		ID: "lucky-coil", Name: "Lucky Coil", Slot: SlotUtility, Rarity: RarityEpic,
		Modifiers: Modifiers{CollectiblePriority: 0.5, RiskTolerance: 0.1},
		UnlockLevel: 10, UnlockCost: 900,
		CompatibleWith: []Archetype{ArchetypeLucky, ArchetypeCollector, ArchetypeHacker},
	},
}

// DefaultCatalog returns the built-in part catalog.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultParts)
	if err != nil {
		// The built-in entries are validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}
