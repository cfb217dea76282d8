// Package config provides the bot configuration model, the part catalog,
// and YAML-based loading of behavior weights and simulation tuning.
package config

import "fmt"

// Archetype is a named base-stat profile selectable for a bot.
type Archetype string

const (
	ArchetypeBalanced  Archetype = "balanced"
	ArchetypeSpeed     Archetype = "speed"
	ArchetypeTank      Archetype = "tank"
	ArchetypeJumper    Archetype = "jumper"
	ArchetypeCollector Archetype = "collector"
	ArchetypeLucky     Archetype = "lucky"
	ArchetypeHacker    Archetype = "hacker"
)

// Archetypes lists every selectable archetype in display order.
var Archetypes = []Archetype{
	ArchetypeBalanced,
	ArchetypeSpeed,
	ArchetypeTank,
	ArchetypeJumper,
	ArchetypeCollector,
	ArchetypeLucky,
	ArchetypeHacker,
}

// ArchetypeStats holds the base stats an archetype contributes before parts.
type ArchetypeStats struct {
	BaseSpeed       float64 `yaml:"base_speed"`
	MaxHealth       int     `yaml:"max_health"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	DashImpulse     float64 `yaml:"dash_impulse"`
	DashCooldown    float64 `yaml:"dash_cooldown"`
	CollectibleBias float64 `yaml:"collectible_bias"`
	RiskTolerance   float64 `yaml:"risk_tolerance"`
	LuckFactor      float64 `yaml:"luck_factor"`
}

var archetypeStats = map[Archetype]ArchetypeStats{
	ArchetypeBalanced:  {BaseSpeed: 6.0, MaxHealth: 90, JumpImpulse: 9.0, DashImpulse: 4.0, DashCooldown: 4.0, CollectibleBias: 1.0, RiskTolerance: 0.5, LuckFactor: 1.0},
	ArchetypeSpeed:     {BaseSpeed: 8.0, MaxHealth: 70, JumpImpulse: 8.5, DashImpulse: 5.5, DashCooldown: 3.5, CollectibleBias: 0.8, RiskTolerance: 0.7, LuckFactor: 1.0},
	ArchetypeTank:      {BaseSpeed: 5.0, MaxHealth: 100, JumpImpulse: 8.0, DashImpulse: 3.0, DashCooldown: 5.0, CollectibleBias: 0.7, RiskTolerance: 0.3, LuckFactor: 1.0},
	ArchetypeJumper:    {BaseSpeed: 6.0, MaxHealth: 80, JumpImpulse: 11.0, DashImpulse: 4.0, DashCooldown: 4.0, CollectibleBias: 0.9, RiskTolerance: 0.5, LuckFactor: 1.0},
	ArchetypeCollector: {BaseSpeed: 5.5, MaxHealth: 80, JumpImpulse: 9.0, DashImpulse: 3.5, DashCooldown: 4.5, CollectibleBias: 1.6, RiskTolerance: 0.6, LuckFactor: 1.1},
	ArchetypeLucky:     {BaseSpeed: 6.0, MaxHealth: 85, JumpImpulse: 9.0, DashImpulse: 4.0, DashCooldown: 4.0, CollectibleBias: 1.1, RiskTolerance: 0.5, LuckFactor: 1.5},
	ArchetypeHacker:    {BaseSpeed: 7.0, MaxHealth: 75, JumpImpulse: 9.0, DashImpulse: 4.5, DashCooldown: 3.0, CollectibleBias: 1.0, RiskTolerance: 0.8, LuckFactor: 1.2},
}

// Stats returns the base stats for an archetype.
// Unknown archetypes fall back to the balanced profile.
func (a Archetype) Stats() ArchetypeStats {
	s, ok := archetypeStats[a]
	if !ok {
		return archetypeStats[ArchetypeBalanced]
	}
	return s
}

// Valid reports whether the archetype is one of the known profiles.
func (a Archetype) Valid() bool {
	_, ok := archetypeStats[a]
	return ok
}

// ParseArchetype converts a string into an Archetype.
func ParseArchetype(s string) (Archetype, error) {
	a := Archetype(s)
	if !a.Valid() {
		return "", fmt.Errorf("config: unknown archetype %q", s)
	}
	return a, nil
}

// BehaviorWeights is the externally editable set of decision-engine tunables.
// Read-only at run time; content authors adjust it between runs.
type BehaviorWeights struct {
	SafetyBias         float64 `yaml:"safety_bias"`
	Aggressiveness     float64 `yaml:"aggressiveness"`
	CollectibleBias    float64 `yaml:"collectible_bias"`
	MinThreatDistance  float64 `yaml:"min_threat_distance"`
	MaxReactionTime    float64 `yaml:"max_reaction_time"`
	DetectionRange     float64 `yaml:"detection_range"`
	CriticalImpactTime float64 `yaml:"critical_impact_time"`
	SafetyMargin       float64 `yaml:"safety_margin"`

	// Per-action preference multipliers applied to decision priorities.
	ActionPreference map[string]float64 `yaml:"action_preference"`
}

// Preference returns the preference weight for an action name, defaulting to 1.
func (w BehaviorWeights) Preference(action string) float64 {
	if w.ActionPreference == nil {
		return 1.0
	}
	p, ok := w.ActionPreference[action]
	if !ok || p <= 0 {
		return 1.0
	}
	return p
}

// Tuning holds the physics and timing constants of the simulation.
type Tuning struct {
	Gravity         float64 `yaml:"gravity"`           // Downward acceleration, units/s^2
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`    // Vertical speed clamp, units/s
	MinSpeed        float64 `yaml:"min_speed"`         // Horizontal speed clamp floor
	MaxSpeed        float64 `yaml:"max_speed"`         // Horizontal speed clamp ceiling
	SlideLength     float64 `yaml:"slide_length"`      // Distance covered by one slide
	DashCooldownMin float64 `yaml:"dash_cooldown_min"` // Cooldown floor after part reductions
	DashDuration    float64 `yaml:"dash_duration"`     // How long the dash impulse persists
	StallTimeout    float64 `yaml:"stall_timeout"`     // Seconds without progress before destruction
	FloorThreshold  float64 `yaml:"floor_threshold"`   // Vertical position below which the bot is lost
	GroundProbe     float64 `yaml:"ground_probe"`      // Downward probe depth for grounding
}
