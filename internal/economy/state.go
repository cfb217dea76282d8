// Package economy owns the player's progression state: currency balances,
// XP and leveling, the regenerating run-energy resource, premium
// entitlement, feature unlocks and achievements.
package economy

import (
	"fmt"
	"time"
)

// Currency identifies one of the three independent balances.
type Currency string

const (
	// CurrencyBolts is the primary currency, earned from runs.
	CurrencyBolts Currency = "bolts"
	// CurrencyChips is the rare secondary currency, earned on level cadence.
	CurrencyChips Currency = "chips"
	// CurrencyTokens is the purchased currency.
	CurrencyTokens Currency = "tokens"
)

// PlayerStatistics aggregates lifetime run counters across all bots.
type PlayerStatistics struct {
	TotalRuns         int     `json:"total_runs"`
	TotalDistance     float64 `json:"total_distance"`
	BestDistance      float64 `json:"best_distance"`
	BestSurvivalTime  float64 `json:"best_survival_time"`
	TotalCollectibles int     `json:"total_collectibles"`
	TotalScrap        int     `json:"total_scrap"`

	// RunsByArchetype counts runs per archetype name.
	RunsByArchetype map[string]int `json:"runs_by_archetype"`
}

// ArchetypeRuns returns the run count for an archetype, zero if never run.
func (p *PlayerStatistics) ArchetypeRuns(archetype string) int {
	if p.RunsByArchetype == nil {
		return 0
	}
	return p.RunsByArchetype[archetype]
}

func (p *PlayerStatistics) recordRun(archetype string) {
	if p.RunsByArchetype == nil {
		p.RunsByArchetype = make(map[string]int)
	}
	p.RunsByArchetype[archetype]++
	p.TotalRuns++
}

// EconomyState is the single unit of progression truth per profile. It is
// the payload the persistence layer serializes; all gameplay mutation goes
// through the Manager.
type EconomyState struct {
	Bolts  int `json:"bolts"`
	Chips  int `json:"chips"`
	Tokens int `json:"tokens"`

	Level   int `json:"level"`
	TotalXP int `json:"total_xp"`

	Energy       int       `json:"energy"`
	MaxEnergy    int       `json:"max_energy"`
	EnergyAnchor time.Time `json:"energy_anchor"`

	PremiumUntil time.Time `json:"premium_until"`
	AdsRemoved   bool      `json:"ads_removed"`

	UnlockedFeatures []string `json:"unlocked_features"`
	Achievements     []string `json:"achievements"`

	Stats PlayerStatistics `json:"stats"`
}

// DefaultState returns a fresh profile: level 1, full energy, no balances.
func DefaultState(now time.Time) EconomyState {
	return EconomyState{
		Level:        1,
		Energy:       defaultMaxEnergy,
		MaxEnergy:    defaultMaxEnergy,
		EnergyAnchor: now,
	}
}

// Validate checks semantic invariants. A structurally well-formed state
// that fails these is treated as corrupt by the persistence layer.
func (s *EconomyState) Validate() error {
	if s.Bolts < 0 || s.Chips < 0 || s.Tokens < 0 {
		return fmt.Errorf("economy: negative balance (bolts %d, chips %d, tokens %d)", s.Bolts, s.Chips, s.Tokens)
	}
	if s.Level < 1 {
		return fmt.Errorf("economy: level %d below 1", s.Level)
	}
	if s.TotalXP < 0 {
		return fmt.Errorf("economy: negative total XP %d", s.TotalXP)
	}
	if s.MaxEnergy < 1 {
		return fmt.Errorf("economy: max energy %d below 1", s.MaxEnergy)
	}
	if s.Energy < 0 || s.Energy > s.MaxEnergy {
		return fmt.Errorf("economy: energy %d outside [0, %d]", s.Energy, s.MaxEnergy)
	}
	return nil
}

// clone returns a copy whose map and slices do not share backing storage
// with the original.
func (s EconomyState) clone() EconomyState {
	out := s
	out.UnlockedFeatures = append([]string(nil), s.UnlockedFeatures...)
	out.Achievements = append([]string(nil), s.Achievements...)
	if s.Stats.RunsByArchetype != nil {
		out.Stats.RunsByArchetype = make(map[string]int, len(s.Stats.RunsByArchetype))
		for k, v := range s.Stats.RunsByArchetype {
			out.Stats.RunsByArchetype[k] = v
		}
	}
	return out
}

func (s *EconomyState) balance(c Currency) *int {
	switch c {
	case CurrencyBolts:
		return &s.Bolts
	case CurrencyChips:
		return &s.Chips
	case CurrencyTokens:
		return &s.Tokens
	default:
		return nil
	}
}

func (s *EconomyState) hasFeature(name string) bool {
	for _, f := range s.UnlockedFeatures {
		if f == name {
			return true
		}
	}
	return false
}

func (s *EconomyState) hasAchievement(name string) bool {
	for _, a := range s.Achievements {
		if a == name {
			return true
		}
	}
	return false
}

const defaultMaxEnergy = 5
