// Package sim implements the run session: the state machine that drives the
// decision engine and action executor each tick, integrates movement on a
// fixed step, applies collision effects, and produces the final run record.
package sim

import "time"

// RunStatistics is the record of one run. It is created at run start,
// mutated throughout the run, and immutable once the run ends.
type RunStatistics struct {
	RunID     string    `json:"run_id"`
	BotName   string    `json:"bot_name"`
	Archetype string    `json:"archetype"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Distance     float64 `json:"distance"`
	SurvivalTime float64 `json:"survival_time"`
	AverageSpeed float64 `json:"average_speed"`

	Jumps          int `json:"jumps"`
	Slides         int `json:"slides"`
	Dashes         int `json:"dashes"`
	Landings       int `json:"landings"`
	Hits           int `json:"hits"`
	Avoids         int `json:"avoids"`
	Collectibles   int `json:"collectibles"`
	PowerUps       int `json:"powerups"`
	ScrapCollected int `json:"scrap_collected"`
	DamageTaken    int `json:"damage_taken"`

	Completed bool   `json:"completed"`
	Reason    string `json:"reason"`
}

// Termination reasons recorded in RunStatistics.Reason.
const (
	ReasonCompleted = "completed the course"
	ReasonDamage    = "took too much damage"
	ReasonHazard    = "hit a hazard"
	ReasonFell      = "fell off the course"
	ReasonStalled   = "stalled out"
	ReasonStopped   = "stopped by host"
)
