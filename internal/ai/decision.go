// Package ai implements the decision engine: it scans the course ahead of
// the bot, scores obstacles and collectibles, and emits timed decisions
// consumed by the run session's action executor.
package ai

import "fmt"

// Action is the movement action a decision requests.
type Action string

const (
	ActionContinue Action = "continue"
	ActionJump     Action = "jump"
	ActionSlide    Action = "slide"
	ActionDash     Action = "dash"
)

// Decision is a scheduled action emitted by the engine. It is consumed
// exactly once by the action executor and then discarded.
type Decision struct {
	Action    Action
	ExecuteAt float64 // Simulation time, seconds since run start
	Duration  float64
	Priority  float64
	TargetID  int64 // Entity the decision reacts to; 0 if none
	Rationale string
	Avoidance bool
	Collect   bool
}

func (d *Decision) String() string {
	return fmt.Sprintf("%s@%.2fs p=%.1f (%s)", d.Action, d.ExecuteAt, d.Priority, d.Rationale)
}
