package ai

import (
	"fmt"
	"sort"

	"botcircuit/internal/config"
	"botcircuit/internal/course"
)

// BotState is the snapshot of bot state the engine decides against.
type BotState struct {
	Distance        float64
	Speed           float64
	Grounded        bool
	Sliding         bool
	DashReady       bool
	CollectibleBias float64
	RiskTolerance   float64
}

// scoredObstacle annotates a scanned obstacle with its threat score.
// Threat is inversely weighted by distance and scaled by declared severity.
type scoredObstacle struct {
	course.Scanned
	threat float64
}

// scoredCollectible annotates a scanned collectible with its priority.
type scoredCollectible struct {
	course.Scanned
	priority float64
}

// Engine evaluates the course ahead and emits timed decisions.
// One engine instance serves one run; Reset prepares it for the next.
type Engine struct {
	weights config.BehaviorWeights

	queue      []*Decision
	nextEvalAt float64
	activeDone bool

	// priorityBoost is a temporary collectible-priority multiplier applied
	// while a priority power-up is active.
	priorityBoost float64
}

// NewEngine creates a decision engine with the given behavior weights.
func NewEngine(weights config.BehaviorWeights) *Engine {
	e := &Engine{weights: weights}
	e.Reset()
	return e
}

// Reset clears the queue and evaluation state for a fresh run.
func (e *Engine) Reset() {
	e.queue = e.queue[:0]
	e.nextEvalAt = 0
	e.activeDone = true
	e.priorityBoost = 1.0
}

// SetPriorityBoost sets the temporary collectible-priority multiplier.
func (e *Engine) SetPriorityBoost(mult float64) {
	if mult <= 0 {
		mult = 1.0
	}
	e.priorityBoost = mult
}

// Pending returns the number of queued decisions.
func (e *Engine) Pending() int {
	return len(e.queue)
}

// Push inserts a decision into the queue, ordered by scheduled execution
// time; among decisions due at the same time, higher priority goes first.
// A high-priority avoidance therefore overtakes a queued collection even
// when pushed later.
func (e *Engine) Push(d *Decision) {
	e.queue = append(e.queue, d)
	sort.SliceStable(e.queue, func(i, j int) bool {
		if e.queue[i].ExecuteAt != e.queue[j].ExecuteAt {
			return e.queue[i].ExecuteAt < e.queue[j].ExecuteAt
		}
		return e.queue[i].Priority > e.queue[j].Priority
	})
}

// Next pops the head decision if its scheduled time has arrived.
// A decision is never executed before its scheduled time.
func (e *Engine) Next(now float64) *Decision {
	if len(e.queue) == 0 {
		return nil
	}
	head := e.queue[0]
	if head.ExecuteAt > now {
		return nil
	}
	e.queue = e.queue[1:]
	return head
}

// DecisionCompleted tells the engine the active decision finished, which
// triggers a re-evaluation on the next tick.
func (e *Engine) DecisionCompleted() {
	e.activeDone = true
}

// Evaluate scans the window ahead and, when a re-evaluation is due, applies
// the decision policy and queues the resulting decision. It returns the
// emitted decision, or nil when no re-evaluation was due.
//
// Re-evaluation triggers, whichever comes soonest: the nearest obstacle is
// closer than the minimum threat distance, the reaction interval elapsed,
// or the previously active decision completed.
func (e *Engine) Evaluate(now float64, bot BotState, scan []course.Scanned) *Decision {
	obstacles, collectibles := e.score(bot, scan)

	due := e.activeDone || now >= e.nextEvalAt
	if !due && len(obstacles) > 0 && obstacles[0].Distance < e.weights.MinThreatDistance {
		due = true
	}
	if !due {
		return nil
	}
	e.nextEvalAt = now + e.weights.MaxReactionTime
	e.activeDone = false

	d := e.decide(now, bot, obstacles, collectibles)
	if d == nil {
		return nil
	}
	e.Push(d)
	return d
}

// score annotates and sorts the scan: obstacles ascending by distance,
// collectibles descending by priority.
func (e *Engine) score(bot BotState, scan []course.Scanned) ([]scoredObstacle, []scoredCollectible) {
	var obstacles []scoredObstacle
	var collectibles []scoredCollectible

	rng := e.weights.DetectionRange
	for _, s := range scan {
		switch s.Entity.Kind {
		case course.KindObstacle, course.KindHazard:
			proximity := 1.0 - s.Distance/rng
			if proximity < 0 {
				proximity = 0
			}
			obstacles = append(obstacles, scoredObstacle{
				Scanned: s,
				threat:  s.Entity.Severity * proximity * e.weights.SafetyBias,
			})
		case course.KindCollectible, course.KindPowerUp:
			proximity := 1.0 - s.Distance/rng
			if proximity < 0 {
				proximity = 0
			}
			value := float64(s.Entity.Value)
			if s.Entity.Kind == course.KindPowerUp {
				value = 10 // Power-ups are always worth a detour
			}
			collectibles = append(collectibles, scoredCollectible{
				Scanned:  s,
				priority: value * proximity * bot.CollectibleBias * e.weights.CollectibleBias * e.priorityBoost,
			})
		}
	}

	sort.Slice(obstacles, func(i, j int) bool {
		return obstacles[i].Distance < obstacles[j].Distance
	})
	sort.Slice(collectibles, func(i, j int) bool {
		return collectibles[i].priority > collectibles[j].priority
	})
	return obstacles, collectibles
}

// decide applies the decision policy in strict order: critical avoidance,
// then worthwhile safe collection, then continue.
func (e *Engine) decide(now float64, bot BotState, obstacles []scoredObstacle, collectibles []scoredCollectible) *Decision {
	speed := bot.Speed
	if speed <= 0 {
		speed = 0.001
	}

	// 1. Critical obstacle: time-to-impact below the critical threshold.
	if len(obstacles) > 0 {
		nearest := obstacles[0]
		tti := nearest.Distance / speed
		if tti < e.weights.CriticalImpactTime {
			if e.targetQueued(nearest.Entity.ID) {
				return nil
			}
			action, note := e.resolveAvoidance(nearest.Entity.Hint, bot)
			executeAt := now + tti - avoidanceLead
			if executeAt < now {
				executeAt = now
			}
			return &Decision{
				Action:    action,
				ExecuteAt: executeAt,
				Duration:  actionDuration(action),
				Priority:  avoidanceBasePriority + nearest.threat*e.weights.Preference(string(action)),
				TargetID:  nearest.Entity.ID,
				Rationale: fmt.Sprintf("avoid %s at %.1f (tti %.2fs)%s", nearest.Entity.Kind, nearest.Distance, tti, note),
				Avoidance: true,
			}
		}
	}

	// 2. Worthwhile collectible with no obstacle inside the safety margin.
	if len(collectibles) > 0 {
		best := collectibles[0]
		safe := len(obstacles) == 0 ||
			obstacles[0].Distance > best.Distance+e.weights.SafetyMargin
		if best.priority > bot.CollectibleBias && safe {
			if e.targetQueued(best.Entity.ID) {
				return nil
			}
			action := collectAction(best.Entity.VerticalOffset)
			executeAt := now + (best.Distance-collectApproach)/speed
			if executeAt < now {
				executeAt = now
			}
			return &Decision{
				Action:    action,
				ExecuteAt: executeAt,
				Duration:  actionDuration(action),
				Priority:  best.priority * e.weights.Aggressiveness * e.weights.Preference(string(action)),
				TargetID:  best.Entity.ID,
				Rationale: fmt.Sprintf("collect %s at %.1f (priority %.1f)", best.Entity.Kind, best.Distance, best.priority),
				Collect:   true,
			}
		}
	}

	// 3. Nothing pressing: keep running.
	if e.Pending() > 0 {
		return nil
	}
	return &Decision{
		Action:    ActionContinue,
		ExecuteAt: now,
		Duration:  e.weights.MaxReactionTime,
		Priority:  continuePriority,
		Rationale: "clear ahead",
	}
}

// resolveAvoidance downgrades an obstacle's required action when it is
// currently unavailable: slide substitutes for jump while airborne, jump
// substitutes for dash while the dash is cooling down.
func (e *Engine) resolveAvoidance(hint course.ActionHint, bot BotState) (Action, string) {
	switch hint {
	case course.HintJump:
		if bot.Grounded && !bot.Sliding {
			return ActionJump, ""
		}
		return ActionSlide, ", airborne: slide instead"
	case course.HintSlide:
		if !bot.Sliding {
			return ActionSlide, ""
		}
		return ActionContinue, ", already sliding"
	case course.HintDash:
		if bot.DashReady {
			return ActionDash, ""
		}
		if bot.Grounded && !bot.Sliding {
			return ActionJump, ", dash cooling down: jump instead"
		}
		return ActionSlide, ", dash cooling down: slide instead"
	default:
		return ActionJump, ""
	}
}

// collectAction picks the collection action from the target's vertical
// offset: jump if above, slide if below, continue if level.
func collectAction(offset float64) Action {
	switch {
	case offset > 0.5:
		return ActionJump
	case offset < -0.1:
		return ActionSlide
	default:
		return ActionContinue
	}
}

// targetQueued reports whether a decision for the entity is already queued.
func (e *Engine) targetQueued(id int64) bool {
	if id == 0 {
		return false
	}
	for _, d := range e.queue {
		if d.TargetID == id {
			return true
		}
	}
	return false
}

func actionDuration(a Action) float64 {
	switch a {
	case ActionJump:
		return 0.8
	case ActionSlide:
		return 0.6
	case ActionDash:
		return 0.5
	default:
		return 0.3
	}
}

const (
	avoidanceBasePriority = 50.0
	continuePriority      = 1.0
	avoidanceLead         = 0.45 // Seconds before impact the action should start
	collectApproach       = 0.8 // Units before the target the action should start
)
