package sim

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"botcircuit/internal/ai"
	"botcircuit/internal/config"
	"botcircuit/internal/course"
)

// State is the run session lifecycle state.
type State int

const (
	StateIdle State = iota
	StateActive
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "?"
	}
}

var (
	// ErrRunActive is returned by Start while a run is in progress.
	ErrRunActive = errors.New("sim: run already active")
	// ErrNoBot is returned by Start without a committed bot configuration.
	ErrNoBot = errors.New("sim: no bot configuration")
	// ErrNoTrack is returned by Start without a course.
	ErrNoTrack = errors.New("sim: no track")
)

// Session owns one run's lifecycle. The host embeds it and drives it with
// Tick (once per frame, decision-making and action execution) and FixedTick
// (fixed rate, physics integration and collision handling). Start, Tick,
// FixedTick and Stop are the whole host-facing surface.
type Session struct {
	weights config.BehaviorWeights
	tuning  config.Tuning

	state      State
	bot        *config.BotConfiguration
	track      *course.Track
	engine     *ai.Engine
	effects    *EffectManager
	dispatcher *Dispatcher

	stats RunStatistics
	mods  config.Modifiers

	motion      Motion
	now         float64
	maxHealth   int
	active      *ai.Decision
	activeUntil float64
	dashReadyAt float64

	lastProgressAt   float64
	lastProgressDist float64

	// avoidPending maps obstacle IDs targeted by executed avoidance
	// decisions; passing one uncontacted counts as an avoid.
	avoidPending map[int64]bool

	onComplete func(RunStatistics)
	completed  bool
}

// NewSession creates a run session with the given tunables.
func NewSession(weights config.BehaviorWeights, tuning config.Tuning) *Session {
	return &Session{
		weights:    weights,
		tuning:     tuning,
		engine:     ai.NewEngine(weights),
		effects:    NewEffectManager(),
		dispatcher: &Dispatcher{},
	}
}

// Events returns the session's event dispatcher for subscriptions.
func (s *Session) Events() *Dispatcher {
	return s.dispatcher
}

// OnComplete registers the callback receiving final statistics.
// It is invoked exactly once per run, on any termination path.
func (s *Session) OnComplete(fn func(RunStatistics)) {
	s.onComplete = fn
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Statistics returns a copy of the current run statistics.
func (s *Session) Statistics() RunStatistics {
	return s.stats
}

// Start begins a run with a committed bot configuration on the given track.
// It resets statistics, decision state and cooldowns.
func (s *Session) Start(bot *config.BotConfiguration, track *course.Track) error {
	if s.state == StateActive {
		return ErrRunActive
	}
	if bot == nil {
		return ErrNoBot
	}
	if track == nil {
		return ErrNoTrack
	}

	s.bot = bot
	s.track = track
	s.mods = bot.TotalModifiers()
	s.maxHealth = bot.MaxHealth()

	s.engine.Reset()
	s.effects.Reset()
	s.motion = resetMotion()
	s.now = 0
	s.active = nil
	s.activeUntil = 0
	s.dashReadyAt = 0
	s.lastProgressAt = 0
	s.lastProgressDist = 0
	s.avoidPending = make(map[int64]bool)
	s.completed = false

	s.stats = RunStatistics{
		RunID:     uuid.NewString(),
		BotName:   bot.Name,
		Archetype: string(bot.Archetype),
		StartedAt: time.Now(),
	}

	s.state = StateActive
	return nil
}

// Tick advances decision-making by one frame of dt seconds.
func (s *Session) Tick(dt float64) {
	if s.state != StateActive {
		return
	}
	s.now += dt

	for _, kind := range s.effects.Expire(s.now) {
		s.onEffectExpired(kind)
	}

	scan := s.track.Scan(s.motion.Distance, s.weights.DetectionRange)
	if d := s.engine.Evaluate(s.now, s.botState(), scan); d != nil {
		s.dispatcher.emit(DecisionMade{Decision: d})
	}

	if s.active != nil && s.now >= s.activeUntil {
		s.active = nil
		s.engine.DecisionCompleted()
	}
	if s.active == nil {
		if d := s.engine.Next(s.now); d != nil {
			s.execute(d)
		}
	}
}

// FixedTick advances physics by one fixed step of dt seconds.
func (s *Session) FixedTick(dt float64) {
	if s.state != StateActive {
		return
	}

	s.integrate(dt)
	if s.state != StateActive {
		return
	}
	s.handleContacts()
	if s.state != StateActive {
		return
	}
	s.creditAvoids()
	s.monitor()
}

// Stop force-ends the run. Statistics are flushed exactly as a natural end.
func (s *Session) Stop() {
	if s.state != StateActive {
		return
	}
	s.end(ReasonStopped, false)
}

// botState snapshots the state the decision engine evaluates against.
func (s *Session) botState() ai.BotState {
	return ai.BotState{
		Distance:        s.motion.Distance,
		Speed:           s.currentSpeed(),
		Grounded:        s.motion.Grounded,
		Sliding:         s.motion.Sliding,
		DashReady:       s.now >= s.dashReadyAt,
		CollectibleBias: s.bot.CollectibleBias(),
		RiskTolerance:   s.bot.Archetype.Stats().RiskTolerance + s.mods.RiskTolerance,
	}
}

// currentSpeed is the archetype base plus part deltas, scaled by any active
// temporary multiplier and dash impulse, clamped to the safe range.
func (s *Session) currentSpeed() float64 {
	speed := s.bot.BaseSpeed()
	if s.effects.Has(EffectSpeedBoost) {
		speed *= speedBoostMultiplier
	}
	if s.effects.Has(EffectDash) {
		speed += s.bot.Archetype.Stats().DashImpulse + s.mods.Dash
	}
	return clamp(speed, s.tuning.MinSpeed, s.tuning.MaxSpeed)
}

// execute applies a decision's action to motion state and statistics.
func (s *Session) execute(d *ai.Decision) {
	switch d.Action {
	case ai.ActionJump:
		// Jump applies an upward impulse only when grounded and not sliding.
		if s.motion.Grounded && !s.motion.Sliding {
			s.motion.VY = s.bot.Archetype.Stats().JumpImpulse + s.mods.Jump
			s.motion.Grounded = false
			s.stats.Jumps++
		}
	case ai.ActionSlide:
		if !s.motion.Sliding {
			s.motion.Sliding = true
			s.motion.ProfileHeight = profileSliding
			speed := s.currentSpeed()
			if speed < s.tuning.MinSpeed {
				speed = s.tuning.MinSpeed
			}
			// The slide holds for at least the full action window, so a
			// slide started on the avoidance lead still covers the target
			// obstacle's whole extent.
			dur := s.tuning.SlideLength / speed
			if dur < d.Duration {
				dur = d.Duration
			}
			s.effects.Add(EffectSlide, s.now, dur)
			s.stats.Slides++
		}
	case ai.ActionDash:
		if s.now >= s.dashReadyAt {
			s.effects.Add(EffectDash, s.now, s.tuning.DashDuration)
			s.dashReadyAt = s.now + s.bot.DashCooldown(s.tuning.DashCooldownMin)
			s.stats.Dashes++
		}
	case ai.ActionContinue:
		// No state change.
	}

	if d.Avoidance && d.TargetID != 0 {
		s.avoidPending[d.TargetID] = true
	}

	s.active = d
	s.activeUntil = s.now + d.Duration
	s.dispatcher.emit(ActionStarted{Action: d.Action, At: s.now})
}

// integrate advances motion by one fixed physics step.
func (s *Session) integrate(dt float64) {
	s.motion.Speed = s.currentSpeed()
	s.motion.Distance += s.motion.Speed * dt

	if !s.motion.Grounded {
		s.motion.VY += s.tuning.Gravity * dt
		if s.motion.VY < -s.tuning.MaxFallSpeed {
			s.motion.VY = -s.tuning.MaxFallSpeed
		}
		s.motion.Y += s.motion.VY * dt
	}

	// Short-range downward probe recomputes grounding every physics tick.
	if !s.motion.Grounded && s.motion.VY <= 0 && s.motion.Y <= s.tuning.GroundProbe {
		s.motion.Y = 0
		s.motion.VY = 0
		s.motion.Grounded = true
		s.stats.Landings++
	}
}

// handleContacts applies domain effects for every entity whose extent the
// bot currently overlaps.
func (s *Session) handleContacts() {
	for _, e := range s.track.At(s.motion.Distance) {
		switch e.Kind {
		case course.KindObstacle:
			s.contactObstacle(e)
		case course.KindCollectible:
			s.contactCollectible(e)
		case course.KindHazard:
			// Hazard contact is unconditional destruction; clearing it
			// airborne is not contact.
			if s.motion.Y <= hazardHeight {
				e.Active = false
				s.end(ReasonHazard, false)
				return
			}
		case course.KindPowerUp:
			s.contactPowerUp(e)
		case course.KindFinish:
			s.end(ReasonCompleted, true)
			return
		}
		if s.state != StateActive {
			return
		}
	}
}

// obstacleCleared reports whether the current posture clears the obstacle.
func (s *Session) obstacleCleared(e *course.Entity) bool {
	switch e.Hint {
	case course.HintJump:
		return s.motion.Y > e.Height
	case course.HintSlide:
		// Overhead bar: clearance is underneath, profile must be shrunk.
		return s.motion.Sliding && s.motion.ProfileHeight < e.Height
	case course.HintDash:
		return s.effects.Has(EffectDash) || s.motion.Y > e.Height
	default:
		return false
	}
}

func (s *Session) contactObstacle(e *course.Entity) {
	if s.obstacleCleared(e) {
		// Passed in the correct posture: deactivate so a later posture
		// change inside the overlap cannot turn the pass into a hit.
		e.Active = false
		if s.avoidPending[e.ID] {
			delete(s.avoidPending, e.ID)
			s.stats.Avoids++
		}
		return
	}
	e.Active = false
	delete(s.avoidPending, e.ID)

	if s.effects.Has(EffectShield) {
		s.dispatcher.emit(ObstacleHit{EntityID: e.ID, Damage: 0, Shielded: true})
		return
	}

	// Damage is base minus summed part damage reduction, floored at 1.
	damage := e.BaseDamage - s.mods.DamageReduction
	if damage < 1 {
		damage = 1
	}
	s.stats.Hits++
	s.stats.DamageTaken += damage
	s.dispatcher.emit(ObstacleHit{EntityID: e.ID, Damage: damage})

	if s.stats.DamageTaken >= s.maxHealth {
		s.end(ReasonDamage, false)
	}
}

func (s *Session) contactCollectible(e *course.Entity) {
	if !s.collectReachable(e.VerticalOffset) {
		return
	}
	e.Active = false
	s.stats.Collectibles++
	s.stats.ScrapCollected += e.Value
	s.dispatcher.emit(CollectiblePicked{EntityID: e.ID, Value: e.Value})
}

// collectReachable reports whether the current posture reaches a
// collectible at the given vertical offset.
func (s *Session) collectReachable(offset float64) bool {
	switch {
	case offset > 0.5:
		return s.motion.Y >= offset-collectReach
	case offset < -0.1:
		return s.motion.Sliding
	default:
		return s.motion.Grounded || s.motion.Y < collectReach
	}
}

func (s *Session) contactPowerUp(e *course.Entity) {
	if !s.collectReachable(e.VerticalOffset) {
		return
	}
	e.Active = false
	s.stats.PowerUps++

	switch e.Power {
	case course.PowerSpeedBoost:
		s.effects.Add(EffectSpeedBoost, s.now, e.Duration)
	case course.PowerPriorityBoost:
		s.effects.Add(EffectPriorityBoost, s.now, e.Duration)
		s.engine.SetPriorityBoost(priorityBoostMultiplier)
	case course.PowerShield:
		s.effects.Add(EffectShield, s.now, e.Duration)
	}
	s.dispatcher.emit(PowerUpActivated{EntityID: e.ID, Power: e.Power, Duration: e.Duration})
}

// onEffectExpired reverts the state an expired effect was holding.
func (s *Session) onEffectExpired(kind EffectKind) {
	switch kind {
	case EffectSlide:
		s.motion.Sliding = false
		s.motion.ProfileHeight = profileStanding
	case EffectPriorityBoost:
		s.engine.SetPriorityBoost(1.0)
		s.dispatcher.emit(PowerUpExpired{Power: course.PowerPriorityBoost})
	case EffectSpeedBoost:
		s.dispatcher.emit(PowerUpExpired{Power: course.PowerSpeedBoost})
	case EffectShield:
		s.dispatcher.emit(PowerUpExpired{Power: course.PowerShield})
	}
}

// creditAvoids counts obstacles targeted by an avoidance decision that
// passed behind the bot without contact.
func (s *Session) creditAvoids() {
	for id := range s.avoidPending {
		e := s.track.Get(id)
		if e == nil || !e.Active {
			delete(s.avoidPending, id)
			continue
		}
		if e.End() < s.motion.Distance {
			s.stats.Avoids++
			delete(s.avoidPending, id)
		}
	}
}

// monitor checks the run-fatal conditions: falling below the floor and
// stalled forward progress.
func (s *Session) monitor() {
	if s.motion.Y < s.tuning.FloorThreshold {
		s.end(ReasonFell, false)
		return
	}

	if s.motion.Distance > s.lastProgressDist+progressEpsilon {
		s.lastProgressDist = s.motion.Distance
		s.lastProgressAt = s.now
	} else if s.now-s.lastProgressAt > s.tuning.StallTimeout {
		s.end(ReasonStalled, false)
	}
}

// end finalizes statistics exactly once and transitions to Ended.
func (s *Session) end(reason string, completed bool) {
	if s.state != StateActive || s.completed {
		return
	}
	s.completed = true
	s.state = StateEnded

	s.stats.EndedAt = time.Now()
	s.stats.Distance = s.motion.Distance
	s.stats.SurvivalTime = s.now
	if s.now > 0 {
		s.stats.AverageSpeed = s.motion.Distance / s.now
	}
	s.stats.Completed = completed
	s.stats.Reason = reason

	s.dispatcher.emit(RunEnded{Stats: s.stats})
	if s.onComplete != nil {
		s.onComplete(s.stats)
	}
}

const (
	speedBoostMultiplier    = 1.5
	priorityBoostMultiplier = 1.5
	hazardHeight            = 0.5
	collectReach            = 1.0
	progressEpsilon         = 0.05
)
