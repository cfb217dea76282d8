package sim

import (
	"botcircuit/internal/ai"
	"botcircuit/internal/course"
)

// Event is a typed payload dispatched synchronously to subscribers during a
// run, in the order events occur. The presentation layer hooks animation and
// VFX/SFX off these.
type Event interface {
	runEvent()
}

// DecisionMade is dispatched when the engine emits a new decision.
type DecisionMade struct {
	Decision *ai.Decision
}

func (DecisionMade) runEvent() {}

// ActionStarted is dispatched when the executor begins a decision's action.
type ActionStarted struct {
	Action ai.Action
	At     float64
}

func (ActionStarted) runEvent() {}

// ObstacleHit is dispatched on obstacle contact, after damage is applied.
type ObstacleHit struct {
	EntityID int64
	Damage   int
	Shielded bool
}

func (ObstacleHit) runEvent() {}

// CollectiblePicked is dispatched when a collectible is gathered.
type CollectiblePicked struct {
	EntityID int64
	Value    int
}

func (CollectiblePicked) runEvent() {}

// PowerUpActivated is dispatched when a power-up's timed effect starts.
type PowerUpActivated struct {
	EntityID int64
	Power    course.PowerKind
	Duration float64
}

func (PowerUpActivated) runEvent() {}

// PowerUpExpired is dispatched when a power-up's timed effect reverts.
type PowerUpExpired struct {
	Power course.PowerKind
}

func (PowerUpExpired) runEvent() {}

// RunEnded is dispatched once, with the finalized statistics.
type RunEnded struct {
	Stats RunStatistics
}

func (RunEnded) runEvent() {}

// Dispatcher delivers events to an ordered list of subscribers.
// Dispatch is synchronous; subscribers must not block.
type Dispatcher struct {
	listeners []func(Event)
}

// Subscribe appends a listener. Listeners are invoked in subscription order.
func (d *Dispatcher) Subscribe(fn func(Event)) {
	d.listeners = append(d.listeners, fn)
}

func (d *Dispatcher) emit(e Event) {
	for _, fn := range d.listeners {
		fn(e)
	}
}
