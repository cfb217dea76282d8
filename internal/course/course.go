// Package course models the procedurally generated track a bot runs along:
// obstacles, collectibles, hazards, power-ups and the finish marker, laid out
// on a one-dimensional distance axis in the direction of travel.
package course

import "sort"

// Kind identifies what a track entity is.
type Kind int

const (
	KindObstacle Kind = iota
	KindCollectible
	KindHazard
	KindPowerUp
	KindFinish
)

// String returns the entity kind name.
func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindCollectible:
		return "collectible"
	case KindHazard:
		return "hazard"
	case KindPowerUp:
		return "powerup"
	case KindFinish:
		return "finish"
	default:
		return "?"
	}
}

// ActionHint is the action an obstacle declares as its required avoidance.
type ActionHint string

const (
	HintJump  ActionHint = "jump"
	HintSlide ActionHint = "slide"
	HintDash  ActionHint = "dash"
)

// PowerKind identifies a power-up's temporary effect.
type PowerKind int

const (
	PowerNone PowerKind = iota
	PowerSpeedBoost
	PowerPriorityBoost
	PowerShield
)

// String returns the power-up kind name.
func (p PowerKind) String() string {
	switch p {
	case PowerSpeedBoost:
		return "speed_boost"
	case PowerPriorityBoost:
		return "priority_boost"
	case PowerShield:
		return "shield"
	default:
		return "none"
	}
}

// Entity is one placed track element. Entities are deactivated on
// consumption (hit, collected, triggered), never removed.
type Entity struct {
	ID       int64
	Kind     Kind
	Position float64 // Start distance along the track
	Length   float64 // Extent along the track

	// Obstacle fields.
	Hint       ActionHint
	Severity   float64
	BaseDamage int
	Height     float64

	// Collectible / power-up fields.
	Value          int
	VerticalOffset float64 // Relative to ground; positive = above
	Power          PowerKind
	Duration       float64 // Power-up effect duration, seconds

	Active bool
}

// End returns the distance at which the entity's extent finishes.
func (e *Entity) End() float64 {
	return e.Position + e.Length
}

// Scanned is an entity annotated with its distance from the scan origin.
type Scanned struct {
	Entity   *Entity
	Distance float64
}

// Track is an ordered, generated course. Entities are sorted by position.
type Track struct {
	Seed     int64
	Length   float64
	entities []*Entity
}

// NewTrack builds a track from hand-placed entities, sorting by position.
func NewTrack(length float64, entities []*Entity) *Track {
	sorted := make([]*Entity, len(entities))
	copy(sorted, entities)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	return &Track{Length: length, entities: sorted}
}

// Scan returns every active entity whose start lies within (from,
// from+lookahead], annotated with its distance from the scan origin.
func (t *Track) Scan(from, lookahead float64) []Scanned {
	var out []Scanned
	limit := from + lookahead
	for _, e := range t.entities {
		if !e.Active {
			continue
		}
		if e.Position <= from {
			continue
		}
		if e.Position > limit {
			break
		}
		out = append(out, Scanned{Entity: e, Distance: e.Position - from})
	}
	return out
}

// At returns every active entity whose extent covers the given distance.
func (t *Track) At(distance float64) []*Entity {
	var out []*Entity
	for _, e := range t.entities {
		if !e.Active {
			continue
		}
		if e.Position > distance {
			break
		}
		if distance >= e.Position && distance <= e.End() {
			out = append(out, e)
		}
	}
	return out
}

// Entities returns all entities in track order.
func (t *Track) Entities() []*Entity {
	return t.entities
}

// Get returns the entity with the given ID, or nil.
func (t *Track) Get(id int64) *Entity {
	for _, e := range t.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}
