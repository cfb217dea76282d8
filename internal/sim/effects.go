package sim

// EffectKind identifies a timed effect on the bot. Timed actions (slide,
// dash) and power-up windows share the same deferred-expiry mechanism:
// {kind, expires-at} entries polled each tick.
type EffectKind int

const (
	EffectSlide EffectKind = iota
	EffectDash
	EffectSpeedBoost
	EffectPriorityBoost
	EffectShield
)

// String returns the effect kind name.
func (k EffectKind) String() string {
	switch k {
	case EffectSlide:
		return "slide"
	case EffectDash:
		return "dash"
	case EffectSpeedBoost:
		return "speed_boost"
	case EffectPriorityBoost:
		return "priority_boost"
	case EffectShield:
		return "shield"
	default:
		return "?"
	}
}

// Effect is one active timed effect.
type Effect struct {
	Kind      EffectKind
	ExpiresAt float64 // Simulation time, seconds
}

// EffectManager tracks active timed effects against simulation time.
type EffectManager struct {
	effects []*Effect
}

// NewEffectManager creates an empty effect manager.
func NewEffectManager() *EffectManager {
	return &EffectManager{}
}

// Reset cancels all active effects.
func (m *EffectManager) Reset() {
	m.effects = m.effects[:0]
}

// Add starts an effect or extends it if already active.
func (m *EffectManager) Add(kind EffectKind, now, duration float64) {
	for _, e := range m.effects {
		if e.Kind == kind {
			e.ExpiresAt = now + duration
			return
		}
	}
	m.effects = append(m.effects, &Effect{Kind: kind, ExpiresAt: now + duration})
}

// Cancel removes an effect before its expiry.
func (m *EffectManager) Cancel(kind EffectKind) {
	for i, e := range m.effects {
		if e.Kind == kind {
			m.effects = append(m.effects[:i], m.effects[i+1:]...)
			return
		}
	}
}

// Expire removes effects whose time has passed and returns their kinds.
func (m *EffectManager) Expire(now float64) []EffectKind {
	var expired []EffectKind
	active := m.effects[:0]
	for _, e := range m.effects {
		if e.ExpiresAt <= now {
			expired = append(expired, e.Kind)
		} else {
			active = append(active, e)
		}
	}
	m.effects = active
	return expired
}

// Has reports whether an effect is currently active.
func (m *EffectManager) Has(kind EffectKind) bool {
	for _, e := range m.effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Remaining returns seconds until the effect expires, or 0 if inactive.
func (m *EffectManager) Remaining(kind EffectKind, now float64) float64 {
	for _, e := range m.effects {
		if e.Kind == kind {
			r := e.ExpiresAt - now
			if r < 0 {
				return 0
			}
			return r
		}
	}
	return 0
}
