package sim

// Collision profile heights. Sliding shrinks the profile so the bot fits
// under overhead obstacles.
const (
	profileStanding = 1.8
	profileSliding  = 0.9
)

// Motion is the bot's movement state. Horizontal travel is measured as
// distance along the course; vertical position is relative to the ground.
type Motion struct {
	Distance float64
	Y        float64
	VY       float64
	Speed    float64

	Grounded      bool
	Sliding       bool
	ProfileHeight float64
}

// resetMotion returns the starting movement state.
func resetMotion() Motion {
	return Motion{
		Grounded:      true,
		ProfileHeight: profileStanding,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
