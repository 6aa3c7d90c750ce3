package glass

import "math"

// Profile describes the height of the glass cross-section as a function of
// the distance from its edge.
type Profile interface {
	// Height returns the surface height at distance d from the edge.
	Height(d float64) float64
}

// CircularArc is a quarter-circle edge profile of radius R.
// Height is 0 at the edge, R at distance R from it and 0 beyond.
type CircularArc struct {
	R float64
}

// Height implements Profile.
func (a CircularArc) Height(d float64) float64 {
	if d > a.R {
		return 0
	}
	fromCenter := a.R - d
	return math.Sqrt(math.Max(0, a.R*a.R-fromCenter*fromCenter))
}

// Slope returns the central-difference derivative of p at d.
func Slope(p Profile, d, delta float64) float64 {
	return (p.Height(d+delta) - p.Height(d-delta)) / (2 * delta)
}
