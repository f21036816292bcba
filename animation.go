package starweave

import "math"

// DefaultPeriod is the length of one animation cycle in seconds.
const DefaultPeriod = 3.0

// Animation holds the wrapping animation fraction.
// The zero value is not usable; create one with NewAnimation.
type Animation struct {
	fraction float64 // always in [0, 1)
	period   float64 // seconds per cycle
}

// NewAnimation returns an animation at fraction 0.
// A non-positive period is replaced by DefaultPeriod.
func NewAnimation(period float64) Animation {
	if !(period > 0) {
		period = DefaultPeriod
	}
	return Animation{period: period}
}

// Advance simulates dt seconds passing.
func (a *Animation) Advance(dt float64) {
	a.fraction = wrap01(a.fraction + dt/a.period)
}

// Seek jumps to the given fraction of the cycle.
func (a *Animation) Seek(fraction float64) {
	a.fraction = wrap01(fraction)
}

// Fraction returns the current position in the cycle, in [0, 1).
func (a Animation) Fraction() float64 {
	return a.fraction
}

// Period returns the cycle length in seconds.
func (a Animation) Period() float64 {
	return a.period
}

// wrap01 maps x into [0, 1).
func wrap01(x float64) float64 {
	x = math.Mod(x, 1)
	if x < 0 {
		x++
	}
	if x >= 1 { // x was a tiny negative number
		x = 0
	}
	return x
}
