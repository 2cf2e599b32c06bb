package forcefield

import "math"

// ExpDecay is a purely repulsive law whose potential decays from Pot0
// at D0 towards zero with rate E.
type ExpDecay struct {
	Pot0 float64
	D0   float64
	E    float64
}

func (x ExpDecay) Force(d float64) float64 {
	return x.E * x.Pot0 * math.Exp(-x.E*(d-x.D0))
}

func (x ExpDecay) Potential(d float64) float64 {
	return x.Pot0 * math.Exp(-x.E*(d-x.D0))
}

// ExpNeg is a purely attractive law whose potential rises from -Pot0
// at D0 towards zero with rate E.
type ExpNeg struct {
	Pot0 float64
	D0   float64
	E    float64
}

func (x ExpNeg) Force(d float64) float64 {
	return -x.E * x.Pot0 * math.Exp(-x.E*(d-x.D0))
}

func (x ExpNeg) Potential(d float64) float64 {
	return x.Pot0 - x.Pot0*math.Exp(-x.E*(d-x.D0))
}
