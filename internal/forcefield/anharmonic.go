package forcefield

import "math"

// ContactForce is the repulsion returned for exactly coincident
// particles, where the power law diverges. Large enough to separate
// any sane configuration in one step, finite so the caller sees a
// diverging trajectory rather than a NaN.
const ContactForce = 1e12

// Anharmonic is the cell-cell interaction law: steeply repulsive below
// the rest distance, weakly attractive above it.
//
//	E(d) = Depth * [(D0/d)^E1 - M*(D0/d)^E2]
//	F(d) = (Depth/d) * [E1*(D0/d)^E1 - M*E2*(D0/d)^E2]
//
// With the canonical M=2, E1=4, E2=2 the force crosses zero exactly at
// D0 and the potential has its minimum there. For other parameter
// values the zero crossing sits at D0 only when E1 = M*E2.
type Anharmonic struct {
	Depth float64 // well depth, > 0
	D0    float64 // rest distance
	M     float64
	E1    float64
	E2    float64
}

// NewAnharmonic returns the law with the canonical exponents M=2,
// E1=4, E2=2.
func NewAnharmonic(depth, d0 float64) Anharmonic {
	return Anharmonic{Depth: depth, D0: d0, M: 2, E1: 4, E2: 2}
}

// Force returns the signed force magnitude at distance d. Positive is
// repulsive. Total for d >= 0: coincident particles get ContactForce.
func (a Anharmonic) Force(d float64) float64 {
	if d <= 0 {
		return ContactForce
	}
	r := a.D0 / d
	return a.Depth / d * (a.E1*math.Pow(r, a.E1) - a.M*a.E2*math.Pow(r, a.E2))
}

// Potential returns the potential energy at distance d. Matches the
// original definition, which pins E(0) to zero.
func (a Anharmonic) Potential(d float64) float64 {
	if d <= 0 {
		return 0
	}
	r := a.D0 / d
	return a.Depth * (math.Pow(r, a.E1) - a.M*math.Pow(r, a.E2))
}
