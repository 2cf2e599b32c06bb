package engine

// Schedule maps a step index and simulation time to the cavity's
// resting radius for that step. It is read-only input to the force
// aggregation; the engine never computes growth itself.
type Schedule func(step int, t float64) float64

// ConstantRadius keeps the cavity at a fixed resting radius. Use 0 for
// runs without a cavity term.
func ConstantRadius(r float64) Schedule {
	return func(int, float64) float64 { return r }
}

// LinearGrowth grows the radius as r0 + rate*t, clamped to rMax when
// rMax is positive.
func LinearGrowth(r0, rate, rMax float64) Schedule {
	return func(_ int, t float64) float64 {
		r := r0 + rate*t
		if rMax > 0 && r > rMax {
			return rMax
		}
		return r
	}
}

// RampGrowth interpolates linearly from r0 to r1 over the given number
// of steps and holds r1 afterwards.
func RampGrowth(r0, r1 float64, steps int) Schedule {
	return func(step int, _ float64) float64 {
		if steps <= 0 || step >= steps {
			return r1
		}
		return r0 + (r1-r0)*float64(step)/float64(steps)
	}
}

// TableGrowth reads the radius for step i from a precomputed table,
// holding the last entry once the table is exhausted. An empty table
// yields radius 0.
func TableGrowth(radii []float64) Schedule {
	return func(step int, _ float64) float64 {
		if len(radii) == 0 {
			return 0
		}
		if step >= len(radii) {
			return radii[len(radii)-1]
		}
		if step < 0 {
			return radii[0]
		}
		return radii[step]
	}
}
