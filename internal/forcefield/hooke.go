package forcefield

// Hooke is a plain two-sided spring: repulsive when compressed below
// the rest distance, attractive when stretched beyond it.
type Hooke struct {
	K  float64 // spring constant
	D0 float64 // rest distance
}

func (h Hooke) Force(d float64) float64 {
	return h.K * (h.D0 - d)
}

func (h Hooke) Potential(d float64) float64 {
	x := d - h.D0
	return 0.5 * h.K * x * x
}

// CavityHooke is the one-sided cavity-cell law: a linear repulsion
// active only while a cell sits inside the cavity's resting radius.
// It never attracts, so cells outside the cavity feel nothing. The
// radius is supplied per evaluation because it grows over the run.
type CavityHooke struct {
	K float64 // stiffness
}

func (c CavityHooke) Force(d, radius float64) float64 {
	if d >= radius {
		return 0
	}
	return c.K * (radius - d)
}

func (c CavityHooke) Potential(d, radius float64) float64 {
	if d >= radius {
		return 0
	}
	x := radius - d
	return 0.5 * c.K * x * x
}
