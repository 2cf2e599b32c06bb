// Package layout builds initial particle configurations for the
// engine: a circular band of uniformly spaced cells around a central
// cavity, enclosed by a fixed membrane ring.
package layout

import (
	"fmt"
	"math"

	"github.com/san-kum/cellsim/internal/engine"
)

// Params describes the circular-band arrangement.
type Params struct {
	CenterX, CenterY float64
	InnerRadius      float64 // radius of the innermost cell ring
	OuterRadius      float64 // radius of the membrane ring
	Spacing          float64 // target spacing between neighbouring cells
}

func DefaultParams() Params {
	return Params{
		InnerRadius: 2.0,
		OuterRadius: 10.0,
		Spacing:     1.0,
	}
}

// Band produces the initial ensemble: one Cavity particle at the
// center, concentric rings of Free cells spaced Spacing apart, and the
// outermost ring flagged Fixed (the membrane). Alternate rings are
// rotated by half a cell to avoid radial alignment artifacts.
func Band(p Params) (engine.Ensemble, error) {
	if p.Spacing <= 0 {
		return nil, fmt.Errorf("layout: spacing must be positive, got %g", p.Spacing)
	}
	if p.InnerRadius <= 0 {
		return nil, fmt.Errorf("layout: inner radius must be positive, got %g", p.InnerRadius)
	}
	if p.OuterRadius < p.InnerRadius {
		return nil, fmt.Errorf("layout: outer radius %g below inner radius %g", p.OuterRadius, p.InnerRadius)
	}

	ens := engine.Ensemble{{ID: 0, X: p.CenterX, Y: p.CenterY, Kind: engine.Cavity}}

	var radii []float64
	for r := p.InnerRadius; r <= p.OuterRadius+1e-9; r += p.Spacing {
		radii = append(radii, r)
	}

	for ri, r := range radii {
		kind := engine.Free
		if ri == len(radii)-1 {
			kind = engine.Fixed
		}

		n := int(math.Round(2 * math.Pi * r / p.Spacing))
		if n < 1 {
			n = 1
		}
		offset := 0.0
		if ri%2 == 1 {
			offset = math.Pi / float64(n)
		}

		for k := 0; k < n; k++ {
			th := offset + 2*math.Pi*float64(k)/float64(n)
			ens = append(ens, engine.Particle{
				ID:   len(ens),
				X:    p.CenterX + r*math.Cos(th),
				Y:    p.CenterY + r*math.Sin(th),
				Kind: kind,
			})
		}
	}
	return ens, nil
}
