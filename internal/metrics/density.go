// Package metrics provides run observables for the cavity expansion
// model: cell densities and spacings around the growing cavity. Every
// type implements [engine.Metric] and reports a mean over the run.
package metrics

import (
	"math"

	"github.com/san-kum/cellsim/internal/engine"
)

// RadialDensity measures the area density of free cells inside an
// annulus centered on the cavity.
type RadialDensity struct {
	name       string
	rMin, rMax float64
	sum        float64
	samples    int
}

func NewRadialDensity(rMin, rMax float64) *RadialDensity {
	return &RadialDensity{
		name: "radial_density",
		rMin: rMin,
		rMax: rMax,
	}
}

func (m *RadialDensity) Name() string { return m.name }

func (m *RadialDensity) Observe(ens engine.Ensemble, radius, t float64) {
	cx, cy := center(ens)
	count := 0
	for _, p := range ens {
		if p.Kind != engine.Free {
			continue
		}
		r := math.Hypot(p.X-cx, p.Y-cy)
		if r >= m.rMin && r < m.rMax {
			count++
		}
	}
	area := math.Pi * (m.rMax*m.rMax - m.rMin*m.rMin)
	if area > 0 {
		m.sum += float64(count) / area
		m.samples++
	}
}

func (m *RadialDensity) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *RadialDensity) Reset() {
	m.sum = 0
	m.samples = 0
}

// CavityOverlap counts free cells sitting inside the cavity's current
// resting radius. Falls towards zero as the expansion clears the lumen.
type CavityOverlap struct {
	name    string
	sum     float64
	samples int
}

func NewCavityOverlap() *CavityOverlap {
	return &CavityOverlap{name: "cavity_overlap"}
}

func (m *CavityOverlap) Name() string { return m.name }

func (m *CavityOverlap) Observe(ens engine.Ensemble, radius, t float64) {
	cx, cy := center(ens)
	count := 0
	for _, p := range ens {
		if p.Kind != engine.Free {
			continue
		}
		if math.Hypot(p.X-cx, p.Y-cy) < radius {
			count++
		}
	}
	m.sum += float64(count)
	m.samples++
}

func (m *CavityOverlap) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *CavityOverlap) Reset() {
	m.sum = 0
	m.samples = 0
}

// center returns the cavity position, or the origin when the ensemble
// carries no cavity particle.
func center(ens engine.Ensemble) (float64, float64) {
	if i := ens.CavityIndex(); i >= 0 {
		return ens[i].X, ens[i].Y
	}
	return 0, 0
}
