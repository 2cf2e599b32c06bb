package metrics

import (
	"math"

	"github.com/san-kum/cellsim/internal/engine"
)

// MeanSpacing measures the mean nearest-neighbour distance among cells
// (the cavity is excluded). A crude but effective compaction readout:
// it drops where the expanding cavity crowds cells together.
type MeanSpacing struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpacing() *MeanSpacing {
	return &MeanSpacing{name: "mean_spacing"}
}

func (m *MeanSpacing) Name() string { return m.name }

func (m *MeanSpacing) Observe(ens engine.Ensemble, radius, t float64) {
	total := 0.0
	cells := 0
	for i, p := range ens {
		if p.Kind == engine.Cavity {
			continue
		}
		nearest := math.Inf(1)
		for j, q := range ens {
			if i == j || q.Kind == engine.Cavity {
				continue
			}
			d := math.Hypot(p.X-q.X, p.Y-q.Y)
			if d < nearest {
				nearest = d
			}
		}
		if !math.IsInf(nearest, 1) {
			total += nearest
			cells++
		}
	}
	if cells > 0 {
		m.sum += total / float64(cells)
		m.samples++
	}
}

func (m *MeanSpacing) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpacing) Reset() {
	m.sum = 0
	m.samples = 0
}

// Defaults is the metric set registered by the CLI for ordinary runs.
func Defaults() []engine.Metric {
	return []engine.Metric{
		NewRadialDensity(0, 5),
		NewCavityOverlap(),
		NewMeanSpacing(),
	}
}
