package engine

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Kind classifies a particle's role in the tissue.
type Kind int

const (
	// Free is an interior cell moved by the force field every step.
	Free Kind = iota
	// Fixed is a membrane particle; its position never changes.
	Fixed
	// Cavity is the central body. Its position is pinned like Fixed,
	// but its resting radius grows over the run per the Schedule.
	Cavity
)

func (k Kind) String() string {
	switch k {
	case Free:
		return "free"
	case Fixed:
		return "fixed"
	case Cavity:
		return "cavity"
	}
	return "unknown"
}

// Particle is one cell (or the cavity body) in the sheet.
type Particle struct {
	ID   int
	X, Y float64
	Kind Kind
}

// Ensemble is the ordered particle collection. The particle count is
// constant over a run and index i always refers to the same logical
// particle.
type Ensemble []Particle

func (e Ensemble) Clone() Ensemble {
	c := make(Ensemble, len(e))
	copy(c, e)
	return c
}

// Positions packs the coordinates into an n x 2 dense matrix for the
// pairwise geometry. Returns nil for an empty ensemble.
func (e Ensemble) Positions() *mat.Dense {
	if len(e) == 0 {
		return nil
	}
	data := make([]float64, 2*len(e))
	for i, p := range e {
		data[2*i] = p.X
		data[2*i+1] = p.Y
	}
	return mat.NewDense(len(e), 2, data)
}

// CavityIndex returns the index of the cavity particle, or -1 if the
// ensemble has none.
func (e Ensemble) CavityIndex() int {
	for i, p := range e {
		if p.Kind == Cavity {
			return i
		}
	}
	return -1
}

// FreeCount returns the number of particles moved by the integrator.
func (e Ensemble) FreeCount() int {
	n := 0
	for _, p := range e {
		if p.Kind == Free {
			n++
		}
	}
	return n
}

// IsFinite reports whether every coordinate is a normal float.
func (e Ensemble) IsFinite() bool {
	for _, p := range e {
		if !finite(p.X) || !finite(p.Y) {
			return false
		}
	}
	return true
}

// Validate rejects malformed ensembles before they reach the force
// evaluation: empty collections, unknown kinds, non-finite positions.
func (e Ensemble) Validate() error {
	if len(e) == 0 {
		return ErrEmptyEnsemble
	}
	for _, p := range e {
		if p.Kind < Free || p.Kind > Cavity {
			return &StepError{Step: -1, Particle: p.ID, Err: ErrUnknownKind}
		}
		if !finite(p.X) || !finite(p.Y) {
			return &StepError{Step: -1, Particle: p.ID, Err: ErrNonFinite}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Config holds the per-run integration parameters. Passed by value;
// the engine never mutates it.
type Config struct {
	Dt    float64 // timestep size
	Steps int     // number of timesteps
	Noise float64 // per-particle Gaussian noise amplitude
	Seed  int64   // RNG seed; same seed, same trajectory
}

func DefaultConfig() Config {
	return Config{
		Dt:    0.01,
		Steps: 1000,
		Noise: 0,
		Seed:  1,
	}
}

// Result is the trajectory of one run. Snapshots[0] is the initial
// ensemble; Radii[k] is the cavity resting radius in effect when
// Snapshots[k] was produced.
type Result struct {
	Snapshots  []Ensemble
	Times      []float64
	Radii      []float64
	Metrics    map[string]float64
	StepsTaken int
}
