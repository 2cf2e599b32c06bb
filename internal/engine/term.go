package engine

import "github.com/san-kum/cellsim/internal/forcefield"

// ForceFunc maps a pair distance and the current cavity resting radius
// to a signed scalar force magnitude. Positive is repulsive. Laws that
// do not involve the cavity ignore the radius argument.
type ForceFunc func(dist, radius float64) float64

// PairClass selects which particle pairs a term acts on.
type PairClass int

const (
	// CellCell pairs two cells (Free or Fixed), never the cavity.
	CellCell PairClass = iota
	// CavityCell pairs the cavity with a cell.
	CavityCell
)

// Term binds one force law to a class of particle pairs, with optional
// interaction range, pair mask, and per-pair force noise. This mirrors
// the force-term tuple of the original model.
type Term struct {
	Name  string
	Pairs PairClass
	Force ForceFunc

	// Force is zeroed for distances below MinRange or above MaxRange.
	// MaxRange <= 0 means no upper cutoff.
	MinRange float64
	MaxRange float64

	// Mask, when non-nil, restricts the term to pairs for which it
	// returns true. Indices are ensemble positions.
	Mask func(i, j int) bool

	// NoiseStdev adds clipped Gaussian noise to each pair force before
	// projection; 0 disables. NoiseBound clips to [-bound, bound];
	// 0 leaves the distribution unbounded.
	NoiseStdev float64
	NoiseBound float64
}

// selects reports whether the term acts on the (i, j) pair given the
// particle kinds. Self pairs are excluded by the aggregator.
func (t Term) selects(ens Ensemble, i, j int) bool {
	ci := ens[i].Kind == Cavity
	cj := ens[j].Kind == Cavity
	switch t.Pairs {
	case CellCell:
		return !ci && !cj
	case CavityCell:
		return ci != cj
	}
	return false
}

// NewCellTerm builds the standard cell-cell term from an anharmonic
// law with a hard interaction cutoff at maxRange.
func NewCellTerm(law forcefield.Anharmonic, maxRange float64) Term {
	return Term{
		Name:     "cell-cell",
		Pairs:    CellCell,
		Force:    func(d, _ float64) float64 { return law.Force(d) },
		MaxRange: maxRange,
	}
}

// NewCavityTerm builds the cavity-cell term. The law reads the current
// resting radius at every evaluation, so it tracks the growth schedule
// with no extra plumbing.
func NewCavityTerm(law forcefield.CavityHooke) Term {
	return Term{
		Name:  "cavity-cell",
		Pairs: CavityCell,
		Force: law.Force,
	}
}
