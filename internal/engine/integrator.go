package engine

import (
	"fmt"
	"math/rand"
)

// Timestep advances the ensemble by one explicit-Euler step:
//
//	p' = p + dt * (netforce(p) + noise)
//
// for every Free particle. Fixed and Cavity particles keep their
// positions regardless of computed force and noise. The input ensemble
// is not mutated; either a complete new snapshot is returned or an
// error, never a partial update.
//
// Noise is an independent Gaussian 2D perturbation per particle,
// scaled by the noise amplitude and drawn from rng in ensemble order
// (including non-moving particles, so the stream does not depend on
// which particles happen to be fixed).
func Timestep(ens Ensemble, terms []Term, radius, dt, noise float64, rng *rand.Rand) (Ensemble, error) {
	if err := validateStep(ens, radius, dt, noise, rng); err != nil {
		return nil, err
	}

	geo := NewPairwise(ens.Positions())
	fx, fy := Aggregate(ens, geo, terms, radius, rng)

	next := ens.Clone()
	for i := range next {
		var nx, ny float64
		if noise > 0 {
			nx = rng.NormFloat64() * noise
			ny = rng.NormFloat64() * noise
		}
		if next[i].Kind != Free {
			continue
		}
		next[i].X += dt * (fx[i] + nx)
		next[i].Y += dt * (fy[i] + ny)
		if !finite(next[i].X) || !finite(next[i].Y) {
			return nil, &StepError{Step: -1, Particle: next[i].ID, Err: ErrNonFinite}
		}
	}
	return next, nil
}

func validateStep(ens Ensemble, radius, dt, noise float64, rng *rand.Rand) error {
	if err := ens.Validate(); err != nil {
		return err
	}
	if dt <= 0 {
		return fmt.Errorf("engine: dt must be positive, got %g", dt)
	}
	if radius < 0 {
		return fmt.Errorf("%w: %g", ErrNegativeRadius, radius)
	}
	if noise < 0 {
		return fmt.Errorf("engine: noise amplitude must be non-negative, got %g", noise)
	}
	if noise > 0 && rng == nil {
		return ErrNoSource
	}
	return nil
}
