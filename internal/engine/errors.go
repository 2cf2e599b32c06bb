package engine

import (
	"errors"
	"fmt"
)

// Domain errors for the stepping loop.
var (
	// ErrEmptyEnsemble indicates a run or step on zero particles.
	ErrEmptyEnsemble = errors.New("engine: empty ensemble")

	// ErrUnknownKind indicates a particle whose kind is not one of
	// Free, Fixed, Cavity.
	ErrUnknownKind = errors.New("engine: particle with unknown kind")

	// ErrNonFinite indicates a NaN or Inf coordinate. Mid-run this is
	// numerical instability (Dt too large or degenerate spacing) and
	// aborts the run.
	ErrNonFinite = errors.New("engine: non-finite position (NaN or Inf)")

	// ErrNegativeRadius indicates a growth schedule that produced a
	// cavity radius below zero.
	ErrNegativeRadius = errors.New("engine: negative cavity radius")

	// ErrNoSource indicates noise was requested without a random source.
	ErrNoSource = errors.New("engine: noise requested with nil rng")
)

// StepError pins a failure to the step index and particle where it
// surfaced. Step is -1 when the failure happened outside the stepping
// loop (input validation).
type StepError struct {
	Step     int
	Particle int
	Err      error
}

func (e *StepError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("particle %d: %v", e.Particle, e.Err)
	}
	return fmt.Sprintf("step %d: particle %d: %v", e.Step, e.Particle, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
