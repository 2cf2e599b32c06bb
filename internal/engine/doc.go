// Package engine is the numerical core of cellsim: pairwise geometry,
// force aggregation, and the noise-perturbed explicit-Euler timestep
// that together evolve an ensemble of cells around a growing cavity.
//
// The fundamental pieces are:
//
//   - [Ensemble]: ordered particle collection; index i refers to the
//     same logical particle for the whole trajectory
//   - [Term]: a force law bound to a class of particle pairs
//   - [Schedule]: the externally supplied cavity growth schedule
//   - [Timestep]: one position update for the whole ensemble
//   - [Runner]: the stepping loop producing a [Result] trajectory
//
// # Stability
//
// The integrator is a plain explicit Euler scheme with no step-size
// adaptation. Dt must be small relative to the stiffest force constant
// in play; a too-large Dt shows up as a [StepError] wrapping
// [ErrNonFinite], which is a configuration error, not a transient
// condition.
//
// # Determinism
//
// All randomness flows through the *rand.Rand passed down the call
// chain. Two runs with identical parameters and seed produce
// bit-identical trajectories.
package engine
