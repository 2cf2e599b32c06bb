package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
)

// Metric observes the ensemble once per step and reduces the run to a
// single number.
type Metric interface {
	Name() string
	Observe(ens Ensemble, radius, t float64)
	Value() float64
	Reset()
}

// Observer receives every step for side channels (live views,
// recording). Observers must not mutate the ensemble.
type Observer interface {
	OnStep(ens Ensemble, radius float64, step int, t float64)
}

// Runner owns the stepping loop for one force configuration. It is not
// safe for concurrent use; parallel runs each get their own Runner
// (see the sweep package).
type Runner struct {
	terms     []Term
	schedule  Schedule
	metrics   []Metric
	observers []Observer
}

func New(terms []Term, schedule Schedule) *Runner {
	if schedule == nil {
		schedule = ConstantRadius(0)
	}
	return &Runner{
		terms:    terms,
		schedule: schedule,
		metrics:  make([]Metric, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run executes cfg.Steps timesteps from the given initial ensemble and
// returns the full snapshot trajectory. Configuration problems fail
// before the first step; numerical instability aborts mid-run with a
// StepError naming the step and particle. With Steps == 0 the result
// holds exactly the initial ensemble.
func (r *Runner) Run(ctx context.Context, ens Ensemble, cfg Config) (*Result, error) {
	if err := r.validate(ens, cfg); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Snapshots: make([]Ensemble, 0, cfg.Steps+1),
		Times:     make([]float64, 0, cfg.Steps+1),
		Radii:     make([]float64, 0, cfg.Steps+1),
		Metrics:   make(map[string]float64),
	}

	cur := ens.Clone()
	t := 0.0
	radius := r.schedule(0, 0)

	result.Snapshots = append(result.Snapshots, cur.Clone())
	result.Times = append(result.Times, t)
	result.Radii = append(result.Radii, radius)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		// The schedule advances the resting radius before the forces
		// for this step are evaluated.
		radius = r.schedule(i, t)

		for _, m := range r.metrics {
			m.Observe(cur, radius, t)
		}
		for _, o := range r.observers {
			o.OnStep(cur, radius, i, t)
		}

		next, err := Timestep(cur, r.terms, radius, cfg.Dt, cfg.Noise, rng)
		if err != nil {
			var serr *StepError
			if errors.As(err, &serr) {
				serr.Step = i
			}
			return result, err
		}

		cur = next
		t += cfg.Dt
		result.StepsTaken++

		result.Snapshots = append(result.Snapshots, cur)
		result.Times = append(result.Times, t)
		result.Radii = append(result.Radii, radius)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (r *Runner) validate(ens Ensemble, cfg Config) error {
	if err := ens.Validate(); err != nil {
		return err
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("engine: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Steps < 0 {
		return fmt.Errorf("engine: steps must be non-negative, got %d", cfg.Steps)
	}
	if cfg.Noise < 0 {
		return fmt.Errorf("engine: noise amplitude must be non-negative, got %g", cfg.Noise)
	}
	if r0 := r.schedule(0, 0); r0 < 0 {
		return fmt.Errorf("%w: schedule starts at %g", ErrNegativeRadius, r0)
	}
	return nil
}
