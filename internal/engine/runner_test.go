package engine_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/forcefield"
)

func ringEnsemble() engine.Ensemble {
	return engine.Ensemble{
		{ID: 0, X: 0, Y: 0, Kind: engine.Cavity},
		{ID: 1, X: 1.5, Y: 0, Kind: engine.Free},
		{ID: 2, X: -1.5, Y: 0, Kind: engine.Free},
		{ID: 3, X: 0, Y: 1.5, Kind: engine.Free},
		{ID: 4, X: 0, Y: -1.5, Kind: engine.Free},
		{ID: 5, X: 3, Y: 0, Kind: engine.Fixed},
		{ID: 6, X: -3, Y: 0, Kind: engine.Fixed},
		{ID: 7, X: 0, Y: 3, Kind: engine.Fixed},
		{ID: 8, X: 0, Y: -3, Kind: engine.Fixed},
	}
}

func standardTerms() []engine.Term {
	return []engine.Term{
		engine.NewCellTerm(forcefield.NewAnharmonic(0.5, 1.2), 3.0),
		engine.NewCavityTerm(forcefield.CavityHooke{K: 2.0}),
	}
}

var _ = Describe("Runner", func() {
	var (
		ens   engine.Ensemble
		terms []engine.Term
		cfg   engine.Config
	)

	BeforeEach(func() {
		ens = ringEnsemble()
		terms = standardTerms()
		cfg = engine.Config{Dt: 0.005, Steps: 100, Noise: 0.05, Seed: 42}
	})

	It("produces one snapshot per step plus the initial one", func() {
		r := engine.New(terms, engine.LinearGrowth(0.5, 1.0, 2.0))
		result, err := r.Run(context.Background(), ens, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Snapshots).To(HaveLen(cfg.Steps + 1))
		Expect(result.Times).To(HaveLen(cfg.Steps + 1))
		Expect(result.Radii).To(HaveLen(cfg.Steps + 1))
		Expect(result.StepsTaken).To(Equal(cfg.Steps))
	})

	It("keeps the particle count constant across the trajectory", func() {
		r := engine.New(terms, engine.ConstantRadius(1.0))
		result, err := r.Run(context.Background(), ens, cfg)

		Expect(err).NotTo(HaveOccurred())
		for _, snap := range result.Snapshots {
			Expect(snap).To(HaveLen(len(ens)))
		}
	})

	It("never moves membrane or cavity particles", func() {
		r := engine.New(terms, engine.LinearGrowth(0.5, 2.0, 0))
		result, err := r.Run(context.Background(), ens, cfg)

		Expect(err).NotTo(HaveOccurred())
		last := result.Snapshots[len(result.Snapshots)-1]
		for i, p := range ens {
			if p.Kind == engine.Free {
				continue
			}
			Expect(last[i].X).To(Equal(p.X), "particle %d x", p.ID)
			Expect(last[i].Y).To(Equal(p.Y), "particle %d y", p.ID)
		}
	})

	It("is bit-identical for the same seed", func() {
		a, err := engine.New(terms, engine.ConstantRadius(1.0)).Run(context.Background(), ens, cfg)
		Expect(err).NotTo(HaveOccurred())

		b, err := engine.New(standardTerms(), engine.ConstantRadius(1.0)).Run(context.Background(), ringEnsemble(), cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Snapshots).To(Equal(a.Snapshots))
	})

	It("diverges for a different seed", func() {
		a, err := engine.New(terms, engine.ConstantRadius(1.0)).Run(context.Background(), ens, cfg)
		Expect(err).NotTo(HaveOccurred())

		other := cfg
		other.Seed = cfg.Seed + 1
		b, err := engine.New(standardTerms(), engine.ConstantRadius(1.0)).Run(context.Background(), ringEnsemble(), other)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Snapshots).NotTo(Equal(a.Snapshots))
	})

	It("returns exactly the initial ensemble for zero steps", func() {
		cfg.Steps = 0
		r := engine.New(terms, engine.ConstantRadius(1.0))
		result, err := r.Run(context.Background(), ens, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Snapshots).To(HaveLen(1))
		Expect(result.Snapshots[0]).To(Equal(ens))
	})

	It("advances the cavity radius along the schedule", func() {
		r := engine.New(terms, engine.RampGrowth(0.5, 2.0, cfg.Steps))
		result, err := r.Run(context.Background(), ens, cfg)

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Radii[1]).To(Equal(0.5))
		last := result.Radii[len(result.Radii)-1]
		Expect(last).To(BeNumerically(">", result.Radii[1]))
		Expect(last).To(BeNumerically("<=", 2.0))
	})

	It("fails fast on invalid configuration", func() {
		r := engine.New(terms, engine.ConstantRadius(1.0))

		_, err := r.Run(context.Background(), ens, engine.Config{Dt: 0, Steps: 10})
		Expect(err).To(HaveOccurred())

		_, err = r.Run(context.Background(), ens, engine.Config{Dt: 0.01, Steps: -1})
		Expect(err).To(HaveOccurred())

		_, err = r.Run(context.Background(), engine.Ensemble{}, engine.DefaultConfig())
		Expect(err).To(MatchError(engine.ErrEmptyEnsemble))

		_, err = engine.New(terms, engine.ConstantRadius(-1)).Run(context.Background(), ens, engine.DefaultConfig())
		Expect(err).To(MatchError(engine.ErrNegativeRadius))
	})

	It("surfaces instability with the step index and particle id", func() {
		// Overlapping stiff pair with a huge dt blows up immediately.
		bad := engine.Ensemble{
			{ID: 0, X: 0, Y: 0, Kind: engine.Fixed},
			{ID: 1, X: 1e-9, Y: 0, Kind: engine.Free},
		}
		hot := []engine.Term{engine.NewCellTerm(forcefield.NewAnharmonic(1.0, 1.0), 0)}

		r := engine.New(hot, engine.ConstantRadius(0))
		result, err := r.Run(context.Background(), bad, engine.Config{Dt: 1e308, Steps: 10})

		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, engine.ErrNonFinite)).To(BeTrue())

		var serr *engine.StepError
		Expect(errors.As(err, &serr)).To(BeTrue())
		Expect(serr.Step).To(BeNumerically(">=", 0))
		Expect(serr.Particle).To(Equal(1))

		// The partial trajectory up to the failure is still returned.
		Expect(len(result.Snapshots)).To(BeNumerically(">=", 1))
	})

	It("stops between steps when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r := engine.New(terms, engine.ConstantRadius(1.0))
		result, err := r.Run(ctx, ens, cfg)

		Expect(err).To(MatchError(context.Canceled))
		Expect(result.Snapshots).To(HaveLen(1))
	})
})

var _ = Describe("Schedule", func() {
	It("clamps linear growth at the maximum", func() {
		s := engine.LinearGrowth(1.0, 2.0, 3.0)
		Expect(s(0, 0)).To(Equal(1.0))
		Expect(s(0, 0.5)).To(Equal(2.0))
		Expect(s(0, 100)).To(Equal(3.0))
	})

	It("holds the last table entry", func() {
		s := engine.TableGrowth([]float64{1, 2, 3})
		Expect(s(0, 0)).To(Equal(1.0))
		Expect(s(2, 0)).To(Equal(3.0))
		Expect(s(99, 0)).To(Equal(3.0))
	})

	It("treats an empty table as no cavity", func() {
		s := engine.TableGrowth(nil)
		Expect(s(5, 0)).To(Equal(0.0))
	})

	It("ramps over the configured step count", func() {
		s := engine.RampGrowth(0, 10, 10)
		Expect(s(0, 0)).To(Equal(0.0))
		Expect(s(5, 0)).To(Equal(5.0))
		Expect(s(10, 0)).To(Equal(10.0))
		Expect(s(50, 0)).To(Equal(10.0))
	})
})
