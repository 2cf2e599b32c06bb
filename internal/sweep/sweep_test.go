package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/forcefield"
)

func testFactory() RunnerFactory {
	return func() (*engine.Runner, engine.Ensemble, error) {
		terms := []engine.Term{engine.NewCellTerm(forcefield.NewAnharmonic(1.0, 1.0), 3.0)}
		runner := engine.New(terms, engine.ConstantRadius(0))
		ens := engine.Ensemble{
			{ID: 0, X: 0, Y: 0, Kind: engine.Free},
			{ID: 1, X: 1.4, Y: 0, Kind: engine.Free},
			{ID: 2, X: 0.7, Y: 1.2, Kind: engine.Free},
		}
		return runner, ens, nil
	}
}

func TestReplicatesSeeds(t *testing.T) {
	cfg := engine.Config{Dt: 0.01, Steps: 50, Noise: 0.05}

	batch := NewReplicates(testFactory(), 4, 100)
	first, err := batch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 results, got %d", len(first))
	}

	// Same seedStart reproduces every run exactly.
	second, err := batch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		a := first[i].Snapshots[len(first[i].Snapshots)-1]
		b := second[i].Snapshots[len(second[i].Snapshots)-1]
		for j := range a {
			if a[j].X != b[j].X || a[j].Y != b[j].Y {
				t.Fatalf("run %d not reproducible at particle %d", i, j)
			}
		}
	}

	// Consecutive seeds give distinct trajectories under noise.
	a := first[0].Snapshots[len(first[0].Snapshots)-1]
	b := first[1].Snapshots[len(first[1].Snapshots)-1]
	same := true
	for j := range a {
		if a[j].X != b[j].X || a[j].Y != b[j].Y {
			same = false
		}
	}
	if same {
		t.Error("replicates with different seeds produced identical trajectories")
	}
}

func TestReplicatesFactoryError(t *testing.T) {
	wantErr := errors.New("bad setup")
	batch := NewReplicates(func() (*engine.Runner, engine.Ensemble, error) {
		return nil, nil, wantErr
	}, 2, 0)

	_, err := batch.Run(context.Background(), engine.DefaultConfig())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected factory error, got %v", err)
	}
}

func TestMeanMetric(t *testing.T) {
	results := []*engine.Result{
		{Metrics: map[string]float64{"m": 2}},
		{Metrics: map[string]float64{"m": 4}},
		{Metrics: map[string]float64{}},
	}
	if got := MeanMetric(results, "m"); got != 3 {
		t.Errorf("mean = %g, want 3", got)
	}
	if got := MeanMetric(results, "missing"); got != 0 {
		t.Errorf("missing metric mean = %g, want 0", got)
	}
}

func TestGridSearch(t *testing.T) {
	g := NewGrid(
		[]string{"a", "b"},
		[][]float64{{-1, 0, 1, 2}, {1, 3, 5}},
	)

	// Minimum of (a-1)^2 + (b-3)^2 over the grid is at a=1, b=3.
	obj := func(ctx context.Context, p map[string]float64) (float64, error) {
		return math.Pow(p["a"]-1, 2) + math.Pow(p["b"]-3, 2), nil
	}

	params, best, err := g.Search(context.Background(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if best != 0 {
		t.Errorf("best = %g, want 0", best)
	}
	if params["a"] != 1 || params["b"] != 3 {
		t.Errorf("params = %v, want a=1 b=3", params)
	}
}

func TestGridSearchSkipsFailures(t *testing.T) {
	g := NewGrid([]string{"a"}, [][]float64{{1, 2, 3}})

	obj := func(ctx context.Context, p map[string]float64) (float64, error) {
		if p["a"] == 1 {
			return 0, errors.New("unstable")
		}
		return p["a"], nil
	}

	params, best, err := g.Search(context.Background(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if best != 2 || params["a"] != 2 {
		t.Errorf("best = %g at a=%g, want 2 at a=2", best, params["a"])
	}
}

func TestGridSearchCanceled(t *testing.T) {
	g := NewGrid([]string{"a"}, [][]float64{{1, 2}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := g.Search(ctx, func(ctx context.Context, p map[string]float64) (float64, error) {
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
