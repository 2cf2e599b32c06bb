package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cellsim/internal/engine"
)

func testResult() *engine.Result {
	snap := engine.Ensemble{
		{ID: 0, X: 0, Y: 0, Kind: engine.Cavity},
		{ID: 1, X: 1, Y: 0, Kind: engine.Free},
		{ID: 2, X: 0, Y: 2, Kind: engine.Fixed},
	}
	moved := snap.Clone()
	moved[1].X = 1.25

	return &engine.Result{
		Snapshots:  []engine.Ensemble{snap, moved},
		Times:      []float64{0, 0.01},
		Radii:      []float64{0.5, 0.51},
		Metrics:    map[string]float64{"cavity_overlap": 1.5},
		StepsTaken: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := engine.Config{Dt: 0.01, Steps: 1, Noise: 0.05, Seed: 42}
	runID, err := st.Save("baseline", cfg, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "baseline" {
		t.Errorf("expected name 'baseline', got %q", meta.Name)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Particles != 3 {
		t.Errorf("expected 3 particles, got %d", meta.Particles)
	}
	if meta.Metrics["cavity_overlap"] != 1.5 {
		t.Errorf("expected cavity_overlap 1.5, got %f", meta.Metrics["cavity_overlap"])
	}

	want := []engine.Kind{engine.Cavity, engine.Free, engine.Fixed}
	for i, k := range meta.Kinds {
		if k != want[i] {
			t.Errorf("kind %d = %v, want %v", i, k, want[i])
		}
	}
}

func TestLoadTrajectory(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	result := testResult()
	runID, err := st.Save("baseline", engine.DefaultConfig(), result)
	if err != nil {
		t.Fatal(err)
	}

	snaps, times, radii, err := st.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(snaps) != 2 || len(times) != 2 || len(radii) != 2 {
		t.Fatalf("expected 2 rows, got %d/%d/%d", len(snaps), len(times), len(radii))
	}
	if radii[1] != 0.51 {
		t.Errorf("radius[1] = %g, want 0.51", radii[1])
	}
	if snaps[1][1].X != 1.25 {
		t.Errorf("x[1][1] = %g, want 1.25", snaps[1][1].X)
	}
	if snaps[0][2].Kind != engine.Fixed {
		t.Error("kinds not rebuilt from metadata")
	}
	for _, snap := range snaps {
		if err := snap.Validate(); err != nil {
			t.Errorf("loaded snapshot should validate: %v", err)
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("baseline", engine.DefaultConfig(), testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("baseline", engine.DefaultConfig(), testResult())
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"metadata.json", "trajectory.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	cfg := engine.Config{Dt: 0.01, Steps: 1, Seed: 7}

	if err := ExportJSON(path, "baseline", cfg, testResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var out ExportData
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("export not valid json: %v", err)
	}

	if out.Name != "baseline" || out.Seed != 7 {
		t.Errorf("unexpected export header: %+v", out)
	}
	if len(out.Positions) != 2 || len(out.Positions[0]) != 3 {
		t.Errorf("unexpected position shape: %d snapshots", len(out.Positions))
	}
	if out.Positions[1][1][0] != 1.25 {
		t.Errorf("position[1][1].x = %g, want 1.25", out.Positions[1][1][0])
	}
}
