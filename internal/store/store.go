// Package store persists simulation runs on disk. Each run gets its
// own directory under the base path with a metadata.json and a wide
// trajectory.csv (one row per snapshot, one x/y column pair per
// particle).
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/cellsim/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored run. Kinds records the particle kind
// at each ensemble index so trajectories can be rebuilt into full
// ensembles on load.
type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Noise     float64            `json:"noise"`
	Particles int                `json:"particles"`
	Kinds     []engine.Kind      `json:"kinds"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(name string, cfg engine.Config, result *engine.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Steps:     result.StepsTaken,
		Noise:     cfg.Noise,
		Metrics:   result.Metrics,
	}
	if len(result.Snapshots) > 0 {
		first := result.Snapshots[0]
		meta.Particles = len(first)
		meta.Kinds = make([]engine.Kind, len(first))
		for i, p := range first {
			meta.Kinds[i] = p.Kind
		}
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrajectoryCSV(csvFile, result); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteTrajectoryCSV writes snapshots in wide form: step, time,
// radius, then an x/y pair per particle.
func WriteTrajectoryCSV(out io.Writer, result *engine.Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if len(result.Snapshots) == 0 {
		return nil
	}

	header := []string{"step", "time", "radius"}
	for i := range result.Snapshots[0] {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, snap := range result.Snapshots {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Radii[i], 'f', 6, 64),
		}
		for _, p := range snap {
			row = append(row,
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory rebuilds the stored snapshots using the particle
// kinds recorded in the metadata.
func (s *Store) LoadTrajectory(runID string) ([]engine.Ensemble, []float64, []float64, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return nil, nil, nil, nil
	}

	snaps := make([]engine.Ensemble, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)
	radii := make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 3+2*meta.Particles {
			return nil, nil, nil, fmt.Errorf("store: short trajectory row in %s", runID)
		}
		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, nil, err
		}
		radius, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, nil, nil, err
		}

		ens := make(engine.Ensemble, meta.Particles)
		for i := 0; i < meta.Particles; i++ {
			x, err := strconv.ParseFloat(record[3+2*i], 64)
			if err != nil {
				return nil, nil, nil, err
			}
			y, err := strconv.ParseFloat(record[4+2*i], 64)
			if err != nil {
				return nil, nil, nil, err
			}
			ens[i] = engine.Particle{ID: i, X: x, Y: y, Kind: meta.Kinds[i]}
		}

		snaps = append(snaps, ens)
		times = append(times, t)
		radii = append(radii, radius)
	}
	return snaps, times, radii, nil
}
