package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cellsim/internal/engine"
)

// ExportData is the JSON export shape: run parameters, the full
// trajectory as per-snapshot x/y pairs, and the metric summary.
type ExportData struct {
	Name      string             `json:"name"`
	Dt        float64            `json:"dt"`
	Noise     float64            `json:"noise"`
	Seed      int64              `json:"seed"`
	Steps     int                `json:"steps"`
	Kinds     []engine.Kind      `json:"kinds"`
	Times     []float64          `json:"times"`
	Radii     []float64          `json:"radii"`
	Positions [][][2]float64     `json:"positions"`
	Metrics   map[string]float64 `json:"metrics"`
}

func buildExport(name string, cfg engine.Config, result *engine.Result) ExportData {
	data := ExportData{
		Name:      name,
		Dt:        cfg.Dt,
		Noise:     cfg.Noise,
		Seed:      cfg.Seed,
		Steps:     result.StepsTaken,
		Times:     result.Times,
		Radii:     result.Radii,
		Positions: make([][][2]float64, len(result.Snapshots)),
		Metrics:   result.Metrics,
	}
	if len(result.Snapshots) > 0 {
		data.Kinds = make([]engine.Kind, len(result.Snapshots[0]))
		for i, p := range result.Snapshots[0] {
			data.Kinds[i] = p.Kind
		}
	}
	for i, snap := range result.Snapshots {
		pos := make([][2]float64, len(snap))
		for j, p := range snap {
			pos[j] = [2]float64{p.X, p.Y}
		}
		data.Positions[i] = pos
	}
	return data
}

func writeExport(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path, name string, cfg engine.Config, result *engine.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, buildExport(name, cfg, result))
}

func ExportJSONStdout(name string, cfg engine.Config, result *engine.Result) error {
	return writeExport(os.Stdout, buildExport(name, cfg, result))
}
