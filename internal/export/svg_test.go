package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/cellsim/internal/engine"
)

func testEnsemble() engine.Ensemble {
	return engine.Ensemble{
		{ID: 0, X: 0, Y: 0, Kind: engine.Cavity},
		{ID: 1, X: 2, Y: 0, Kind: engine.Free},
		{ID: 2, X: 0, Y: 3, Kind: engine.Fixed},
	}
}

func TestSnapshotSVG(t *testing.T) {
	svg := SnapshotSVG(testEnsemble(), 1.0, 400, 400)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("unterminated svg")
	}
	for _, color := range []string{colorFree, colorFixed, colorCavity} {
		if !strings.Contains(svg, color) {
			t.Errorf("missing %s elements", color)
		}
	}
	// The cavity radius is drawn as a dashed outline.
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("missing cavity radius circle")
	}
}

func TestSnapshotSVGNoRadius(t *testing.T) {
	svg := SnapshotSVG(testEnsemble(), 0, 400, 400)
	if strings.Contains(svg, "stroke-dasharray") {
		t.Error("radius circle drawn for zero radius")
	}
}

func TestSnapshotSVGEmpty(t *testing.T) {
	if svg := SnapshotSVG(nil, 1.0, 400, 400); svg != "" {
		t.Error("expected empty string for empty ensemble")
	}
}

func TestWriteSnapshotSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.svg")
	if err := WriteSnapshotSVG(path, testEnsemble(), 1.0, 400, 400); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("file does not contain svg")
	}
}
