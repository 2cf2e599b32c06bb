// Package export renders ensemble snapshots to SVG.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/cellsim/internal/engine"
)

const (
	colorBackground = "#0a0a0a"
	colorFree       = "#00ff00"
	colorFixed      = "#4488ff"
	colorCavity     = "#ff4444"
)

// SnapshotSVG renders one snapshot: free cells in green, the membrane
// in blue, the cavity particle in red with its resting radius drawn as
// a circle. The view is fitted to the particle bounds with padding.
func SnapshotSVG(ens engine.Ensemble, radius float64, width, height int) string {
	if len(ens) == 0 {
		return ""
	}

	minX, maxX := ens[0].X, ens[0].X
	minY, maxY := ens[0].Y, ens[0].Y
	for _, p := range ens {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	// Uniform scale so circles stay circular.
	scale := float64(width) / rangeX
	if s := float64(height) / rangeY; s < scale {
		scale = s
	}

	toX := func(x float64) float64 { return (x - minX) * scale }
	toY := func(y float64) float64 { return float64(height) - (y-minY)*scale }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, colorBackground))

	if i := ens.CavityIndex(); i >= 0 && radius > 0 {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1" stroke-dasharray="4 3"/>
`, toX(ens[i].X), toY(ens[i].Y), radius*scale, colorCavity))
	}

	for _, p := range ens {
		color := colorFree
		r := 2.5
		switch p.Kind {
		case engine.Fixed:
			color = colorFixed
		case engine.Cavity:
			color = colorCavity
			r = 3.5
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, toX(p.X), toY(p.Y), r, color))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSnapshotSVG renders a snapshot straight to a file.
func WriteSnapshotSVG(path string, ens engine.Ensemble, radius float64, width, height int) error {
	return os.WriteFile(path, []byte(SnapshotSVG(ens, radius, width, height)), 0644)
}
