package config

var presets = map[string]*Config{
	// Slow expansion, no noise. The baseline for regression checks.
	"baseline": {
		Dt: 0.01, Steps: 2000, Seed: 1,
		Layout: LayoutConfig{InnerRadius: 2, OuterRadius: 10, Spacing: 1},
		Cell:   CellConfig{Depth: 1, RestDist: 1, MaxRange: 3},
		Cavity: CavityConfig{Stiffness: 5, InitialRadius: 0.5, GrowthRate: 0.002, MaxRadius: 6},
	},
	// Thermal jitter on top of the baseline expansion.
	"noisy": {
		Dt: 0.01, Steps: 2000, Noise: 0.05, Seed: 1,
		Layout: LayoutConfig{InnerRadius: 2, OuterRadius: 10, Spacing: 1},
		Cell:   CellConfig{Depth: 1, RestDist: 1, MaxRange: 3, NoiseStdev: 0.02, NoiseBound: 0.1},
		Cavity: CavityConfig{Stiffness: 5, InitialRadius: 0.5, GrowthRate: 0.002, MaxRadius: 6},
	},
	// Aggressive growth against a stiff membrane band.
	"burst": {
		Dt: 0.005, Steps: 4000, Seed: 1,
		Layout: LayoutConfig{InnerRadius: 2, OuterRadius: 8, Spacing: 0.8},
		Cell:   CellConfig{Depth: 2, RestDist: 0.8, MaxRange: 2.4},
		Cavity: CavityConfig{Stiffness: 20, InitialRadius: 0.5, GrowthRate: 0.01, MaxRadius: 6},
	},
	// Static cavity: cells relax towards their rest spacing.
	"relax": {
		Dt: 0.01, Steps: 1000, Seed: 1,
		Layout: LayoutConfig{InnerRadius: 2, OuterRadius: 10, Spacing: 1},
		Cell:   CellConfig{Depth: 1, RestDist: 1, MaxRange: 3},
		Cavity: CavityConfig{Stiffness: 5, InitialRadius: 1},
	},
	// Small ensemble for quick interactive runs.
	"small": {
		Dt: 0.01, Steps: 500, Seed: 1,
		Layout: LayoutConfig{InnerRadius: 1.5, OuterRadius: 5, Spacing: 1},
		Cell:   CellConfig{Depth: 1, RestDist: 1, MaxRange: 3},
		Cavity: CavityConfig{Stiffness: 5, InitialRadius: 0.5, GrowthRate: 0.004, MaxRadius: 3},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
// Copying keeps callers from mutating the shared table through flag
// overrides.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
