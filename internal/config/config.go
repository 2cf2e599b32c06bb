// Package config loads and saves simulation configurations and maps
// them onto engine parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/forcefield"
	"github.com/san-kum/cellsim/internal/layout"
)

const (
	DefaultDt          = 0.01
	DefaultSteps       = 2000
	DefaultDepth       = 1.0
	DefaultRestDist    = 1.0
	DefaultMaxRange    = 3.0
	DefaultStiffness   = 5.0
	DefaultGrowthRate  = 0.002
	DefaultInnerRadius = 2.0
	DefaultOuterRadius = 10.0
	DefaultSpacing     = 1.0
)

type Config struct {
	Dt     float64      `yaml:"dt"`
	Steps  int          `yaml:"steps"`
	Noise  float64      `yaml:"noise"`
	Seed   int64        `yaml:"seed"`
	Layout LayoutConfig `yaml:"layout"`
	Cell   CellConfig   `yaml:"cell"`
	Cavity CavityConfig `yaml:"cavity"`
}

type LayoutConfig struct {
	InnerRadius float64 `yaml:"inner_radius"`
	OuterRadius float64 `yaml:"outer_radius"`
	Spacing     float64 `yaml:"spacing"`
}

// CellConfig parameterizes the anharmonic cell-cell interaction.
type CellConfig struct {
	Depth      float64 `yaml:"depth"`
	RestDist   float64 `yaml:"rest_dist"`
	M          float64 `yaml:"m"`
	E1         float64 `yaml:"e1"`
	E2         float64 `yaml:"e2"`
	MaxRange   float64 `yaml:"max_range"`
	NoiseStdev float64 `yaml:"noise_stdev"`
	NoiseBound float64 `yaml:"noise_bound"`
}

// CavityConfig parameterizes the growing cavity and its schedule.
type CavityConfig struct {
	Stiffness     float64 `yaml:"stiffness"`
	InitialRadius float64 `yaml:"initial_radius"`
	GrowthRate    float64 `yaml:"growth_rate"`
	MaxRadius     float64 `yaml:"max_radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:    DefaultDt,
		Steps: DefaultSteps,
		Seed:  1,
		Layout: LayoutConfig{
			InnerRadius: DefaultInnerRadius,
			OuterRadius: DefaultOuterRadius,
			Spacing:     DefaultSpacing,
		},
		Cell: CellConfig{
			Depth:    DefaultDepth,
			RestDist: DefaultRestDist,
			M:        2, E1: 4, E2: 2,
			MaxRange: DefaultMaxRange,
		},
		Cavity: CavityConfig{
			Stiffness:     DefaultStiffness,
			InitialRadius: 0.5,
			GrowthRate:    DefaultGrowthRate,
			MaxRadius:     6.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Steps < 0 {
		return fmt.Errorf("config: steps must be non-negative, got %d", c.Steps)
	}
	if c.Noise < 0 {
		return fmt.Errorf("config: noise must be non-negative, got %g", c.Noise)
	}
	if c.Cell.RestDist <= 0 {
		return fmt.Errorf("config: cell rest_dist must be positive, got %g", c.Cell.RestDist)
	}
	if c.Cavity.InitialRadius < 0 {
		return fmt.Errorf("config: cavity initial_radius must be non-negative, got %g", c.Cavity.InitialRadius)
	}
	if c.Cavity.GrowthRate < 0 {
		return fmt.Errorf("config: cavity growth_rate must be non-negative, got %g", c.Cavity.GrowthRate)
	}
	return nil
}

// EngineConfig maps the run parameters onto an engine configuration.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		Dt:    c.Dt,
		Steps: c.Steps,
		Noise: c.Noise,
		Seed:  c.Seed,
	}
}

// LayoutParams maps the layout section onto band parameters.
func (c *Config) LayoutParams() layout.Params {
	return layout.Params{
		InnerRadius: c.Layout.InnerRadius,
		OuterRadius: c.Layout.OuterRadius,
		Spacing:     c.Layout.Spacing,
	}
}

// CellLaw builds the configured anharmonic interaction.
func (c *Config) CellLaw() forcefield.Anharmonic {
	law := forcefield.NewAnharmonic(c.Cell.Depth, c.Cell.RestDist)
	if c.Cell.M != 0 {
		law.M = c.Cell.M
	}
	if c.Cell.E1 != 0 {
		law.E1 = c.Cell.E1
	}
	if c.Cell.E2 != 0 {
		law.E2 = c.Cell.E2
	}
	return law
}

// Terms builds the force terms for a run: the anharmonic cell-cell
// term plus the Hooke cavity term.
func (c *Config) Terms() []engine.Term {
	cell := engine.NewCellTerm(c.CellLaw(), c.Cell.MaxRange)
	cell.NoiseStdev = c.Cell.NoiseStdev
	cell.NoiseBound = c.Cell.NoiseBound

	cavity := engine.NewCavityTerm(forcefield.CavityHooke{K: c.Cavity.Stiffness})
	return []engine.Term{cell, cavity}
}

// Schedule builds the cavity growth schedule: linear growth from the
// initial radius, clamped at the maximum.
func (c *Config) Schedule() engine.Schedule {
	if c.Cavity.GrowthRate == 0 {
		return engine.ConstantRadius(c.Cavity.InitialRadius)
	}
	return engine.LinearGrowth(c.Cavity.InitialRadius, c.Cavity.GrowthRate, c.Cavity.MaxRadius)
}
