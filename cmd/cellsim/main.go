package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cellsim/internal/config"
	"github.com/san-kum/cellsim/internal/engine"
	"github.com/san-kum/cellsim/internal/export"
	"github.com/san-kum/cellsim/internal/layout"
	"github.com/san-kum/cellsim/internal/metrics"
	"github.com/san-kum/cellsim/internal/store"
	"github.com/san-kum/cellsim/internal/sweep"
	"github.com/san-kum/cellsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	steps      int
	noise      float64
	seed       int64
	growthRate float64
	stiffness  float64
	maxRadius  float64
	// sweep
	numRuns       int
	seedStart     int64
	stiffnessGrid string
	growthGrid    string
	// svg
	svgOut   string
	svgStep  int
	svgWidth int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellsim",
		Short: "cavity expansion simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cellsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the trajectory",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot cavity radius and occupancy over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the configured force and potential profiles",
		RunE:  profileForces,
	}
	addRunFlags(profileCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run seed replicates or a parameter grid",
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numRuns, "runs", 4, "number of replicate runs")
	sweepCmd.Flags().Int64Var(&seedStart, "seed-start", 1, "first replicate seed")
	sweepCmd.Flags().StringVar(&stiffnessGrid, "stiffness-grid", "", "comma-separated cavity stiffness values")
	sweepCmd.Flags().StringVar(&growthGrid, "growth-grid", "", "comma-separated growth rate values")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trajectory to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored snapshot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&svgOut, "out", "snapshot.svg", "output file")
	svgCmd.Flags().IntVar(&svgStep, "step", -1, "snapshot index (-1 for last)")
	svgCmd.Flags().IntVar(&svgWidth, "size", 600, "image width and height in px")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s steps=%d noise=%.3f growth=%.4f\n",
					name, cfg.Steps, cfg.Noise, cfg.Cavity.GrowthRate)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, profileCmd, liveCmd, sweepCmd,
		exportCSVCmd, exportJSONCmd, svgCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration name")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&noise, "noise", 0, "integrator noise stdev")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&growthRate, "growth", config.DefaultGrowthRate, "cavity growth rate per step")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "cavity stiffness")
	cmd.Flags().Float64Var(&maxRadius, "max-radius", 6.0, "cavity radius cap")
}

// buildConfig layers preset, config file, and flags: flags override the
// file, the file overrides the preset.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = strings.TrimSuffix(configFile, ".yaml")
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("noise") {
		cfg.Noise = noise
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("growth") {
		cfg.Cavity.GrowthRate = growthRate
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Cavity.Stiffness = stiffness
	}
	if cmd.Flags().Changed("max-radius") {
		cfg.Cavity.MaxRadius = maxRadius
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ens, err := layout.Band(cfg.LayoutParams())
	if err != nil {
		return err
	}

	runner := engine.New(cfg.Terms(), cfg.Schedule())
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s (%d particles, %d steps)...\n", name, len(ens), cfg.Steps)
	start := time.Now()

	result, err := runner.Run(context.Background(), ens, cfg.EngineConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(name, cfg.EngineConfig(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final radius: %.3f\n", result.Radii[len(result.Radii)-1])
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tDT\tNOISE\tSEED\tPARTICLES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%.3f\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Noise,
			run.Seed,
			run.Particles,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snaps, _, radii, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(snaps))

	fmt.Println(asciigraph.Plot(radii,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("cavity radius"),
	))
	fmt.Println()

	// Occupancy: free cells inside the cavity radius per snapshot.
	occupancy := make([]float64, len(snaps))
	for i, snap := range snaps {
		m := metrics.NewCavityOverlap()
		m.Observe(snap, radii[i], 0)
		occupancy[i] = m.Value()
	}
	fmt.Println(asciigraph.Plot(occupancy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("cells inside cavity"),
	))
	return nil
}

func profileForces(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	law := cfg.CellLaw()
	const samples = 81
	dMin := cfg.Cell.RestDist * 0.5
	dMax := cfg.Cell.MaxRange
	if dMax <= dMin {
		dMax = dMin * 4
	}

	force := make([]float64, samples)
	pot := make([]float64, samples)
	for i := 0; i < samples; i++ {
		d := dMin + (dMax-dMin)*float64(i)/float64(samples-1)
		force[i] = law.Force(d)
		pot[i] = law.Potential(d)
	}

	fmt.Printf("cell-cell interaction (%s): d in [%.2f, %.2f]\n\n", name, dMin, dMax)
	fmt.Println(asciigraph.Plot(force,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("force (positive = repulsive)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(pot,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("potential energy"),
	))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	ens, err := layout.Band(cfg.LayoutParams())
	if err != nil {
		return err
	}

	m := viz.NewModel(name, cfg.Terms(), cfg.Schedule(), ens, cfg.Dt, cfg.Noise, cfg.Seed)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if stiffnessGrid != "" || growthGrid != "" {
		return runGrid(cfg, name)
	}

	batch := sweep.NewReplicates(factoryFor(cfg), numRuns, seedStart)
	fmt.Printf("running %d replicates of %s (seeds %d..%d)...\n",
		numRuns, name, seedStart, seedStart+int64(numRuns)-1)
	start := time.Now()

	results, err := batch.Run(context.Background(), cfg.EngineConfig())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tRADIAL_DENSITY\tCAVITY_OVERLAP\tMEAN_SPACING")
	for i, res := range results {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\t%.6f\n",
			seedStart+int64(i),
			res.Metrics["radial_density"],
			res.Metrics["cavity_overlap"],
			res.Metrics["mean_spacing"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nmean cavity_overlap: %.6f\n", sweep.MeanMetric(results, "cavity_overlap"))
	return nil
}

// runGrid minimizes mean cavity occupancy over the requested parameter
// grid, averaging each point over the replicate seeds.
func runGrid(cfg *config.Config, name string) error {
	var params []string
	var ranges [][]float64

	if stiffnessGrid != "" {
		vals, err := parseGrid(stiffnessGrid)
		if err != nil {
			return fmt.Errorf("bad stiffness grid: %w", err)
		}
		params = append(params, "stiffness")
		ranges = append(ranges, vals)
	}
	if growthGrid != "" {
		vals, err := parseGrid(growthGrid)
		if err != nil {
			return fmt.Errorf("bad growth grid: %w", err)
		}
		params = append(params, "growth")
		ranges = append(ranges, vals)
	}

	obj := func(ctx context.Context, p map[string]float64) (float64, error) {
		point := *cfg
		if v, ok := p["stiffness"]; ok {
			point.Cavity.Stiffness = v
		}
		if v, ok := p["growth"]; ok {
			point.Cavity.GrowthRate = v
		}
		batch := sweep.NewReplicates(factoryFor(&point), numRuns, seedStart)
		results, err := batch.Run(ctx, point.EngineConfig())
		if err != nil {
			return 0, err
		}
		val := sweep.MeanMetric(results, "cavity_overlap")
		fmt.Printf("  %v -> %.6f\n", p, val)
		return val, nil
	}

	fmt.Printf("grid search over %v (%s, %d replicates per point)\n", params, name, numRuns)
	best, bestVal, err := sweep.NewGrid(params, ranges).Search(context.Background(), obj)
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no grid point completed")
	}
	fmt.Printf("\nbest: %v (cavity_overlap %.6f)\n", best, bestVal)
	return nil
}

func factoryFor(cfg *config.Config) sweep.RunnerFactory {
	return func() (*engine.Runner, engine.Ensemble, error) {
		ens, err := layout.Band(cfg.LayoutParams())
		if err != nil {
			return nil, nil, err
		}
		runner := engine.New(cfg.Terms(), cfg.Schedule())
		for _, m := range metrics.Defaults() {
			runner.AddMetric(m)
		}
		return runner, ens, nil
	}
}

func parseGrid(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func loadResult(runID string) (*store.RunMetadata, *engine.Result, error) {
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	snaps, times, radii, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &engine.Result{
		Snapshots:  snaps,
		Times:      times,
		Radii:      radii,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.Snapshots) == 0 {
		return fmt.Errorf("no data to export")
	}
	return store.WriteTrajectoryCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	cfg := engine.Config{Dt: meta.Dt, Steps: meta.Steps, Noise: meta.Noise, Seed: meta.Seed}
	return store.ExportJSONStdout(meta.Name, cfg, result)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadResult(args[0])
	if err != nil {
		return err
	}
	if len(result.Snapshots) == 0 {
		return fmt.Errorf("no snapshots to render")
	}

	idx := svgStep
	if idx < 0 || idx >= len(result.Snapshots) {
		idx = len(result.Snapshots) - 1
	}
	if err := export.WriteSnapshotSVG(svgOut, result.Snapshots[idx], result.Radii[idx], svgWidth, svgWidth); err != nil {
		return err
	}
	fmt.Printf("wrote snapshot %d to %s\n", idx, svgOut)
	return nil
}
