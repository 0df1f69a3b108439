package main

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/geo/r2"
	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gitcero/kinematic-arm-simulation/internal/config"
	"github.com/gitcero/kinematic-arm-simulation/internal/export"
	"github.com/gitcero/kinematic-arm-simulation/internal/metrics"
	"github.com/gitcero/kinematic-arm-simulation/internal/session"
	"github.com/gitcero/kinematic-arm-simulation/internal/storage"
	"github.com/gitcero/kinematic-arm-simulation/internal/viz"
)

var (
	dataDir    string
	links      int
	targetX    float64
	targetY    float64
	stepSize   float64
	maxIters   int
	tolerance  float64
	maxTicks   int
	frameRate  int
	configFile string
	preset     string
	outFile    string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "armsim",
		Short: "planar arm inverse-kinematics lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".armsim", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "drive the arm to the target headlessly and record the run",
		RunE:  runSolve,
	}
	addArmFlags(solveCmd)
	solveCmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "tick budget")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive arm view (click to retarget, 2-5 to change joints)",
		RunE:  runLive,
	}
	addArmFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot distance-to-target over ticks",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "convergence statistics for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a run's final pose and effector trail as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "arm.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(solveCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, svgCmd, presetsCmd)

	cobra.OnInitialize(func() {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level})))
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addArmFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&links, "links", config.DefaultLinks, "link count (>= 2)")
	cmd.Flags().Float64Var(&targetX, "target-x", config.DefaultTargetX, "target x")
	cmd.Flags().Float64Var(&targetY, "target-y", config.DefaultTargetY, "target y")
	cmd.Flags().Float64Var(&stepSize, "step", 0.1, "gradient step size")
	cmd.Flags().IntVar(&maxIters, "max-iters", 100, "solver iterations per tick")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0.1, "convergence tolerance")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset configuration")
}

// buildConfig layers preset, config file, then explicit flags, mirroring
// flag-over-file-over-preset precedence.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("links") {
		cfg.Links = links
	}
	if cmd.Flags().Changed("target-x") {
		cfg.Target.X = targetX
	}
	if cmd.Flags().Changed("target-y") {
		cfg.Target.Y = targetY
	}
	if cmd.Flags().Changed("step") {
		cfg.Solver.StepSize = stepSize
	}
	if cmd.Flags().Changed("max-iters") {
		cfg.Solver.MaxIters = maxIters
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if cmd.Flags().Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = frameRate
	}

	return cfg, cfg.Validate()
}

func newSession(cfg *config.Config) (*session.Session, r2.Point, error) {
	sess := session.NewWithOptions(cfg.SolverOptions())
	if err := sess.Reconfigure(cfg.Links); err != nil {
		return nil, r2.Point{}, err
	}
	target := r2.Point{X: cfg.Target.X, Y: cfg.Target.Y}
	sess.Retarget(target)
	return sess, target, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sess, target, err := newSession(cfg)
	if err != nil {
		return err
	}

	ms := metrics.Defaults()
	trace := make([]metrics.Sample, 0, cfg.MaxTicks)

	start := time.Now()
	for tick := 0; tick < cfg.MaxTicks && !sess.Reached(); tick++ {
		sess.Tick()
		sample := metrics.Sample{
			Tick:        tick,
			MoveCount:   sess.MoveCount(),
			EndEffector: sess.EndEffector(),
			Target:      target,
			Err:         sess.Distance(),
			Reached:     sess.Reached(),
		}
		for _, m := range ms {
			m.Observe(sample)
		}
		trace = append(trace, sample)
		slog.Debug("tick", "n", tick, "error", sample.Err, "moves", sample.MoveCount)
	}
	elapsed := time.Since(start)

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(storage.RunMetadata{
		Links:     cfg.Links,
		TargetX:   cfg.Target.X,
		TargetY:   cfg.Target.Y,
		StepSize:  cfg.Solver.StepSize,
		MaxIters:  cfg.Solver.MaxIters,
		Tolerance: cfg.Solver.Tolerance,
		Ticks:     len(trace),
		Moves:     sess.MoveCount(),
		Reached:   sess.Reached(),
		Metrics:   values,
	}, trace)
	if err != nil {
		return err
	}

	slog.Info("run saved", "id", runID, "elapsed", elapsed)

	fmt.Printf("links: %d  target: (%.2f, %.2f)\n", cfg.Links, cfg.Target.X, cfg.Target.Y)
	fmt.Printf("reached: %v  moves: %d  ticks: %d\n", sess.Reached(), sess.MoveCount(), len(trace))
	fmt.Println("\nmetrics:")
	for name, val := range values {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sess, _, err := newSession(cfg)
	if err != nil {
		return err
	}

	if ok := viz.SetTheme(cfg.Theme); !ok {
		slog.Warn("unknown theme, using default", "theme", cfg.Theme)
	}

	m := viz.NewModel(sess, cfg.FrameRate)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tLINKS\tTARGET\tTICKS\tMOVES\tREACHED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t(%.2f, %.2f)\t%d\t%d\t%v\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Links,
			run.TargetX, run.TargetY,
			run.Ticks,
			run.Moves,
			run.Reached,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []metrics.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, trace, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("links: %d  target: (%.2f, %.2f)\n\n", meta.Links, meta.TargetX, meta.TargetY)

	errs := make([]float64, len(trace))
	for i, s := range trace {
		errs[i] = s.Err
	}

	graph := asciigraph.Plot(errs,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("distance to target vs tick"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(trace) < 2 {
		return fmt.Errorf("not enough data to analyze")
	}

	errs := make([]float64, len(trace))
	for i, s := range trace {
		errs[i] = s.Err
	}

	drops := make([]float64, len(errs)-1)
	for i := 1; i < len(errs); i++ {
		drops[i-1] = errs[i-1] - errs[i]
	}

	fmt.Printf("convergence analysis: %s\n", meta.ID)
	fmt.Printf("links: %d  target: (%.2f, %.2f)\n\n", meta.Links, meta.TargetX, meta.TargetY)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "initial error\t%.6f\n", errs[0])
	fmt.Fprintf(w, "final error\t%.6f\n", errs[len(errs)-1])
	fmt.Fprintf(w, "max error\t%.6f\n", floats.Max(errs))
	fmt.Fprintf(w, "min error\t%.6f\n", floats.Min(errs))
	fmt.Fprintf(w, "mean drop per tick\t%.6f\n", stat.Mean(drops, nil))
	fmt.Fprintf(w, "drop stddev\t%.6f\n", stat.StdDev(drops, nil))
	fmt.Fprintf(w, "ticks\t%d\n", meta.Ticks)
	fmt.Fprintf(w, "moves\t%d\n", meta.Moves)
	fmt.Fprintf(w, "reached\t%v\n", meta.Reached)
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, trace, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"tick", "moves", "ee_x", "ee_y", "error", "reached"}); err != nil {
		return err
	}

	for _, s := range trace {
		row := []string{
			strconv.Itoa(s.Tick),
			strconv.Itoa(s.MoveCount),
			strconv.FormatFloat(s.EndEffector.X, 'f', 6, 64),
			strconv.FormatFloat(s.EndEffector.Y, 'f', 6, 64),
			strconv.FormatFloat(s.Err, 'f', 6, 64),
			strconv.FormatBool(s.Reached),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, trace)
}

// renderSVG replays a run from its recorded parameters to recover the
// final pose (the trace stores only effector positions), then renders it
// with the effector trail.
func renderSVG(cmd *cobra.Command, args []string) error {
	meta, trace, err := loadRun(args[0])
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Links = meta.Links
	cfg.Target = config.TargetConfig{X: meta.TargetX, Y: meta.TargetY}
	cfg.Solver.StepSize = meta.StepSize
	cfg.Solver.MaxIters = meta.MaxIters
	cfg.Solver.Tolerance = meta.Tolerance

	sess, target, err := newSession(cfg)
	if err != nil {
		return err
	}
	for i := 0; i < meta.Ticks; i++ {
		sess.Tick()
	}

	trail := make([]r2.Point, len(trace))
	for i, s := range trace {
		trail[i] = s.EndEffector
	}

	svg := export.ArmToSVG(sess.Pose(), target, trail, 600, 600)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}

	slog.Info("svg written", "path", outFile, "pose_joints", sess.LinkCount()+1)
	return nil
}
