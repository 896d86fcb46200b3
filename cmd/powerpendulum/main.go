package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"
	"github.com/guptarohit/asciigraph"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/powerpendulum/internal/config"
	"github.com/san-kum/powerpendulum/internal/export"
	"github.com/san-kum/powerpendulum/internal/gui"
	"github.com/san-kum/powerpendulum/internal/logging"
	"github.com/san-kum/powerpendulum/internal/metrics"
	"github.com/san-kum/powerpendulum/internal/server"
	"github.com/san-kum/powerpendulum/internal/sim"
	"github.com/san-kum/powerpendulum/internal/storage"
	"github.com/san-kum/powerpendulum/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	ticks      int
	fps        int
	logFile    string
	verbosity  int
	// run
	runName string
	numRuns int
	live    bool
	// serve
	addr string
	// plot / export
	series    string
	outFile   string
	plane     string
	svgWidth  int
	svgHeight int
)

// panelEvery is how many ticks pass between frames sent to the terminal
// panel in gui mode.
const panelEvery = 4

func main() {
	rootCmd := &cobra.Command{
		Use:   "powerpendulum",
		Short: "double pendulum in 3-D with a live parameter panel",
		RunE:  runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".powerpendulum", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate (run)")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "powerpendulum.log", "log file for gui mode")
	rootCmd.PersistentFlags().IntVarP(&verbosity, "verbosity", "v", 0, "log verbosity")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the 3-D window with the terminal panel",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and save the frames",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&runName, "name", "pendulum", "run name")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "independent runs with consecutive seeds")
	runCmd.Flags().BoolVar(&live, "live", false, "draw the run in the terminal")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream simulations over websockets",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "energy", "energy, height or speed")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the trail of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&plane, "plane", "xy", "projection plane: xy, xz or zy")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(guiCmd, runCmd, serveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig starts from the preset, or from the config file when one
// is given, and then applies any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runGUI drives the simulation from the raylib loop on the main goroutine
// while the panel runs in the terminal. Closing either one stops both.
// Logs go to a file so they do not tear up the panel.
func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, closer, err := logging.OpenFile(logFile, verbosity)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closer.Close()

	s, err := sim.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	prog := tui.NewProgram(ctx, s.Settings(), s.Queue())
	s.AddObserver(tui.NewForwarder(prog, panelEvery, s.Settings))

	panelErr := make(chan error, 1)
	go func() {
		_, err := prog.Run()
		cancel()
		panelErr <- err
	}()

	err = gui.Run(ctx, s, cfg.FPS, log)
	cancel()
	if perr := <-panelErr; perr != nil && !errors.Is(perr, tea.ErrProgramKilled) {
		log.Error(perr, "panel stopped")
		if err == nil {
			err = perr
		}
	}
	if err != nil {
		log.Error(err, "gui stopped")
		return err
	}
	log.Info("gui closed", "ticks", s.Frame().Tick, "resets", s.Resets())
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, verbosity)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if numRuns > 1 {
		return runEnsemble(ctx, st, cfg, log)
	}

	s, err := sim.New(cfg, log)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults(cfg.Gravity) {
		s.AddMetric(m)
	}

	if live {
		renderer := tui.NewLiveRenderer(os.Stdout, 30)
		renderer.Start()
		defer renderer.Stop()

		pace := time.NewTicker(time.Second / time.Duration(cfg.FPS))
		defer pace.Stop()
		s.AddObserver(renderer)
		s.AddObserver(sim.ObserverFunc(func(sim.Frame) { <-pace.C }))
	} else {
		fmt.Printf("running %d ticks (seed %d)...\n", cfg.Ticks, s.Seed())
	}

	start := time.Now()
	result, runErr := s.Run(ctx, cfg.Ticks)
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runName, cfg, s.Seed(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	printResult(result)
	return runErr
}

func runEnsemble(ctx context.Context, st *storage.Store, cfg *config.Config, log logr.Logger) error {
	ensemble := sim.NewEnsemble(cfg, numRuns, cfg.Seed, log)
	ensemble.Metrics = func() []sim.Metric { return metrics.Defaults(cfg.Gravity) }

	fmt.Printf("running %d x %d ticks (seeds %d..%d)...\n", numRuns, cfg.Ticks, ensemble.Seed(0), ensemble.Seed(numRuns-1))
	start := time.Now()
	results, runErr := ensemble.Run(ctx, cfg.Ticks)
	fmt.Printf("completed in %v\n", time.Since(start))

	for i, result := range results {
		if result == nil {
			continue
		}
		runID, err := st.Save(fmt.Sprintf("%s%d", runName, i), cfg, ensemble.Seed(i), result)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
		printResult(result)
	}
	return runErr
}

func printResult(result *sim.Result) {
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Printf("resets: %d\n", result.Resets)
	fmt.Println("metrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, verbosity)

	ctx, cancel := signalContext()
	defer cancel()

	return server.New(cfg, log).Serve(ctx, addr)
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
	fmt.Fprintln(w, "ID\tTIME\tSEED\tTICKS\tDT\tRESETS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Ticks,
			run.Dt,
			run.Resets,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("samples: %d\n\n", len(frames))

	var graph string
	switch series {
	case "energy":
		data := make([]float64, len(frames))
		for i, f := range frames {
			data[i] = metrics.FrameEnergy(f, meta.Gravity)
		}
		graph = asciigraph.Plot(data,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("total energy"),
		)
	case "height", "speed":
		inner := make([]float64, len(frames))
		outer := make([]float64, len(frames))
		for i, f := range frames {
			if series == "height" {
				inner[i], outer[i] = f.Bodies[0].Position.Y(), f.Bodies[1].Position.Y()
			} else {
				inner[i], outer[i] = f.Bodies[0].Velocity.Len(), f.Bodies[1].Velocity.Len()
			}
		}
		graph = asciigraph.PlotMany([][]float64{inner, outer},
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption(series+" (red: inner, blue: outer)"),
		)
	default:
		return fmt.Errorf("unknown series: %s (available: energy, height, speed)", series)
	}

	fmt.Println(graph)
	return nil
}

// output returns stdout, or the --out file when one was given.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.WriteFramesCSV(out, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.ExportJSON(out, *meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, err := export.ParsePlane(plane)
	if err != nil {
		return err
	}
	background, err := colorful.Hex(cfg.Background)
	if err != nil {
		return err
	}

	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	doc := export.TrailToSVG(frames, p, svgWidth, svgHeight, background)
	if doc == "" {
		return fmt.Errorf("run %s has too few frames to draw", args[0])
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.WriteString(out, doc)
	return err
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return config.Save(args[0], cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
