package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   *log.Logger

	configFile string
	preset     string
	count      string
	workers    int
	seed       uint64
	width      float64
	height     float64
	bootstrap  string
	timeScaled bool
	separate   bool
	validate   bool

	ticks    int
	dt       float64
	interval time.Duration
	noSave   bool
	jsonOut  string

	frameRate int
	metric    string
	benchN    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "partsim",
		Short: "parallel 2d particle simulation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [kernel]",
		Short: "run a headless simulation and save its metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addEngineFlags(runCmd)
	runCmd.Flags().IntVar(&ticks, "ticks", 1000, "ticks to run (0 runs until interrupted)")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per tick (0 uses wall time)")
	runCmd.Flags().DurationVar(&interval, "interval", 0, "tick cadence (0 runs as fast as possible)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	runCmd.Flags().StringVar(&jsonOut, "export", "", "also write the final population as json")

	liveCmd := &cobra.Command{
		Use:   "live [kernel]",
		Short: "run a simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui [kernel]",
		Short: "run a simulation in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addEngineFlags(guiCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [kernel]",
		Short: "measure tick throughput across population sizes and worker counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchKernel,
	}
	addEngineFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchN, "ticks", 100, "ticks per measurement")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metric series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum of a metric and the final particle layout",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&metric, "metric", "kinetic_energy", "metric to analyze")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the final population of a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the metric series of a run as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kernel]",
		Short: "list available presets for a kernel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for kernel: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	kernelsCmd := &cobra.Command{
		Use:   "kernels",
		Short: "list interaction kernels",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range physics.NewRegistry().Names() {
				fmt.Println(name)
			}
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, benchCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, presetsCmd, kernelsCmd, tuiCmd)
	rootCmd.AddCommand(newAutomationCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() error {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "partsim",
	})
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger.SetLevel(level)
	return nil
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVarP(&count, "count", "n", "", "number of particles, 1 to 15000")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 uses every cpu)")
	cmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "domain width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "domain height")
	cmd.Flags().StringVar(&bootstrap, "bootstrap", "batch", "population creation: batch or incremental")
	cmd.Flags().BoolVar(&timeScaled, "time-scaled", false, "integrate pos += vel*dt instead of pos += vel")
	cmd.Flags().BoolVar(&separate, "separate", false, "push overlapping disks apart (bounce)")
	cmd.Flags().BoolVar(&validate, "validate", true, "halt on non-finite particle state")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Kernel = args[0]
	}
	title := cfg.Kernel

	if preset != "" {
		p, err := config.LookupPreset(cfg.Kernel, preset)
		if err != nil {
			return nil, "", err
		}
		cfg = p
		title = cfg.Kernel + "/" + preset
	}

	if configFile != "" {
		c, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		if len(args) > 0 {
			cfg.Kernel = args[0]
		}
		if preset == "" {
			title = cfg.Kernel
		}
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		n, err := config.ParseCount(count)
		if err != nil {
			logger.Warn("invalid particle count, using default", "input", count, "count", n, "err", err)
		}
		cfg.Count = n
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("bootstrap") {
		cfg.Bootstrap = bootstrap
	}
	if flags.Changed("time-scaled") {
		cfg.TimeScaled = timeScaled
	}
	if flags.Changed("separate") {
		cfg.Bounce.Separate = separate
	}
	if flags.Changed("validate") {
		cfg.ValidateState = validate
	}

	return cfg, title, nil
}
