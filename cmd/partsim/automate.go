package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/partsim/internal/automation"
	"github.com/san-kum/partsim/internal/export"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/storage"
)

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	autoTicks  int
	trials     int
	parallel   int

	svgMetric string
	svgScale  float64
	svgOut    string
)

func newAutomationCommands() []*cobra.Command {
	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [kernel]",
		Short: "run a preset across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addEngineFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "count", fmt.Sprintf("parameter to sweep %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 100, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1000, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().IntVar(&autoTicks, "ticks", 500, "ticks per run")
	sweepCmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "runs in flight at once")

	mcCmd := &cobra.Command{
		Use:   "montecarlo [kernel]",
		Short: "rerun a configuration over many seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addEngineFlags(mcCmd)
	mcCmd.Flags().IntVar(&trials, "trials", 10, "number of seeds")
	mcCmd.Flags().IntVar(&autoTicks, "ticks", 500, "ticks per trial")
	mcCmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "trials in flight at once")

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final population, or a metric with --metric, as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVar(&svgMetric, "metric", "", "plot this metric series instead of the population")
	svgCmd.Flags().Float64Var(&svgScale, "scale", 1, "domain units per svg unit")
	svgCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")

	return []*cobra.Command{scenarioCmd, sweepCmd, mcCmd, svgCmd}
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("scenario", "name", sc.Name, "steps", len(sc.Steps))
	results, err := automation.RunScenario(ctx, sc, logger)
	printResults(results)
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("sweep", "config", title, "param", sweepParam, "min", sweepMin, "max", sweepMax, "steps", sweepSteps)
	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Ticks:    autoTicks,
		Parallel: parallel,
	})
	if err != nil {
		return err
	}
	printResults(results)
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("monte carlo", "config", title, "trials", trials, "seed", cfg.Seed)
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:      cfg,
		NumTrials: trials,
		Seed:      cfg.Seed,
		Ticks:     autoTicks,
		Parallel:  parallel,
	})
	if err != nil {
		return err
	}
	printResults(results)

	contained, escaped := automation.MonteCarloStats(results)
	fmt.Printf("\ncontained: %d/%d trials\n", contained, contained+escaped)
	return nil
}

func printResults(results []automation.Result) {
	if len(results) == 0 {
		return
	}

	var names []string
	for name := range results[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "RUN\tSEED\tTICKS\tESCAPED")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d", r.Label, r.Seed, r.Ticks, r.Escaped)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	var svg string
	if svgMetric != "" {
		_, times, series, err := st.LoadSeries(runID)
		if err != nil {
			return err
		}
		values, ok := series[svgMetric]
		if !ok {
			return fmt.Errorf("metric %q not found in run %s", svgMetric, runID)
		}
		svg = export.SeriesToSVG(times, values, 800, 400, "#00d4ff")
	} else {
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		ps, err := st.LoadParticles(runID)
		if err != nil {
			return err
		}
		svg = export.ParticlesToSVG(ps, particle.NewBounds(meta.Width, meta.Height), svgScale)
	}

	if svgOut == "" {
		_, err := fmt.Print(svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("wrote svg", "path", svgOut)
	return nil
}
