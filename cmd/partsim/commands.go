package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/partsim/internal/analysis"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/gui"
	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/san-kum/partsim/internal/viz"
)

const seriesLimit = 100000

func newRecorder(cfg *config.Config, limit int) *metrics.Recorder {
	return metrics.NewRecorder(limit, metrics.Default(cfg.Engine().Bounds, cfg.Spawn.MaxSpeed)...)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	rec := newRecorder(cfg, seriesLimit)
	e, err := cfg.NewEngine(sim.WithLogger(logger), sim.WithObserver(rec))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running", "kernel", cfg.Kernel, "count", cfg.Count, "workers", e.Workers(), "seed", cfg.Seed, "ticks", ticks)
	start := time.Now()

	done, err := sim.Run(ctx, e, sim.RunConfig{Ticks: ticks, Interval: interval, Dt: dt})
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("interrupted", "ticks", done)
	case err != nil:
		return err
	}
	elapsed := time.Since(start)

	summary := rec.Summary()
	fmt.Printf("completed %d ticks in %v\n", done, elapsed)
	fmt.Printf("bootstrap: %v\n", e.BootstrapTime())
	if done > 0 {
		fmt.Printf("ticks/sec: %.0f\n", float64(done)/elapsed.Seconds())
	}

	names := rec.Names()
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, summary[name])
	}

	meta := storage.RunMetadata{
		Kernel:      cfg.Kernel,
		Preset:      preset,
		Seed:        cfg.Seed,
		Count:       e.Len(),
		Workers:     e.Workers(),
		Ticks:       done,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Bootstrap:   cfg.Bootstrap,
		BootstrapMs: float64(e.BootstrapTime().Microseconds()) / 1000,
		Metrics:     summary,
	}
	snapshot := e.Snapshot()

	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, storage.NewExport(meta, snapshot)); err != nil {
			return err
		}
		logger.Info("exported population", "path", jsonOut, "particles", len(snapshot))
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	series := make(map[string][]float64, len(names))
	for _, name := range names {
		series[name] = rec.Series(name)
	}
	runID, err := st.Save(&storage.Run{
		Meta:      meta,
		Names:     names,
		Times:     rec.Times(),
		Series:    series,
		Particles: snapshot,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s (%s)\n", runID, title)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	rec := newRecorder(cfg, 600)
	e, err := cfg.NewEngine(sim.WithObserver(rec))
	if err != nil {
		return err
	}
	return viz.RunLive(viz.NewModel(e, rec, title, frameRate))
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(cfg, title, logger)
}

func benchKernel(cmd *cobra.Command, args []string) error {
	cfg, title, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	counts := []int{100, 1000, 5000}
	if cmd.Flags().Changed("count") {
		counts = []int{cfg.Count}
	}
	workerCounts := []int{1, 2, 4, runtime.NumCPU()}
	if cmd.Flags().Changed("workers") {
		workerCounts = []int{cfg.Workers}
	}

	fmt.Printf("benchmarking %s\n\n", title)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNT\tWORKERS\tBOOTSTRAP\tTICKS\tTIME\tTICKS/SEC")

	for _, n := range counts {
		for _, k := range workerCounts {
			c := cfg.Clone()
			c.Count, c.Workers, c.Bootstrap = n, k, string(sim.BootstrapBatch)
			e, err := c.NewEngine()
			if err != nil {
				return err
			}
			if err := e.Bootstrap(); err != nil {
				return err
			}

			start := time.Now()
			done, err := sim.Run(cmd.Context(), e, sim.RunConfig{Ticks: benchN, Dt: 1.0 / 60})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%d\t%v\t%d\t%v\t%.0f\n",
				n, e.Workers(), e.BootstrapTime(), done, elapsed, float64(done)/elapsed.Seconds())
		}
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tKERNEL\tPRESET\tTIME\tCOUNT\tTICKS\tWORKERS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Kernel,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Ticks,
			run.Workers,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	names, times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kernel: %s\n", meta.Kernel)
	fmt.Printf("samples: %d\n\n", len(times))

	for _, name := range names {
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	data, ok := series[metric]
	if !ok || len(data) < 4 {
		return fmt.Errorf("no %s data in run %s", metric, runID)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("kernel: %s, metric: %s\n\n", meta.Kernel, metric)

	span := times[len(times)-1] - times[0]
	rate := 1.0
	if span > 0 {
		rate = float64(len(times)-1) / span
	}

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+metric+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, _ := analysis.DominantFrequency(data, rate)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	population, err := st.LoadParticles(runID)
	if err != nil || len(population) == 0 {
		return nil
	}
	bounds := particle.NewBounds(meta.Width, meta.Height)
	fmt.Printf("\nfinal density (%d particles):\n", len(population))
	fmt.Print(analysis.DensityToASCII(analysis.Density(population, bounds, 64, 18)))
	fmt.Println("\nfinal velocities:")
	fmt.Print(analysis.VelocityPortraitToASCII(population, 41, 17))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	ps, err := st.LoadParticles(runID)
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, storage.NewExport(*meta, ps))
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	names, times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}

	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, name := range names {
			row = append(row, strconv.FormatFloat(series[name][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
