// Command wellprep turns directories of oil-well production CSVs into
// train/validation/test forecasting datasets. It provides subcommands to run
// the full pipeline, inspect cleaned wells, and render series and window
// charts, all driven by one INI config.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	prep "wellprep"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "wellprep",
		Short:        "Prepare oil-well production data for forecasting",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "wellprep.ini", "path to INI config")

	buildCmd := &cobra.Command{
		Use:     "build",
		Short:   "Run the full pipeline and write the dataset archive",
		Example: `  wellprep build --config wellprep.ini`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(configPath)
		},
	}
	rootCmd.AddCommand(buildCmd)

	inspectCmd := &cobra.Command{
		Use:     "inspect",
		Short:   "Print per-well stats after cleaning",
		Example: `  wellprep inspect`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(configPath)
		},
	}
	rootCmd.AddCommand(inspectCmd)

	plotWellsCmd := &cobra.Command{
		Use:     "plot-wells",
		Short:   "Render one PNG per cleaned well into the plot directory",
		Example: `  wellprep plot-wells`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlotWells(configPath)
		},
	}
	rootCmd.AddCommand(plotWellsCmd)

	var windowCount int
	plotWindowsCmd := &cobra.Command{
		Use:     "plot-windows",
		Short:   "Render PNGs for the first N shuffled windows",
		Example: `  wellprep plot-windows --count 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlotWindows(configPath, windowCount)
		},
	}
	plotWindowsCmd.Flags().IntVar(&windowCount, "count", 8, "number of windows to render")
	rootCmd.AddCommand(plotWindowsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func runBuild(configPath string) error {
	cfg, err := prep.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	_, err = prep.NewPipeline(cfg, log).Run()
	return err
}

func runInspect(configPath string) error {
	cfg, err := prep.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	wells, err := prep.NewPipeline(cfg, log).CleanedWells()
	if err != nil {
		return err
	}
	fmt.Printf("%-24s %8s %12s %12s %12s %12s\n", "WELL", "POINTS", "MEAN", "STD", "MIN", "MAX")
	for _, s := range prep.Stats(wells) {
		fmt.Printf("%-24s %8d %12.4f %12.4f %12.4f %12.4f\n",
			s.Name, s.Points, s.Mean, s.Std, s.Min, s.Max)
	}
	return nil
}

func runPlotWells(configPath string) error {
	cfg, err := prep.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	wells, err := prep.NewPipeline(cfg, log).CleanedWells()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Plot.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", cfg.Plot.Dir, err)
	}
	for _, name := range wells.Names() {
		path := filepath.Join(cfg.Plot.Dir, name+".png")
		if err := prep.PlotWell(path, name, wells[name], cfg.Plot); err != nil {
			return err
		}
		log.Infow("wrote plot", "path", path)
	}
	return nil
}

func runPlotWindows(configPath string, count int) error {
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	cfg, err := prep.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	wells, err := prep.NewPipeline(cfg, log).CleanedWells()
	if err != nil {
		return err
	}
	windows, err := prep.SliceWells(wells, cfg.Windows)
	if err != nil {
		return err
	}
	prep.ShuffleWindows(windows, cfg.Output.Seed)
	it, err := prep.NewWindowIterator(windows)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Plot.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", cfg.Plot.Dir, err)
	}
	for i := 0; i < count; i++ {
		w, err := it.Next()
		if errors.Is(err, prep.ErrNoMoreWindows) {
			break
		}
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.Plot.Dir, fmt.Sprintf("window-%03d.png", i+1))
		if err := prep.PlotWindow(path, w, cfg.Plot); err != nil {
			return err
		}
		log.Infow("wrote plot", "path", path)
	}
	return nil
}
