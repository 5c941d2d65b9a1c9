package prep

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Pipeline runs the full preparation: load, clean, window, shuffle, split,
// persist.
type Pipeline struct {
	cfg Config
	log *zap.SugaredLogger
}

func NewPipeline(cfg Config, log *zap.SugaredLogger) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes the pipeline end to end and returns the datasets it wrote to
// the configured output path.
func (p *Pipeline) Run() (Datasets, error) {
	p.log.Infow("loading wells", "dir", p.cfg.Data.Dir)
	wells, err := LoadWells(p.cfg.Data)
	if err != nil {
		return Datasets{}, err
	}
	p.log.Infow("loaded wells", "count", len(wells))

	cleaned, dropped := CleanWells(wells, p.cfg.Preprocess)
	p.log.Infow("cleaned wells", "kept", len(cleaned), "dropped", len(dropped))
	if len(cleaned) == 0 {
		return Datasets{}, fmt.Errorf("no wells survived preprocessing")
	}

	windows, err := SliceWells(cleaned, p.cfg.Windows)
	if err != nil {
		return Datasets{}, err
	}
	if len(windows) == 0 {
		return Datasets{}, fmt.Errorf("no windows produced: series shorter than %d months",
			p.cfg.Windows.InputMonths+p.cfg.Windows.OutputMonths)
	}
	p.log.Infow("sliced windows", "count", len(windows))

	ShuffleWindows(windows, p.cfg.Output.Seed)
	ds := SplitWindows(windows)
	p.log.Infow("split windows",
		"train", ds.Train.Len(), "valid", ds.Valid.Len(), "test", ds.Test.Len())

	if err := WriteDatasets(p.cfg.Output.Path, ds); err != nil {
		return Datasets{}, err
	}
	p.log.Infow("wrote datasets", "path", p.cfg.Output.Path)
	return ds, nil
}

// CleanedWells loads and cleans without windowing, for inspection and
// plotting.
func (p *Pipeline) CleanedWells() (Wells, error) {
	wells, err := LoadWells(p.cfg.Data)
	if err != nil {
		return nil, err
	}
	cleaned, dropped := CleanWells(wells, p.cfg.Preprocess)
	for _, name := range dropped {
		p.log.Infow("dropped flat well", "well", name)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("no wells survived preprocessing")
	}
	return cleaned, nil
}

// WellStats summarizes one cleaned well.
type WellStats struct {
	Name   string
	Points int
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
}

// Stats computes per-well summaries in sorted name order.
func Stats(wells Wells) []WellStats {
	names := wells.Names()
	out := make([]WellStats, 0, len(names))
	for _, name := range names {
		series := wells[name]
		out = append(out, WellStats{
			Name:   name,
			Points: len(series),
			Mean:   stat.Mean(series, nil),
			Std:    stat.PopStdDev(series, nil),
			Min:    floats.Min(series),
			Max:    floats.Max(series),
		})
	}
	return out
}
