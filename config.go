package prep

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
)

// DataConfig describes where the production CSV files live and how rows map
// to wells. Column indices are zero-based.
type DataConfig struct {
	Dir         string `ini:"dir"`
	NameColumn  int    `ini:"name_column"`
	ValueColumn int    `ini:"value_column"`
	SkipHeader  bool   `ini:"skip_header"`
}

type PreprocessConfig struct {
	RemoveZeros    bool    `ini:"remove_zeros"`
	RemoveOutliers bool    `ini:"remove_outliers"`
	Smooth         bool    `ini:"smooth"`
	Normalize      bool    `ini:"normalize"`
	OutlierZ       float64 `ini:"outlier_z"`
	SmoothLen      int     `ini:"smooth_len"`
}

type WindowConfig struct {
	InputMonths  int `ini:"input_months"`
	OutputMonths int `ini:"output_months"`
	StepMonths   int `ini:"step_months"`
}

type OutputConfig struct {
	Path string `ini:"path"`
	Seed int64  `ini:"seed"`
}

type PlotConfig struct {
	Dir    string `ini:"dir"`
	Font   string `ini:"font"`
	Width  int    `ini:"width"`
	Height int    `ini:"height"`
}

type Config struct {
	Data       DataConfig
	Preprocess PreprocessConfig
	Windows    WindowConfig
	Output     OutputConfig
	Plot       PlotConfig
}

// DefaultConfig is the standard preprocessing policy: 36 months in, 12
// months out, stride 24, zero removal and z=4 outlier fence on, smoothing
// off, normalization on, shuffle seed 42.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Dir:         "data",
			NameColumn:  3,
			ValueColumn: 4,
			SkipHeader:  true,
		},
		Preprocess: PreprocessConfig{
			RemoveZeros:    true,
			RemoveOutliers: true,
			Smooth:         false,
			Normalize:      true,
			OutlierZ:       4,
			SmoothLen:      3,
		},
		Windows: WindowConfig{
			InputMonths:  36,
			OutputMonths: 12,
			StepMonths:   24,
		},
		Output: OutputConfig{
			Path: "datasets.gob.gz",
			Seed: 42,
		},
		Plot: PlotConfig{
			Dir:    "plots",
			Width:  1280,
			Height: 720,
		},
	}
}

// LoadConfig reads an INI file over the defaults. A missing file is not an
// error: the defaults alone run the full pipeline, like the original script.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := file.Section("data").MapTo(&cfg.Data); err != nil {
		return Config{}, fmt.Errorf("config section [data]: %w", err)
	}
	if err := file.Section("preprocess").MapTo(&cfg.Preprocess); err != nil {
		return Config{}, fmt.Errorf("config section [preprocess]: %w", err)
	}
	if err := file.Section("windows").MapTo(&cfg.Windows); err != nil {
		return Config{}, fmt.Errorf("config section [windows]: %w", err)
	}
	if err := file.Section("output").MapTo(&cfg.Output); err != nil {
		return Config{}, fmt.Errorf("config section [output]: %w", err)
	}
	if err := file.Section("plot").MapTo(&cfg.Plot); err != nil {
		return Config{}, fmt.Errorf("config section [plot]: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Data.NameColumn < 0 || c.Data.ValueColumn < 0 {
		return fmt.Errorf("column indices must be non-negative")
	}
	if c.Data.NameColumn == c.Data.ValueColumn {
		return fmt.Errorf("name and value columns must differ")
	}
	if c.Windows.InputMonths <= 0 || c.Windows.OutputMonths <= 0 || c.Windows.StepMonths <= 0 {
		return fmt.Errorf("window lengths and step must be positive")
	}
	if c.Preprocess.OutlierZ <= 0 {
		return fmt.Errorf("outlier_z must be positive")
	}
	if c.Preprocess.Smooth && c.Preprocess.SmoothLen <= 0 {
		return fmt.Errorf("smooth_len must be positive when smoothing is on")
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("plot dimensions must be positive")
	}
	return nil
}
