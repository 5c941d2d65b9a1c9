package prep

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CleanSeries applies the preprocessing policy to one well's readings and
// reports whether the series survived. A series is dropped when its
// population standard deviation is zero, checked once after zero removal and
// again after smoothing. The input slice is not modified.
func CleanSeries(values []float64, cfg PreprocessConfig) ([]float64, bool) {
	var series []float64
	if cfg.RemoveZeros {
		series = make([]float64, 0, len(values))
		for _, v := range values {
			if v != 0 {
				series = append(series, v)
			}
		}
	} else {
		series = append([]float64(nil), values...)
	}
	if len(series) == 0 || stat.PopStdDev(series, nil) == 0 {
		return nil, false
	}

	if cfg.RemoveOutliers {
		series = removeOutliers(series, cfg.OutlierZ)
	}
	if cfg.Smooth {
		series = movingAverage(series, cfg.SmoothLen)
	}
	if len(series) == 0 || stat.PopStdDev(series, nil) == 0 {
		return nil, false
	}

	if cfg.Normalize {
		normalize(series)
	}
	return series, true
}

// CleanWells cleans every series and drops wells whose series did not
// survive. Returns the cleaned wells and the names of dropped wells.
func CleanWells(wells Wells, cfg PreprocessConfig) (Wells, []string) {
	cleaned := make(Wells, len(wells))
	var dropped []string
	for _, name := range wells.Names() {
		series, ok := CleanSeries(wells[name], cfg)
		if !ok {
			dropped = append(dropped, name)
			continue
		}
		cleaned[name] = series
	}
	return cleaned, dropped
}

// removeOutliers keeps values within z population standard deviations of the
// mean. Mean and deviation come from the series as passed in, so the fence
// reflects the zero-filtered data.
func removeOutliers(values []float64, z float64) []float64 {
	mean := stat.Mean(values, nil)
	std := stat.PopStdDev(values, nil)
	fence := z * std
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if math.Abs(v-mean) <= fence {
			kept = append(kept, v)
		}
	}
	return kept
}

// movingAverage smooths with a length-k box filter in "valid" mode: the
// result has len(values)-k+1 points. Series shorter than k vanish.
func movingAverage(values []float64, k int) []float64 {
	if k <= 1 {
		return values
	}
	if len(values) < k {
		return nil
	}
	out := make([]float64, len(values)-k+1)
	for i := range out {
		out[i] = stat.Mean(values[i:i+k], nil)
	}
	return out
}

// normalize standardizes in place to zero mean and unit population variance.
func normalize(values []float64) {
	mean := stat.Mean(values, nil)
	std := stat.PopStdDev(values, nil)
	floats.AddConst(-mean, values)
	floats.Scale(1/std, values)
}
