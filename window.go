package prep

import (
	"fmt"
	"math/rand"
)

// Window pairs a fixed-length model input with the readings that follow it.
type Window struct {
	Input  []float64
	Output []float64
}

// SliceWindows cuts a cleaned series into windows: inputs of length in,
// outputs of length out, starts advancing by step. A window starting at i is
// kept only when i+in+out < len(values); a window that merely touches the end
// of the series is discarded.
func SliceWindows(values []float64, in, out, step int) ([]Window, error) {
	if in <= 0 || out <= 0 {
		return nil, fmt.Errorf("window lengths must be positive, got in=%d out=%d", in, out)
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}
	var windows []Window
	for i := 0; i < len(values); i += step {
		end := i + in + out
		if end >= len(values) {
			continue
		}
		windows = append(windows, Window{
			Input:  values[i : i+in],
			Output: values[i+in : end],
		})
	}
	return windows, nil
}

// SliceWells windows every well in sorted name order and pools the result.
func SliceWells(wells Wells, cfg WindowConfig) ([]Window, error) {
	var windows []Window
	for _, name := range wells.Names() {
		ws, err := SliceWindows(wells[name], cfg.InputMonths, cfg.OutputMonths, cfg.StepMonths)
		if err != nil {
			return nil, fmt.Errorf("well %s: %w", name, err)
		}
		windows = append(windows, ws...)
	}
	return windows, nil
}

// ShuffleWindows permutes windows in place with a PRNG seeded by seed, so a
// fixed seed always yields the same dataset split.
func ShuffleWindows(windows []Window, seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	rnd.Shuffle(len(windows), func(i, j int) {
		windows[i], windows[j] = windows[j], windows[i]
	})
}
