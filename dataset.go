package prep

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
)

var ErrNoMoreWindows = errors.New("no more windows")

// Set holds paired input and output windows, one row per window.
type Set struct {
	Inputs  [][]float64
	Outputs [][]float64
}

func (s Set) Len() int {
	return len(s.Inputs)
}

// Windows rebuilds the window view of a set.
func (s Set) Windows() []Window {
	windows := make([]Window, len(s.Inputs))
	for i := range s.Inputs {
		windows[i] = Window{Input: s.Inputs[i], Output: s.Outputs[i]}
	}
	return windows
}

// Datasets is the persisted artifact: train, validation and test sets split
// 6:1:1 from the shuffled window pool.
type Datasets struct {
	Train Set
	Valid Set
	Test  Set
}

// SplitWindows splits windows 6:1:1. Boundaries use integer arithmetic
// (6n/8 and 7n/8), so small pools round toward the training set rather than
// strictly proportionally.
func SplitWindows(windows []Window) Datasets {
	n := len(windows)
	a := 6 * n / 8
	b := 7 * n / 8
	return Datasets{
		Train: toSet(windows[:a]),
		Valid: toSet(windows[a:b]),
		Test:  toSet(windows[b:]),
	}
}

func toSet(windows []Window) Set {
	s := Set{
		Inputs:  make([][]float64, len(windows)),
		Outputs: make([][]float64, len(windows)),
	}
	for i, w := range windows {
		s.Inputs[i] = w.Input
		s.Outputs[i] = w.Output
	}
	return s
}

// WriteDatasets serializes the three sets as one gzip-compressed gob stream.
func WriteDatasets(path string, ds Datasets) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if err := gob.NewEncoder(gz).Encode(ds); err != nil {
		gz.Close()
		return fmt.Errorf("encode datasets: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return file.Close()
}

// ReadDatasets reverses WriteDatasets.
func ReadDatasets(path string) (Datasets, error) {
	file, err := os.Open(path)
	if err != nil {
		return Datasets{}, err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return Datasets{}, fmt.Errorf("open gzip %s: %w", path, err)
	}
	defer gz.Close()

	var ds Datasets
	if err := gob.NewDecoder(gz).Decode(&ds); err != nil {
		return Datasets{}, fmt.Errorf("decode datasets: %w", err)
	}
	return ds, nil
}

// WindowIterator replays windows one-by-one for a training-loop consumer.
type WindowIterator struct {
	windows []Window
	index   int
}

func NewWindowIterator(windows []Window) (*WindowIterator, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("windows are empty")
	}
	return &WindowIterator{windows: windows}, nil
}

// NewSetIterator replays a persisted set, e.g. the training set of a loaded
// archive.
func NewSetIterator(s Set) (*WindowIterator, error) {
	return NewWindowIterator(s.Windows())
}

func (it *WindowIterator) Next() (Window, error) {
	if it.index >= len(it.windows) {
		return Window{}, ErrNoMoreWindows
	}
	w := it.windows[it.index]
	it.index++
	return w, nil
}

func (it *WindowIterator) Remaining() int {
	return len(it.windows) - it.index
}

func (it *WindowIterator) Windows() []Window {
	out := make([]Window, len(it.windows))
	copy(out, it.windows)
	return out
}
