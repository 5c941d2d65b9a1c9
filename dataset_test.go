package prep

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitWindowsRatios(t *testing.T) {
	windows, err := SliceWindows(seq(100), 2, 1, 2)
	require.NoError(t, err)
	require.Len(t, windows, 49)

	ds := SplitWindows(windows)
	// 6*49/8 = 36, 7*49/8 = 42
	assert.Equal(t, 36, ds.Train.Len())
	assert.Equal(t, 6, ds.Valid.Len())
	assert.Equal(t, 7, ds.Test.Len())
	assert.Equal(t, 49, ds.Train.Len()+ds.Valid.Len()+ds.Test.Len())
}

func TestSplitWindowsEightWindows(t *testing.T) {
	windows, err := SliceWindows(seq(27), 2, 1, 3)
	require.NoError(t, err)
	require.Len(t, windows, 8)

	ds := SplitWindows(windows)
	assert.Equal(t, 6, ds.Train.Len())
	assert.Equal(t, 1, ds.Valid.Len())
	assert.Equal(t, 1, ds.Test.Len())

	// split preserves order: the validation window is the seventh
	assert.Equal(t, windows[6].Input, ds.Valid.Inputs[0])
	assert.Equal(t, windows[6].Output, ds.Valid.Outputs[0])
}

func TestSplitWindowsEmpty(t *testing.T) {
	ds := SplitWindows(nil)
	assert.Zero(t, ds.Train.Len())
	assert.Zero(t, ds.Valid.Len())
	assert.Zero(t, ds.Test.Len())
}

func TestWriteReadDatasetsRoundTrip(t *testing.T) {
	windows, err := SliceWindows(seq(50), 3, 2, 2)
	require.NoError(t, err)
	ShuffleWindows(windows, 42)
	ds := SplitWindows(windows)

	path := filepath.Join(t.TempDir(), "datasets.gob.gz")
	require.NoError(t, WriteDatasets(path, ds))

	got, err := ReadDatasets(path)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestReadDatasetsMissingFile(t *testing.T) {
	_, err := ReadDatasets(filepath.Join(t.TempDir(), "nope.gob.gz"))
	assert.Error(t, err)
}

func TestSetWindowsRoundTrip(t *testing.T) {
	windows, err := SliceWindows(seq(30), 2, 1, 2)
	require.NoError(t, err)
	s := toSet(windows)
	assert.Equal(t, windows, s.Windows())
}

func TestWindowIterator(t *testing.T) {
	windows, err := SliceWindows(seq(20), 2, 1, 3)
	require.NoError(t, err)
	require.NotEmpty(t, windows)

	it, err := NewWindowIterator(windows)
	require.NoError(t, err)
	assert.Equal(t, len(windows), it.Remaining())

	var seen []Window
	for {
		w, err := it.Next()
		if errors.Is(err, ErrNoMoreWindows) {
			break
		}
		require.NoError(t, err)
		seen = append(seen, w)
	}
	assert.Equal(t, windows, seen)
	assert.Zero(t, it.Remaining())

	// Windows() hands out a copy
	ws := it.Windows()
	ws[0].Input = nil
	assert.NotNil(t, it.Windows()[0].Input)
}

func TestWindowIteratorEmpty(t *testing.T) {
	_, err := NewWindowIterator(nil)
	assert.Error(t, err)

	_, err = NewSetIterator(Set{})
	assert.Error(t, err)
}

func TestNewSetIterator(t *testing.T) {
	windows, err := SliceWindows(seq(20), 2, 1, 3)
	require.NoError(t, err)
	it, err := NewSetIterator(toSet(windows))
	require.NoError(t, err)

	first, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, windows[0], first)
}
