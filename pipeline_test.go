package prep

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wellCSV builds a production file for one well with a slow ramp so the
// series survives the flat-series check.
func wellCSV(name string, months int) string {
	var b strings.Builder
	b.WriteString("district,field,lease,well,oil\n")
	for i := 0; i < months; i++ {
		fmt.Fprintf(&b, "1,F,L,%s,%.2f\n", name, 100+float64(i)+float64(i%5))
	}
	return b.String()
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "alpha.csv", wellCSV("alpha", 120))
	writeFile(t, dir, "beta.csv", wellCSV("beta", 150))

	cfg := DefaultConfig()
	cfg.Data.Dir = dir
	cfg.Output.Path = filepath.Join(t.TempDir(), "datasets.gob.gz")
	return cfg
}

func TestPipelineRun(t *testing.T) {
	cfg := testConfig(t)
	ds, err := NewPipeline(cfg, nil).Run()
	require.NoError(t, err)

	total := ds.Train.Len() + ds.Valid.Len() + ds.Test.Len()
	// alpha: starts 0,24,48 with end<120 -> 3; beta: 0..96 step 24 with
	// end<150 -> 5
	assert.Equal(t, 8, total)
	assert.Equal(t, 6, ds.Train.Len())

	for _, in := range ds.Train.Inputs {
		assert.Len(t, in, cfg.Windows.InputMonths)
	}
	for _, out := range ds.Train.Outputs {
		assert.Len(t, out, cfg.Windows.OutputMonths)
	}

	got, err := ReadDatasets(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestPipelineRunDeterministic(t *testing.T) {
	cfg := testConfig(t)
	a, err := NewPipeline(cfg, nil).Run()
	require.NoError(t, err)
	b, err := NewPipeline(cfg, nil).Run()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPipelineRunNoSurvivingWells(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "flat.csv", "h0,h1,h2,h3,h4\n1,F,L,flat,5\n1,F,L,flat,5\n1,F,L,flat,5\n")

	cfg := DefaultConfig()
	cfg.Data.Dir = dir
	_, err := NewPipeline(cfg, nil).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no wells survived")
}

func TestPipelineRunSeriesTooShort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "short.csv", wellCSV("short", 40))

	cfg := DefaultConfig()
	cfg.Data.Dir = dir
	_, err := NewPipeline(cfg, nil).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no windows produced")
}

func TestCleanedWellsAndStats(t *testing.T) {
	cfg := testConfig(t)
	wells, err := NewPipeline(cfg, nil).CleanedWells()
	require.NoError(t, err)

	stats := Stats(wells)
	require.Len(t, stats, 2)
	assert.Equal(t, "alpha", stats[0].Name)
	assert.Equal(t, "beta", stats[1].Name)
	// normalized series
	assert.InDelta(t, 0, stats[0].Mean, 1e-9)
	assert.InDelta(t, 1, stats[0].Std, 1e-9)
	assert.Less(t, stats[0].Min, stats[0].Max)
}
