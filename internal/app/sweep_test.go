package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind-fetch/internal/raster"
)

func TestSweepPlanAzimuths(t *testing.T) {
	p := SweepPlan{Directions: 4}
	assert.Equal(t, []float64{0, 90, 180, 270}, p.ResolveAzimuths())

	p.Azimuths = []float64{300, 45}
	assert.Equal(t, []float64{45, 300}, p.ResolveAzimuths())

	p.Prefix = "out/fetch"
	assert.Equal(t, "out/fetch_22.5.asc", p.OutputPath(22.5))
	p.Ext = ".asc.zst"
	assert.Equal(t, "out/fetch_90.asc.zst", p.OutputPath(90))
}

func TestLoadSweepPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	doc := "input: dem.asc\nprefix: out/fetch\nazimuths: [0, 90]\nheight_increment: 0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	plan, err := LoadSweepPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "dem.asc", plan.Input)
	assert.Equal(t, []float64{0, 90}, plan.Azimuths)
	require.NotNil(t, plan.HeightIncrement)
	assert.Equal(t, 0.1, *plan.HeightIncrement)

	_, err = LoadSweepPlan(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSweepWritesOneGridPerDirection(t *testing.T) {
	dir := t.TempDir()
	plan := SweepPlan{
		Input:      writeDEM(t, dir),
		Prefix:     filepath.Join(dir, "fetch"),
		Directions: 4,
	}
	cfg := NewConfig()
	cfg.Workers = 2

	reports, err := Sweep(plan, cfg, 3, discard())
	require.NoError(t, err)
	require.Len(t, reports, 4)

	// north is sanitized before the run and reported as such
	assert.Equal(t, 0.1, reports[0].Geometry.Azimuth)
	assert.Equal(t, 90.0, reports[1].Geometry.Azimuth)
	assert.Equal(t, 179.9, reports[2].Geometry.Azimuth)

	for _, az := range []float64{0, 90, 180, 270} {
		r, err := raster.Open(plan.OutputPath(az))
		require.NoError(t, err, "azimuth %v", az)
		assert.Equal(t, 27, len(r.Values()))
	}

	east, err := raster.Open(plan.OutputPath(90))
	require.NoError(t, err)
	assert.InDelta(t, 50.0, east.Value(1, 1), 1e-9)
}

func TestSweepRejectsEmptyPlan(t *testing.T) {
	cfg := NewConfig()
	_, err := Sweep(SweepPlan{Input: "dem.asc", Prefix: "x"}, cfg, 1, discard())
	assert.ErrorIs(t, err, ErrNoAzimuths)
	_, err = Sweep(SweepPlan{Prefix: "x", Directions: 2}, cfg, 1, discard())
	assert.ErrorIs(t, err, ErrMissingInput)
}
