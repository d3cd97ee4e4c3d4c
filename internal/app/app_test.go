package app

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind-fetch/internal/raster"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestConfigBindDefaultsAndAliases(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-dem", "in.asc", "-output", "out.asc", "-azimuth", "315", "-workers", "3"}))

	assert.Equal(t, "in.asc", cfg.Input)
	assert.Equal(t, "out.asc", cfg.Output)
	assert.Equal(t, 315.0, cfg.Azimuth)
	assert.Equal(t, 0.05, cfg.HeightIncrement)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, CoordsAuto, cfg.Coords)
	assert.True(t, cfg.Metadata)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingInput)
	cfg.Input = "in.asc"
	assert.ErrorIs(t, cfg.Validate(), ErrMissingOutput)
	cfg.Output = "out.asc"
	cfg.HeightIncrement = -1
	assert.ErrorIs(t, cfg.Validate(), ErrNegativeHeightIncrement)
	cfg.HeightIncrement = 0
	cfg.Coords = "mercator"
	assert.ErrorIs(t, cfg.Validate(), ErrBadOption)
	cfg.Coords = CoordsPlanar
	cfg.LogFormat = "xml"
	assert.ErrorIs(t, cfg.Validate(), ErrBadOption)

	// azimuths are corrected, never rejected
	cfg.LogFormat = "json"
	cfg.Azimuth = -40
	assert.NoError(t, cfg.Validate())
}

// writeDEM stores a 3 x 9 planar DEM with a wall in column 6.
func writeDEM(t *testing.T, dir string) string {
	t.Helper()
	dem := raster.New(raster.Config{
		Rows: 3, Columns: 9, NoData: -9999,
		West: 0, South: 0, East: 90, North: 30,
	})
	for row := 0; row < 3; row++ {
		for col := 0; col < 9; col++ {
			dem.SetValue(row, col, 10)
		}
		dem.SetValue(row, 6, 60)
	}
	dem.SetValue(0, 0, -9999)
	dem.FileName = filepath.Join(dir, "dem.asc")
	require.NoError(t, dem.Write())
	return dem.FileName
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = writeDEM(t, dir)
	cfg.Output = filepath.Join(dir, "fetch.asc.zst")
	cfg.Preview = filepath.Join(dir, "fetch.tif")
	cfg.Azimuth = 90
	cfg.Workers = 2

	rep, err := Run(cfg, discard())
	require.NoError(t, err)
	assert.Equal(t, 90.0, rep.Geometry.Azimuth)
	assert.Equal(t, 10.0, rep.Geometry.CellSize)
	assert.Equal(t, 26, rep.Summary.Valid)

	out, err := raster.Open(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, -9999.0, out.Value(0, 0))
	assert.InDelta(t, 50.0, out.Value(1, 1), 1e-9)
	assert.InDelta(t, -20.0, out.Value(1, 6), 1e-9)
	assert.InDelta(t, 0.0, out.Value(2, 8), 1e-9)

	doc, err := raster.ReadMetadata(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "grey", doc.Palette)
	assert.Contains(t, doc.Metadata, "Azimuth: 90")
	assert.Contains(t, doc.Metadata, "Height increment: 0.05")
	assert.Contains(t, doc.Metadata, "Input file: "+cfg.Input)

	info, err := os.Stat(cfg.Preview)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRunInputErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = filepath.Join(dir, "missing.asc")
	cfg.Output = filepath.Join(dir, "fetch.asc")

	_, err := Run(cfg, discard())
	require.ErrorIs(t, err, os.ErrNotExist)
	_, statErr := os.Stat(cfg.Output)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestRunOutputFormatError(t *testing.T) {
	dir := t.TempDir()
	cfg := NewConfig()
	cfg.Input = writeDEM(t, dir)
	cfg.Output = filepath.Join(dir, "N00E000.hgt")

	_, err := Run(cfg, discard())
	assert.ErrorIs(t, err, raster.ErrReadOnlyFormat)
}

func TestLoadDEMCoordsOverride(t *testing.T) {
	path := writeDEM(t, t.TempDir())
	dem, err := LoadDEM(path, CoordsGeographic, discard())
	require.NoError(t, err)
	assert.True(t, dem.IsInGeographicCoordinates())
	assert.True(t, Georef(dem).Geographic)

	dem, err = LoadDEM(path, CoordsAuto, discard())
	require.NoError(t, err)
	assert.False(t, dem.IsInGeographicCoordinates())
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{-9999, 10, 30, -50, -0, 20}, -9999)
	assert.Equal(t, 6, s.Cells)
	assert.Equal(t, 5, s.Valid)
	assert.Equal(t, 3, s.Obstructed)
	assert.Equal(t, 2, s.Open)
	assert.Equal(t, 10.0, s.MinDistance)
	assert.Equal(t, 30.0, s.MaxDistance)
	assert.Equal(t, 20.0, s.MeanDistance)
	assert.Equal(t, 50.0, s.MaxOpenReach)
	assert.InDelta(t, 0.6, s.ObstructedFraction(), 1e-12)
	assert.Contains(t, s.String(), "5 valid of 6 cells")

	empty := Summarize(nil, -9999)
	assert.Zero(t, empty.ObstructedFraction())
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "json", false)
	log.Debug("hidden")
	log.Info("shown", "rows", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, float64(3), rec["rows"])
}

func TestSyntheticDEMComputes(t *testing.T) {
	dem := SyntheticDEM(20, 30, 5, 42)
	assert.Equal(t, 20, dem.Rows())
	assert.Equal(t, 30, dem.Columns())
	assert.Equal(t, 5.0, dem.Configs.ResolutionX)
	assert.False(t, dem.IsInGeographicCoordinates())

	cfg := NewConfig()
	out, rep, err := Compute(dem, "", 225, cfg, discard())
	require.NoError(t, err)
	assert.Equal(t, 600, len(out.Values()))
	assert.Equal(t, 5.0, rep.Geometry.CellSize)
	assert.Equal(t, rep.Summary.Valid, rep.Summary.Obstructed+rep.Summary.Open)
}
