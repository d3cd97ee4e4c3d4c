package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind-fetch/internal/core"
	"wind-fetch/internal/render"
)

func TestSceneReadout(t *testing.T) {
	size := core.Size{W: 3, H: 2}
	fetch := FetchLayer([]float64{-9999, 12.5, -20, 0, 40, 7}, -9999)
	elev := ElevationLayer([]float64{1, 2, 3, 4, 5, -9999}, -9999)

	s, err := NewScene("demo", size, []string{"Azimuth: 90"}, fetch, elev)
	require.NoError(t, err)

	assert.Equal(t, "row 0 col 0: nodata", s.Readout(0, 0, 0))
	assert.Equal(t, "row 0 col 1: obstacle at 12.5", s.Readout(0, 1, 0))
	assert.Equal(t, "row 0 col 2: open, 20.0 to edge", s.Readout(0, 2, 0))
	assert.Equal(t, "row 1 col 1: elevation 5.00", s.Readout(1, 1, 1))
	assert.Equal(t, "row 1 col 2: nodata", s.Readout(1, 2, 1))
	assert.Empty(t, s.Readout(0, 3, 0))
	assert.Empty(t, s.Readout(0, 0, -1))

	// layer index wraps both ways
	assert.Equal(t, "elevation", s.Layer(3).Name)
	assert.Equal(t, "elevation", s.Layer(-1).Name)
}

func TestSceneShades(t *testing.T) {
	fetch := FetchLayer([]float64{-9999, 10, -5}, -9999)
	assert.Equal(t, []uint8{render.ShadeNoData, render.ShadeFar, render.ShadeOpen}, fetch.Shades)
	assert.True(t, fetch.Fetch)
}

func TestNewSceneRejectsMismatch(t *testing.T) {
	_, err := NewScene("bad", core.Size{W: 2, H: 2}, nil, FetchLayer([]float64{1, 2, 3}, -1))
	assert.ErrorIs(t, err, ErrLayerSize)

	_, err = NewScene("empty", core.Size{W: 1, H: 1}, nil)
	assert.Error(t, err)
}
