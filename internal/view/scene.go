// Package view displays fetch and elevation grids in a window.
//
// Scene and Layer are plain data and build without the ebiten tag; the Game
// that draws them requires it.
package view

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"wind-fetch/internal/core"
	"wind-fetch/internal/render"
)

// ErrLayerSize indicates a layer whose cell count differs from the scene.
var ErrLayerSize = errors.New("view: layer size does not match scene")

// Layer is one displayable grid with its precomputed grey shades.
type Layer struct {
	Name   string
	Values []float64
	NoData float64
	Shades []uint8
	// Fetch marks a fetch grid, whose non-positive values mean no obstacle.
	Fetch bool
}

// FetchLayer shades a fetch grid.
func FetchLayer(values []float64, nodata float64) Layer {
	return Layer{Name: "fetch", Values: values, NoData: nodata, Shades: render.ShadeFetch(values, nodata), Fetch: true}
}

// ElevationLayer shades a DEM.
func ElevationLayer(values []float64, nodata float64) Layer {
	return Layer{Name: "elevation", Values: values, NoData: nodata, Shades: render.ShadeElevation(values, nodata)}
}

// Scene is what the viewer shows: a stack of same-sized layers and a few
// lines of run information for the side panel.
type Scene struct {
	Title  string
	Size   core.Size
	Layers []Layer
	Info   []string
}

// NewScene validates that every layer covers size.
func NewScene(title string, size core.Size, info []string, layers ...Layer) (*Scene, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("view: scene %q has no layers", title)
	}
	for _, l := range layers {
		if len(l.Values) != size.Cells() || len(l.Shades) != size.Cells() {
			return nil, fmt.Errorf("%w: %s has %d cells, want %d", ErrLayerSize, l.Name, len(l.Values), size.Cells())
		}
	}
	return &Scene{Title: title, Size: size, Layers: layers, Info: info}, nil
}

// Layer returns layer i, wrapping around the stack.
func (s *Scene) Layer(i int) Layer {
	n := len(s.Layers)
	return s.Layers[((i%n)+n)%n]
}

// Readout describes the cell under (x, y) in layer i, or returns "" when the
// point lies outside the grid.
func (s *Scene) Readout(i, x, y int) string {
	if x < 0 || y < 0 || x >= s.Size.W || y >= s.Size.H {
		return ""
	}
	l := s.Layer(i)
	v := l.Values[y*s.Size.W+x]
	pos := "row " + strconv.Itoa(y) + " col " + strconv.Itoa(x)
	switch {
	case v == l.NoData:
		return pos + ": nodata"
	case l.Fetch && v <= 0:
		return fmt.Sprintf("%s: open, %.1f to edge", pos, math.Abs(v))
	case l.Fetch:
		return fmt.Sprintf("%s: obstacle at %.1f", pos, v)
	default:
		return fmt.Sprintf("%s: %s %.2f", pos, l.Name, v)
	}
}
