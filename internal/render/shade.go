// Package render turns fetch and elevation grids into grey images.
package render

import "math"

// Shade levels. NoData cells map to ShadeNoData, unobstructed fetch cells
// to ShadeOpen and obstacle distances to [ShadeNear, ShadeFar].
const (
	ShadeNoData uint8 = 0
	ShadeNear   uint8 = 1
	ShadeFar    uint8 = 254
	ShadeOpen   uint8 = 255
)

// ShadeFetch maps fetch distances to grey levels. Larger distances to an
// obstacle are lighter; cells with no obstacle (values <= 0) are white.
func ShadeFetch(values []float64, nodata float64) []uint8 {
	var longest float64
	for _, v := range values {
		if v != nodata && v > longest {
			longest = v
		}
	}
	out := make([]uint8, len(values))
	for i, v := range values {
		switch {
		case v == nodata:
			out[i] = ShadeNoData
		case v <= 0:
			out[i] = ShadeOpen
		default:
			out[i] = scale(v/longest, ShadeNear, ShadeFar)
		}
	}
	return out
}

// ShadeElevation stretches elevations linearly between their minimum and
// maximum.
func ShadeElevation(values []float64, nodata float64) []uint8 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v == nodata {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	out := make([]uint8, len(values))
	for i, v := range values {
		if v == nodata {
			out[i] = ShadeNoData
			continue
		}
		t := 0.0
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		out[i] = scale(t, ShadeNear, ShadeOpen)
	}
	return out
}

func scale(t float64, lo, hi uint8) uint8 {
	t = math.Max(0, math.Min(1, t))
	return lo + uint8(math.Round(t*float64(hi-lo)))
}
