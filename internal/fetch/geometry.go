package fetch

import "math"

// Georef carries the parts of a grid's georeferencing that the ray geometry
// depends on.
type Georef struct {
	ResolutionX float64
	ResolutionY float64
	North       float64
	South       float64
	Geographic  bool
}

// metresPerDegree converts angular cell sizes into an approximate planar
// distance at the equator.
const metresPerDegree = 113200.0

// Geometry holds the per-run ray parameters shared by every worker.
type Geometry struct {
	// Azimuth is the sanitized azimuth in degrees.
	Azimuth float64
	// LineSlope is the slope of the ray in (column, -row) space.
	LineSlope float64
	// CellSize is the planar length of one cell step.
	CellSize float64
	// XStep and YStep are the signed unit steps taken across vertical and
	// horizontal grid lines. YStep is expressed in -row space, so +1 moves
	// north.
	XStep int
	YStep int
}

// SanitizeAzimuth moves azimuths that would produce degenerate ray slopes
// to the nearest usable value:
//
//	az < 0 or az > 360  -> 0.1
//	az == 0             -> 0.1
//	az == 180           -> 179.9
//	az == 360           -> 359.9
//
// All other values are returned unchanged. The correction is silent.
func SanitizeAzimuth(az float64) float64 {
	switch {
	case az > 360 || az < 0:
		return 0.1
	case az == 0:
		return 0.1
	case az == 180:
		return 179.9
	case az == 360:
		return 359.9
	}
	return az
}

// NewGeometry derives the ray geometry for azimuth over a grid described by
// ref. The azimuth is sanitized first.
func NewGeometry(azimuth float64, ref Georef) Geometry {
	az := SanitizeAzimuth(azimuth)
	g := Geometry{
		Azimuth:  az,
		CellSize: cellSize(ref),
	}
	if az < 180 {
		g.LineSlope = math.Tan(degToRad(90 - az))
	} else {
		g.LineSlope = math.Tan(degToRad(270 - az))
	}
	g.XStep, g.YStep = quadrantSteps(az)
	return g
}

func cellSize(ref Georef) float64 {
	size := (ref.ResolutionX + ref.ResolutionY) / 2
	if !ref.Geographic {
		return size
	}
	midLat := (ref.North + ref.South) / 2
	if midLat >= -90 && midLat <= 90 {
		size *= metresPerDegree * math.Cos(degToRad(midLat))
	}
	return size
}

func quadrantSteps(az float64) (int, int) {
	switch {
	case az > 0 && az <= 90:
		return 1, 1
	case az <= 180:
		return 1, -1
	case az <= 270:
		return -1, -1
	default:
		return -1, 1
	}
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
