package app

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
)

// Summary describes the distribution of values in a fetch grid.
type Summary struct {
	Cells      int
	Valid      int
	Obstructed int
	Open       int

	// Distance statistics over obstructed cells.
	MinDistance  float64
	MaxDistance  float64
	MeanDistance float64

	// MaxOpenReach is the longest unobstructed distance to the grid edge.
	MaxOpenReach float64
}

// Summarize computes a Summary for fetch values with the given NoData.
func Summarize(values []float64, nodata float64) Summary {
	s := Summary{Cells: len(values)}
	var hits, open []float64
	for _, v := range values {
		switch {
		case v == nodata:
			continue
		case v > 0:
			hits = append(hits, v)
		default:
			open = append(open, math.Abs(v))
		}
	}
	s.Obstructed = len(hits)
	s.Open = len(open)
	s.Valid = s.Obstructed + s.Open
	if len(hits) > 0 {
		s.MinDistance = floats.Min(hits)
		s.MaxDistance = floats.Max(hits)
		s.MeanDistance = floats.Sum(hits) / float64(len(hits))
	}
	if len(open) > 0 {
		s.MaxOpenReach = floats.Max(open)
	}
	return s
}

// ObstructedFraction is the share of valid cells that found an obstacle.
func (s Summary) ObstructedFraction() float64 {
	if s.Valid == 0 {
		return 0
	}
	return float64(s.Obstructed) / float64(s.Valid)
}

var printer = message.NewPrinter(language.English)

// String renders the summary for humans, with grouped thousands.
func (s Summary) String() string {
	return printer.Sprintf("%d valid of %d cells, %d obstructed (%.1f%%), obstacle distance min %.2f mean %.2f max %.2f, open reach %.2f",
		s.Valid, s.Cells, s.Obstructed, 100*s.ObstructedFraction(),
		s.MinDistance, s.MeanDistance, s.MaxDistance, s.MaxOpenReach)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
