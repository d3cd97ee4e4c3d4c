// Package terrain generates deterministic synthetic elevation models for
// tests and demos.
package terrain

import "math"

// Options controls Generate.
type Options struct {
	Seed int64
	// NoData is the sentinel written to void cells.
	NoData float64
	// NoDataFraction is the probability that a cell is a void.
	NoDataFraction float64
	// Relief is the height of the tallest hill. Defaults to 100.
	Relief float64
	// Hills is the number of hills. Defaults to one per 200 cells, at least 3.
	Hills int
}

// DEM is a generated elevation model in row-major order.
type DEM struct {
	Rows    int
	Columns int
	NoData  float64
	Values  []float64
}

// Value returns the elevation at (row, col).
func (d *DEM) Value(row, col int) float64 { return d.Values[row*d.Columns+col] }

type hill struct {
	row, col float64
	height   float64
	radius   float64
}

// Generate builds a rows x cols surface made of Gaussian hills over a gently
// tilted plane with a little noise. The same seed always yields the same
// surface.
func Generate(rows, cols int, opts Options) *DEM {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	relief := opts.Relief
	if relief <= 0 {
		relief = 100
	}
	n := opts.Hills
	if n <= 0 {
		n = rows * cols / 200
		if n < 3 {
			n = 3
		}
	}

	rng := NewRNG(opts.Seed)
	hills := make([]hill, n)
	span := math.Max(float64(rows), float64(cols))
	for i := range hills {
		hills[i] = hill{
			row:    rng.Range(0, float64(rows)),
			col:    rng.Range(0, float64(cols)),
			height: rng.Range(0.2, 1) * relief,
			radius: rng.Range(0.05, 0.25) * span,
		}
	}
	tilt := rng.Range(-0.5, 0.5)

	dem := &DEM{Rows: rows, Columns: cols, NoData: opts.NoData, Values: make([]float64, rows*cols)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if rng.Chance(opts.NoDataFraction) {
				dem.Values[idx] = opts.NoData
				continue
			}
			z := tilt*float64(c) + rng.Range(0, relief*0.01)
			for _, h := range hills {
				dr := float64(r) - h.row
				dc := float64(c) - h.col
				z += h.height * math.Exp(-(dr*dr+dc*dc)/(2*h.radius*h.radius))
			}
			dem.Values[idx] = z
		}
	}
	return dem
}
