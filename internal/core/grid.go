package core

// FloatGrid stores a 2D grid of float64 cell values in row-major order.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a grid with the given dimensions and fills every
// cell with fill.
func NewFloatGrid(w, h int, fill float64) *FloatGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
	g.Fill(fill)
	return g
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *FloatGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Row returns the slice backing row y. Writes through it modify the grid.
func (g *FloatGrid) Row(y int) []float64 {
	return g.data[y*g.W : (y+1)*g.W]
}

// Fill sets every cell to v.
func (g *FloatGrid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}
