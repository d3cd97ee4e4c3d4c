package fetch

import (
	"fmt"
	"sync"
)

const testNoData = -9999.0

// memGrid is an in-memory surface that doubles as an output sink.
type memGrid struct {
	rows, cols int
	nodata     float64
	data       []float64

	mu      sync.Mutex
	written map[int]int
	order   []int
}

func newMemGrid(rows, cols int, fill float64) *memGrid {
	g := &memGrid{rows: rows, cols: cols, nodata: testNoData, data: make([]float64, rows*cols), written: map[int]int{}}
	for i := range g.data {
		g.data[i] = fill
	}
	return g
}

func (g *memGrid) Rows() int       { return g.rows }
func (g *memGrid) Columns() int    { return g.cols }
func (g *memGrid) NoData() float64 { return g.nodata }

func (g *memGrid) Value(row, col int) float64 {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return g.nodata
	}
	return g.data[row*g.cols+col]
}

func (g *memGrid) set(row, col int, v float64) { g.data[row*g.cols+col] = v }

func (g *memGrid) SetRowData(row int, values []float64) error {
	if len(values) != g.cols {
		return fmt.Errorf("row %d has %d values, want %d", row, len(values), g.cols)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	copy(g.data[row*g.cols:], values)
	g.written[row]++
	g.order = append(g.order, row)
	return nil
}

func planar(size float64) Georef {
	return Georef{ResolutionX: size, ResolutionY: size}
}
