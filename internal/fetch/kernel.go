package fetch

import "math"

// Surface is the read-only elevation grid sampled by the kernel. Value must
// be safe for concurrent use by multiple goroutines.
type Surface interface {
	Rows() int
	Columns() int
	NoData() float64
	Value(row, col int) float64
}

// walkState is the state of a single grid-line walk.
type walkState uint8

const (
	walking walkState = iota
	stoppedBoundary
	stoppedObstacle
)

func (s walkState) String() string {
	switch s {
	case walking:
		return "walking"
	case stoppedBoundary:
		return "stopped-boundary"
	case stoppedObstacle:
		return "stopped-obstacle"
	}
	return "unknown"
}

// walkResult is the terminal state of a walk and the distance it ended at:
// the obstacle distance for stoppedObstacle, otherwise the last in-bounds
// sample distance (0 when nothing was sampled).
type walkResult struct {
	state walkState
	dist  float64
}

func (r walkResult) found() bool { return r.state == stoppedObstacle }

// Kernel computes fetch distances for individual source cells.
type Kernel struct {
	src             Surface
	geom            Geometry
	heightIncrement float64

	rows, cols int
	nodata     float64
}

// NewKernel returns a kernel that marches rays over src.
func NewKernel(src Surface, geom Geometry, heightIncrement float64) *Kernel {
	return &Kernel{
		src:             src,
		geom:            geom,
		heightIncrement: heightIncrement,
		rows:            src.Rows(),
		cols:            src.Columns(),
		nodata:          src.NoData(),
	}
}

// Distance returns the fetch distance from the cell at (row, col). A
// positive value is the distance to the first obstacle. A negative value
// means the ray left the grid unobstructed; its magnitude is the farthest
// distance sampled. NoData cells yield NoData.
func (k *Kernel) Distance(row, col int) float64 {
	current := k.src.Value(row, col)
	if current == k.nodata {
		return k.nodata
	}
	intercept := -float64(row) - k.geom.LineSlope*float64(col)
	v := k.walkVertical(row, col, current, intercept)
	h := k.walkHorizontal(row, col, current, intercept)
	return combine(v, h)
}

// FillRow writes the fetch distance of every cell in row into values, which
// must have one element per column.
func (k *Kernel) FillRow(row int, values []float64) {
	for col := range values {
		values[col] = k.Distance(row, col)
	}
}

func combine(v, h walkResult) float64 {
	switch {
	case v.found() && h.found():
		return math.Min(v.dist, h.dist)
	case v.found():
		return v.dist
	case h.found():
		return h.dist
	}
	return -math.Max(v.dist, h.dist)
}

// walkVertical samples the ray where it crosses successive columns.
func (k *Kernel) walkVertical(row, col int, current, intercept float64) walkResult {
	var last float64
	x := col
	for {
		x += k.geom.XStep
		if x < 0 || x >= k.cols {
			return walkResult{state: stoppedBoundary, dist: last}
		}
		y := -(k.geom.LineSlope*float64(x) + intercept)
		if y < 0 || y >= float64(k.rows) {
			return walkResult{state: stoppedBoundary, dist: last}
		}
		last = k.distance(float64(x-col), y-float64(row))
		if z, ok := k.sampleColumn(x, y); ok && k.obstructs(z, current, last) {
			return walkResult{state: stoppedObstacle, dist: last}
		}
	}
}

// walkHorizontal samples the ray where it crosses successive rows.
func (k *Kernel) walkHorizontal(row, col int, current, intercept float64) walkResult {
	if k.geom.LineSlope == 0 {
		// an east-west ray never meets a horizontal grid line
		return walkResult{state: stoppedBoundary}
	}
	var last float64
	y := -row
	for {
		y += k.geom.YStep
		r := -y
		if r < 0 || r >= k.rows {
			return walkResult{state: stoppedBoundary, dist: last}
		}
		x := (float64(y) - intercept) / k.geom.LineSlope
		if x < 0 || x >= float64(k.cols) {
			return walkResult{state: stoppedBoundary, dist: last}
		}
		last = k.distance(x-float64(col), float64(r-row))
		if z, ok := k.sampleRow(r, x); ok && k.obstructs(z, current, last) {
			return walkResult{state: stoppedObstacle, dist: last}
		}
	}
}

func (k *Kernel) obstructs(z, current, dist float64) bool {
	return z >= current+dist*k.heightIncrement
}

func (k *Kernel) distance(dx, dy float64) float64 {
	return math.Hypot(dx*k.geom.CellSize, dy*k.geom.CellSize)
}

// sampleColumn interpolates the elevation at fractional row y of column x.
func (k *Kernel) sampleColumn(x int, y float64) (float64, bool) {
	r1 := int(y)
	r2 := r1 + 1
	if r2 >= k.rows {
		r2 = r1
	}
	return k.interpolate(k.src.Value(r1, x), k.src.Value(r2, x), y-float64(r1))
}

// sampleRow interpolates the elevation at fractional column x of row r.
func (k *Kernel) sampleRow(r int, x float64) (float64, bool) {
	c1 := int(x)
	c2 := c1 + 1
	if c2 >= k.cols {
		c2 = c1
	}
	return k.interpolate(k.src.Value(r, c1), k.src.Value(r, c2), x-float64(c1))
}

// interpolate blends z1 and z2 linearly. A NoData bracket is replaced by
// its neighbour; when both are NoData there is no sample.
func (k *Kernel) interpolate(z1, z2, frac float64) (float64, bool) {
	switch {
	case z1 == k.nodata && z2 == k.nodata:
		return 0, false
	case z1 == k.nodata:
		return z2, true
	case z2 == k.nodata:
		return z1, true
	}
	return z1 + frac*(z2-z1), true
}
