package fetch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind-fetch/pkg/terrain"
)

func TestFlatGridEastIsUnobstructed(t *testing.T) {
	g := newMemGrid(3, 3, 10)
	k := NewKernel(g, NewGeometry(90, planar(1)), 0.05)

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			got := k.Distance(row, col)
			assert.LessOrEqual(t, got, 0.0, "cell (%d,%d)", row, col)
			assert.InDelta(t, float64(2-col), math.Abs(got), 1e-12, "cell (%d,%d)", row, col)
		}
	}
}

func TestObstacleAlongNearNorthRay(t *testing.T) {
	g := newMemGrid(8, 3, 0)
	g.set(1, 1, 100)
	geom := NewGeometry(0.1, planar(1))
	k := NewKernel(g, geom, 0.05)

	got := k.Distance(6, 1)
	require.Positive(t, got)

	slope := math.Tan((90 - 0.1) * math.Pi / 180)
	want := math.Hypot(5/slope, 5)
	assert.InDelta(t, want, got, 1e-9)
}

func TestObstacleDistanceScalesWithCellSize(t *testing.T) {
	g := newMemGrid(3, 9, 0)
	g.set(1, 6, 50)
	k := NewKernel(g, NewGeometry(90, planar(30)), 0.05)

	assert.InDelta(t, 5*30.0, k.Distance(1, 1), 1e-9)
	// cells east of the obstacle see open terrain to the edge
	assert.InDelta(t, -2*30.0, k.Distance(1, 6), 1e-9)
}

func TestUnobstructedSentinelUsesLongerWalk(t *testing.T) {
	g := newMemGrid(6, 9, 5)
	geom := NewGeometry(60, planar(2))
	k := NewKernel(g, geom, 0.05)

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			intercept := -float64(row) - geom.LineSlope*float64(col)
			v := k.walkVertical(row, col, 5, intercept)
			h := k.walkHorizontal(row, col, 5, intercept)
			require.Equal(t, stoppedBoundary, v.state)
			require.Equal(t, stoppedBoundary, h.state)
			assert.Equal(t, -math.Max(v.dist, h.dist), k.Distance(row, col))
		}
	}
}

func TestNoDataSourceIsSkipped(t *testing.T) {
	g := newMemGrid(4, 4, 1)
	g.set(2, 2, testNoData)
	k := NewKernel(g, NewGeometry(315, planar(1)), 0.05)
	assert.Equal(t, testNoData, k.Distance(2, 2))
}

func TestNoDataBracketsNeverObstruct(t *testing.T) {
	g := newMemGrid(1, 6, 0)
	g.set(0, 3, testNoData)
	k := NewKernel(g, NewGeometry(90, planar(1)), 0)

	// with a zero increment any valid sample of equal height obstructs, so
	// the first valid cell past the nodata gap is the obstacle
	assert.InDelta(t, 2.0, k.Distance(0, 2), 1e-12)

	k = NewKernel(g, NewGeometry(90, planar(1)), 0.5)
	g.set(0, 4, testNoData)
	g.set(0, 5, testNoData)
	assert.InDelta(t, -3.0, k.Distance(0, 2), 1e-12)
}

func TestCombinePrefersNearerObstacle(t *testing.T) {
	near := walkResult{state: stoppedObstacle, dist: 3}
	far := walkResult{state: stoppedObstacle, dist: 8}
	open := walkResult{state: stoppedBoundary, dist: 12}
	empty := walkResult{state: stoppedBoundary}

	assert.Equal(t, 3.0, combine(near, far))
	assert.Equal(t, 3.0, combine(far, near))
	assert.Equal(t, 8.0, combine(open, far))
	assert.Equal(t, 3.0, combine(near, open))
	assert.Equal(t, -12.0, combine(open, empty))
	assert.Equal(t, 0.0, math.Abs(combine(empty, empty)))
}

func TestHeightIncrementMonotonicity(t *testing.T) {
	dem := terrain.Generate(40, 50, terrain.Options{Seed: 7, NoData: testNoData})
	g := &memGrid{rows: dem.Rows, cols: dem.Columns, nodata: testNoData, data: dem.Values}

	for _, az := range []float64{30, 100, 200, 300} {
		geom := NewGeometry(az, planar(10))
		increments := []float64{0, 0.01, 0.05, 0.2}
		prev := NewKernel(g, geom, increments[0])
		for _, inc := range increments[1:] {
			next := NewKernel(g, geom, inc)
			for row := 0; row < g.rows; row++ {
				for col := 0; col < g.cols; col++ {
					b := next.Distance(row, col)
					if b == testNoData || b <= 0 {
						continue
					}
					a := prev.Distance(row, col)
					require.Positive(t, a, "az %v inc %v cell (%d,%d)", az, inc, row, col)
					require.LessOrEqual(t, a, b, "az %v inc %v cell (%d,%d)", az, inc, row, col)
				}
			}
			prev = next
		}
	}
}
