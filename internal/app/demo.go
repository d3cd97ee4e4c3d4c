package app

import (
	"wind-fetch/internal/raster"
	"wind-fetch/pkg/terrain"
)

// SyntheticDEM builds a planar DEM from generated terrain with square cells
// of cellSize metres. The grid is not bound to a file.
func SyntheticDEM(rows, cols int, cellSize float64, seed int64) *raster.Raster {
	const nodata = -9999
	gen := terrain.Generate(rows, cols, terrain.Options{
		Seed:           seed,
		NoData:         nodata,
		NoDataFraction: 0.002,
		Relief:         cellSize * 8,
	})
	dem := raster.New(raster.Config{
		Rows:        rows,
		Columns:     cols,
		NoData:      nodata,
		North:       float64(rows) * cellSize,
		East:        float64(cols) * cellSize,
		ResolutionX: cellSize,
		ResolutionY: cellSize,
	})
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			dem.SetValue(row, col, gen.Value(row, col))
		}
	}
	dem.FileName = "synthetic"
	return dem
}
