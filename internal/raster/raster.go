package raster

import (
	"fmt"

	"wind-fetch/internal/core"
)

// Config holds the header of a raster: its shape, georeferencing and
// descriptive metadata.
type Config struct {
	Rows    int
	Columns int
	NoData  float64

	North float64
	South float64
	East  float64
	West  float64

	ResolutionX float64
	ResolutionY float64

	// Geographic is set when cell coordinates are degrees of longitude and
	// latitude rather than planar units.
	Geographic bool

	Palette  string
	Metadata []string
}

// LooksGeographic reports whether the bounds and resolution are plausible
// as longitude/latitude degrees.
func (c Config) LooksGeographic() bool {
	return c.West >= -180 && c.East <= 180 &&
		c.South >= -90 && c.North <= 90 &&
		c.ResolutionX > 0 && c.ResolutionX < 1 &&
		c.ResolutionY > 0 && c.ResolutionY < 1
}

// Raster is a single-band grid of float64 values.
type Raster struct {
	FileName string
	Configs  Config

	grid *core.FloatGrid
}

// New allocates a raster for cfg with every cell set to cfg.NoData. Missing
// resolutions are derived from the bounds.
func New(cfg Config) *Raster {
	if cfg.ResolutionX == 0 && cfg.Columns > 0 {
		cfg.ResolutionX = (cfg.East - cfg.West) / float64(cfg.Columns)
	}
	if cfg.ResolutionY == 0 && cfg.Rows > 0 {
		cfg.ResolutionY = (cfg.North - cfg.South) / float64(cfg.Rows)
	}
	return &Raster{
		Configs: cfg,
		grid:    core.NewFloatGrid(cfg.Columns, cfg.Rows, cfg.NoData),
	}
}

// InitializeUsing creates an empty raster at path with the shape and
// georeferencing of template. Metadata is not copied.
func InitializeUsing(path string, template *Raster) *Raster {
	cfg := template.Configs
	cfg.Metadata = nil
	cfg.Palette = ""
	r := New(cfg)
	r.FileName = path
	return r
}

// Rows returns the number of rows.
func (r *Raster) Rows() int { return r.Configs.Rows }

// Columns returns the number of columns.
func (r *Raster) Columns() int { return r.Configs.Columns }

// NoData returns the sentinel marking cells without a value.
func (r *Raster) NoData() float64 { return r.Configs.NoData }

// Size returns the grid dimensions.
func (r *Raster) Size() core.Size { return core.Size{W: r.Configs.Columns, H: r.Configs.Rows} }

// Value returns the cell at (row, col), or NoData outside the grid.
func (r *Raster) Value(row, col int) float64 {
	if !r.grid.InBounds(col, row) {
		return r.Configs.NoData
	}
	return r.grid.Cells()[r.grid.Index(col, row)]
}

// SetValue stores v at (row, col). Writes outside the grid are ignored.
func (r *Raster) SetValue(row, col int, v float64) {
	if !r.grid.InBounds(col, row) {
		return
	}
	r.grid.Cells()[r.grid.Index(col, row)] = v
}

// RowData returns row as a slice aliasing the raster storage.
func (r *Raster) RowData(row int) []float64 { return r.grid.Row(row) }

// SetRowData copies values into row.
func (r *Raster) SetRowData(row int, values []float64) error {
	if row < 0 || row >= r.Configs.Rows {
		return fmt.Errorf("%w: row %d outside [0,%d)", ErrDimensionMismatch, row, r.Configs.Rows)
	}
	if len(values) != r.Configs.Columns {
		return fmt.Errorf("%w: row %d has %d values, want %d", ErrDimensionMismatch, row, len(values), r.Configs.Columns)
	}
	copy(r.grid.Row(row), values)
	return nil
}

// Values exposes every cell in row-major order.
func (r *Raster) Values() []float64 { return r.grid.Cells() }

// IsInGeographicCoordinates reports whether the raster is in degrees.
func (r *Raster) IsInGeographicCoordinates() bool { return r.Configs.Geographic }

// AddMetadataEntry appends a free-form line to the raster metadata.
func (r *Raster) AddMetadataEntry(entry string) {
	r.Configs.Metadata = append(r.Configs.Metadata, entry)
}
