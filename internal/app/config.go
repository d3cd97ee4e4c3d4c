package app

import (
	"errors"
	"flag"
	"fmt"
)

// Coordinate modes accepted by the -coords flag.
const (
	CoordsAuto       = "auto"
	CoordsPlanar     = "planar"
	CoordsGeographic = "geographic"
)

var (
	// ErrMissingInput indicates no input DEM was given.
	ErrMissingInput = errors.New("app: input DEM path is required")
	// ErrMissingOutput indicates no output path was given.
	ErrMissingOutput = errors.New("app: output path is required")
	// ErrNegativeHeightIncrement indicates a height increment below zero.
	ErrNegativeHeightIncrement = errors.New("app: height increment must not be negative")
	// ErrBadOption indicates an enumerated flag has an unknown value.
	ErrBadOption = errors.New("app: invalid option")
)

// Config represents the command-line parameters of a fetch run.
type Config struct {
	Input           string
	Output          string
	Azimuth         float64
	HeightIncrement float64
	Workers         int
	Coords          string
	Preview         string
	Metadata        bool
	Verbose         bool
	LogFormat       string
}

// NewConfig returns a Config populated with the tool defaults.
func NewConfig() *Config {
	return &Config{
		Azimuth:         0.0,
		HeightIncrement: 0.05,
		Coords:          CoordsAuto,
		Metadata:        true,
		LogFormat:       "text",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Input, "i", c.Input, "input DEM file (.asc, .hgt, .hgt.zip, optionally .zst)")
	fs.StringVar(&c.Input, "dem", c.Input, "alias for -i")
	fs.StringVar(&c.Output, "o", c.Output, "output fetch raster file")
	fs.StringVar(&c.Output, "output", c.Output, "alias for -o")
	c.BindRun(fs)
	fs.Float64Var(&c.Azimuth, "azimuth", c.Azimuth, "wind azimuth in degrees clockwise from north")
	fs.StringVar(&c.Preview, "preview", c.Preview, "optional greyscale TIFF preview path")
}

// BindRun attaches the flags shared by every command that computes fetch:
// everything except the input/output paths and the azimuth.
func (c *Config) BindRun(fs *flag.FlagSet) {
	fs.Float64Var(&c.HeightIncrement, "hgt_inc", c.HeightIncrement, "height increment per unit distance")
	fs.IntVar(&c.Workers, "workers", c.Workers, "worker goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&c.Coords, "coords", c.Coords, "coordinate system: auto, planar or geographic")
	fs.BoolVar(&c.Metadata, "meta", c.Metadata, "write a .meta.yaml sidecar next to the output")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose output")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: text or json")
}

// Validate reports the first problem with the configuration. Azimuths are
// never rejected; they are sanitized when the run starts.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrMissingInput
	}
	if c.Output == "" {
		return ErrMissingOutput
	}
	return c.validateRun()
}

func (c *Config) validateRun() error {
	if c.HeightIncrement < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeHeightIncrement, c.HeightIncrement)
	}
	switch c.Coords {
	case CoordsAuto, CoordsPlanar, CoordsGeographic:
	default:
		return fmt.Errorf("%w: -coords %q", ErrBadOption, c.Coords)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: -log-format %q", ErrBadOption, c.LogFormat)
	}
	return nil
}
