package raster

import "errors"

var (
	// ErrUnsupportedFormat indicates no registered format matches a path.
	ErrUnsupportedFormat = errors.New("raster: unsupported raster format")
	// ErrReadOnlyFormat indicates the format can be read but not written.
	ErrReadOnlyFormat = errors.New("raster: format does not support writing")
	// ErrMalformedHeader indicates a missing or invalid header field.
	ErrMalformedHeader = errors.New("raster: malformed header")
	// ErrDimensionMismatch indicates data that does not fit the grid shape.
	ErrDimensionMismatch = errors.New("raster: data does not match grid dimensions")
)
