package fetch

import "errors"

var (
	// ErrEmptyGrid indicates the input surface has no rows or no columns.
	ErrEmptyGrid = errors.New("fetch: input grid must have at least one row and one column")
	// ErrWorkerFailed indicates a worker stopped before emitting all of its
	// rows. The run produces no output when this happens.
	ErrWorkerFailed = errors.New("fetch: worker terminated before completing its rows")
)
