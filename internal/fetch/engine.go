package fetch

import (
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// RowMessage carries one finished row from a worker to the collector.
// Ownership of Values passes to the receiver.
type RowMessage struct {
	Row    int
	Values []float64
}

// RowWriter receives finished rows. SetRowData is only ever called from the
// collector goroutine.
type RowWriter interface {
	SetRowData(row int, values []float64) error
}

// Options tunes an Engine.
type Options struct {
	// Workers is the number of goroutines. Zero or less uses GOMAXPROCS.
	Workers int
	// Progress, when set, receives the completed percentage each time it
	// changes. It is called from the collector goroutine.
	Progress func(percent int)
}

// Result summarises a completed run.
type Result struct {
	Rows       int
	Workers    int
	ValidCells int
	Elapsed    time.Duration
}

// Engine runs the kernel over every row of a surface with a fixed pool of
// workers.
type Engine struct {
	src      Surface
	kernel   *Kernel
	workers  int
	progress func(int)
}

// NewEngine prepares an engine for src with the given geometry.
func NewEngine(src Surface, geom Geometry, heightIncrement float64, opts Options) *Engine {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{
		src:      src,
		kernel:   NewKernel(src, geom, heightIncrement),
		workers:  workers,
		progress: opts.Progress,
	}
}

// Workers returns the configured worker count.
func (e *Engine) Workers() int { return e.workers }

// Run computes every row and hands it to dst. Either every row is delivered
// and Run returns nil, or Run returns an error and the contents of dst must
// be discarded.
func (e *Engine) Run(dst RowWriter) (Result, error) {
	rows, cols := e.src.Rows(), e.src.Columns()
	if rows <= 0 || cols <= 0 {
		return Result{}, ErrEmptyGrid
	}
	workers := e.workers
	if workers > rows {
		workers = rows
	}

	log := Logger()
	log.Info("fetch run started", "rows", rows, "columns", cols, "workers", workers)
	start := time.Now()

	results := make(chan RowMessage, workers)
	var g errgroup.Group
	for tid := 0; tid < workers; tid++ {
		tid := tid
		g.Go(func() error {
			return e.work(tid, workers, cols, results)
		})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- g.Wait()
		close(results)
	}()

	c := newCollector(dst, rows, e.src.NoData(), e.progress)
	for msg := range results {
		c.accept(msg)
	}

	if err := <-waitErr; err != nil {
		log.Error("fetch run failed", "err", err)
		return Result{}, err
	}
	if c.received != rows {
		return Result{}, fmt.Errorf("%w: received %d of %d rows", ErrWorkerFailed, c.received, rows)
	}
	if c.err != nil {
		return Result{}, c.err
	}

	res := Result{
		Rows:       rows,
		Workers:    workers,
		ValidCells: c.valid,
		Elapsed:    time.Since(start),
	}
	log.Info("fetch run finished", "rows", rows, "valid_cells", res.ValidCells, "elapsed", res.Elapsed)
	return res, nil
}

// work processes the rows owned by worker tid. A panic in the kernel is
// turned into ErrWorkerFailed.
func (e *Engine) work(tid, workers, cols int, out chan<- RowMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d: %v", ErrWorkerFailed, tid, r)
		}
	}()
	assigned := PartitionRows(e.src.Rows(), workers, tid)
	Logger().Debug("worker started", "worker", tid, "rows", len(assigned))
	for _, row := range assigned {
		values := make([]float64, cols)
		e.kernel.FillRow(row, values)
		out <- RowMessage{Row: row, Values: values}
	}
	return nil
}

// collector writes rows into the output in whatever order they arrive.
type collector struct {
	dst      RowWriter
	nodata   float64
	received int
	valid    int
	progress *progress
	err      error
}

func newCollector(dst RowWriter, rows int, nodata float64, report func(int)) *collector {
	log := Logger()
	forward := func(pct int) {
		log.Debug("progress", "percent", pct)
		if report != nil {
			report(pct)
		}
	}
	return &collector{dst: dst, nodata: nodata, progress: newProgress(rows, forward)}
}

func (c *collector) accept(msg RowMessage) {
	c.received++
	for _, v := range msg.Values {
		if v != c.nodata {
			c.valid++
		}
	}
	if err := c.dst.SetRowData(msg.Row, msg.Values); err != nil && c.err == nil {
		c.err = fmt.Errorf("fetch: writing row %d: %w", msg.Row, err)
	}
	c.progress.update(c.received)
}

// Compute is a convenience wrapper that builds the geometry and an engine
// and runs it once.
func Compute(src Surface, dst RowWriter, ref Georef, azimuth, heightIncrement float64, opts Options) (Geometry, Result, error) {
	geom := NewGeometry(azimuth, ref)
	res, err := NewEngine(src, geom, heightIncrement, opts).Run(dst)
	return geom, res, err
}
