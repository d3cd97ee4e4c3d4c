package raster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Esri ASCII grid (.asc):
//
//	ncols         4
//	nrows         3
//	xllcorner     500000.0    (or xllcenter)
//	yllcorner     4100000.0   (or yllcenter)
//	cellsize      30.0        (or dx / dy)
//	NODATA_value  -9999       (optional, defaults to -9999)
//	<nrows lines of ncols values, northernmost row first>

const defaultASCIINoData = -9999.0

type asciiGrid struct{}

func init() {
	RegisterFormat(".asc", asciiGrid{})
}

func (asciiGrid) Name() string { return "esri-ascii" }

type asciiHeader struct {
	ncols, nrows       int
	xll, yll           float64
	center             bool
	dx, dy             float64
	nodata             float64
	haveX, haveY       bool
	haveCols, haveRows bool
}

func (asciiGrid) Decode(r io.Reader, name string) (*Raster, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	h := asciiHeader{nodata: defaultASCIINoData}
	var first string
	for sc.Scan() {
		key := sc.Text()
		if !isHeaderKey(key) {
			first = key
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: %s has no value", ErrMalformedHeader, key)
		}
		if err := h.set(strings.ToLower(key), sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := h.validate(); err != nil {
		return nil, err
	}

	west, south := h.xll, h.yll
	if h.center {
		west -= h.dx / 2
		south -= h.dy / 2
	}
	cfg := Config{
		Rows:        h.nrows,
		Columns:     h.ncols,
		NoData:      h.nodata,
		West:        west,
		South:       south,
		East:        west + float64(h.ncols)*h.dx,
		North:       south + float64(h.nrows)*h.dy,
		ResolutionX: h.dx,
		ResolutionY: h.dy,
	}
	cfg.Geographic = cfg.LooksGeographic()
	ras := New(cfg)

	cells := ras.Values()
	n := 0
	tok := first
	for tok != "" {
		if n >= len(cells) {
			return nil, fmt.Errorf("%w: more than %d values", ErrDimensionMismatch, len(cells))
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("raster: value %d: %w", n, err)
		}
		cells[n] = v
		n++
		tok = ""
		if sc.Scan() {
			tok = sc.Text()
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if n != len(cells) {
		return nil, fmt.Errorf("%w: read %d values, want %d", ErrDimensionMismatch, n, len(cells))
	}
	return ras, nil
}

func isHeaderKey(tok string) bool {
	r := rune(tok[0])
	return unicode.IsLetter(r) && !strings.EqualFold(tok, "nan") && !strings.EqualFold(tok, "inf")
}

func (h *asciiHeader) set(key, val string) error {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("%w: %s = %q", ErrMalformedHeader, key, val)
	}
	switch key {
	case "ncols":
		h.ncols, h.haveCols = int(f), true
	case "nrows":
		h.nrows, h.haveRows = int(f), true
	case "xllcorner":
		h.xll, h.haveX = f, true
	case "xllcenter":
		h.xll, h.haveX, h.center = f, true, true
	case "yllcorner":
		h.yll, h.haveY = f, true
	case "yllcenter":
		h.yll, h.haveY, h.center = f, true, true
	case "cellsize":
		h.dx, h.dy = f, f
	case "dx":
		h.dx = f
	case "dy":
		h.dy = f
	case "nodata_value":
		h.nodata = f
	default:
		return fmt.Errorf("%w: unknown key %q", ErrMalformedHeader, key)
	}
	return nil
}

func (h *asciiHeader) validate() error {
	switch {
	case !h.haveCols || h.ncols <= 0:
		return fmt.Errorf("%w: ncols missing or not positive", ErrMalformedHeader)
	case !h.haveRows || h.nrows <= 0:
		return fmt.Errorf("%w: nrows missing or not positive", ErrMalformedHeader)
	case !h.haveX || !h.haveY:
		return fmt.Errorf("%w: lower-left coordinate missing", ErrMalformedHeader)
	case h.dx <= 0 || h.dy <= 0:
		return fmt.Errorf("%w: cell size missing or not positive", ErrMalformedHeader)
	}
	return nil
}

func (asciiGrid) Encode(w io.Writer, r *Raster) error {
	cfg := r.Configs
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", cfg.Columns)
	fmt.Fprintf(bw, "nrows %d\n", cfg.Rows)
	fmt.Fprintf(bw, "xllcorner %s\n", formatValue(cfg.West))
	fmt.Fprintf(bw, "yllcorner %s\n", formatValue(cfg.South))
	if cfg.ResolutionX == cfg.ResolutionY {
		fmt.Fprintf(bw, "cellsize %s\n", formatValue(cfg.ResolutionX))
	} else {
		fmt.Fprintf(bw, "dx %s\n", formatValue(cfg.ResolutionX))
		fmt.Fprintf(bw, "dy %s\n", formatValue(cfg.ResolutionY))
	}
	fmt.Fprintf(bw, "NODATA_value %s\n", formatValue(cfg.NoData))

	var line []byte
	for row := 0; row < cfg.Rows; row++ {
		line = line[:0]
		for col, v := range r.RowData(row) {
			if col > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendFloat(line, v, 'g', -1, 64)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
