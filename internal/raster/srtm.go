package raster

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
)

// SRTM height tiles (.hgt): a square of big-endian int16 samples, 1201x1201
// for 3 arc-second data or 3601x3601 for 1 arc-second data. Tiles are named
// by their south-west sample, e.g. N45W123.hgt, and rows run north to south.
// Adjacent tiles share their edge row and column.

const srtmVoid = -32768

type srtmTile struct{}

type srtmZip struct{}

func init() {
	RegisterFormat(".hgt", srtmTile{})
	RegisterFormat(".hgt.zip", srtmZip{})
}

func (srtmTile) Name() string { return "srtm-hgt" }

func (srtmTile) Decode(r io.Reader, name string) (*Raster, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decodeHGT(b, name)
}

func (srtmZip) Name() string { return "srtm-hgt-zip" }

func (srtmZip) Decode(r io.Reader, name string) (*Raster, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	z, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, err
	}
	for _, f := range z.File {
		base := path.Base(f.Name)
		if strings.HasPrefix(base, ".") || !strings.HasSuffix(strings.ToLower(base), ".hgt") {
			continue // macOS resource forks and other junk
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		tile := base
		if _, _, err := parseTileName(tile); err != nil {
			tile = name
		}
		return decodeHGT(data, tile)
	}
	return nil, fmt.Errorf("%w: no .hgt entry in %s", ErrMalformedHeader, name)
}

// parseTileName returns the latitude and longitude of the south-west sample
// encoded in an SRTM file name.
func parseTileName(name string) (lat, lon int, err error) {
	var ns, ew string
	if _, err := fmt.Sscanf(strings.ToUpper(path.Base(name)), "%1s%d%1s%d", &ns, &lat, &ew, &lon); err != nil {
		return 0, 0, fmt.Errorf("%w: tile name %q: %v", ErrMalformedHeader, name, err)
	}
	switch ns {
	case "N":
	case "S":
		lat = -lat
	default:
		return 0, 0, fmt.Errorf("%w: tile name %q: bad hemisphere %q", ErrMalformedHeader, name, ns)
	}
	switch ew {
	case "E":
	case "W":
		lon = -lon
	default:
		return 0, 0, fmt.Errorf("%w: tile name %q: bad hemisphere %q", ErrMalformedHeader, name, ew)
	}
	return lat, lon, nil
}

func decodeHGT(b []byte, name string) (*Raster, error) {
	lat, lon, err := parseTileName(name)
	if err != nil {
		return nil, err
	}
	samples := len(b) / 2
	side := int(math.Round(math.Sqrt(float64(samples))))
	if len(b)%2 != 0 || side < 2 || side*side != samples {
		return nil, fmt.Errorf("%w: %d bytes is not a square tile of int16 samples", ErrDimensionMismatch, len(b))
	}

	res := 1 / float64(side-1)
	half := res / 2
	ras := New(Config{
		Rows:        side,
		Columns:     side,
		NoData:      srtmVoid,
		West:        float64(lon) - half,
		East:        float64(lon+1) + half,
		South:       float64(lat) - half,
		North:       float64(lat+1) + half,
		ResolutionX: res,
		ResolutionY: res,
		Geographic:  true,
	})
	cells := ras.Values()
	for i := range cells {
		cells[i] = float64(int16(binary.BigEndian.Uint16(b[2*i:])))
	}
	return ras, nil
}
