package raster

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Format decodes one on-disk raster encoding. name is the file name the
// data came from; some formats derive georeferencing from it.
type Format interface {
	Name() string
	Decode(r io.Reader, name string) (*Raster, error)
}

// Encoder is implemented by formats that can also be written.
type Encoder interface {
	Encode(w io.Writer, r *Raster) error
}

// compressedSuffix marks a zstd-compressed file in any registered format.
const compressedSuffix = ".zst"

var formats = map[string]Format{}

// RegisterFormat adds a format for files ending in ext (for example ".asc"
// or ".hgt.zip"). Matching is case-insensitive and prefers the longest
// registered suffix.
func RegisterFormat(ext string, f Format) {
	if ext == "" || f == nil {
		return
	}
	formats[strings.ToLower(ext)] = f
}

// Formats lists the registered extensions in sorted order.
func Formats() []string {
	exts := make([]string, 0, len(formats))
	for ext := range formats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// lookup finds the format for path and reports whether the path names a
// zstd-compressed file.
func lookup(path string) (Format, bool, error) {
	name := strings.ToLower(filepath.Base(path))
	compressed := strings.HasSuffix(name, compressedSuffix)
	name = strings.TrimSuffix(name, compressedSuffix)

	var best string
	for ext := range formats {
		if strings.HasSuffix(name, ext) && len(ext) > len(best) {
			best = ext
		}
	}
	if best == "" {
		return nil, false, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return formats[best], compressed, nil
}

// Open reads the raster stored at path.
func Open(path string) (*Raster, error) {
	f, compressed, err := lookup(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open %s: %w", path, err)
	}
	defer file.Close()

	var src io.Reader = bufio.NewReader(file)
	if compressed {
		zr, err := zstd.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("raster: open %s: %w", path, err)
		}
		defer zr.Close()
		src = zr
	}

	name := strings.TrimSuffix(filepath.Base(path), compressedSuffix)
	r, err := f.Decode(src, name)
	if err != nil {
		return nil, fmt.Errorf("raster: decode %s as %s: %w", path, f.Name(), err)
	}
	r.FileName = path
	return r, nil
}

// Write encodes the raster to r.FileName in the format implied by its
// extension.
func (r *Raster) Write() error {
	f, compressed, err := lookup(r.FileName)
	if err != nil {
		return err
	}
	enc, ok := f.(Encoder)
	if !ok {
		return fmt.Errorf("%w: %s (%s)", ErrReadOnlyFormat, r.FileName, f.Name())
	}

	var buf bytes.Buffer
	var dst io.Writer = &buf
	var zw *zstd.Encoder
	if compressed {
		zw, err = zstd.NewWriter(&buf)
		if err != nil {
			return fmt.Errorf("raster: write %s: %w", r.FileName, err)
		}
		dst = zw
	}
	if err := enc.Encode(dst, r); err != nil {
		return fmt.Errorf("raster: encode %s: %w", r.FileName, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("raster: write %s: %w", r.FileName, err)
		}
	}
	if err := os.WriteFile(r.FileName, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("raster: write %s: %w", r.FileName, err)
	}
	return nil
}
