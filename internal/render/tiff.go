package render

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/image/tiff"
)

// WriteTIFF encodes shades as a deflate-compressed 8-bit grey TIFF of the
// given width and height.
func WriteTIFF(w io.Writer, width, height int, shades []uint8) error {
	if len(shades) != width*height {
		return fmt.Errorf("render: %d shades for a %dx%d image", len(shades), width, height)
	}
	img := &image.Gray{
		Pix:    shades,
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// SaveTIFF writes shades to path as a grey TIFF.
func SaveTIFF(path string, width, height int, shades []uint8) error {
	var buf bytes.Buffer
	if err := WriteTIFF(&buf, width, height, shades); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return nil
}
