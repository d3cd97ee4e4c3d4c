//go:build ebiten

package view

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"wind-fetch/internal/render"
)

// GridPainter keeps one RGBA image in sync with a shaded grid.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette []color.RGBA
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: render.GreyPalette(),
	}
}

// Blit uploads shades into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, shades []uint8, scale int) {
	if len(shades) != gp.w*gp.h {
		return
	}
	render.FillRGBA(gp.buf, shades, gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
