package render

import "image/color"

// GreyPalette returns 256 grey levels. Index 0 is transparent so NoData
// cells show the background.
func GreyPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := 1; i < len(palette); i++ {
		v := uint8(i)
		palette[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return palette
}

// FillRGBA expands shade indices into RGBA pixels in buf, which must hold
// four bytes per shade. Shades past the end of the palette use its last
// colour; an empty palette clears the pixels to transparent black.
func FillRGBA(buf []byte, shades []uint8, palette []color.RGBA) {
	px := buf[:4*len(shades)]
	if len(palette) == 0 {
		clear(px)
		return
	}
	last := len(palette) - 1
	for i, s := range shades {
		c := palette[min(int(s), last)]
		p := px[4*i : 4*i+4 : 4*i+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	}
}
