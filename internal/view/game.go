//go:build ebiten

package view

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelWidth   = 260
	panelPadding = 10
	lineHeight   = 16
)

var (
	background = color.RGBA{R: 32, G: 32, B: 40, A: 255}
	panelFill  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	hintColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// Game adapts a Scene to the ebiten.Game interface.
type Game struct {
	scene   *Scene
	painter *GridPainter
	panel   *ebiten.Image

	scale   int
	layer   int
	readout string
}

// New constructs a Game showing scene at the given zoom.
func New(scene *Scene, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	return &Game{
		scene:   scene,
		painter: NewGridPainter(scene.Size.W, scene.Size.H),
		scale:   scale,
	}
}

// Update handles keyboard input and tracks the cell under the cursor.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.layer = (g.layer + 1) % len(g.scene.Layers)
	}
	mx, my := ebiten.CursorPosition()
	g.readout = g.scene.Readout(g.layer, mx/g.scale, my/g.scale)
	return nil
}

// Draw renders the current layer and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.painter.Blit(screen, g.scene.Layer(g.layer).Shades, g.scale)
	g.drawPanel(screen)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	height := g.scene.Size.H * g.scale
	if g.panel == nil || g.panel.Bounds().Dy() != height {
		g.panel = ebiten.NewImage(panelWidth, height)
	}
	g.panel.Fill(panelFill)

	face := basicfont.Face7x13
	y := panelPadding + 12
	text.Draw(g.panel, g.scene.Title, face, panelPadding, y, titleColor)
	y += lineHeight
	text.Draw(g.panel, "showing "+g.scene.Layer(g.layer).Name, face, panelPadding, y, hintColor)
	y += 2 * lineHeight
	for _, line := range g.scene.Info {
		text.Draw(g.panel, line, face, panelPadding, y, textColor)
		y += lineHeight
	}
	if g.readout != "" {
		y += lineHeight
		text.Draw(g.panel, g.readout, face, panelPadding, y, textColor)
	}
	text.Draw(g.panel, "tab: layer  q: quit", face, panelPadding, height-panelPadding, hintColor)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.scene.Size.W*g.scale), 0)
	screen.DrawImage(g.panel, op)
}

// Layout returns the logical screen size: the grid plus the panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.scene.Size
	return s.W*g.scale + panelWidth, s.H * g.scale
}
