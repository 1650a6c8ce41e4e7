//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Overlay outlines the blueprint selection on top of the board.
type Overlay struct {
	pixel     *ebiten.Image
	selection image.Rectangle
	active    bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// SetSelection sets the outlined rectangle in screen pixels.
func (o *Overlay) SetSelection(r image.Rectangle) {
	o.selection = r.Canon()
	o.active = !o.selection.Empty()
}

// ClearSelection hides the outline.
func (o *Overlay) ClearSelection() { o.active = false }

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.active {
		return
	}
	r := o.selection
	col := color.RGBA{R: 64, G: 164, B: 223, A: 255}
	o.fill(screen, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), col)
	o.fill(screen, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), col)
	o.fill(screen, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), col)
	o.fill(screen, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), col)
}

func (o *Overlay) fill(screen *ebiten.Image, r image.Rectangle, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
