//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status panel in the top left corner of the board view.
type HUD struct {
	width  int
	panel  *ebiten.Image
	status Status
}

// NewHUD constructs a HUD with the given panel width in pixels.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Update stores the status drawn by the next Draw.
func (h *HUD) Update(s Status) {
	if h == nil {
		return
	}
	h.status = s
}

// Draw paints the panel onto screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.width <= 0 {
		return
	}
	lines := h.status.Lines()
	height := panelPadding*2 + len(lines)*lineHeight
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
	}
	bg := color.RGBA{R: 16, G: 16, B: 20, A: 200}
	fg := color.RGBA{R: 220, G: 220, B: 230, A: 255}
	if h.status.Fatal != nil {
		bg = color.RGBA{R: 90, G: 16, B: 20, A: 230}
	}
	h.panel.Fill(bg)

	face := basicfont.Face7x13
	for i, line := range lines {
		text.Draw(h.panel, line, face, panelPadding, panelPadding+textBaseline+i*lineHeight, fg)
	}
	screen.DrawImage(h.panel, &ebiten.DrawImageOptions{})
}

const (
	panelPadding = 8
	lineHeight   = 16
	textBaseline = 12
)
