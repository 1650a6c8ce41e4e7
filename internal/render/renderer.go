//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"infinite-life/pkg/sim"
)

// GridPainter uploads display snapshots into a single image and draws it.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette Palette
}

// NewGridPainter returns a painter using p.
func NewGridPainter(p Palette) *GridPainter {
	return &GridPainter{palette: p}
}

// Upload replaces the image contents with d, resizing it when needed.
func (gp *GridPainter) Upload(d sim.BoardDisplay) {
	if d.Width() == 0 || d.Height() == 0 {
		return
	}
	if gp.img == nil || gp.w != d.Width() || gp.h != d.Height() {
		if gp.img != nil {
			gp.img.Dispose()
		}
		gp.w, gp.h = d.Width(), d.Height()
		gp.img = ebiten.NewImage(gp.w, gp.h)
	}
	gp.buf = FillDisplayRGBA(gp.buf, d, gp.palette)
	gp.img.WritePixels(gp.buf)
}

// Blit draws the last uploaded snapshot scaled by scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, scale int) {
	if gp.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
