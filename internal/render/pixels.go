// Package render turns display snapshots into pixels.
package render

import (
	"image/color"

	"infinite-life/pkg/core"
	"infinite-life/pkg/sim"
)

// Palette holds the colours for the two cell states.
type Palette struct {
	Alive color.Color
	Dead  color.Color
}

// DefaultPalette draws white cells on black.
var DefaultPalette = Palette{Alive: color.White, Dead: color.Black}

// FillDisplayRGBA writes one RGBA pixel per snapshot cell into buf, row by
// row, and returns the slice it filled. buf is grown when too small.
func FillDisplayRGBA(buf []byte, d sim.BoardDisplay, p Palette) []byte {
	n := d.Width() * d.Height() * 4
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]

	on := rgba(p.Alive)
	off := rgba(p.Dead)
	i := 0
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			px := off
			if d.Cell(x, y) == core.Alive {
				px = on
			}
			copy(buf[i:i+4], px[:])
			i += 4
		}
	}
	return buf
}

func rgba(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}
