package sim

import "infinite-life/pkg/core"

// BoardDisplay is an immutable snapshot of the cells inside a display area.
// Cells are stored row-major: index y*width + x relative to the area's min
// corner.
type BoardDisplay struct {
	generation uint64
	area       core.Area
	w, h       int
	cells      []core.Cell
}

// NewBoardDisplay renders area from r.
func NewBoardDisplay(generation uint64, area core.Area, r Reader) BoardDisplay {
	d := BoardDisplay{
		generation: generation,
		area:       area,
		w:          int(area.Width()),
		h:          int(area.Height()),
	}
	d.cells = make([]core.Cell, 0, d.w*d.h)
	for pos := range area.All() {
		d.cells = append(d.cells, r.Get(pos))
	}
	return d
}

// Generation is the generation the snapshot was taken at.
func (d BoardDisplay) Generation() uint64 { return d.generation }

// Area is the board region covered by the snapshot.
func (d BoardDisplay) Area() core.Area { return d.area }

// Width is the number of columns in the snapshot.
func (d BoardDisplay) Width() int { return d.w }

// Height is the number of rows in the snapshot.
func (d BoardDisplay) Height() int { return d.h }

// Cell returns the cell at (x, y) relative to the min corner of the area.
// Positions outside the snapshot are Dead.
func (d BoardDisplay) Cell(x, y int) core.Cell {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return core.Dead
	}
	return d.cells[y*d.w+x]
}

// At returns the cell at an absolute board position, Dead when outside.
func (d BoardDisplay) At(pos core.GlobalPosition) core.Cell {
	if !d.area.Contains(pos) {
		return core.Dead
	}
	rel := pos.Sub(d.area.Min())
	return d.Cell(int(rel.X), int(rel.Y))
}

// Alive counts the alive cells in the snapshot.
func (d BoardDisplay) Alive() int {
	n := 0
	for _, c := range d.cells {
		if c == core.Alive {
			n++
		}
	}
	return n
}
