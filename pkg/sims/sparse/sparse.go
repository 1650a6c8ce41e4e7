// Package sparse implements the reference engine: the set of alive positions.
package sparse

import (
	"math"

	"infinite-life/pkg/core"
	"infinite-life/pkg/sim"
)

// neighbourOffsets lists the 8 positions adjacent to a cell.
var neighbourOffsets = [8]core.GlobalPosition{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Board implements Conway's Game of Life on an unbounded grid by storing only
// alive positions.
type Board struct {
	sim.Publisher

	alive      map[core.GlobalPosition]struct{}
	generation uint64
}

// New returns an empty board publishing into display, which may be nil.
func New(display *sim.SharedDisplay) *Board {
	return &Board{
		Publisher: sim.NewPublisher(display),
		alive:     make(map[core.GlobalPosition]struct{}),
	}
}

// Tick advances the simulation by one generation. Neighbour counts are taken
// from the pre-tick set.
func (b *Board) Tick() {
	counts := make(map[core.GlobalPosition]uint8, len(b.alive)*4)
	for pos := range b.alive {
		for _, off := range neighbourOffsets {
			if n, ok := neighbour(pos, off); ok {
				counts[n]++
			}
		}
	}

	next := make(map[core.GlobalPosition]struct{}, len(b.alive))
	for pos, n := range counts {
		_, alive := b.alive[pos]
		if n == 3 || (alive && n == 2) {
			next[pos] = struct{}{}
		}
	}
	b.alive = next
	b.generation++
}

// neighbour offsets pos, reporting false past the edge of the coordinate
// range. The board does not wrap.
func neighbour(pos, off core.GlobalPosition) (core.GlobalPosition, bool) {
	x, y := int64(pos.X)+int64(off.X), int64(pos.Y)+int64(off.Y)
	if x < math.MinInt32 || x > math.MaxInt32 || y < math.MinInt32 || y > math.MaxInt32 {
		return core.GlobalPosition{}, false
	}
	return core.Pos(int32(x), int32(y)), true
}

// Set changes a single cell.
func (b *Board) Set(pos core.GlobalPosition, cell core.Cell) {
	if cell == core.Alive {
		b.alive[pos] = struct{}{}
		return
	}
	delete(b.alive, pos)
}

// Get returns the state of a single cell.
func (b *Board) Get(pos core.GlobalPosition) core.Cell {
	_, ok := b.alive[pos]
	return core.CellFromBool(ok)
}

// Population is the number of alive cells.
func (b *Board) Population() int { return len(b.alive) }

// Generation returns the number of ticks since the last reset.
func (b *Board) Generation() uint64 { return b.generation }

// SetGeneration overrides the generation counter.
func (b *Board) SetGeneration(generation uint64) { b.generation = generation }

// Reset kills every cell and zeroes the generation.
func (b *Board) Reset() {
	b.alive = make(map[core.GlobalPosition]struct{})
	b.generation = 0
}

// BoardArea returns the tight bounding box of the alive cells, or the origin
// when the board is empty.
func (b *Board) BoardArea() core.Area {
	if len(b.alive) == 0 {
		return core.NewArea(core.Pos(0, 0), core.Pos(0, 0))
	}
	var lo, hi core.GlobalPosition
	first := true
	for pos := range b.alive {
		if first {
			lo, hi, first = pos, pos, false
			continue
		}
		lo = core.Pos(min(lo.X, pos.X), min(lo.Y, pos.Y))
		hi = core.Pos(max(hi.X, pos.X), max(hi.Y, pos.Y))
	}
	return core.NewArea(lo, hi)
}

// UpdateDisplay publishes the display area if the shared slot is free.
func (b *Board) UpdateDisplay() (bool, error) {
	return b.Publish(b.generation, b)
}

func init() {
	sim.Register("sparse", func(display *sim.SharedDisplay) sim.Simulator {
		return New(display)
	})
}
