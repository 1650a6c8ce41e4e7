package sim

import (
	"errors"
	"fmt"

	"infinite-life/pkg/core"
)

// ErrUnexpectedSize reports a bit sequence whose length does not match the
// region it claims to cover.
var ErrUnexpectedSize = errors.New("cell data does not match the allocated area")

// SimulationSave is a full copy of the board within its bounding area.
type SimulationSave struct {
	Generation uint64
	Area       core.Area
	Data       Bits
}

// Validate checks that Data has one bit per position in Area.
func (s SimulationSave) Validate() error {
	if uint64(s.Data.Len()) != s.Area.Count() {
		return fmt.Errorf("%w: data %d, allocated %d", ErrUnexpectedSize, s.Data.Len(), s.Area.Count())
	}
	return nil
}

// SimulationBlueprint is a position independent extract of the board. XSize
// and YSize are the differences between the extracted corners, so the
// blueprint covers (XSize+1)*(YSize+1) cells.
type SimulationBlueprint struct {
	XSize uint32
	YSize uint32
	Data  Bits
}

// Count is the number of cells the blueprint covers.
func (b SimulationBlueprint) Count() uint64 {
	return (uint64(b.XSize) + 1) * (uint64(b.YSize) + 1)
}

// AreaAt returns the region the blueprint occupies with its min corner at origin.
func (b SimulationBlueprint) AreaAt(origin core.GlobalPosition) core.Area {
	area := core.NewArea(core.Pos(0, 0), core.Pos(int32(b.XSize), int32(b.YSize)))
	area.Translate(origin)
	return area
}

// Validate checks that Data has one bit per covered cell.
func (b SimulationBlueprint) Validate() error {
	if uint64(b.Data.Len()) != b.Count() {
		return fmt.Errorf("%w: data %d, allocated %d", ErrUnexpectedSize, b.Data.Len(), b.Count())
	}
	return nil
}
