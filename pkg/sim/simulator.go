// Package sim defines the contract every board representation implements and
// the representation independent algorithms layered on top of it.
package sim

import "infinite-life/pkg/core"

// Reader is the read-only view of a board.
type Reader interface {
	Get(pos core.GlobalPosition) core.Cell
}

// Simulator is an unbounded Game of Life board.
type Simulator interface {
	Reader

	// Tick advances the board one generation.
	Tick()
	// Set changes a single cell.
	Set(pos core.GlobalPosition, cell core.Cell)
	// Generation is the number of ticks since the last reset or load.
	Generation() uint64
	SetGeneration(generation uint64)
	// Reset kills every cell and zeroes the generation.
	Reset()
	// BoardArea is the tight bounding box of the alive cells, or the origin
	// when there are none.
	BoardArea() core.Area
	// SetDisplayArea chooses the region rendered by UpdateDisplay.
	SetDisplayArea(area core.Area)
	// UpdateDisplay publishes a snapshot when the shared slot is free and
	// reports whether it did. Only a poisoned slot is an error.
	UpdateDisplay() (bool, error)
}

// SaveBoard copies every cell within the board's bounding area.
func SaveBoard(s Simulator) SimulationSave {
	area := s.BoardArea()
	return SimulationSave{
		Generation: s.Generation(),
		Area:       area,
		Data:       pack(s, area),
	}
}

// LoadBoard replaces the board with save. Cells outside the saved area are
// dead afterwards.
func LoadBoard(s Simulator, save SimulationSave) {
	s.Reset()
	s.SetGeneration(save.Generation)
	unpack(s, save.Area, save.Data)
}

// SaveBlueprint copies the cells inside area, recording only its extent.
func SaveBlueprint(s Simulator, area core.Area) SimulationBlueprint {
	return SimulationBlueprint{
		XSize: area.XDifference(),
		YSize: area.YDifference(),
		Data:  pack(s, area),
	}
}

// LoadBlueprint overwrites the region starting at origin with bp. Cells outside
// that region are untouched.
func LoadBlueprint(s Simulator, origin core.GlobalPosition, bp SimulationBlueprint) {
	unpack(s, bp.AreaAt(origin), bp.Data)
}

func pack(r Reader, area core.Area) Bits {
	var bits Bits
	for pos := range area.All() {
		bits.Push(r.Get(pos).Bool())
	}
	return bits
}

// unpack zips area positions with data, stopping at whichever ends first.
func unpack(s Simulator, area core.Area, data Bits) {
	i := 0
	for pos := range area.All() {
		if i >= data.Len() {
			return
		}
		s.Set(pos, core.CellFromBool(data.At(i)))
		i++
	}
}

// Publisher tracks the requested display area and renders it into a
// SharedDisplay. Engines embed it to implement SetDisplayArea.
type Publisher struct {
	display *SharedDisplay
	area    core.Area
}

// NewPublisher publishes into display. A nil display disables publishing.
func NewPublisher(display *SharedDisplay) Publisher {
	return Publisher{display: display}
}

// SetDisplayArea records the region to render.
func (p *Publisher) SetDisplayArea(area core.Area) { p.area = area }

// Publish renders the display area from r if the slot accepts a new snapshot.
// Without a display there is nobody to wait for, so it reports success.
func (p *Publisher) Publish(generation uint64, r Reader) (bool, error) {
	if p.display == nil {
		return true, nil
	}
	return p.display.Offer(func() BoardDisplay {
		return NewBoardDisplay(generation, p.area, r)
	})
}
