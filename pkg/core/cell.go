package core

// Cell is the state of a single position on the board. The zero value is Dead.
type Cell uint8

const (
	// Dead marks an empty position.
	Dead Cell = iota
	// Alive marks an occupied position.
	Alive
)

// CellFromBool maps true to Alive and false to Dead.
func CellFromBool(alive bool) Cell {
	if alive {
		return Alive
	}
	return Dead
}

// CellFromBit maps any non-zero bit to Alive.
func CellFromBit(bit uint8) Cell { return CellFromBool(bit != 0) }

// Bool reports whether the cell is alive.
func (c Cell) Bool() bool { return c == Alive }

// Bit returns 1 for an alive cell and 0 otherwise.
func (c Cell) Bit() uint8 {
	if c == Alive {
		return 1
	}
	return 0
}

// Invert returns the opposite state.
func (c Cell) Invert() Cell {
	if c == Alive {
		return Dead
	}
	return Alive
}

func (c Cell) String() string {
	if c == Alive {
		return "alive"
	}
	return "dead"
}
