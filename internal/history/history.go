// Package history records cell edits so they can be undone and redone.
package history

import (
	"infinite-life/pkg/comms"
	"infinite-life/pkg/core"
)

// Capacity is the number of actions kept. Older actions are forgotten.
const Capacity = 32

// Kind is the edit an Action performed.
type Kind uint8

const (
	SetAlive Kind = iota
	SetDead
)

// Action is one user edit of the board.
type Action struct {
	Kind     Kind
	Position core.GlobalPosition
}

// ActionFor returns the action that sets pos to cell.
func ActionFor(pos core.GlobalPosition, cell core.Cell) Action {
	if cell == core.Alive {
		return Action{Kind: SetAlive, Position: pos}
	}
	return Action{Kind: SetDead, Position: pos}
}

// Undo returns the packets that revert the action.
func (a Action) Undo() []comms.UIPacket {
	return []comms.UIPacket{comms.Set{Position: a.Position, Cell: a.cell().Invert()}}
}

// Redo returns the packets that apply the action again.
func (a Action) Redo() []comms.UIPacket {
	return []comms.UIPacket{comms.Set{Position: a.Position, Cell: a.cell()}}
}

func (a Action) cell() core.Cell {
	return core.CellFromBool(a.Kind == SetAlive)
}

// History is a bounded list of actions, newest first, with a cursor counting
// how many of them are currently undone.
type History struct {
	actions []Action
	cursor  int
}

// Add records a new action. Undone actions are discarded first.
func (h *History) Add(a Action) {
	h.actions = h.actions[h.cursor:]
	h.cursor = 0
	if len(h.actions) == Capacity {
		h.actions = h.actions[:Capacity-1]
	}
	h.actions = append([]Action{a}, h.actions...)
}

// Undo reverts the newest action that is not yet undone. It returns nil when
// nothing is left.
func (h *History) Undo() []comms.UIPacket {
	if h.cursor >= len(h.actions) {
		return nil
	}
	a := h.actions[h.cursor]
	h.cursor++
	return a.Undo()
}

// Redo re-applies the most recently undone action. It returns nil when
// nothing is undone.
func (h *History) Redo() []comms.UIPacket {
	if h.cursor == 0 {
		return nil
	}
	h.cursor--
	return h.actions[h.cursor].Redo()
}

// CanUndo reports whether Undo would return packets.
func (h *History) CanUndo() bool { return h.cursor < len(h.actions) }

// CanRedo reports whether Redo would return packets.
func (h *History) CanRedo() bool { return h.cursor > 0 }

// Len is the number of stored actions, undone ones included.
func (h *History) Len() int { return len(h.actions) }

// Clear forgets every action.
func (h *History) Clear() {
	h.actions = nil
	h.cursor = 0
}
