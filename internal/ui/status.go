// Package ui draws the status panel and the selection overlay.
package ui

import "fmt"

// Status is what the HUD shows for one frame.
type Status struct {
	Line    string
	CanUndo bool
	CanRedo bool
	Notice  string
	Fatal   error
}

// Lines formats the status as the HUD prints it, top to bottom.
func (s Status) Lines() []string {
	if s.Fatal != nil {
		return []string{"simulation failed, restart required", s.Fatal.Error()}
	}
	lines := []string{s.Line, fmt.Sprintf("undo %s  redo %s", yesNo(s.CanUndo), yesNo(s.CanRedo))}
	if s.Notice != "" {
		lines = append(lines, s.Notice)
	}
	return lines
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
