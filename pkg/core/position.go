package core

import "fmt"

// GlobalPosition is a coordinate on the unbounded board. Moving right
// increases X, moving down increases Y.
type GlobalPosition struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
}

// Pos is shorthand for constructing a GlobalPosition.
func Pos(x, y int32) GlobalPosition { return GlobalPosition{X: x, Y: y} }

// Add returns the component-wise sum.
func (p GlobalPosition) Add(o GlobalPosition) GlobalPosition {
	return GlobalPosition{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference.
func (p GlobalPosition) Sub(o GlobalPosition) GlobalPosition {
	return GlobalPosition{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p GlobalPosition) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }
