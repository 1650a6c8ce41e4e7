package core

import (
	"encoding/json"
	"fmt"
	"iter"
)

// Area is an inclusive axis-aligned rectangle. The corners are kept sorted so
// that min.X <= max.X and min.Y <= max.Y; a zero-sized area still covers one
// cell.
type Area struct {
	min GlobalPosition
	max GlobalPosition
}

// NewArea builds the rectangle spanned by two opposite corners in any order.
func NewArea(p1, p2 GlobalPosition) Area {
	return Area{
		min: GlobalPosition{X: min(p1.X, p2.X), Y: min(p1.Y, p2.Y)},
		max: GlobalPosition{X: max(p1.X, p2.X), Y: max(p1.Y, p2.Y)},
	}
}

// Min returns the corner with the smallest x and y.
func (a Area) Min() GlobalPosition { return a.min }

// Max returns the corner with the largest x and y.
func (a Area) Max() GlobalPosition { return a.max }

// XDifference is max.X - min.X.
func (a Area) XDifference() uint32 { return uint32(int64(a.max.X) - int64(a.min.X)) }

// YDifference is max.Y - min.Y.
func (a Area) YDifference() uint32 { return uint32(int64(a.max.Y) - int64(a.min.Y)) }

// Width is the number of columns covered.
func (a Area) Width() uint64 { return uint64(a.XDifference()) + 1 }

// Height is the number of rows covered.
func (a Area) Height() uint64 { return uint64(a.YDifference()) + 1 }

// Count is the number of positions yielded by All.
func (a Area) Count() uint64 { return a.Width() * a.Height() }

// Contains reports whether p lies inside the area, bounds included.
func (a Area) Contains(p GlobalPosition) bool {
	return p.X >= a.min.X && p.X <= a.max.X && p.Y >= a.min.Y && p.Y <= a.max.Y
}

// All yields every position in the area with x varying fastest, then y.
func (a Area) All() iter.Seq[GlobalPosition] {
	return func(yield func(GlobalPosition) bool) {
		for y := int64(a.min.Y); y <= int64(a.max.Y); y++ {
			for x := int64(a.min.X); x <= int64(a.max.X); x++ {
				if !yield(GlobalPosition{X: int32(x), Y: int32(y)}) {
					return
				}
			}
		}
	}
}

// TranslateX moves both corners along the x axis.
func (a *Area) TranslateX(by int32) {
	a.min.X += by
	a.max.X += by
}

// TranslateY moves both corners along the y axis.
func (a *Area) TranslateY(by int32) {
	a.min.Y += by
	a.max.Y += by
}

// Translate moves both corners by delta.
func (a *Area) Translate(delta GlobalPosition) {
	a.TranslateX(delta.X)
	a.TranslateY(delta.Y)
}

// ModifyMin moves the min corner by delta. Each axis stops at the max corner.
func (a *Area) ModifyMin(delta GlobalPosition) {
	a.min.X = clampShift(a.min.X, delta.X, a.max.X, true)
	a.min.Y = clampShift(a.min.Y, delta.Y, a.max.Y, true)
}

// ModifyMax moves the max corner by delta. Each axis stops at the min corner.
func (a *Area) ModifyMax(delta GlobalPosition) {
	a.max.X = clampShift(a.max.X, delta.X, a.min.X, false)
	a.max.Y = clampShift(a.max.Y, delta.Y, a.min.Y, false)
}

// clampShift adds delta to v in 64 bits and clamps the result so that it never
// crosses bound; upper selects which side of bound is legal.
func clampShift(v, delta, bound int32, upper bool) int32 {
	shifted := int64(v) + int64(delta)
	if upper {
		return int32(min(shifted, int64(bound)))
	}
	return int32(max(shifted, int64(bound)))
}

func (a Area) String() string { return fmt.Sprintf("%v..%v", a.min, a.max) }

type areaJSON struct {
	Min GlobalPosition `json:"min"`
	Max GlobalPosition `json:"max"`
}

// MarshalJSON encodes the area as {"min":{..},"max":{..}}.
func (a Area) MarshalJSON() ([]byte, error) {
	return json.Marshal(areaJSON{Min: a.min, Max: a.max})
}

// UnmarshalJSON decodes and re-normalises the corners.
func (a *Area) UnmarshalJSON(data []byte) error {
	var raw areaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = NewArea(raw.Min, raw.Max)
	return nil
}
