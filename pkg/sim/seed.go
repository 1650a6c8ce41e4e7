package sim

import "infinite-life/pkg/core"

// Randomize fills area with roughly one alive cell in density, using a
// deterministic RNG. Cells outside area are untouched.
func Randomize(s Simulator, area core.Area, seed int64, density int) {
	rng := core.NewRNG(seed)
	for pos := range area.All() {
		s.Set(pos, rng.Cell(density))
	}
}
