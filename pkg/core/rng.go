package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Cell returns Alive roughly once every n calls. n <= 1 always yields Alive.
func (r *RNG) Cell(n int) Cell {
	if n <= 1 {
		return Alive
	}
	return CellFromBool(r.r.IntN(n) == 0)
}
