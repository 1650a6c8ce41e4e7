package sparse

import (
	"math"
	"math/bits"
	"testing"

	"infinite-life/pkg/core"
	"infinite-life/pkg/sim"
)

func boardWith(cells ...core.GlobalPosition) *Board {
	b := New(nil)
	for _, c := range cells {
		b.Set(c, core.Alive)
	}
	return b
}

func assertAlive(t *testing.T, b *Board, want ...core.GlobalPosition) {
	t.Helper()
	if b.Population() != len(want) {
		t.Fatalf("population = %d, want %d", b.Population(), len(want))
	}
	for _, p := range want {
		if b.Get(p) != core.Alive {
			t.Fatalf("cell %v should be alive", p)
		}
	}
}

func TestDeadByDefault(t *testing.T) {
	b := New(nil)
	for p := range core.NewArea(core.Pos(-10, -10), core.Pos(10, 10)).All() {
		if b.Get(p) != core.Dead {
			t.Fatalf("cell %v alive on a new board", p)
		}
	}
}

func TestSetAndClear(t *testing.T) {
	b := New(nil)
	b.Set(core.Pos(1, 1), core.Alive)
	if b.Get(core.Pos(1, 1)) != core.Alive {
		t.Fatal("set cell should be alive")
	}
	b.Set(core.Pos(1, 1), core.Dead)
	if b.Get(core.Pos(1, 1)) != core.Dead {
		t.Fatal("cleared cell should be dead")
	}
}

// TestNeighbourRules checks every subset of the 8 neighbours around an alive
// and a dead centre in an isolated 3x3 neighbourhood.
func TestNeighbourRules(t *testing.T) {
	centre := core.Pos(0, 0)
	for mask := 0; mask < 256; mask++ {
		n := bits.OnesCount8(uint8(mask))
		for _, centreAlive := range []bool{true, false} {
			b := New(nil)
			if centreAlive {
				b.Set(centre, core.Alive)
			}
			for i, off := range neighbourOffsets {
				if mask&(1<<i) != 0 {
					b.Set(centre.Add(off), core.Alive)
				}
			}
			b.Tick()

			want := n == 3 || (centreAlive && n == 2)
			if got := b.Get(centre).Bool(); got != want {
				t.Fatalf("mask %08b (%d neighbours, alive=%v): centre alive=%v, want %v",
					mask, n, centreAlive, got, want)
			}
		}
	}
}

func TestBlockIsStable(t *testing.T) {
	block := []core.GlobalPosition{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	b := boardWith(block...)
	for i := 0; i < 5; i++ {
		b.Tick()
		assertAlive(t, b, block...)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	b := boardWith(core.Pos(2, 1), core.Pos(2, 2), core.Pos(2, 3))
	b.Tick()
	assertAlive(t, b, core.Pos(1, 2), core.Pos(2, 2), core.Pos(3, 2))
	b.Tick()
	assertAlive(t, b, core.Pos(2, 1), core.Pos(2, 2), core.Pos(2, 3))
}

func TestCoordinateEdgeDoesNotWrap(t *testing.T) {
	const hi, lo = math.MaxInt32, math.MinInt32

	b := boardWith(core.Pos(hi, -1), core.Pos(hi, 0), core.Pos(hi, 1))
	b.Tick()
	assertAlive(t, b, core.Pos(hi-1, 0), core.Pos(hi, 0))

	b = boardWith(core.Pos(-1, lo), core.Pos(0, lo), core.Pos(1, lo))
	b.Tick()
	assertAlive(t, b, core.Pos(0, lo), core.Pos(0, lo+1))
}

func TestGliderCrossesOrigin(t *testing.T) {
	glider := []core.GlobalPosition{{X: -1, Y: -2}, {X: 0, Y: -1}, {X: -2, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 0}}
	b := boardWith(glider...)
	for i := 0; i < 8; i++ {
		b.Tick()
	}
	shifted := make([]core.GlobalPosition, len(glider))
	for i, p := range glider {
		shifted[i] = p.Add(core.Pos(2, 2))
	}
	assertAlive(t, b, shifted...)
}

func TestGenerationIncrementsEvenWhenEmpty(t *testing.T) {
	b := New(nil)
	for i := 0; i < 4; i++ {
		b.Tick()
	}
	if b.Generation() != 4 {
		t.Fatalf("generation = %d", b.Generation())
	}
}

func TestReset(t *testing.T) {
	b := boardWith(core.Pos(3, 3), core.Pos(-3, 3))
	b.SetGeneration(100)
	b.Reset()
	if b.Generation() != 0 || b.Population() != 0 {
		t.Fatalf("after reset generation=%d population=%d", b.Generation(), b.Population())
	}
}

func TestBoardArea(t *testing.T) {
	if New(nil).BoardArea() != core.NewArea(core.Pos(0, 0), core.Pos(0, 0)) {
		t.Fatal("empty board area must be the origin")
	}

	full := core.NewArea(core.Pos(-2, -2), core.Pos(3, 4))
	b := New(nil)
	for p := range full.All() {
		b.Set(p, core.Alive)
	}
	if b.BoardArea() != full {
		t.Fatalf("full area = %v", b.BoardArea())
	}

	b = boardWith(core.Pos(5, 5), core.Pos(6, 9))
	if b.BoardArea() != core.NewArea(core.Pos(5, 5), core.Pos(6, 9)) {
		t.Fatalf("area away from origin = %v", b.BoardArea())
	}
}

// checker alternates cells so that the final column of a 12x12 pattern
// starting at -6 is always dead.
func checker(p core.GlobalPosition) core.Cell {
	return core.CellFromBool((p.X+p.Y)%2 == 0 && p.X != 5)
}

func TestSaveBoardTrimsEmptyEdge(t *testing.T) {
	b := New(nil)
	written := core.NewArea(core.Pos(-6, -6), core.Pos(5, 5))
	for p := range written.All() {
		b.Set(p, checker(p))
	}
	save := sim.SaveBoard(b)
	want := core.NewArea(core.Pos(-6, -6), core.Pos(4, 5))
	if save.Area != want {
		t.Fatalf("save area = %v, want %v", save.Area, want)
	}
	if err := save.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := New(nil)
	area := core.NewArea(core.Pos(-6, -6), core.Pos(5, 5))
	for p := range area.All() {
		src.Set(p, checker(p))
	}
	src.Tick()
	src.Tick()

	dst := New(nil)
	dst.Set(core.Pos(50, 50), core.Alive)
	sim.LoadBoard(dst, sim.SaveBoard(src))

	if dst.Generation() != 2 || dst.Population() != src.Population() {
		t.Fatalf("loaded generation=%d population=%d", dst.Generation(), dst.Population())
	}
	for p := range src.BoardArea().All() {
		if dst.Get(p) != src.Get(p) {
			t.Fatalf("cell %v differs after round trip", p)
		}
	}
}

func TestBlueprintSurroundingsUntouched(t *testing.T) {
	b := New(nil)
	ring := core.NewArea(core.Pos(-1, -1), core.Pos(3, 3))
	for p := range ring.All() {
		b.Set(p, core.Alive)
	}
	bp := sim.SimulationBlueprint{XSize: 2, YSize: 2, Data: sim.BitsFrom(false, false, false, false, false, false, false, false, false)}
	sim.LoadBlueprint(b, core.Pos(0, 0), bp)

	for p := range ring.All() {
		inside := p.X >= 0 && p.X <= 2 && p.Y >= 0 && p.Y <= 2
		if got := b.Get(p); got != core.CellFromBool(!inside) {
			t.Fatalf("cell %v = %v", p, got)
		}
	}
}

func TestUpdateDisplayPublishes(t *testing.T) {
	shared := sim.NewSharedDisplay()
	b := New(shared)
	b.Set(core.Pos(1, 1), core.Alive)
	b.SetDisplayArea(core.NewArea(core.Pos(0, 0), core.Pos(2, 2)))
	if ok, err := b.UpdateDisplay(); err != nil || !ok {
		t.Fatalf("UpdateDisplay() = %v, %v", ok, err)
	}
	d, ok, err := shared.Take()
	if err != nil || !ok {
		t.Fatalf("Take() = %v, %v", ok, err)
	}
	if d.Cell(1, 1) != core.Alive || d.Alive() != 1 {
		t.Fatal("snapshot does not reflect the board")
	}
}

func TestRegistered(t *testing.T) {
	f, ok := sim.Engines()["sparse"]
	if !ok {
		t.Fatal("sparse engine not registered")
	}
	if _, ok := f(nil).(*Board); !ok {
		t.Fatal("factory returned the wrong type")
	}
}
