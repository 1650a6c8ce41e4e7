package comms

import (
	"fmt"
	"time"

	"infinite-life/pkg/core"
	"infinite-life/pkg/sim"
)

// UIPacket is a request sent from the interactive side to the simulation
// loop. The set of implementations is closed.
type UIPacket interface {
	uiPacket()
}

// SimulatorPacket is a reply sent from the simulation loop to the
// interactive side.
type SimulatorPacket interface {
	simulatorPacket()
}

// DisplayArea changes the region rendered into the shared display.
type DisplayArea struct{ Area core.Area }

// Set changes one cell.
type Set struct {
	Position core.GlobalPosition
	Cell     core.Cell
}

// SaveBoard asks for a BoardSave reply.
type SaveBoard struct{}

// LoadBoard replaces the board.
type LoadBoard struct{ Save sim.SimulationSave }

// SaveBlueprint asks for a BlueprintSave reply covering Area.
type SaveBlueprint struct{ Area core.Area }

// LoadBlueprint stamps Blueprint with its first cell at Origin.
type LoadBlueprint struct {
	Origin    core.GlobalPosition
	Blueprint sim.SimulationBlueprint
}

// Start runs the simulation with no target generation.
type Start struct{}

// StartUntil runs the simulation until Generation is reached.
type StartUntil struct{ Generation uint64 }

// Stop pauses the simulation.
type Stop struct{}

// SimulationSpeed changes the tick rate cap.
type SimulationSpeed struct{ Speed Speed }

// Terminate ends the loop. Packets queued behind it are dropped.
type Terminate struct{}

func (DisplayArea) uiPacket()     {}
func (Set) uiPacket()             {}
func (SaveBoard) uiPacket()       {}
func (LoadBoard) uiPacket()       {}
func (SaveBlueprint) uiPacket()   {}
func (LoadBlueprint) uiPacket()   {}
func (Start) uiPacket()           {}
func (StartUntil) uiPacket()      {}
func (Stop) uiPacket()            {}
func (SimulationSpeed) uiPacket() {}
func (Terminate) uiPacket()       {}

// BoardSave carries the result of a SaveBoard request.
type BoardSave struct{ Save sim.SimulationSave }

// BlueprintSave carries the result of a SaveBlueprint request.
type BlueprintSave struct{ Blueprint sim.SimulationBlueprint }

func (BoardSave) simulatorPacket()     {}
func (BlueprintSave) simulatorPacket() {}

// DefaultTPS replaces a zero rate passed to NewSpeed.
const DefaultTPS = 10

// Speed is a ticks-per-second cap. The zero value is Uncapped.
type Speed struct {
	tps uint32
}

// Uncapped lets the loop tick as fast as it can.
var Uncapped = Speed{}

// NewSpeed caps the loop at tps ticks per second. Zero selects DefaultTPS.
func NewSpeed(tps uint32) Speed {
	if tps == 0 {
		tps = DefaultTPS
	}
	return Speed{tps: tps}
}

// TicksPerSecond returns the cap, or false when uncapped.
func (s Speed) TicksPerSecond() (uint32, bool) {
	return s.tps, s.tps != 0
}

// Period is the time between ticks, zero when uncapped.
func (s Speed) Period() time.Duration {
	if s.tps == 0 {
		return 0
	}
	return time.Second / time.Duration(s.tps)
}

func (s Speed) String() string {
	if s.tps == 0 {
		return "uncapped"
	}
	return fmt.Sprintf("%d tps", s.tps)
}
