// Package persistence stores boards and blueprints as JSON documents whose
// filenames are derived from their metadata.
package persistence

import (
	"time"

	"infinite-life/pkg/core"
	"infinite-life/pkg/sim"
)

// Version is the save format written by this package.
const Version uint16 = 0

// Extension is appended to every generated filename.
const Extension = ".save"

// Timestamp is a creation time stored as a duration since the Unix epoch.
type Timestamp struct {
	Secs  uint64 `json:"secs"`
	Nanos uint32 `json:"nanos"`
}

// TimestampOf converts t. Times before the epoch become the zero Timestamp.
func TimestampOf(t time.Time) Timestamp {
	d := t.Sub(time.Unix(0, 0))
	if d < 0 {
		return Timestamp{}
	}
	return Timestamp{Secs: uint64(d / time.Second), Nanos: uint32(d % time.Second)}
}

// Time converts the timestamp back to local time.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t.Secs), int64(t.Nanos))
}

// Header is the metadata shared by both file kinds.
type Header struct {
	Version      uint16               `json:"version"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Tags         []string             `json:"tags"`
	Time         Timestamp            `json:"time"`
	ViewPosition *core.GlobalPosition `json:"view_position"`
}

// BoardFile is the on-disk form of a full board save.
type BoardFile struct {
	Header
	Generation uint64    `json:"generation"`
	BoardArea  core.Area `json:"board_area"`
	BoardData  sim.Bits  `json:"board_data"`
}

// Save returns the simulation payload.
func (f BoardFile) Save() sim.SimulationSave {
	return sim.SimulationSave{Generation: f.Generation, Area: f.BoardArea, Data: f.BoardData}
}

// BlueprintFile is the on-disk form of a blueprint.
type BlueprintFile struct {
	Header
	XSize         uint32   `json:"x_size"`
	YSize         uint32   `json:"y_size"`
	BlueprintData sim.Bits `json:"blueprint_data"`
}

// Blueprint returns the simulation payload.
func (f BlueprintFile) Blueprint() sim.SimulationBlueprint {
	return sim.SimulationBlueprint{XSize: f.XSize, YSize: f.YSize, Data: f.BlueprintData}
}
