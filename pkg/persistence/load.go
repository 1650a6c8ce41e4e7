package persistence

import (
	"encoding/json"
	"fmt"
	"math"
	"math/bits"
	"os"
	"slices"

	"infinite-life/pkg/sim"
)

// Keys a document must carry. view_position is optional.
var (
	headerFields           = []string{"version", "name", "description", "tags", "time"}
	savePreviewFields      = slices.Concat(headerFields, []string{"generation", "board_area"})
	blueprintPreviewFields = slices.Concat(headerFields, []string{"x_size", "y_size"})
	saveFields             = slices.Concat(savePreviewFields, []string{"board_data"})
	blueprintFields        = slices.Concat(blueprintPreviewFields, []string{"blueprint_data"})
)

// LoadSave reads and validates a full board save.
func LoadSave(path string) (BoardFile, error) {
	var f BoardFile
	if err := decodeFile(path, &f, saveFields); err != nil {
		return BoardFile{}, err
	}
	area := f.BoardArea
	if err := checkSize(path, area.Width(), area.Height()); err != nil {
		return BoardFile{}, err
	}
	if err := f.Save().Validate(); err != nil {
		return BoardFile{}, &ParseError{Path: path, Kind: sim.ErrUnexpectedSize, Err: err}
	}
	return f, nil
}

// LoadBoard reads the simulation payload of a board save.
func LoadBoard(path string) (sim.SimulationSave, error) {
	f, err := LoadSave(path)
	if err != nil {
		return sim.SimulationSave{}, err
	}
	return f.Save(), nil
}

// LoadBlueprintFile reads and validates a blueprint.
func LoadBlueprintFile(path string) (BlueprintFile, error) {
	var f BlueprintFile
	if err := decodeFile(path, &f, blueprintFields); err != nil {
		return BlueprintFile{}, err
	}
	if err := checkSize(path, uint64(f.XSize)+1, uint64(f.YSize)+1); err != nil {
		return BlueprintFile{}, err
	}
	if err := f.Blueprint().Validate(); err != nil {
		return BlueprintFile{}, &ParseError{Path: path, Kind: sim.ErrUnexpectedSize, Err: err}
	}
	return f, nil
}

// LoadBlueprint reads the simulation payload of a blueprint.
func LoadBlueprint(path string) (sim.SimulationBlueprint, error) {
	f, err := LoadBlueprintFile(path)
	if err != nil {
		return sim.SimulationBlueprint{}, err
	}
	return f.Blueprint(), nil
}

// decodeFile unmarshals the JSON object at path into v after checking that
// every key in required is present.
func decodeFile(path string, v any, required []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ParseError{Path: path, Kind: ErrUnreadable, Err: err}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return &ParseError{Path: path, Kind: ErrInvalidData, Err: err}
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return &ParseError{Path: path, Kind: ErrInvalidData, Err: fmt.Errorf("missing field %q", key)}
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{Path: path, Kind: ErrInvalidData, Err: err}
	}
	return nil
}

// checkSize rejects areas whose cell count does not fit in an int.
func checkSize(path string, w, h uint64) error {
	hi, lo := bits.Mul64(w, h)
	if hi != 0 || lo > math.MaxInt {
		return &ParseError{Path: path, Kind: ErrTooBig}
	}
	return nil
}
