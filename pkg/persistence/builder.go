package persistence

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"infinite-life/pkg/core"
	"infinite-life/pkg/sim"
)

// Builder collects the metadata for a save or blueprint before writing it.
type Builder struct {
	header  Header
	timeSet bool

	board     *sim.SimulationSave
	blueprint *sim.SimulationBlueprint
}

// NewSave starts a board save.
func NewSave(save sim.SimulationSave) *Builder {
	return &Builder{board: &save}
}

// NewBlueprint starts a blueprint save.
func NewBlueprint(bp sim.SimulationBlueprint) *Builder {
	return &Builder{blueprint: &bp}
}

// Name sets the display name. It is not the filename.
func (b *Builder) Name(name string) *Builder {
	b.header.Name = name
	return b
}

// Description sets a free-form description.
func (b *Builder) Description(description string) *Builder {
	b.header.Description = description
	return b
}

// Tags replaces the tag list.
func (b *Builder) Tags(tags ...string) *Builder {
	b.header.Tags = slices.Clone(tags)
	return b
}

// Time sets the creation time. The current time is used when unset.
func (b *Builder) Time(t time.Time) *Builder {
	b.header.Time = TimestampOf(t)
	b.timeSet = true
	return b
}

// ViewPosition records where the viewer was looking.
func (b *Builder) ViewPosition(pos core.GlobalPosition) *Builder {
	b.header.ViewPosition = &pos
	return b
}

// Header returns the metadata that will be written. The first call without
// an explicit Time fixes the creation time to now.
func (b *Builder) Header() Header {
	if !b.timeSet {
		b.Time(time.Now())
	}
	h := b.header
	h.Version = Version
	if h.Tags == nil {
		h.Tags = []string{}
	}
	return h
}

// Path returns where Save would write inside dir.
func (b *Builder) Path(dir string) string {
	return filepath.Join(dir, Filename(b.Header()))
}

// Save writes the document into dir, creating missing directories, and
// returns the file path. An existing file is never overwritten.
func (b *Builder) Save(dir string) (string, error) {
	path := b.Path(dir)
	data, err := b.encode()
	if err != nil {
		return "", &SaveError{Path: path, Kind: ErrSaveFormat, Err: err}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &SaveError{Path: path, Kind: ErrCreateDir, Err: err}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		kind := ErrFileOpen
		if errors.Is(err, fs.ErrExist) {
			kind = ErrAlreadyExists
		}
		return "", &SaveError{Path: path, Kind: kind, Err: err}
	}
	_, err = writeFile(f, data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// Never leave a partial file under the content-derived name.
		os.Remove(path)
		return "", &SaveError{Path: path, Kind: ErrWrite, Err: err}
	}
	return path, nil
}

// writeFile is replaced in tests to simulate a failing disk.
var writeFile = (*os.File).Write

func (b *Builder) encode() ([]byte, error) {
	h := b.Header()
	switch {
	case b.board != nil:
		return json.Marshal(BoardFile{
			Header:     h,
			Generation: b.board.Generation,
			BoardArea:  b.board.Area,
			BoardData:  b.board.Data,
		})
	case b.blueprint != nil:
		return json.Marshal(BlueprintFile{
			Header:        h,
			XSize:         b.blueprint.XSize,
			YSize:         b.blueprint.YSize,
			BlueprintData: b.blueprint.Data,
		})
	}
	return nil, errors.New("builder has no payload")
}
