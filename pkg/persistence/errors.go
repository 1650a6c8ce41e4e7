package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadable means the file could not be opened or read.
	ErrUnreadable = errors.New("unable to read file")
	// ErrInvalidData means the file is not a valid document.
	ErrInvalidData = errors.New("not a valid data file")
	// ErrTooBig means the declared area cannot be held in memory.
	ErrTooBig = errors.New("declared area is too large")

	// ErrSaveFormat means the document could not be encoded.
	ErrSaveFormat = errors.New("unable to encode save data")
	// ErrCreateDir means the parent directories could not be created.
	ErrCreateDir = errors.New("unable to create save directory")
	// ErrAlreadyExists means a file with the derived name is already present.
	ErrAlreadyExists = errors.New("save already exists")
	// ErrFileOpen means the target file could not be created.
	ErrFileOpen = errors.New("unable to create save file")
	// ErrWrite means writing the encoded document failed.
	ErrWrite = errors.New("unable to write save file")
)

// ParseError reports a file that could not be loaded. It matches both Kind
// and the underlying cause with errors.Is.
type ParseError struct {
	Path string
	Kind error
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *ParseError) Unwrap() []error { return causes(e.Kind, e.Err) }

// SaveError reports a file that could not be written.
type SaveError struct {
	Path string
	Kind error
	Err  error
}

func (e *SaveError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
}

func (e *SaveError) Unwrap() []error { return causes(e.Kind, e.Err) }

func causes(kind, err error) []error {
	if err == nil {
		return []error{kind}
	}
	return []error{kind, err}
}
