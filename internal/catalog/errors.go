package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTitle indicates the title is already in the catalog
	ErrDuplicateTitle = errors.New("duplicate title")

	// ErrMissingInput indicates a required field was not supplied
	ErrMissingInput = errors.New("missing input")

	// ErrEmptyLine indicates a blank record line in the store
	ErrEmptyLine = errors.New("empty line")

	// ErrDuplicateID indicates a record reuses an id that was already loaded
	ErrDuplicateID = errors.New("duplicate id")
)

// DuplicateTitleError is returned by Add when a title already exists,
// compared case-insensitively.
type DuplicateTitleError struct {
	Title    string
	Existing string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("movie %q already exists as %q", e.Title, e.Existing)
}

// Is implements errors.Is support
func (e *DuplicateTitleError) Is(target error) bool {
	return target == ErrDuplicateTitle
}

// MissingInputError is returned when a required field is blank.
type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("you must enter a movie %s", e.Field)
}

// Is implements errors.Is support
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// LineError describes a record that was skipped during Load.
// Record is the 1-based position of the line in the input passed to Load.
type LineError struct {
	Record int
	Text   string
	Err    error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Record, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
