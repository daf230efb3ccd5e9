package schedule

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// ResourceLoadError means the ordinal map could not be read or is not a
// flat word -> integer mapping.
type ResourceLoadError struct {
	Source string
	Err    error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load ordinal map (%s): %s", e.Source, e.Err)
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}

type UnknownOrdinalError struct {
	Word string
	// closest known word, empty if the map has nothing remotely similar
	Suggestion string
}

func (e *UnknownOrdinalError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown lesson ordinal %q (did you mean %q?)", e.Word, e.Suggestion)
	}
	return fmt.Sprintf("unknown lesson ordinal %q", e.Word)
}

// StructuralMismatchError is returned when a day block or a lesson row
// does not have the shape the parser reads positionally.
type StructuralMismatchError struct {
	Element string
	Want    int
	Got     int
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf("%s: expected at least %d child elements, got %d", e.Element, e.Want, e.Got)
}

type TimeFormatError struct {
	Text string
	Err  error
}

func (e *TimeFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid lesson time %q, expected HH:MM", e.Text)
	}
	return fmt.Sprintf("invalid lesson time %q, expected HH:MM: %s", e.Text, e.Err)
}

func (e *TimeFormatError) Unwrap() error {
	return e.Err
}

func indexError(i, length int) error {
	return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, length)
}
