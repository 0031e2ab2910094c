package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a prompt is requested after the quiz completed.
	ErrOutOfRange = errors.New("no word at current position")
	// ErrInvalidTransition is returned when an operation is invoked in the wrong phase.
	ErrInvalidTransition = errors.New("invalid quiz transition")
	// ErrUnknownChapter indicates a chapter identifier with no source location.
	ErrUnknownChapter = errors.New("unknown chapter")
	// ErrMalformedBank indicates the payload is not a valid word bank.
	ErrMalformedBank = errors.New("malformed word bank")
	// ErrBankNotFound indicates the backing store has no bank for a chapter.
	ErrBankNotFound = errors.New("word bank not found")
)

// LoadError reports a failure to fetch or parse the word bank of a chapter.
// A LoadError never comes with a partial bank.
type LoadError struct {
	Chapter string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load word bank %q: %v", e.Chapter, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError wraps err as a LoadError unless it already is one.
func NewLoadError(chapter string, err error) error {
	var le *LoadError
	if errors.As(err, &le) {
		return err
	}
	return &LoadError{Chapter: chapter, Err: err}
}
