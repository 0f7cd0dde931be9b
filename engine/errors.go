package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrEngine matches every *Error via errors.Is.
var ErrEngine = errors.New("engine error")

// Phase tells where in the execution pipeline a failure happened.
type Phase string

const (
	// PhaseLoad covers failures obtaining source text (unreadable files).
	PhaseLoad Phase = "load"
	// PhaseParse covers syntax and compile errors.
	PhaseParse Phase = "parse"
	// PhaseRuntime covers errors raised while the chunk runs, including
	// unhandled script-level exceptions.
	PhaseRuntime Phase = "runtime"
)

// Error is the single failure shape produced by engine contexts.
type Error struct {
	// Phase is the pipeline stage that failed.
	Phase Phase

	// Message is the engine's human-readable description.
	Message string

	// Chunk is the name of the chunk being executed, if known.
	Chunk string

	// Line is the 1-based source line. Zero means unknown.
	Line int

	// Column is the 1-based source column. Zero means unknown.
	Column int

	// Err is the underlying engine error, if any.
	Err error
}

// Error returns the message, including the phase and position if available.
func (e *Error) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s error: %s (line %d, col %d)", e.Phase, e.Message, e.Line, e.Column)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s error: %s (line %d)", e.Phase, e.Message, e.Line)
	}
	return fmt.Sprintf("%s error: %s", e.Phase, e.Message)
}

// Unwrap returns the underlying engine error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEngine.
func (e *Error) Is(target error) bool {
	return target == ErrEngine
}

// NewError builds an *Error and fills the position from the message when
// one of the patterns matches.
func NewError(phase Phase, chunk, message string, cause error, patterns ...*regexp.Regexp) *Error {
	e := &Error{
		Phase:   phase,
		Message: message,
		Chunk:   chunk,
		Err:     cause,
	}
	e.Line, e.Column = FindPosition(message, patterns...)
	return e
}

// FindPosition extracts a line (and optional column) from msg using the
// first pattern that matches. Patterns capture the line in group 1 and,
// optionally, the column in group 2.
func FindPosition(msg string, patterns ...*regexp.Regexp) (line, col int) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		line, _ = strconv.Atoi(m[1])
		if len(m) > 2 {
			col, _ = strconv.Atoi(m[2])
		}
		return line, col
	}
	return 0, 0
}
