package speech

import (
	"context"
	"errors"
)

// ErrRecognizerUnavailable is returned by Start when the speech engine
// cannot be used on this machine.
var ErrRecognizerUnavailable = errors.New("speech recognizer unavailable")

// OutcomeKind is the way a recognition attempt ended.
type OutcomeKind int

const (
	OutcomeResults OutcomeKind = iota
	OutcomeEndOfInput
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeResults:
		return "results"
	case OutcomeEndOfInput:
		return "end-of-input"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is what a single recognition attempt produced.
type Outcome struct {
	Kind  OutcomeKind
	Texts []string
	Err   error
}

// Options are passed to every recognition attempt.
type Options struct {
	Language       string
	PartialResults bool
}

// Recognizer is a speech engine. Recognize runs one attempt and blocks until
// it ends; it must return promptly once ctx is cancelled.
type Recognizer interface {
	Available() bool
	Recognize(ctx context.Context, opts Options) Outcome
}

// Manager owns the capture session and the recognized text.
type Manager interface {
	// Start clears the text and begins a new session, replacing any live one.
	Start(ctx context.Context) (*Session, error)
	// Stop ends the live session. Stopping with no live session is a no-op.
	Stop()
	// Clear discards the recognized text.
	Clear()
	Text() string
	Listening() bool
	// StartDate is the date of the most recent session, "" before the first.
	StartDate() string
	// Current returns the live session, or nil.
	Current() *Session
}
