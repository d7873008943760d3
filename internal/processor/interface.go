package processor

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/voice-minutes/internal/document"
)

var (
	// ErrBusy means a document is already being generated.
	ErrBusy = errors.New("minutes generation already in progress")
	// ErrEmptyText means there is nothing to summarize.
	ErrEmptyText = errors.New("no recognized text to summarize")
)

// Request is the input of one generation, read once when it starts.
type Request struct {
	Text      string
	StartDate string
}

// Processor turns recognized text into a saved minutes document.
// Only one generation runs at a time.
type Processor interface {
	// Process generates synchronously.
	Process(ctx context.Context, req Request) (document.Result, error)
	// Submit generates in the background; the outcome is only notified.
	Submit(ctx context.Context, req Request) error
	// ProcessFile generates from a transcript file, waiting for its turn.
	ProcessFile(ctx context.Context, path string) error
	// Processing reports whether a generation is in flight.
	Processing() bool
	// Wait blocks until submitted generations finish and returns the last
	// failure among them since the previous Wait.
	Wait() error
}
