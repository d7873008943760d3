package summarizer

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential means no API key was supplied for the provider.
	ErrMissingCredential = errors.New("summarizer API key is not configured")
	// ErrEmptyCompletion means the response had no usable text.
	ErrEmptyCompletion = errors.New("empty completion from model")
)

// RemoteServiceError is a non-success answer from the model API.
type RemoteServiceError struct {
	StatusCode int
	Body       string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("model API error (HTTP %d): %s", e.StatusCode, e.Body)
}

// TransportError is a failure to reach the model API at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model API unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
