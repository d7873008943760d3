package document

import "fmt"

// RenderError is any failure while laying out or saving the document.
// A partially written file is left in place.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render minutes: %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
