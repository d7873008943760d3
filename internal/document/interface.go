package document

import "context"

// Renderer lays out generated minutes and saves them as one document.
type Renderer interface {
	Render(ctx context.Context, summary string) (Result, error)
}

// Result describes a saved document.
type Result struct {
	Path  string
	Pages int
}

// Backend measures text and writes finished pages in one file format.
type Backend interface {
	Measurer
	Extension() string
	Write(pages []Page, path string) error
}
