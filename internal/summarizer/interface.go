package summarizer

import "context"

// Summarizer turns recognized meeting text into minutes that follow the
// four-section template.
type Summarizer interface {
	Summarize(ctx context.Context, text, startDate string) (string, error)
}
