package document

import (
	"context"
	"os"
	"path/filepath"
)

// Render paginates summary and writes it to <outputDir>/<name><ext>,
// replacing any file of the same name.
func (r *implRenderer) Render(ctx context.Context, summary string) (Result, error) {
	pages := r.layout.Paginate(summary, r.backend)
	name := FileName(summary, r.now())

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		r.logger.Error(ctx, "Failed to create output dir %s: %v", r.outputDir, err)
		return Result{}, &RenderError{Op: "create output dir", Err: err}
	}

	path := filepath.Join(r.outputDir, name+r.backend.Extension())
	r.logger.Debug(ctx, "Writing %d page(s) to %s", len(pages), path)

	if err := r.backend.Write(pages, path); err != nil {
		r.logger.Error(ctx, "Failed to write %s: %v", path, err)
		return Result{}, &RenderError{Op: "write " + filepath.Base(path), Err: err}
	}

	r.logger.Info(ctx, "Minutes saved: %s (%d pages)", path, len(pages))
	return Result{Path: path, Pages: len(pages)}, nil
}
