package document

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/voice-minutes/internal/config"
	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
)

type implRenderer struct {
	layout    Layout
	backend   Backend
	outputDir string
	logger    logger.Logger
	now       func() time.Time
}

// New creates a Renderer for cfg.Document.Format writing into cfg.Document.OutputDir.
func New(cfg *config.Config, log logger.Logger) (Renderer, error) {
	layout := DefaultLayout()

	var backend Backend
	switch cfg.Document.Format {
	case config.FormatDOCX:
		backend = newDOCXBackend(layout)
	default:
		pdf, err := newPDFBackend(layout, cfg.Document.FontPath, cfg.Document.BoldPath)
		if err != nil {
			return nil, fmt.Errorf("init pdf backend: %w", err)
		}
		backend = pdf
	}

	return NewWithBackend(layout, backend, cfg.Document.OutputDir, log), nil
}

// NewWithBackend creates a Renderer around an explicit backend.
func NewWithBackend(layout Layout, backend Backend, outputDir string, log logger.Logger) Renderer {
	return &implRenderer{
		layout:    layout,
		backend:   backend,
		outputDir: outputDir,
		logger:    log,
		now:       time.Now,
	}
}
