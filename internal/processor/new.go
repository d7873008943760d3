package processor

import (
	"sync"

	"github.com/nguyentantai21042004/voice-minutes/internal/config"
	"github.com/nguyentantai21042004/voice-minutes/internal/document"
	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
	"github.com/nguyentantai21042004/voice-minutes/internal/notify"
	"github.com/nguyentantai21042004/voice-minutes/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	summarizer summarizer.Summarizer
	renderer   document.Renderer
	notifier   notify.Notifier
	logger     logger.Logger
	slot       *generationSlot
	wg         sync.WaitGroup

	mu        sync.Mutex
	submitErr error
}

// New creates a new Processor instance
func New(cfg *config.Config, sum summarizer.Summarizer, rend document.Renderer, n notify.Notifier, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		summarizer: sum,
		renderer:   rend,
		notifier:   n,
		logger:     log,
		slot:       newGenerationSlot(),
	}
}
