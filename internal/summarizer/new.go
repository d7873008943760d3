package summarizer

import (
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/voice-minutes/internal/config"
	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
)

const dateLayout = "2006-01-02"

type anthropicSummarizer struct {
	cfg    config.AnthropicConfig
	client *http.Client
	logger logger.Logger
	now    func() time.Time
}

type geminiSummarizer struct {
	apiKey string
	model  string
	logger logger.Logger
	now    func() time.Time
}

// New creates the Summarizer for cfg.Summarizer.Provider. It fails with
// ErrMissingCredential when that provider has no API key.
func New(cfg *config.Config, log logger.Logger) (Summarizer, error) {
	if strings.TrimSpace(cfg.APIKey()) == "" {
		return nil, ErrMissingCredential
	}

	if cfg.Summarizer.Provider == config.ProviderGemini {
		return &geminiSummarizer{
			apiKey: cfg.Gemini.APIKey,
			model:  cfg.Gemini.Model,
			logger: log,
			now:    time.Now,
		}, nil
	}

	return &anthropicSummarizer{
		cfg:    cfg.Anthropic,
		client: &http.Client{Timeout: cfg.Summarizer.Timeout},
		logger: log,
		now:    time.Now,
	}, nil
}

// meetingDate falls back to today when the session date is unknown.
func meetingDate(startDate string, now func() time.Time) string {
	if startDate != "" {
		return startDate
	}
	return now().Format(dateLayout)
}
