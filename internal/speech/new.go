package speech

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
)

// DefaultSessionTimeout bounds a capture session.
const DefaultSessionTimeout = 5 * time.Minute

type Config struct {
	Language       string
	SessionTimeout time.Duration
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

type implManager struct {
	cfg        Config
	recognizer Recognizer
	logger     logger.Logger
	clock      clockwork.Clock
	state      state
}

// New creates a Manager driving the given recognizer.
func New(cfg Config, rec Recognizer, log logger.Logger) Manager {
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = DefaultSessionTimeout
	}
	if cfg.Language == "" {
		cfg.Language = "ja-JP"
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &implManager{
		cfg:        cfg,
		recognizer: rec,
		logger:     log,
		clock:      clock,
	}
}
