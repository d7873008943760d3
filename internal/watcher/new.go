package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
)

// settleDelay is how long a new file must stay unwritten before it is read.
const settleDelay = 500 * time.Millisecond

// New watches inboxDir and runs handler for each new transcript, at most
// maxConcurrent at a time.
func New(inboxDir string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inboxDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	w := &implWatcher{
		inboxDir: inboxDir,
		handler:  handler,
		logger:   log,
		fsw:      fsw,
		limit:    maxConcurrent,
		settle:   settleDelay,
		pending:  make(map[string]*time.Timer),
		handled:  make(map[string]struct{}),
		ready:    make(chan string),
		done:     make(chan struct{}),
	}
	w.group.SetLimit(maxConcurrent)
	return w, nil
}
