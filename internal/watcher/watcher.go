package watcher

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
)

var transcriptExts = []string{".txt", ".md"}

type implWatcher struct {
	inboxDir string
	handler  EventHandler
	logger   logger.Logger
	fsw      *fsnotify.Watcher
	limit    int
	settle   time.Duration
	group    errgroup.Group

	mu sync.Mutex
	// pending files are still being written; each timer is re-armed on
	// every write and fires into ready once the file settles.
	pending map[string]*time.Timer
	// handled files were dispatched and are skipped until removed or
	// moved out of the inbox.
	handled map[string]struct{}
	ready   chan string
	done    chan struct{}
}

// Start monitors the inbox until ctx is done. On return it waits for running
// handlers.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started (max concurrent: %d). Monitoring: %s", w.limit, w.inboxDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(transcriptExts, ", "))
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing generation to complete...")
			w.stopTimers()
			_ = w.group.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.observe(ctx, event)

		case path := <-w.ready:
			w.dispatch(ctx, path)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.fsw.Close()
}

func (w *implWatcher) observe(ctx context.Context, event fsnotify.Event) {
	path := event.Name

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if t, ok := w.pending[path]; ok {
			t.Stop()
			delete(w.pending, path)
		}
		delete(w.handled, path)

	case event.Has(fsnotify.Write):
		if t, ok := w.pending[path]; ok {
			t.Reset(w.settle)
		}

	case event.Has(fsnotify.Create):
		if !isTranscriptFile(path) {
			w.logger.Debug(ctx, "Ignoring non-transcript file: %s", path)
			return
		}
		if _, ok := w.handled[path]; ok {
			return
		}
		if _, ok := w.pending[path]; ok {
			return
		}
		w.logger.Info(ctx, "New transcript detected: %s", path)
		w.pending[path] = time.AfterFunc(w.settle, func() {
			select {
			case w.ready <- path:
			case <-w.done:
			}
		})
	}
}

// dispatch hands a settled file to the handler. It blocks while limit
// handlers are already running.
func (w *implWatcher) dispatch(ctx context.Context, path string) {
	w.mu.Lock()
	if _, ok := w.pending[path]; !ok {
		// A re-armed timer fired twice.
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	w.handled[path] = struct{}{}
	w.mu.Unlock()

	w.group.Go(func() error {
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
		return nil
	})
}

func (w *implWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func isTranscriptFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, t := range transcriptExts {
		if ext == t {
			return true
		}
	}
	return false
}
