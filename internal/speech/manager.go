package speech

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// state is everything guarded by the manager lock.
type state struct {
	mu        sync.Mutex
	session   *Session
	text      string
	startDate string
}

func (s *state) append(fragment string) {
	if strings.TrimSpace(fragment) == "" {
		return
	}
	if s.text == "" {
		s.text = fragment
		return
	}
	s.text += " " + fragment
}

// Start begins a session bounded by ctx and the configured timeout.
func (m *implManager) Start(ctx context.Context) (*Session, error) {
	if !m.recognizer.Available() {
		m.logger.Error(ctx, "Speech recognizer is not available")
		return nil, ErrRecognizerUnavailable
	}

	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if prev := m.state.session; prev != nil {
		m.logger.Info(ctx, "Replacing live session %s", prev.id)
		m.teardownLocked()
	}

	now := m.clock.Now()
	sctx, cancel := context.WithCancel(ctx)
	sess := &Session{
		id:        uuid.NewString(),
		startedAt: now,
		endsAt:    now.Add(m.cfg.SessionTimeout),
		ctx:       sctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	sess.watchdog = m.clock.AfterFunc(m.cfg.SessionTimeout, func() { m.expire(sess) })

	m.state.session = sess
	m.state.text = ""
	m.state.startDate = sess.StartDate()

	m.logger.Info(ctx, "Listening started: session=%s language=%s until=%s",
		sess.id, m.cfg.Language, sess.endsAt.Format("15:04:05"))

	m.launchLocked(sess)
	return sess, nil
}

// Stop is idempotent.
func (m *implManager) Stop() {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if m.state.session == nil {
		return
	}
	m.logger.Info(m.state.session.ctx, "Listening stopped: session=%s", m.state.session.id)
	m.teardownLocked()
}

func (m *implManager) Clear() {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	m.state.text = ""
}

func (m *implManager) Text() string {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	return m.state.text
}

func (m *implManager) Listening() bool {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	return m.state.session != nil
}

func (m *implManager) StartDate() string {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	return m.state.startDate
}

func (m *implManager) Current() *Session {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()
	return m.state.session
}

// launchLocked runs the next recognition attempt in its own goroutine.
func (m *implManager) launchLocked(sess *Session) {
	sess.attempt++
	attempt := sess.attempt
	opts := Options{
		Language:       m.cfg.Language,
		PartialResults: true,
	}

	go func() {
		out := m.recognizer.Recognize(sess.ctx, opts)
		m.complete(sess, attempt, out)
	}()
}

// complete handles the end of an attempt: keep the text, then either restart
// or end the session.
func (m *implManager) complete(sess *Session, attempt int, out Outcome) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if m.state.session != sess || attempt != sess.attempt {
		m.logger.Debug(sess.ctx, "Dropping stale %s outcome: session=%s attempt=%d", out.Kind, sess.id, attempt)
		return
	}

	switch out.Kind {
	case OutcomeResults:
		for _, text := range out.Texts {
			m.state.append(text)
		}
	case OutcomeError:
		m.logger.Debug(sess.ctx, "Recognition attempt %d failed, restarting: %v", attempt, out.Err)
	}

	switch {
	case sess.ctx.Err() != nil:
		m.logger.Info(sess.ctx, "Listening cancelled: session=%s", sess.id)
		m.teardownLocked()
	case !m.clock.Now().Before(sess.endsAt):
		m.logger.Info(sess.ctx, "Session time limit reached: session=%s", sess.id)
		m.teardownLocked()
	default:
		m.launchLocked(sess)
	}
}

// expire is the watchdog callback.
func (m *implManager) expire(sess *Session) {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if m.state.session != sess {
		return
	}
	m.logger.Info(sess.ctx, "Session watchdog fired: session=%s", sess.id)
	m.teardownLocked()
}

func (m *implManager) teardownLocked() {
	sess := m.state.session
	sess.watchdog.Stop()
	sess.cancel()
	close(sess.done)
	m.state.session = nil
}
