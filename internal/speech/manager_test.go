package speech

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/voice-minutes/internal/logger"
)

type fakeRecognizer struct {
	available bool
	entered   chan Options
	outcomes  chan Outcome

	mu    sync.Mutex
	count int
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{
		available: true,
		entered:   make(chan Options, 128),
		outcomes:  make(chan Outcome),
	}
}

func (f *fakeRecognizer) Available() bool { return f.available }

func (f *fakeRecognizer) Recognize(ctx context.Context, opts Options) Outcome {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
	f.entered <- opts

	select {
	case out := <-f.outcomes:
		return out
	case <-ctx.Done():
		return Outcome{Kind: OutcomeError, Err: ctx.Err()}
	}
}

func (f *fakeRecognizer) attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// awaitAttempt waits until the manager has started a new attempt. It returns
// false if the session ended instead.
func awaitAttempt(t *testing.T, rec *fakeRecognizer, sess *Session) bool {
	t.Helper()
	select {
	case <-rec.entered:
		return true
	case <-sess.Done():
		return false
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for recognition attempt")
		return false
	}
}

// send hands an outcome to the waiting attempt.
func send(t *testing.T, rec *fakeRecognizer, sess *Session, out Outcome) {
	t.Helper()
	select {
	case rec.outcomes <- out:
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out delivering outcome")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("timed out waiting for condition")
}

func results(texts ...string) Outcome {
	return Outcome{Kind: OutcomeResults, Texts: texts}
}

func newTestManager(rec Recognizer, clock clockwork.Clock) Manager {
	return New(Config{SessionTimeout: 5 * time.Minute, Clock: clock}, rec, logger.NewWithWriter("debug", "console", io.Discard))
}

func TestAccumulatesFragments(t *testing.T) {
	rec := newFakeRecognizer()
	m := newTestManager(rec, clockwork.NewFakeClock())

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	outcomes := []Outcome{
		results("売上は"),
		results(""),
		{Kind: OutcomeEndOfInput},
		{Kind: OutcomeError, Err: errors.New("no match")},
		results("好調です", "   "),
		results("以上"),
	}
	for _, out := range outcomes {
		if !awaitAttempt(t, rec, sess) {
			t.Fatal("session ended early")
		}
		send(t, rec, sess, out)
	}
	// The restart proves the last outcome was applied.
	if !awaitAttempt(t, rec, sess) {
		t.Fatal("session ended early")
	}

	if got, want := m.Text(), "売上は 好調です 以上"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if got := rec.attempts(); got != len(outcomes)+1 {
		t.Errorf("attempts = %d, want %d", got, len(outcomes)+1)
	}
	if !m.Listening() {
		t.Error("Listening() = false, want true")
	}
}

func TestAttemptOptions(t *testing.T) {
	rec := newFakeRecognizer()
	m := New(Config{Language: "ja-JP", Clock: clockwork.NewFakeClock()}, rec, logger.NewWithWriter("info", "console", io.Discard))

	if _, err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	select {
	case opts := <-rec.entered:
		if opts.Language != "ja-JP" || !opts.PartialResults {
			t.Errorf("Options = %+v, want ja-JP with partial results", opts)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no attempt started")
	}
}

func TestStartClearsText(t *testing.T) {
	rec := newFakeRecognizer()
	m := newTestManager(rec, clockwork.NewFakeClock())
	ctx := context.Background()

	first, err := m.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	awaitAttempt(t, rec, first)
	send(t, rec, first, results("前回の発言"))
	awaitAttempt(t, rec, first)
	if m.Text() != "前回の発言" {
		t.Fatalf("Text() = %q, want %q", m.Text(), "前回の発言")
	}

	m.Stop()
	if m.Text() != "前回の発言" {
		t.Errorf("Text() after Stop = %q, want it retained", m.Text())
	}

	second, err := m.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()
	if m.Text() != "" {
		t.Errorf("Text() after restart = %q, want empty", m.Text())
	}
	if second.ID() == first.ID() {
		t.Error("restarted session reused the previous ID")
	}

	awaitAttempt(t, rec, second)
	send(t, rec, second, results("新しい発言"))
	awaitAttempt(t, rec, second)
	if m.Text() != "新しい発言" {
		t.Errorf("Text() = %q, want %q", m.Text(), "新しい発言")
	}
}

func TestStartReplacesLiveSession(t *testing.T) {
	rec := newFakeRecognizer()
	m := newTestManager(rec, clockwork.NewFakeClock())
	ctx := context.Background()

	first, err := m.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	second, err := m.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	select {
	case <-first.Done():
	default:
		t.Error("first session was not torn down")
	}
	if m.Current() != second {
		t.Error("Current() is not the replacement session")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	rec := newFakeRecognizer()
	m := newTestManager(rec, clockwork.NewFakeClock())

	m.Stop()

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	awaitAttempt(t, rec, sess)

	m.Stop()
	m.Stop()

	if m.Listening() {
		t.Error("Listening() = true after Stop")
	}
	if m.Current() != nil {
		t.Error("Current() should be nil after Stop")
	}
	select {
	case <-sess.Done():
	default:
		t.Error("Done() not closed after Stop")
	}
	// The cancelled attempt must not restart anything.
	time.Sleep(50 * time.Millisecond)
	if got := rec.attempts(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestStartUnavailable(t *testing.T) {
	rec := newFakeRecognizer()
	rec.available = false
	m := newTestManager(rec, clockwork.NewFakeClock())

	_, err := m.Start(context.Background())
	if !errors.Is(err, ErrRecognizerUnavailable) {
		t.Fatalf("Start() error = %v, want ErrRecognizerUnavailable", err)
	}
	if m.Listening() {
		t.Error("Listening() = true without a recognizer")
	}
	if m.StartDate() != "" {
		t.Errorf("StartDate() = %q, want empty", m.StartDate())
	}
}

func TestStartDate(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 9, 30, 0, 0, time.Local))
	rec := newFakeRecognizer()
	m := newTestManager(rec, clk)

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if sess.StartDate() != "2024-01-01" {
		t.Errorf("Session.StartDate() = %q, want 2024-01-01", sess.StartDate())
	}
	if !sess.EndsAt().Equal(sess.StartedAt().Add(5 * time.Minute)) {
		t.Errorf("EndsAt() = %v, want StartedAt+5m", sess.EndsAt())
	}

	m.Stop()
	if m.StartDate() != "2024-01-01" {
		t.Errorf("StartDate() after Stop = %q, want it retained", m.StartDate())
	}
}

func TestWatchdogStopsContinuousSession(t *testing.T) {
	clk := clockwork.NewFakeClock()
	rec := newFakeRecognizer()
	m := newTestManager(rec, clk)

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	var elapsed time.Duration
	for elapsed <= 301*time.Second {
		if !awaitAttempt(t, rec, sess) {
			break
		}
		if elapsed < 5*time.Minute && !m.Listening() {
			t.Fatalf("session stopped early at %v", elapsed)
		}
		clk.Advance(10 * time.Second)
		elapsed += 10 * time.Second
		send(t, rec, sess, results("発言"))
	}

	waitFor(t, func() bool { return !m.Listening() })
	if elapsed < 5*time.Minute {
		t.Errorf("stopped after %v, want at least 5m", elapsed)
	}
	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Error("Done() not closed after timeout")
	}
	if m.Text() == "" {
		t.Error("Text() should keep what was recognized before the timeout")
	}
}

func TestWatchdogFiresDuringSilence(t *testing.T) {
	clk := clockwork.NewFakeClock()
	rec := newFakeRecognizer()
	m := newTestManager(rec, clk)

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	awaitAttempt(t, rec, sess)

	clk.Advance(4 * time.Minute)
	time.Sleep(20 * time.Millisecond)
	if !m.Listening() {
		t.Fatal("session stopped before the deadline")
	}

	clk.Advance(time.Minute)
	waitFor(t, func() bool { return !m.Listening() })
}

func TestContextCancelEndsSession(t *testing.T) {
	rec := newFakeRecognizer()
	m := newTestManager(rec, clockwork.NewFakeClock())
	ctx, cancel := context.WithCancel(context.Background())

	sess, err := m.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	awaitAttempt(t, rec, sess)

	cancel()
	waitFor(t, func() bool { return !m.Listening() })

	select {
	case <-sess.Done():
	default:
		t.Error("Done() not closed after cancellation")
	}
}

func TestClear(t *testing.T) {
	rec := newFakeRecognizer()
	m := newTestManager(rec, clockwork.NewFakeClock())

	sess, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	awaitAttempt(t, rec, sess)
	send(t, rec, sess, results("消す"))
	awaitAttempt(t, rec, sess)

	m.Clear()
	if m.Text() != "" {
		t.Errorf("Text() after Clear = %q, want empty", m.Text())
	}

	send(t, rec, sess, results("残す"))
	awaitAttempt(t, rec, sess)
	if m.Text() != "残す" {
		t.Errorf("Text() = %q, want %q", m.Text(), "残す")
	}
}

func TestOutcomeKindString(t *testing.T) {
	tests := []struct {
		kind OutcomeKind
		want string
	}{
		{OutcomeResults, "results"},
		{OutcomeEndOfInput, "end-of-input"},
		{OutcomeError, "error"},
		{OutcomeKind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("OutcomeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
