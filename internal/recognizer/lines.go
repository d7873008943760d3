package recognizer

import (
	"bufio"
	"context"
	"io"
	"sync"

	"github.com/nguyentantai21042004/voice-minutes/internal/speech"
)

// LineRecognizer treats every line read from r as one recognized utterance.
// It is meant for piping the output of an external streaming STT tool.
type LineRecognizer struct {
	reader  io.Reader
	once    sync.Once
	drained sync.Once
	lines   chan string
	eof     chan struct{}
	done    chan struct{}
	err     error

	mu sync.Mutex
	// held lines were read by an attempt that was cancelled meanwhile; the
	// next attempt returns them first.
	held []string
}

func NewLines(r io.Reader) *LineRecognizer {
	return &LineRecognizer{
		reader: r,
		lines:  make(chan string),
		eof:    make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (r *LineRecognizer) Available() bool { return r.reader != nil }

// Done is closed once the reader is exhausted and every line has been
// handed to a caller. Outcomes are consumed sequentially, so by then all
// earlier lines have been applied.
func (r *LineRecognizer) Done() <-chan struct{} { return r.done }

// Err reports the read error that ended the input, if any.
func (r *LineRecognizer) Err() error {
	select {
	case <-r.eof:
		return r.err
	default:
		return nil
	}
}

func (r *LineRecognizer) Recognize(ctx context.Context, opts speech.Options) speech.Outcome {
	r.once.Do(func() { go r.scan() })

	if err := ctx.Err(); err != nil {
		return speech.Outcome{Kind: speech.OutcomeError, Err: err}
	}
	if line, ok := r.takeHeld(); ok {
		return speech.Outcome{Kind: speech.OutcomeResults, Texts: []string{line}}
	}

	select {
	case line := <-r.lines:
		if err := ctx.Err(); err != nil {
			// The caller would drop it as stale.
			r.hold(line)
			return speech.Outcome{Kind: speech.OutcomeError, Err: err}
		}
		return speech.Outcome{Kind: speech.OutcomeResults, Texts: []string{line}}
	case <-r.eof:
		r.drained.Do(func() { close(r.done) })
		// Exhausted input behaves like a silent microphone until the
		// session ends.
		<-ctx.Done()
		return speech.Outcome{Kind: speech.OutcomeEndOfInput}
	case <-ctx.Done():
		return speech.Outcome{Kind: speech.OutcomeError, Err: ctx.Err()}
	}
}

func (r *LineRecognizer) hold(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.held = append(r.held, line)
}

func (r *LineRecognizer) takeHeld() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.held) == 0 {
		return "", false
	}
	line := r.held[0]
	r.held = r.held[1:]
	return line, true
}

func (r *LineRecognizer) scan() {
	defer close(r.eof)

	scanner := bufio.NewScanner(r.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		r.lines <- scanner.Text()
	}
	r.err = scanner.Err()
}
