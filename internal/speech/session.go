package speech

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// DateLayout formats Session.StartDate.
const DateLayout = "2006-01-02"

// Session is one bounded capture attempt. Its mutable fields are owned by the
// Manager and only touched under the Manager's lock.
type Session struct {
	id        string
	startedAt time.Time
	endsAt    time.Time

	ctx      context.Context
	cancel   context.CancelFunc
	watchdog clockwork.Timer
	attempt  int
	done     chan struct{}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) EndsAt() time.Time    { return s.endsAt }

// StartDate is the calendar date the session began, used in the report.
func (s *Session) StartDate() string { return s.startedAt.Format(DateLayout) }

// Done is closed when the session ends, whether stopped or timed out.
func (s *Session) Done() <-chan struct{} { return s.done }
