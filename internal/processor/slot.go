package processor

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// generationSlot admits one generation at a time. busy mirrors the semaphore
// so Processing can be answered without acquiring it.
type generationSlot struct {
	sem  *semaphore.Weighted
	busy atomic.Bool
}

func newGenerationSlot() *generationSlot {
	return &generationSlot{sem: semaphore.NewWeighted(1)}
}

// wait blocks until the slot is free or ctx is done.
func (s *generationSlot) wait(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	s.busy.Store(true)
	return nil
}

func (s *generationSlot) try() bool {
	if !s.sem.TryAcquire(1) {
		return false
	}
	s.busy.Store(true)
	return true
}

func (s *generationSlot) release() {
	s.busy.Store(false)
	s.sem.Release(1)
}

func (s *generationSlot) inUse() bool {
	return s.busy.Load()
}
