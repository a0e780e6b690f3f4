package services

import (
	"sync"
	"time"

	"github.com/influencer-portal/backend/internal/clock"
)

// timerSlot holds at most one pending timer. A callback that lost a race with
// stop is dropped.
type timerSlot struct {
	clock clock.Clock
	mu    sync.Mutex
	timer clock.Timer
	gen   uint64
}

func (s *timerSlot) arm(d time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		return false
	}
	s.gen++
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
	return true
}

func (s *timerSlot) armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *timerSlot) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}
