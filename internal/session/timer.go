package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// startTimer begins the exam countdown. Must be called with s.mu held.
func (s *Session) startTimer(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.remaining = s.opts.ExamDuration

	go s.countdown(ctx)
}

func (s *Session) countdown(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			s.remaining -= s.opts.Tick
			left := s.remaining
			s.mu.Unlock()

			if left > 0 {
				continue
			}
			if _, err := s.submit(context.WithoutCancel(ctx), true); err != nil {
				log.Error().Err(err).Str("user_id", s.userID).Msg("Timed submit failed")
			}
			return
		}
	}
}

func (s *Session) stopTimerLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Remaining returns the time left on the exam clock.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return max(s.remaining, 0)
}
