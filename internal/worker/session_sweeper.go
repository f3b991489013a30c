package worker

import (
	"context"
	"log"
	"time"

	"pix_checkout/internal/usecase/interfaces"
)

// SessionSweeper periodically deletes sessions past the retention window.
type SessionSweeper struct {
	repo     interfaces.ISessionRepository
	interval time.Duration
	now      func() time.Time
}

func NewSessionSweeper(repo interfaces.ISessionRepository, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweeper{repo: repo, interval: interval, now: time.Now}
}

func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				log.Printf("[session][worker] sweep failed err=%v", err)
			}
		}
	}
}

func (s *SessionSweeper) SweepOnce(ctx context.Context) (int, error) {
	n, err := s.repo.SweepExpired(ctx, s.now())
	if n > 0 {
		log.Printf("[session][worker] swept sessions count=%d", n)
	}
	return n, err
}
