package worker

import (
	"context"
	"log"
	"time"
)

// TokenStore removes refresh tokens whose lifetime has fully elapsed.
type TokenStore interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// TokenSweeper periodically hard-deletes expired refresh tokens.
type TokenSweeper struct {
	auth     TokenStore
	interval time.Duration
	logger   *log.Logger
}

func NewTokenSweeper(auth TokenStore, interval time.Duration, logger *log.Logger) *TokenSweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = log.Default()
	}
	return &TokenSweeper{auth: auth, interval: interval, logger: logger}
}

// Start runs one sweep immediately, then on every tick until ctx is done.
func (s *TokenSweeper) Start(ctx context.Context) {
	s.logger.Printf("token_sweeper: started, interval %s", s.interval)
	defer s.logger.Printf("token_sweeper: stopped")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *TokenSweeper) sweep(ctx context.Context) {
	removed, err := s.auth.SweepExpired(ctx)
	if err != nil {
		s.logger.Printf("token_sweeper: sweep failed: %v", err)
		return
	}
	if removed > 0 {
		s.logger.Printf("token_sweeper: removed %d expired tokens", removed)
	}
}
