// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Arian Lotfi

package workers

import (
	"context"
	"time"

	"github.com/arianlotfi/crypto-locker/internal/logger"
	"github.com/arianlotfi/crypto-locker/internal/session"
)

// DefaultSweepInterval is how often the sweeper purges expired conversation
// states when the deployment does not override it.
const DefaultSweepInterval = time.Minute

// SessionSweeper periodically drops expired conversation states. The table
// already purges opportunistically on access; the sweeper bounds memory of
// states nobody touches again.
type SessionSweeper struct {
	states   *session.Table
	interval time.Duration
	logger   *logger.Logger
}

// NewSessionSweeper builds a sweeper over the given state table. A
// non-positive interval falls back to DefaultSweepInterval.
func NewSessionSweeper(states *session.Table, interval time.Duration, log *logger.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SessionSweeper{states: states, interval: interval, logger: log}
}

// Run sweeps on every tick until ctx is cancelled.
func (s *SessionSweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			if purged := s.states.PurgeExpired(); purged > 0 {
				s.logger.Debug().
					Int("purged", purged).
					Int("remaining", s.states.Len()).
					Msg("purged expired conversation states")
			}
		}
	}
}
