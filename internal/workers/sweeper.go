// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/metrics"
)

// Sweeper periodically clears verification tokens and reset codes whose
// expiry has passed.
type Sweeper struct {
	users    secretSweeper
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewSweeper(users secretSweeper, interval time.Duration, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		users:    users,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass and returns how many secrets were cleared.
func (s *Sweeper) Sweep(ctx context.Context) int64 {
	n, err := s.users.ClearExpiredSecrets(ctx, s.now())
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Err(err).Msg("error clearing expired secrets")
		}
		return 0
	}

	metrics.RecordSweptSecrets(n)
	if n > 0 {
		s.logger.Debug().Int64("cleared", n).Msg("expired secrets cleared")
	}
	return n
}
