package service

import (
	"context"
	"time"

	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
)

// Sweeper periodically prunes terminal reset-ledger rows past retention.
// Live rows are never touched; losing a sweep only delays cleanup.
type Sweeper struct {
	ledger    *ResetLedger
	interval  time.Duration
	retention time.Duration
}

func NewSweeper(ledger *ResetLedger, interval, retention time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &Sweeper{ledger: ledger, interval: interval, retention: retention}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	ctx = ctxutil.WithOperation(ctx, "service", "Sweep")

	removed, err := s.ledger.Sweep(ctx, s.retention)
	if err != nil {
		logger.ErrorWithContext(ctx, "Reset ledger sweep failed").
			Err(err).
			Log()
		return
	}
	if removed > 0 {
		logger.InfoWithContext(ctx, "Reset ledger swept").
			Int64("removed", removed).
			Log()
	}
}
