package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunSweeper deletes stale unverified accounts once at start and then every
// interval until ctx is cancelled.
func RunSweeper(ctx context.Context, accounts AccountService, interval time.Duration, log *zap.Logger) {
	log = log.Named("sweeper")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := accounts.SweepUnverified(ctx); err != nil && ctx.Err() == nil {
			log.Error("sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			log.Info("sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}
