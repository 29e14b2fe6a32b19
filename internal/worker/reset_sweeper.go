package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bizops-service/internal/repository"
)

// StartResetTokenSweeper periodically removes expired reset tokens. Expired
// rows are already rejected at redemption; this just keeps the table small.
func StartResetTokenSweeper(ctx context.Context, tokens repository.ResetTokenRepository, logger *zap.Logger, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := tokens.DeleteExpired(ctx, time.Now())
				if err != nil {
					logger.Warn("reset token sweep failed", zap.Error(err))
					continue
				}
				if removed > 0 {
					logger.Info("expired reset tokens removed", zap.Int64("count", removed))
				}
			}
		}
	}()
}
