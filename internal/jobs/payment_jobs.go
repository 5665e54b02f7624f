package jobs

import (
	"context"

	"wheelshare-backend/internal/logger"
)

// ExpirePendingPayments fails CREATED payments whose checkout window
// has lapsed without verification.
func (jr *JobRunner) ExpirePendingPayments() {
	jr.runWithRecovery("ExpirePendingPayments", func() {
		ctx := context.Background()

		expired, err := jr.services.Payments.ExpireStalePayments(ctx)
		if err != nil {
			logger.Error("Failed to expire pending payments", "error", err)
			return
		}

		if expired > 0 {
			logger.Info("Expired pending payments", "count", expired)
		}
	})
}
