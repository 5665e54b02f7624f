package jobs

import (
	"context"

	"wheelshare-backend/internal/logger"
	"wheelshare-backend/internal/metrics"
)

// CompleteExpiredBookings flips ACTIVE bookings whose end date has
// passed to COMPLETED and notifies the renters.
func (jr *JobRunner) CompleteExpiredBookings() {
	jr.runWithRecovery("CompleteExpiredBookings", func() {
		ctx := context.Background()

		completed, err := jr.services.Bookings.CompleteExpiredBookings(ctx)
		if err != nil {
			logger.Error("Failed to complete expired bookings", "error", err)
			return
		}

		metrics.AddBookingsCompleted(len(completed))
		logger.Info("Completed expired bookings", "count", len(completed))
	})
}
