// Package jobs holds the scheduled maintenance work: completing
// finished bookings and failing abandoned checkouts.
package jobs

import (
	"wheelshare-backend/internal/config"
	"wheelshare-backend/internal/logger"
	"wheelshare-backend/internal/service"
)

type Services struct {
	Bookings service.BookingService
	Payments service.PaymentService
}

type JobRunner struct {
	services *Services
	config   *config.Config
}

func NewJobRunner(services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{services: services, config: cfg}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery keeps a panicking job from killing the scheduler
// process and the other jobs with it.
func (jr *JobRunner) runWithRecovery(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", name, "panic", r)
		}
	}()

	logger.Info("job started", "job", name)
	fn()
	logger.Info("job finished", "job", name)
}

// RunAll executes every job once, for manual runs.
func (jr *JobRunner) RunAll() {
	jr.CompleteExpiredBookings()
	jr.ExpirePendingPayments()
}
