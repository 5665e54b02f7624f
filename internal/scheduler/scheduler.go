// Package scheduler drives the recurring maintenance jobs off cron
// expressions from the config file.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"wheelshare-backend/internal/jobs"
	"wheelshare-backend/internal/logger"
)

type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler registers every job on a UTC cron with seconds
// precision. A job whose expression fails to parse is logged and
// skipped rather than taking the process down.
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	s := &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		jobs: jobRunner,
	}

	cfg := jobRunner.Config().Scheduler
	s.register("complete-expired-bookings", cfg.CompleteExpiredBookings, jobRunner.CompleteExpiredBookings)
	s.register("expire-pending-payments", cfg.ExpirePendingPayments, jobRunner.ExpirePendingPayments)
	return s
}

func (s *Scheduler) register(name, expr string, job func()) {
	if _, err := s.cron.AddFunc(expr, job); err != nil {
		logger.Error("failed to register job", "job", name, "cron", expr, "error", err)
		return
	}
	logger.Info("registered job", "job", name, "cron", expr)
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("scheduler started")
}

// Stop blocks until any running job finishes.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
