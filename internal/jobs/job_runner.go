package jobs

import (
	"equiptrack-backend/internal/broker"
	"equiptrack-backend/internal/config"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository"
	"equiptrack-backend/internal/service"
)

// JobRunner coordinates the scheduled jobs: the reservation sweep and
// notification delivery. Jobs re-enter the workflow engine through the same
// Transition path as interactive callers; the sweep has no fast path.
type JobRunner struct {
	store        repository.Store
	reservations service.ReservationService
	email        service.EmailService
	publisher    broker.Publisher // nil when the broker is disabled
	config       *config.Config
}

func NewJobRunner(store repository.Store, reservations service.ReservationService, email service.EmailService, publisher broker.Publisher, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:        store,
		reservations: reservations,
		email:        email,
		publisher:    publisher,
		config:       cfg,
	}
}

// Config exposes the configuration for scheduler registration.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunSweepOnce runs one full sweep tick (for manual execution)
func (jr *JobRunner) RunSweepOnce() {
	jr.ActivateDueReservations()
	jr.CompleteDueReservations()
}
