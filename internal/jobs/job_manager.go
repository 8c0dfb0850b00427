package jobs

import (
	"fmt"
	"log/slog"

	"aos/internal/core/application/usecases/commands"
	"aos/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	deliveryTimeoutJob *DeliveryTimeoutJob
	outboxRelayJob     *OutboxRelayJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory commands.FinalizeUoWFactory,
	timeoutHandler commands.TimeoutDeliveryCommandHandler,
	outbox ports.OutboxRepository,
	transport ports.TransportClient,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		deliveryTimeoutJob: NewDeliveryTimeoutJob(uowFactory, timeoutHandler, logger),
		outboxRelayJob:     NewOutboxRelayJob(outbox, transport, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.deliveryTimeoutJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start delivery timeout job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.deliveryTimeoutJob.Stop()
	jm.outboxRelayJob.Stop()
}
