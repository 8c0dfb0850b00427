package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"aos/internal/core/application/usecases/commands"
	"aos/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DeliveryTimeoutJob expires overdue deliveries. Runs every second,
// sweeping records still awaiting an acknowledgement past their deadline
// and finalizing each through the timeout command. The sweep and the
// transport's own timeout hook may race on the same record; the command
// is idempotent, so the loser of the race is a no-op.
type DeliveryTimeoutJob struct {
	uowFactory commands.FinalizeUoWFactory
	handler    commands.TimeoutDeliveryCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDeliveryTimeoutJob creates a job that expires overdue deliveries.
func NewDeliveryTimeoutJob(
	uowFactory commands.FinalizeUoWFactory,
	handler commands.TimeoutDeliveryCommandHandler,
	logger *slog.Logger,
) *DeliveryTimeoutJob {
	return &DeliveryTimeoutJob{
		uowFactory: uowFactory,
		handler:    handler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "delivery_timeout_job"),
	}
}

// Start begins the timeout sweep to run every second.
func (j *DeliveryTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if sweepErr := j.sweep(ctx); sweepErr != nil {
			j.logger.ErrorContext(ctx, "Delivery timeout sweep failed", "error", sweepErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery timeout job started (running every second)")
	return nil
}

// Stop stops the timeout sweep.
func (j *DeliveryTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery timeout job stopped")
}

func (j *DeliveryTimeoutJob) sweep(ctx context.Context) error {
	// Listing runs outside a transaction; each expiry opens its own.
	overdue, err := j.uowFactory.Create().DeliveryRepository().GetOverdueAwaitingAck(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	for _, record := range overdue {
		cmd, cmdErr := commands.NewTimeoutDeliveryCommand(record.Channel(), record.Sequence())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Skipping malformed delivery record",
				"message_id", record.MessageID(), "error", cmdErr)
			continue
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// An externally delivered timeout may finalize the record
			// between the listing and the expiry.
			if errors.Is(handleErr, errs.ErrObjectNotFound) {
				continue
			}

			j.logger.ErrorContext(ctx, "Failed to expire delivery",
				"message_id", record.MessageID(), "error", handleErr)
		}
	}

	return nil
}
