package jobs

import (
	"context"
	"log/slog"
	"time"

	"aos/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const relayBatchSize = 100

// OutboxRelayJob pushes queued envelopes to the transport. Runs every
// second, draining unsent outbox rows in creation order. A message is
// marked sent only after a successful push, so a crash between the two
// steps re-sends it: delivery is at least once and receivers dedupe on
// (channel, sequence).
type OutboxRelayJob struct {
	outbox    ports.OutboxRepository
	transport ports.TransportClient
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates a job that relays queued outbox messages.
func NewOutboxRelayJob(
	outbox ports.OutboxRepository,
	transport ports.TransportClient,
	logger *slog.Logger,
) *OutboxRelayJob {
	return &OutboxRelayJob{
		outbox:    outbox,
		transport: transport,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if relayErr := j.relay(ctx); relayErr != nil {
			j.logger.ErrorContext(ctx, "Outbox relay failed", "error", relayErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) relay(ctx context.Context) error {
	queued, err := j.outbox.GetUnsent(ctx, relayBatchSize)
	if err != nil {
		return err
	}

	for _, msg := range queued {
		if pushErr := j.transport.Push(ctx, msg.Channel, msg.Sequence, msg.Payload); pushErr != nil {
			// Rows stay ordered by creation time, so pushing later rows
			// before an earlier one succeeds would reorder the channel.
			j.logger.WarnContext(ctx, "Transport push failed, will retry",
				"channel", msg.Channel, "sequence", msg.Sequence, "error", pushErr)
			return nil
		}

		if markErr := j.outbox.MarkSent(ctx, msg.ID, time.Now().UTC()); markErr != nil {
			return markErr
		}
	}

	return nil
}
