package ports

import (
	"context"
	"time"

	"aos/internal/core/domain/model/kernel"
)

// OutboxMessage is one encoded envelope queued for transport. The row is
// written in the same transaction as its delivery record, so a crash
// between send and relay loses neither or both.
type OutboxMessage struct {
	ID        kernel.UUID
	Channel   string
	Sequence  uint64
	Payload   []byte
	CreatedAt time.Time
	SentAt    *time.Time
}

// OutboxRepository defines the persistence contract for the transport
// outbox.
type OutboxRepository interface {
	// Add queues an encoded envelope for relay.
	Add(ctx context.Context, message OutboxMessage) error

	// GetByChannelSequence retrieves the message queued under the
	// transport coordinates. Rows survive MarkSent, so a timed-out
	// dispatch can be re-read for retry.
	GetByChannelSequence(ctx context.Context, channel string, sequence uint64) (OutboxMessage, error)

	// GetUnsent retrieves up to limit queued messages in creation order.
	GetUnsent(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkSent records that the message was pushed to the transport.
	MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error
}

// ChannelSequences hands out the per-channel monotonic sequence numbers
// keying delivery records. Next reserves the following number within the
// calling transaction.
type ChannelSequences interface {
	Next(ctx context.Context, channel string) (uint64, error)
}
