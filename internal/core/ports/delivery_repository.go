package ports

import (
	"context"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for pending delivery
// records. Records are never deleted: finalized deliveries stay queryable
// for audit.
type DeliveryRepository interface {
	// Add persists a new delivery record.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists the finalization of a delivery record. The write
	// only lands while the stored row is still AwaitingAck; when another
	// transaction finalized it first, Update reports
	// delivery.ErrDeliveryAlreadyFinalized and the caller must discard its
	// own balance movements.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByChannelSequence retrieves the delivery record keyed by the
	// transport coordinates. Acknowledgement and timeout hooks address
	// records this way.
	GetByChannelSequence(ctx context.Context, channel string, sequence uint64) (*delivery.Delivery, error)

	// GetOverdueAwaitingAck retrieves records still awaiting an
	// acknowledgement whose deadline lies at or before now.
	GetOverdueAwaitingAck(ctx context.Context, now time.Time) ([]*delivery.Delivery, error)
}
