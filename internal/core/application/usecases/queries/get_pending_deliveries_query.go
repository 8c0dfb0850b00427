package queries

import (
	"errors"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/pkg/guard"
)

var (
	ErrGetPendingDeliveriesQueryIsNotConstructed = errors.New(
		"GetPendingDeliveriesQuery must be created via NewGetPendingDeliveriesQuery constructor",
	)
)

// GetPendingDeliveriesQuery retrieves delivery records by lifecycle status
// for the audit surface. Finalized records are retained, so the query
// serves both live monitoring (AwaitingAck) and post-hoc inspection
// (Completed, Failed, TimedOut).
//
// Example:
//
//	query, err := NewGetPendingDeliveriesQuery(delivery.AwaitingAck)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetPendingDeliveriesQueryHandler(db)
//
//	records, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list deliveries: %w", err)
//	}
//
//	fmt.Printf("%d deliveries awaiting acknowledgement\n", len(records))
type GetPendingDeliveriesQuery struct {
	status delivery.Status

	guard guard.ConstructorGuard
}

// NewGetPendingDeliveriesQuery creates a query for the given status.
func NewGetPendingDeliveriesQuery(status delivery.Status) (GetPendingDeliveriesQuery, error) {
	if err := status.Validate(); err != nil {
		return GetPendingDeliveriesQuery{}, err
	}

	return GetPendingDeliveriesQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Status returns the lifecycle status to filter by.
func (q GetPendingDeliveriesQuery) Status() delivery.Status {
	return q.status
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingDeliveriesQueryIsNotConstructed if validation fails.
func (q GetPendingDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingDeliveriesQueryIsNotConstructed)
}

// GetPendingDeliveriesQueryResponse represents one delivery record on the
// audit surface.
type GetPendingDeliveriesQueryResponse struct {
	MessageID   string
	Channel     string
	Sequence    uint64
	Origin      string
	Status      string
	CreatedAt   time.Time
	Deadline    time.Time
	FinalizedAt *time.Time
}
