package queries

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GetPendingDeliveriesQueryHandler retrieves delivery records from the
// database filtered by lifecycle status.
type GetPendingDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingDeliveriesQueryHandler creates a handler for delivery
// listings. Requires a GORM database connection for query execution.
func NewGetPendingDeliveriesQueryHandler(db *gorm.DB) GetPendingDeliveriesQueryHandler {
	return GetPendingDeliveriesQueryHandler{db: db}
}

// Handle executes the listing.
// Results are ordered by channel and sequence for stable output.
func (h GetPendingDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetPendingDeliveriesQuery,
) ([]GetPendingDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetPendingDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			channel,
			sequence,
			origin,
			status,
			created_at,
			deadline,
			finalized_at
		FROM deliveries
		WHERE status = ?
		ORDER BY channel, sequence
	`, query.Status().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetPendingDeliveriesQueryResponse

		err = rows.Scan(
			&record.Channel,
			&record.Sequence,
			&record.Origin,
			&record.Status,
			&record.CreatedAt,
			&record.Deadline,
			&record.FinalizedAt,
		)
		if err != nil {
			return nil, err
		}

		record.MessageID = fmt.Sprintf("%s/%d", record.Channel, record.Sequence)
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
