package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery record to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update persists the finalization of a delivery record. The write is
// conditional on the row still being AwaitingAck, so of two concurrent
// finalizing transactions only one lands: the loser's UPDATE matches zero
// rows and reports delivery.ErrDeliveryAlreadyFinalized, and the caller
// must roll back its balance movements.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, delivery.AwaitingAck.String()).
		Updates(map[string]any{
			"status":       dto.Status,
			"finalized_at": dto.FinalizedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return delivery.ErrDeliveryAlreadyFinalized
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery record by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByChannelSequence retrieves the delivery record keyed by the transport
// coordinates.
func (r *GormDeliveryRepository) GetByChannelSequence(
	ctx context.Context,
	channel string,
	sequence uint64,
) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "channel = ? AND sequence = ?", channel, sequence).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", delivery.MessageIDFor(channel, sequence))
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOverdueAwaitingAck retrieves records still awaiting an acknowledgement
// whose deadline lies at or before now.
func (r *GormDeliveryRepository) GetOverdueAwaitingAck(
	ctx context.Context,
	now time.Time,
) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND deadline <= ?", delivery.AwaitingAck.String(), now).Error
	if err != nil {
		return nil, err
	}

	records := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
