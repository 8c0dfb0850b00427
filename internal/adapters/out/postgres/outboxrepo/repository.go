// Package outboxrepo persists the transport outbox and the per-channel
// sequence counters. Both are written inside the send transaction so a
// dispatch either fully exists (sequence reserved, envelope queued,
// delivery record pending) or not at all.
package outboxrepo

import (
	"context"
	"errors"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/ports"
	"aos/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutboxMessageDTO represents one queued envelope. Rows survive MarkSent
// so a timed-out dispatch can be re-read for retry.
type OutboxMessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Channel   string    `gorm:"index:idx_outbox_channel_sequence,unique"`
	Sequence  uint64    `gorm:"index:idx_outbox_channel_sequence,unique"`
	Payload   []byte
	CreatedAt time.Time `gorm:"index"`
	SentAt    *time.Time
}

// TableName specifies the database table name for outbox messages.
// Overrides GORM's default naming convention to use "outbox_messages".
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add queues an encoded envelope for relay.
func (r *GormOutboxRepository) Add(ctx context.Context, message ports.OutboxMessage) error {
	if err := message.ID.Validate(); err != nil {
		return err
	}
	if message.Channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}
	if len(message.Payload) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}

	dto := OutboxMessageDTO{
		ID:        message.ID.Bytes(),
		Channel:   message.Channel,
		Sequence:  message.Sequence,
		Payload:   message.Payload,
		CreatedAt: message.CreatedAt,
		SentAt:    message.SentAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByChannelSequence retrieves the message queued under the transport
// coordinates.
func (r *GormOutboxRepository) GetByChannelSequence(
	ctx context.Context,
	channel string,
	sequence uint64,
) (ports.OutboxMessage, error) {
	var dto OutboxMessageDTO
	err := r.db.WithContext(ctx).
		First(&dto, "channel = ? AND sequence = ?", channel, sequence).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.OutboxMessage{}, errs.NewObjectNotFoundError("outbox message",
				delivery.MessageIDFor(channel, sequence))
		}
		return ports.OutboxMessage{}, err
	}

	return toMessage(dto)
}

// GetUnsent retrieves up to limit queued messages in creation order.
func (r *GormOutboxRepository) GetUnsent(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxMessageDTO
	err := r.db.WithContext(ctx).
		Where("sent_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkSent records that the message was pushed to the transport.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OutboxMessageDTO{}).
		Where("id = ?", id.Bytes()).
		Update("sent_at", at)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}

	return nil
}

// toMessage converts a database DTO to the port's message shape.
func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:        id,
		Channel:   dto.Channel,
		Sequence:  dto.Sequence,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt,
		SentAt:    dto.SentAt,
	}, nil
}
