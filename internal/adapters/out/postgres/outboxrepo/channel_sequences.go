package outboxrepo

import (
	"context"

	"aos/internal/pkg/errs"

	"gorm.io/gorm"
)

// ChannelSequenceDTO holds the last reserved sequence number per channel.
type ChannelSequenceDTO struct {
	Channel string `gorm:"primaryKey"`
	Last    uint64
}

// TableName specifies the database table name for sequence counters.
// Overrides GORM's default naming convention to use "channel_sequences".
func (ChannelSequenceDTO) TableName() string {
	return "channel_sequences"
}

// GormChannelSequences implements ChannelSequences using GORM.
//
// Next reserves in a single upsert so two concurrent sends on the same
// channel can never observe the same number; the row lock taken by the
// update holds until the surrounding transaction ends.
type GormChannelSequences struct {
	db *gorm.DB
}

// NewGormChannelSequences creates a new GORM sequence counter.
func NewGormChannelSequences(db *gorm.DB) *GormChannelSequences {
	return &GormChannelSequences{db: db}
}

// Next reserves and returns the following sequence number for the channel.
// The first reservation on a channel yields 1.
func (s *GormChannelSequences) Next(ctx context.Context, channel string) (uint64, error) {
	if channel == "" {
		return 0, errs.NewValueIsRequiredError("channel")
	}

	var next uint64
	row := s.db.WithContext(ctx).Raw(`
		INSERT INTO channel_sequences (channel, last)
		VALUES (?, 1)
		ON CONFLICT (channel)
		DO UPDATE SET last = channel_sequences.last + 1
		RETURNING last
	`, channel).Row()

	if err := row.Scan(&next); err != nil {
		return 0, err
	}

	return next, nil
}
