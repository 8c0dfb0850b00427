// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery record persistence. This package implements the repository
// pattern for the delivery aggregate, handling the conversion between domain
// entities and database representations.
package deliveryrepo

import (
	"encoding/json"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// records. The (channel, sequence) pairing is the transport identity the
// acknowledgement hooks address records by.
type DeliveryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Channel     string    `gorm:"index:idx_deliveries_channel_sequence,unique"`
	Sequence    uint64    `gorm:"index:idx_deliveries_channel_sequence,unique"`
	Origin      string
	Escrow      []byte `gorm:"type:jsonb"`
	CreatedAt   time.Time
	Deadline    time.Time `gorm:"index"`
	Status      string    `gorm:"index"`
	FinalizedAt *time.Time
}

// TableName specifies the database table name for delivery records.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) (DeliveryDTO, error) {
	escrow, err := marshalCoins(aggregate.Escrow())
	if err != nil {
		return DeliveryDTO{}, err
	}

	return DeliveryDTO{
		ID:          aggregate.ID().Bytes(),
		Channel:     aggregate.Channel(),
		Sequence:    aggregate.Sequence(),
		Origin:      aggregate.Origin().String(),
		Escrow:      escrow,
		CreatedAt:   aggregate.CreatedAt(),
		Deadline:    aggregate.Deadline(),
		Status:      aggregate.Status().String(),
		FinalizedAt: aggregate.FinalizedAt(),
	}, nil
}

// toDomain converts a database DTO to a delivery aggregate using
// RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	origin, err := kernel.AddressFromString(dto.Origin)
	if err != nil {
		return nil, err
	}

	escrow, err := unmarshalCoins(dto.Escrow)
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		dto.Channel,
		dto.Sequence,
		origin,
		escrow,
		dto.CreatedAt,
		dto.Deadline,
		status,
		dto.FinalizedAt,
	)
}

// marshalCoins serializes a coin set as a denom to amount JSON object.
func marshalCoins(coins kernel.Coins) ([]byte, error) {
	amounts := make(map[string]uint64, len(coins))
	for _, denom := range coins.Denoms() {
		amounts[denom] = coins.AmountOf(denom)
	}
	return json.Marshal(amounts)
}

// unmarshalCoins deserializes a denom to amount JSON object into a coin set.
func unmarshalCoins(data []byte) (kernel.Coins, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var amounts map[string]uint64
	if err := json.Unmarshal(data, &amounts); err != nil {
		return nil, err
	}

	coins := make([]kernel.Coin, 0, len(amounts))
	for denom, amount := range amounts {
		coin, err := kernel.NewCoin(denom, amount)
		if err != nil {
			return nil, err
		}
		coins = append(coins, coin)
	}

	return kernel.NewCoins(coins...)
}
