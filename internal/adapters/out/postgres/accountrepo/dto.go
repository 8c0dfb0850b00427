// Package accountrepo provides data transfer objects and mapping functions
// for actor balance ledger persistence.
package accountrepo

import (
	"encoding/json"

	"aos/internal/core/domain/model/economics"
	"aos/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting actor
// balance ledgers. Balances are a denom to amount JSON object; the ledger
// is looked up by owner, which is unique.
type AccountDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Owner    string    `gorm:"uniqueIndex"`
	Balances []byte    `gorm:"type:jsonb"`
}

// TableName specifies the database table name for accounts.
// Overrides GORM's default naming convention to use "accounts".
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account aggregate to its database representation.
func fromDomain(aggregate *economics.Account) (AccountDTO, error) {
	balances, err := json.Marshal(aggregate.Balances())
	if err != nil {
		return AccountDTO{}, err
	}

	return AccountDTO{
		ID:       aggregate.ID().Bytes(),
		Owner:    aggregate.Owner(),
		Balances: balances,
	}, nil
}

// toDomain converts a database DTO to an account aggregate using
// RestoreAccount.
func toDomain(dto AccountDTO) (*economics.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	balances := make(map[string]uint64)
	if len(dto.Balances) > 0 {
		if err = json.Unmarshal(dto.Balances, &balances); err != nil {
			return nil, err
		}
	}

	return economics.RestoreAccount(id, dto.Owner, balances)
}
