// Package registryrepo provides data transfer objects and mapping functions
// for module catalog persistence.
package registryrepo

import (
	"encoding/json"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/registry"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting catalog
// entries. The unique (module_type, version) index enforces that a version
// is published at most once.
type EntryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ModuleType string    `gorm:"index:idx_registry_type_version,unique"`
	Version    string    `gorm:"index:idx_registry_type_version,unique"`
	CodeID     uint64
	Publisher  string
	ActionFees []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for catalog entries.
// Overrides GORM's default naming convention to use "registry_entries".
func (EntryDTO) TableName() string {
	return "registry_entries"
}

// feeDTO is the JSON shape of one action fee inside the action_fees column.
type feeDTO struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

// fromDomain converts a catalog entry aggregate to its database
// representation.
func fromDomain(aggregate *registry.Entry) (EntryDTO, error) {
	fees := make(map[string]feeDTO)
	for action, fee := range aggregate.ActionFees() {
		fees[action] = feeDTO{Denom: fee.Denom(), Amount: fee.Amount()}
	}

	rawFees, err := json.Marshal(fees)
	if err != nil {
		return EntryDTO{}, err
	}

	return EntryDTO{
		ID:         aggregate.ID().Bytes(),
		ModuleType: aggregate.ModuleType(),
		Version:    aggregate.Version().String(),
		CodeID:     aggregate.CodeID(),
		Publisher:  aggregate.Publisher(),
		ActionFees: rawFees,
	}, nil
}

// toDomain converts a database DTO to a catalog entry aggregate using
// RestoreEntry.
func toDomain(dto EntryDTO) (*registry.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	version, err := registry.VersionFromString(dto.Version)
	if err != nil {
		return nil, err
	}

	fees := make(map[string]feeDTO)
	if len(dto.ActionFees) > 0 {
		if err = json.Unmarshal(dto.ActionFees, &fees); err != nil {
			return nil, err
		}
	}

	actionFees := make(map[string]kernel.Coin, len(fees))
	for action, fee := range fees {
		coin, coinErr := kernel.NewCoin(fee.Denom, fee.Amount)
		if coinErr != nil {
			return nil, coinErr
		}
		actionFees[action] = coin
	}

	return registry.RestoreEntry(id, dto.ModuleType, version, dto.CodeID, dto.Publisher, actionFees)
}
