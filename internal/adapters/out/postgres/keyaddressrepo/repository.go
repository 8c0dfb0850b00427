// Package keyaddressrepo persists the kernel's key-address table: the map
// of well-known role names to operator addresses.
package keyaddressrepo

import (
	"context"
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyAddressDTO represents one role name binding. The table is small and
// keyed directly by the role name.
type KeyAddressDTO struct {
	Key     string `gorm:"primaryKey"`
	Address string
}

// TableName specifies the database table name for key-address bindings.
// Overrides GORM's default naming convention to use "key_addresses".
func (KeyAddressDTO) TableName() string {
	return "key_addresses"
}

// GormKeyAddressRepository implements KeyAddressRepository using GORM.
type GormKeyAddressRepository struct {
	db *gorm.DB
}

// NewGormKeyAddressRepository creates a new GORM key-address repository.
func NewGormKeyAddressRepository(db *gorm.DB) *GormKeyAddressRepository {
	return &GormKeyAddressRepository{db: db}
}

// Upsert sets or replaces the address bound to the key.
func (r *GormKeyAddressRepository) Upsert(ctx context.Context, key string, address kernel.Address) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}
	if err := address.Validate(); err != nil {
		return err
	}

	dto := KeyAddressDTO{Key: key, Address: address.String()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"address"}),
	}).Create(&dto).Error
}

// Get retrieves the address bound to the key.
func (r *GormKeyAddressRepository) Get(ctx context.Context, key string) (kernel.Address, error) {
	var dto KeyAddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Address{}, errs.NewObjectNotFoundError("key", key)
		}
		return kernel.Address{}, err
	}

	return kernel.AddressFromString(dto.Address)
}
