package queries

import (
	"context"
	"database/sql"
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetKeyAddressQueryHandler reads the key-address table directly from the
// database, bypassing the domain layer for lookup speed.
type GetKeyAddressQueryHandler struct {
	db *gorm.DB
}

// NewGetKeyAddressQueryHandler creates a handler for key-address lookups.
// Requires a GORM database connection for query execution.
func NewGetKeyAddressQueryHandler(db *gorm.DB) GetKeyAddressQueryHandler {
	return GetKeyAddressQueryHandler{db: db}
}

// Handle executes the lookup.
// Returns ObjectNotFoundError when the role name was never installed.
func (h GetKeyAddressQueryHandler) Handle(
	ctx context.Context,
	query GetKeyAddressQuery,
) (GetKeyAddressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetKeyAddressQueryResponse{}, err
	}

	var rawAddress string
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			address
		FROM key_addresses
		WHERE key = ?
	`, query.Key()).Row()

	if err := row.Scan(&rawAddress); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetKeyAddressQueryResponse{}, errs.NewObjectNotFoundError("key", query.Key())
		}
		return GetKeyAddressQueryResponse{}, err
	}

	address, err := kernel.AddressFromString(rawAddress)
	if err != nil {
		return GetKeyAddressQueryResponse{}, err
	}

	return GetKeyAddressQueryResponse{
		Key:     query.Key(),
		Address: address,
	}, nil
}
