// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var (
	ErrGetKeyAddressQueryIsNotConstructed = errors.New(
		"GetKeyAddressQuery must be created via NewGetKeyAddressQuery constructor",
	)
)

// GetKeyAddressQuery resolves a well-known role name to its operator
// address through the key-address table.
//
// Example:
//
//	query, err := NewGetKeyAddressQuery("bridge/juno")
//	if err != nil {
//	    return err
//	}
//	handler := NewGetKeyAddressQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to resolve key: %w", err)
//	}
//
//	fmt.Printf("%s is operated by %s\n", query.Key(), resp.Address)
type GetKeyAddressQuery struct {
	key string

	guard guard.ConstructorGuard
}

// NewGetKeyAddressQuery creates a query for the given role name.
func NewGetKeyAddressQuery(key string) (GetKeyAddressQuery, error) {
	if key == "" {
		return GetKeyAddressQuery{}, errs.NewValueIsRequiredError("key")
	}

	return GetKeyAddressQuery{
		key:   key,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Key returns the role name to resolve.
func (q GetKeyAddressQuery) Key() string {
	return q.key
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetKeyAddressQueryIsNotConstructed if validation fails.
func (q GetKeyAddressQuery) Validate() error {
	return q.guard.Validate(ErrGetKeyAddressQueryIsNotConstructed)
}

// GetKeyAddressQueryResponse carries the resolved operator address.
type GetKeyAddressQueryResponse struct {
	Key     string
	Address kernel.Address
}
