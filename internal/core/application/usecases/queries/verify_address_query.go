package queries

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/guard"
)

var (
	ErrVerifyAddressQueryIsNotConstructed = errors.New(
		"VerifyAddressQuery must be created via NewVerifyAddressQuery constructor",
	)
)

// VerifyAddressQuery checks whether a symbolic path currently resolves to
// a registered module address. Used by modules to validate a configured
// destination before sending to it.
type VerifyAddressQuery struct {
	path kernel.Path

	guard guard.ConstructorGuard
}

// NewVerifyAddressQuery creates a query for the given path.
func NewVerifyAddressQuery(path kernel.Path) (VerifyAddressQuery, error) {
	if err := path.Validate(); err != nil {
		return VerifyAddressQuery{}, err
	}

	return VerifyAddressQuery{
		path:  path,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Path returns the path under verification.
func (q VerifyAddressQuery) Path() kernel.Path {
	return q.path
}

// Validate ensures the query was created through the constructor.
// Returns ErrVerifyAddressQueryIsNotConstructed if validation fails.
func (q VerifyAddressQuery) Validate() error {
	return q.guard.Validate(ErrVerifyAddressQueryIsNotConstructed)
}

// VerifyAddressQueryResponse reports the verification outcome. Address is
// only meaningful when Exists is true.
type VerifyAddressQueryResponse struct {
	Exists  bool
	Address kernel.Address
}
