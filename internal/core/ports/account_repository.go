package ports

import (
	"context"

	"aos/internal/core/domain/model/economics"
)

// AccountRepository defines the persistence contract for actor balance
// ledgers.
type AccountRepository interface {
	// Add persists a new account.
	Add(ctx context.Context, aggregate *economics.Account) error

	// Update persists changes to an existing account.
	Update(ctx context.Context, aggregate *economics.Account) error

	// GetByOwner retrieves the account holding the actor's balances.
	GetByOwner(ctx context.Context, owner string) (*economics.Account, error)
}
