package ports

import (
	"context"

	"aos/internal/core/domain/model/kernel"
)

// KeyAddressRepository defines the persistence contract for the
// key-address table: the kernel's map of well-known role names to module
// addresses.
type KeyAddressRepository interface {
	// Upsert sets or replaces the address bound to the key.
	Upsert(ctx context.Context, key string, address kernel.Address) error

	// Get retrieves the address bound to the key.
	Get(ctx context.Context, key string) (kernel.Address, error)
}
