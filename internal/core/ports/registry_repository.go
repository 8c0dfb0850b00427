package ports

import (
	"context"

	"aos/internal/core/domain/model/registry"
)

// RegistryRepository defines the persistence contract for the module code
// catalog. The (type, version) pairing is unique; Add fails with
// DuplicateVersionError when the pairing is already published.
type RegistryRepository interface {
	// Add persists a newly published catalog entry.
	Add(ctx context.Context, aggregate *registry.Entry) error

	// Update persists changes to an existing catalog entry.
	Update(ctx context.Context, aggregate *registry.Entry) error

	// GetByTypeAndVersion retrieves the entry published for the exact
	// (type, version) pairing.
	GetByTypeAndVersion(ctx context.Context, moduleType string, version registry.Version) (*registry.Entry, error)

	// GetAllByType retrieves every entry published for the module type.
	GetAllByType(ctx context.Context, moduleType string) ([]*registry.Entry, error)
}
