package ports

import (
	"context"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/permission"
)

// PermissionRepository defines the persistence contract for permission
// records.
type PermissionRepository interface {
	// Add persists a new permission record.
	Add(ctx context.Context, aggregate *permission.Permission) error

	// Update persists changes to an existing permission record.
	Update(ctx context.Context, aggregate *permission.Permission) error

	// Delete removes a permission record.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a permission record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*permission.Permission, error)

	// GetByActorAction retrieves every record covering the pair. The
	// order of the result carries no meaning.
	GetByActorAction(ctx context.Context, actor, action string) ([]*permission.Permission, error)

	// ConsumeUse decrements the remaining counter of a limited-use
	// record with a single conditional update. Fails when the record is
	// already exhausted, so the counter never goes negative even under
	// concurrent guarded actions.
	ConsumeUse(ctx context.Context, id kernel.UUID) error
}
