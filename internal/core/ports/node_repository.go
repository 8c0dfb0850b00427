package ports

import (
	"context"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"
)

// NodeRepository defines the persistence contract for resolver tree nodes.
// The (parent id, name) pairing is unique; Add fails when the position is
// already occupied.
type NodeRepository interface {
	// Add persists a new tree node.
	Add(ctx context.Context, aggregate *pathtree.Node) error

	// Update persists changes to an existing tree node.
	Update(ctx context.Context, aggregate *pathtree.Node) error

	// Get retrieves a node by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*pathtree.Node, error)

	// FindChild retrieves the node occupying the position under the
	// parent. A nil parent id addresses the top level of the tree.
	FindChild(ctx context.Context, parentID *kernel.UUID, name string) (*pathtree.Node, error)
}
