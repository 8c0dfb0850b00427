// Package noderepo provides data transfer objects and mapping functions for
// resolver tree node persistence.
package noderepo

import (
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"

	"github.com/google/uuid"
)

// NodeDTO represents the database structure for persisting resolver tree
// nodes. The unique (parent_id, name) index is what makes concurrent
// registration of the same position fail instead of forking the tree. A
// NULL parent id marks a top-level node, and since Postgres treats NULLs
// as distinct in unique indexes, top-level names need their own partial
// index.
type NodeDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index:idx_nodes_parent_name,unique"`
	Name        string     `gorm:"index:idx_nodes_parent_name,unique;index:idx_nodes_root_name,unique,where:parent_id IS NULL"`
	Address     *string
	AliasTarget *string
}

// TableName specifies the database table name for tree nodes.
// Overrides GORM's default naming convention to use "nodes".
func (NodeDTO) TableName() string {
	return "nodes"
}

// fromDomain converts a node domain aggregate to its database representation.
func fromDomain(aggregate *pathtree.Node) NodeDTO {
	var parentID *uuid.UUID
	if id := aggregate.ParentID(); id != nil {
		raw := id.Bytes()
		parentID = &raw
	}

	var address *string
	if aggregate.HasAddress() {
		if addr, err := aggregate.Address(); err == nil {
			s := addr.String()
			address = &s
		}
	}

	var aliasTarget *string
	if aggregate.IsAlias() {
		if target, err := aggregate.AliasTarget(); err == nil {
			s := target.String()
			aliasTarget = &s
		}
	}

	return NodeDTO{
		ID:          aggregate.ID().Bytes(),
		ParentID:    parentID,
		Name:        aggregate.Name(),
		Address:     address,
		AliasTarget: aliasTarget,
	}
}

// toDomain converts a database DTO to a node domain aggregate using
// RestoreNode.
func toDomain(dto NodeDTO) (*pathtree.Node, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if dto.ParentID != nil {
		parent, parentErr := kernel.UUIDFromBytes((*dto.ParentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &parent
	}

	var address *kernel.Address
	if dto.Address != nil {
		parsed, addrErr := kernel.AddressFromString(*dto.Address)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &parsed
	}

	var aliasTarget *kernel.Path
	if dto.AliasTarget != nil {
		parsed, aliasErr := kernel.PathFromString(*dto.AliasTarget)
		if aliasErr != nil {
			return nil, aliasErr
		}
		aliasTarget = &parsed
	}

	return pathtree.RestoreNode(id, parentID, dto.Name, address, aliasTarget)
}
