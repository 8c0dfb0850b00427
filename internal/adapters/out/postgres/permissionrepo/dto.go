// Package permissionrepo provides data transfer objects and mapping
// functions for permission record persistence.
package permissionrepo

import (
	"time"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/permission"

	"github.com/google/uuid"
)

// PermissionDTO represents the database structure for persisting
// permission records. The (actor, action) index serves the evaluation
// path, which loads every record covering the pair.
type PermissionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Actor     string    `gorm:"index:idx_permissions_actor_action"`
	Action    string    `gorm:"index:idx_permissions_actor_action"`
	Kind      string
	Remaining uint32
	ExpiresAt time.Time
}

// TableName specifies the database table name for permission records.
// Overrides GORM's default naming convention to use "permissions".
func (PermissionDTO) TableName() string {
	return "permissions"
}

// fromDomain converts a permission aggregate to its database representation.
func fromDomain(aggregate *permission.Permission) PermissionDTO {
	return PermissionDTO{
		ID:        aggregate.ID().Bytes(),
		Actor:     aggregate.Actor(),
		Action:    aggregate.Action(),
		Kind:      aggregate.Kind().String(),
		Remaining: aggregate.Remaining(),
		ExpiresAt: aggregate.ExpiresAt(),
	}
}

// toDomain converts a database DTO to a permission aggregate using
// RestorePermission.
func toDomain(dto PermissionDTO) (*permission.Permission, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	kind, err := permission.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	return permission.RestorePermission(id, dto.Actor, dto.Action, kind, dto.Remaining, dto.ExpiresAt)
}
