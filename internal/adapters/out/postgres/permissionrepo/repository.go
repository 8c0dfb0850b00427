package permissionrepo

import (
	"context"
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/permission"
	"aos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPermissionRepository implements PermissionRepository using GORM.
type GormPermissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPermissionRepository creates a new GORM permission repository.
func NewGormPermissionRepository(db *gorm.DB, tracker aggregateTracker) *GormPermissionRepository {
	return &GormPermissionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new permission record to the database.
func (r *GormPermissionRepository) Add(ctx context.Context, aggregate *permission.Permission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing permission record to the database.
func (r *GormPermissionRepository) Update(ctx context.Context, aggregate *permission.Permission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PermissionDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"kind":       dto.Kind,
		"remaining":  dto.Remaining,
		"expires_at": dto.ExpiresAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a permission record.
func (r *GormPermissionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&PermissionDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("permission", id.String())
	}

	return nil
}

// Get retrieves a permission record by ID.
func (r *GormPermissionRepository) Get(ctx context.Context, id kernel.UUID) (*permission.Permission, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PermissionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("permission", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByActorAction retrieves every record covering the pair.
func (r *GormPermissionRepository) GetByActorAction(
	ctx context.Context,
	actor, action string,
) ([]*permission.Permission, error) {
	var dtos []PermissionDTO
	err := r.db.WithContext(ctx).Find(&dtos, "actor = ? AND action = ?", actor, action).Error
	if err != nil {
		return nil, err
	}

	records := make([]*permission.Permission, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// ConsumeUse decrements the remaining counter of a limited-use record with
// a single conditional update. The guard in the WHERE clause is what keeps
// concurrent guarded actions from driving the counter below zero.
func (r *GormPermissionRepository) ConsumeUse(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE permissions
		SET remaining = remaining - 1
		WHERE id = ? AND kind = ? AND remaining > 0
	`, id.Bytes(), permission.LimitedUse.String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return permission.ErrPermissionExhausted
	}

	return nil
}
