package registryrepo

import (
	"context"
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRegistryRepository implements RegistryRepository using GORM.
type GormRegistryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRegistryRepository creates a new GORM registry repository.
func NewGormRegistryRepository(db *gorm.DB, tracker aggregateTracker) *GormRegistryRepository {
	return &GormRegistryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a newly published catalog entry to the database. A concurrent
// publication of the same (type, version) surfaces as DuplicateVersionError
// through the unique index.
func (r *GormRegistryRepository) Add(ctx context.Context, aggregate *registry.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateVersionError(aggregate.ModuleType(), aggregate.Version().String())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing catalog entry to the database.
func (r *GormRegistryRepository) Update(ctx context.Context, aggregate *registry.Entry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&EntryDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"publisher":   dto.Publisher,
		"action_fees": dto.ActionFees,
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

// GetByTypeAndVersion retrieves the entry published for the exact
// (type, version) pairing.
func (r *GormRegistryRepository) GetByTypeAndVersion(
	ctx context.Context,
	moduleType string,
	version registry.Version,
) (*registry.Entry, error) {
	var dto EntryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "module_type = ? AND version = ?", moduleType, version.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("entry", moduleType+"@"+version.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByType retrieves every entry published for the module type.
func (r *GormRegistryRepository) GetAllByType(
	ctx context.Context,
	moduleType string,
) ([]*registry.Entry, error) {
	var dtos []EntryDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "module_type = ?", moduleType).Error; err != nil {
		return nil, err
	}

	entries := make([]*registry.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
