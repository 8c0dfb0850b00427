package noderepo

import (
	"context"
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"
	"aos/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNodeRepository implements NodeRepository using GORM.
type GormNodeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormNodeRepository creates a new GORM node repository.
func NewGormNodeRepository(db *gorm.DB, tracker aggregateTracker) *GormNodeRepository {
	return &GormNodeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tree node to the database. A duplicate (parent, name)
// position surfaces as PathExistsError through the unique index.
func (r *GormNodeRepository) Add(ctx context.Context, aggregate *pathtree.Node) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewPathExistsError(aggregate.Name())
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing tree node to the database.
func (r *GormNodeRepository) Update(ctx context.Context, aggregate *pathtree.Node) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&NodeDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"address":      dto.Address,
		"alias_target": dto.AliasTarget,
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

// Get retrieves a node by ID.
func (r *GormNodeRepository) Get(ctx context.Context, id kernel.UUID) (*pathtree.Node, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NodeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("node", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindChild retrieves the node occupying the position under the parent. A
// nil parent id addresses the top level of the tree.
func (r *GormNodeRepository) FindChild(
	ctx context.Context,
	parentID *kernel.UUID,
	name string,
) (*pathtree.Node, error) {
	query := r.db.WithContext(ctx)

	var dto NodeDTO
	var err error
	if parentID == nil {
		err = query.First(&dto, "parent_id IS NULL AND name = ?", name).Error
	} else {
		err = query.First(&dto, "parent_id = ? AND name = ?", parentID.Bytes(), name).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("node", name)
		}
		return nil, err
	}

	return toDomain(dto)
}
