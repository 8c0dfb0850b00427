package queries

import (
	"context"

	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"

	"gorm.io/gorm"
)

// ResolveVersionQueryHandler reads the published versions of a type and
// applies the constraint's selection in memory; semantic version ordering
// is not expressible in SQL.
type ResolveVersionQueryHandler struct {
	db *gorm.DB
}

// NewResolveVersionQueryHandler creates a handler for version resolution.
// Requires a GORM database connection for query execution.
func NewResolveVersionQueryHandler(db *gorm.DB) ResolveVersionQueryHandler {
	return ResolveVersionQueryHandler{db: db}
}

// Handle executes the resolution.
// Returns ObjectNotFoundError when the type has no publication satisfying
// the constraint.
func (h ResolveVersionQueryHandler) Handle(
	ctx context.Context,
	query ResolveVersionQuery,
) (ResolveVersionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveVersionQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			version,
			code_id
		FROM registry_entries
		WHERE module_type = ?
		ORDER BY version
	`, query.ModuleType()).Rows()
	if err != nil {
		return ResolveVersionQueryResponse{}, err
	}
	defer rows.Close()

	published := make([]registry.Version, 0)
	codeIDs := make(map[string]uint64)

	for rows.Next() {
		var rawVersion string
		var codeID uint64

		if err = rows.Scan(&rawVersion, &codeID); err != nil {
			return ResolveVersionQueryResponse{}, err
		}

		version, verErr := registry.VersionFromString(rawVersion)
		if verErr != nil {
			return ResolveVersionQueryResponse{}, verErr
		}

		published = append(published, version)
		codeIDs[version.String()] = codeID
	}

	if err = rows.Err(); err != nil {
		return ResolveVersionQueryResponse{}, err
	}

	if len(published) == 0 {
		return ResolveVersionQueryResponse{}, errs.NewObjectNotFoundError("moduleType", query.ModuleType())
	}

	selected, err := query.Constraint().Select(published)
	if err != nil {
		return ResolveVersionQueryResponse{}, err
	}

	return ResolveVersionQueryResponse{
		ModuleType: query.ModuleType(),
		Version:    selected.String(),
		CodeID:     codeIDs[selected.String()],
	}, nil
}
