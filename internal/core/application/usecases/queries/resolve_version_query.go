package queries

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/guard"
)

var (
	ErrResolveVersionQueryIsNotConstructed = errors.New(
		"ResolveVersionQuery must be created via NewResolveVersionQuery constructor",
	)
)

// ResolveVersionQuery resolves a module type and version constraint to the
// code id of the matching catalog entry.
//
// The constraint follows the catalog's selection language: an exact
// version string, "latest" for the greatest stable release, or
// "latest-any" to let pre-releases win.
//
// Example:
//
//	query, err := NewResolveVersionQuery("splitter", "latest")
//	if err != nil {
//	    return err
//	}
//	handler := NewResolveVersionQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to resolve version: %w", err)
//	}
//
//	fmt.Printf("%s@%s -> code id %d\n", query.ModuleType(), resp.Version, resp.CodeID)
type ResolveVersionQuery struct {
	moduleType string
	constraint registry.Constraint

	guard guard.ConstructorGuard
}

// NewResolveVersionQuery creates a query for the given type and raw
// constraint string.
func NewResolveVersionQuery(moduleType string, constraint string) (ResolveVersionQuery, error) {
	if err := kernel.ValidatePathSegment(moduleType); err != nil {
		return ResolveVersionQuery{}, err
	}

	parsed, err := registry.ParseConstraint(constraint)
	if err != nil {
		return ResolveVersionQuery{}, err
	}

	return ResolveVersionQuery{
		moduleType: moduleType,
		constraint: parsed,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ModuleType returns the catalog type under resolution.
func (q ResolveVersionQuery) ModuleType() string {
	return q.moduleType
}

// Constraint returns the parsed version constraint.
func (q ResolveVersionQuery) Constraint() registry.Constraint {
	return q.constraint
}

// Validate ensures the query was created through the constructor.
// Returns ErrResolveVersionQueryIsNotConstructed if validation fails.
func (q ResolveVersionQuery) Validate() error {
	return q.guard.Validate(ErrResolveVersionQueryIsNotConstructed)
}

// ResolveVersionQueryResponse carries the selected version and its code id.
type ResolveVersionQueryResponse struct {
	ModuleType string
	Version    string
	CodeID     uint64
}
