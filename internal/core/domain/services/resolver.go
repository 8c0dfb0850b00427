package services

import (
	"context"
	"fmt"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"
	"aos/internal/pkg/errs"
)

// NodeFinder looks up one resolver tree node by its position. A nil
// parent id addresses the top level of the tree. Implementations return
// ObjectNotFoundError when no node occupies the position.
type NodeFinder interface {
	FindChild(ctx context.Context, parentID *kernel.UUID, name string) (*pathtree.Node, error)
}

// Resolver is a domain service that resolves symbolic paths to module
// addresses by walking the resolver tree.
//
// Key responsibilities:
//   - Walking path segments from the top of the tree
//   - Following alias redirects, at most one indirection per segment
//   - Detecting alias cycles before they loop
//
// Business rules:
//   - A missing segment fails with NotFound, never a partial result
//   - Revisiting any node during one walk fails with CycleDetected
//   - Resolution only terminates at a node binding an address
//   - Paths qualified with a foreign chain never resolve locally
//
// The walk is bounded: every step either visits a node for the first
// time or fails, so it touches each node at most once.
type Resolver struct {
	finder    NodeFinder
	hostChain string
}

// NewResolver creates a Resolver walking the given tree. hostChain names
// the chain this kernel runs on; paths qualified with it resolve as
// unqualified ones.
func NewResolver(finder NodeFinder, hostChain string) (Resolver, error) {
	if finder == nil {
		return Resolver{}, errs.NewValueIsRequiredError("finder")
	}
	return Resolver{finder: finder, hostChain: hostChain}, nil
}

// Resolve walks the path to a module address.
//
// Returns:
//   - ObjectNotFoundError when a segment is missing or the terminal node
//     binds no address
//   - CycleDetectedError when alias redirects revisit a node
func (r Resolver) Resolve(ctx context.Context, path kernel.Path) (kernel.Address, error) {
	if err := path.Validate(); err != nil {
		return kernel.Address{}, err
	}
	if path.IsRemote(r.hostChain) {
		return kernel.Address{}, errs.NewValueIsInvalidErrorWithCause("path",
			fmt.Errorf("%s is qualified with foreign chain %s", path.String(), path.Chain()))
	}

	segments := path.Segments()
	visited := make(map[kernel.UUID]struct{})

	var parentID *kernel.UUID
	var node *pathtree.Node

	for i := 0; i < len(segments); {
		found, err := r.finder.FindChild(ctx, parentID, segments[i])
		if err != nil {
			return kernel.Address{}, errs.NewObjectNotFoundErrorWithCause("path", path.String(), err)
		}

		if _, seen := visited[found.ID()]; seen {
			return kernel.Address{}, errs.NewCycleDetectedError(path.String())
		}
		visited[found.ID()] = struct{}{}

		if found.IsAlias() {
			target, err := found.AliasTarget()
			if err != nil {
				return kernel.Address{}, err
			}
			if target.IsRemote(r.hostChain) {
				return kernel.Address{}, errs.NewValueIsInvalidErrorWithCause("path",
					fmt.Errorf("alias %s redirects to foreign chain %s", found.Name(), target.Chain()))
			}

			// Restart the walk at the alias target, carrying the
			// segments that follow the alias. The visited set persists
			// across restarts, which is what catches cycles.
			segments = append(append([]string{}, target.Segments()...), segments[i+1:]...)
			parentID = nil
			node = nil
			i = 0
			continue
		}

		id := found.ID()
		parentID = &id
		node = found
		i++
	}

	if node == nil || !node.HasAddress() {
		return kernel.Address{}, errs.NewObjectNotFoundError("path", path.String())
	}
	return node.Address()
}
