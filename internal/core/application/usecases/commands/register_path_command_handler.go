package commands

import (
	"context"
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"
	"aos/internal/core/ports"
	"aos/internal/pkg/errs"
)

// RegisterPathCommandHandler handles insertion into the resolver tree.
//
// Failure modes follow the resolver contract: a missing parent fails with
// NotFound, an occupied (parent, name) position fails with PathExists.
type RegisterPathCommandHandler struct {
	uowFactory NodeUoWFactory
}

// NewRegisterPathCommandHandler creates a handler for resolver tree
// registration.
func NewRegisterPathCommandHandler(uowFactory NodeUoWFactory) RegisterPathCommandHandler {
	return RegisterPathCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration command.
// Walks the parent path to its node, rejects occupied positions and
// inserts the child in one transaction.
func (h *RegisterPathCommandHandler) Handle(ctx context.Context, cmd RegisterPathCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	nodeRepo := uow.NodeRepository()

	parentID, err := h.findParent(ctx, nodeRepo, cmd.Parent())
	if err != nil {
		return err
	}

	if _, err := nodeRepo.FindChild(ctx, parentID, cmd.Name()); err == nil {
		return errs.NewPathExistsError(occupiedPath(cmd))
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	node, err := h.buildNode(cmd, parentID)
	if err != nil {
		return err
	}

	if err := nodeRepo.Add(ctx, node); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// findParent walks the parent path segment by segment. Aliases are not
// followed here: registration addresses the tree literally.
func (h *RegisterPathCommandHandler) findParent(
	ctx context.Context,
	nodeRepo ports.NodeRepository,
	parent *kernel.Path,
) (*kernel.UUID, error) {
	if parent == nil {
		return nil, nil
	}

	var parentID *kernel.UUID
	for _, segment := range parent.Segments() {
		node, err := nodeRepo.FindChild(ctx, parentID, segment)
		if err != nil {
			return nil, errs.NewObjectNotFoundErrorWithCause("parent", parent.String(), err)
		}
		id := node.ID()
		parentID = &id
	}
	return parentID, nil
}

func (h *RegisterPathCommandHandler) buildNode(cmd RegisterPathCommand, parentID *kernel.UUID) (*pathtree.Node, error) {
	if cmd.AliasTarget() != nil {
		return pathtree.NewAliasNode(kernel.NewUUID(), parentID, cmd.Name(), *cmd.AliasTarget())
	}
	return pathtree.NewAddressNode(kernel.NewUUID(), parentID, cmd.Name(), *cmd.Address())
}

func occupiedPath(cmd RegisterPathCommand) string {
	if cmd.Parent() == nil {
		return "/" + cmd.Name()
	}
	return cmd.Parent().String() + "/" + cmd.Name()
}
