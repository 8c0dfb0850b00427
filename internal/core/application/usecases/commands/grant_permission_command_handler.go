package commands

import (
	"context"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/permission"
)

// GrantPermissionCommandHandler handles addition of policy records.
// Several records may coexist for one (actor, action) pair; evaluation
// precedence, not storage, decides which one wins.
type GrantPermissionCommandHandler struct {
	uowFactory PermissionUoWFactory
}

// NewGrantPermissionCommandHandler creates a handler for permission
// grants.
func NewGrantPermissionCommandHandler(uowFactory PermissionUoWFactory) GrantPermissionCommandHandler {
	return GrantPermissionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the grant command.
func (h *GrantPermissionCommandHandler) Handle(ctx context.Context, cmd GrantPermissionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	record, err := h.buildRecord(cmd)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.PermissionRepository().Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *GrantPermissionCommandHandler) buildRecord(cmd GrantPermissionCommand) (*permission.Permission, error) {
	id := kernel.NewUUID()

	switch cmd.Kind() {
	case permission.Blacklist:
		return permission.NewBlacklist(id, cmd.Actor(), cmd.Action())
	case permission.LimitedUse:
		return permission.NewLimitedUse(id, cmd.Actor(), cmd.Action(), cmd.Remaining())
	case permission.Expiring:
		return permission.NewExpiring(id, cmd.Actor(), cmd.Action(), cmd.Deadline())
	default:
		return permission.NewAllow(id, cmd.Actor(), cmd.Action())
	}
}
