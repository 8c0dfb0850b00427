package commands

import (
	"context"
)

// RevokePermissionCommandHandler handles removal of policy records.
// Revoking a pair that holds no records is a no-op.
type RevokePermissionCommandHandler struct {
	uowFactory PermissionUoWFactory
}

// NewRevokePermissionCommandHandler creates a handler for permission
// revocation.
func NewRevokePermissionCommandHandler(uowFactory PermissionUoWFactory) RevokePermissionCommandHandler {
	return RevokePermissionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the revocation command.
// Removes every record covering the pair in one transaction, so a grant
// and its blacklist never outlive each other by accident.
func (h *RevokePermissionCommandHandler) Handle(ctx context.Context, cmd RevokePermissionCommand) error {
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

	permissionRepo := uow.PermissionRepository()

	records, err := permissionRepo.GetByActorAction(ctx, cmd.Actor(), cmd.Action())
	if err != nil {
		return err
	}

	for _, record := range records {
		if err := permissionRepo.Delete(ctx, record.ID()); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
