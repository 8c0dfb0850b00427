package commands

import (
	"context"
)

// SetActionFeeCommandHandler handles fee schedule changes on published
// catalog entries.
type SetActionFeeCommandHandler struct {
	uowFactory RegistryUoWFactory
}

// NewSetActionFeeCommandHandler creates a handler for fee schedule
// changes.
func NewSetActionFeeCommandHandler(uowFactory RegistryUoWFactory) SetActionFeeCommandHandler {
	return SetActionFeeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the fee change command.
// Fails with NotFound when the (type, version) pairing was never
// published.
func (h *SetActionFeeCommandHandler) Handle(ctx context.Context, cmd SetActionFeeCommand) error {
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

	registryRepo := uow.RegistryRepository()

	entry, err := registryRepo.GetByTypeAndVersion(ctx, cmd.ModuleType(), cmd.Version())
	if err != nil {
		return err
	}

	if cmd.Fee() == nil {
		entry.RemoveActionFee(cmd.Action())
	} else if err := entry.SetActionFee(cmd.Action(), *cmd.Fee()); err != nil {
		return err
	}

	if err := registryRepo.Update(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
