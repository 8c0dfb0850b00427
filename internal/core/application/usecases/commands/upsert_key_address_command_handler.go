package commands

import (
	"context"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

// UpsertKeyAddressCommandHandler handles administrative mutation of the
// key-address table. Only the configured administrator may call it; any
// other actor fails with UnauthorizedError.
type UpsertKeyAddressCommandHandler struct {
	uowFactory KeyAddressUoWFactory
	admin      kernel.Address
}

// NewUpsertKeyAddressCommandHandler creates a handler bound to the
// administrator address fixed at bootstrap.
func NewUpsertKeyAddressCommandHandler(uowFactory KeyAddressUoWFactory, admin kernel.Address) UpsertKeyAddressCommandHandler {
	return UpsertKeyAddressCommandHandler{
		uowFactory: uowFactory,
		admin:      admin,
	}
}

// Handle processes the key-address mutation.
// Rejects non-administrator actors before opening a transaction.
func (h *UpsertKeyAddressCommandHandler) Handle(ctx context.Context, cmd UpsertKeyAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsEqual(h.admin) {
		return errs.NewUnauthorizedError(cmd.Actor().String(), "upsert key address")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.KeyAddressRepository().Upsert(ctx, cmd.Key(), cmd.Address()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
