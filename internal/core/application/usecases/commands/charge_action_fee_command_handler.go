package commands

import (
	"context"
	"errors"

	"aos/internal/core/domain/model/registry"
	"aos/internal/core/ports"
	"aos/internal/pkg/errs"
)

// ChargeActionFeeCommandHandler handles action-fee settlement.
// The fee comes from the schedule of the type's greatest published
// version; debit and credit commit atomically.
type ChargeActionFeeCommandHandler struct {
	uowFactory FeeUoWFactory
}

// NewChargeActionFeeCommandHandler creates a handler for fee settlement.
func NewChargeActionFeeCommandHandler(uowFactory FeeUoWFactory) ChargeActionFeeCommandHandler {
	return ChargeActionFeeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the fee settlement command.
// An action without a configured fee commits without moving funds. A
// payer balance short of the fee fails with InsufficientFundsError and
// no partial movement.
func (h *ChargeActionFeeCommandHandler) Handle(ctx context.Context, cmd ChargeActionFeeCommand) error {
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

	entry, err := h.latestEntry(ctx, uow.RegistryRepository(), cmd.ModuleType())
	if err != nil {
		return err
	}

	fee, ok := entry.ActionFee(cmd.Action())
	if !ok {
		return uow.Commit(ctx)
	}

	accountRepo := uow.AccountRepository()

	payer, err := accountRepo.GetByOwner(ctx, cmd.Payer())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewInsufficientFundsErrorWithCause(cmd.Payer(), fee.Denom(), err)
		}
		return err
	}

	if err := payer.Debit(fee); err != nil {
		return err
	}
	if err := accountRepo.Update(ctx, payer); err != nil {
		return err
	}

	if err := creditOwner(ctx, accountRepo, entry.Publisher(), fee); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// latestEntry picks the entry with the greatest version, pre-releases
// included, matching how the catalog treats the newest publication as
// authoritative for fees.
func (h *ChargeActionFeeCommandHandler) latestEntry(
	ctx context.Context,
	registryRepo ports.RegistryRepository,
	moduleType string,
) (*registry.Entry, error) {
	entries, err := registryRepo.GetAllByType(ctx, moduleType)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errs.NewObjectNotFoundError("moduleType", moduleType)
	}

	latest := entries[0]
	for _, entry := range entries[1:] {
		if latest.Version().LessThan(entry.Version()) {
			latest = entry
		}
	}
	return latest, nil
}
