package commands

import (
	"context"
	"errors"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/pkg/errs"
)

// AcknowledgeDeliveryCommandHandler finalizes delivery records from
// transport acknowledgements.
//
// Finalization is idempotent by construction: an absent record and an
// already finalized record are both no-ops, so redelivered
// acknowledgements can never release or refund the same escrow twice.
// A concurrent finalizer racing this handler loses at the conditional
// status write and is treated as the same no-op.
type AcknowledgeDeliveryCommandHandler struct {
	uowFactory FinalizeUoWFactory
	now        func() time.Time
}

// NewAcknowledgeDeliveryCommandHandler creates a handler for transport
// acknowledgements.
func NewAcknowledgeDeliveryCommandHandler(uowFactory FinalizeUoWFactory) AcknowledgeDeliveryCommandHandler {
	return AcknowledgeDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the acknowledgement.
// On success the escrow releases to the channel's bridge account, the
// record marks Completed. On a failed acknowledgement the escrow refunds
// to the origin and the record marks Failed.
func (h *AcknowledgeDeliveryCommandHandler) Handle(ctx context.Context, cmd AcknowledgeDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()

	record, err := deliveryRepo.GetByChannelSequence(ctx, cmd.Channel(), cmd.Sequence())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}
	if record.IsFinalized() {
		return nil
	}

	if cmd.Success() {
		if err := record.Complete(h.now()); err != nil {
			return err
		}
		if err := creditOwnerAll(ctx, uow.AccountRepository(), bridgeKey(record.Channel()), record.Escrow()); err != nil {
			return err
		}
	} else {
		if err := record.Fail(h.now()); err != nil {
			return err
		}
		if err := creditOwnerAll(ctx, uow.AccountRepository(), record.Origin().String(), record.Escrow()); err != nil {
			return err
		}
	}

	if err := deliveryRepo.Update(ctx, record); err != nil {
		// A concurrent acknowledgement or timeout finalized the record
		// first. The rollback discards the credit booked above.
		if errors.Is(err, delivery.ErrDeliveryAlreadyFinalized) {
			return nil
		}
		return err
	}

	return uow.Commit(ctx)
}
