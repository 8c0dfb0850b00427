package commands

import (
	"context"
	"errors"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/pkg/errs"
)

// TimeoutDeliveryCommandHandler expires delivery records whose
// acknowledgement window closed.
//
// Idempotence matches the acknowledgement path: absent and finalized
// records are no-ops. A timeout arriving before the record's deadline is
// rejected, the record stays AwaitingAck.
type TimeoutDeliveryCommandHandler struct {
	uowFactory FinalizeUoWFactory
	now        func() time.Time
}

// NewTimeoutDeliveryCommandHandler creates a handler for transport
// timeouts.
func NewTimeoutDeliveryCommandHandler(uowFactory FinalizeUoWFactory) TimeoutDeliveryCommandHandler {
	return TimeoutDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the timeout.
// Refunds the exact escrowed amount to the origin and marks the record
// TimedOut, exactly once across any number of redeliveries.
func (h *TimeoutDeliveryCommandHandler) Handle(ctx context.Context, cmd TimeoutDeliveryCommand) error {
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

	if err := record.Timeout(h.now()); err != nil {
		return err
	}

	if err := creditOwnerAll(ctx, uow.AccountRepository(), record.Origin().String(), record.Escrow()); err != nil {
		return err
	}

	if err := deliveryRepo.Update(ctx, record); err != nil {
		// A concurrent acknowledgement finalized the record first. The
		// rollback discards the refund booked above.
		if errors.Is(err, delivery.ErrDeliveryAlreadyFinalized) {
			return nil
		}
		return err
	}

	return uow.Commit(ctx)
}
