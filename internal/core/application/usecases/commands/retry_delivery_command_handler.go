package commands

import (
	"context"
	"fmt"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/ports"
	"aos/internal/pkg/errs"
)

// RetryDeliveryCommandHandler re-dispatches a timed-out delivery.
//
// The original wire payload is re-read from the outbox and queued again
// under a freshly reserved sequence; the origin's refunded escrow is
// debited again onto the new record. The timed-out record keeps its
// terminal state untouched.
type RetryDeliveryCommandHandler struct {
	uowFactory RetryUoWFactory
	timeout    time.Duration
	now        func() time.Time
}

// NewRetryDeliveryCommandHandler creates a handler for delivery retries.
// timeout is the acknowledgement window granted to the new dispatch.
func NewRetryDeliveryCommandHandler(uowFactory RetryUoWFactory, timeout time.Duration) (RetryDeliveryCommandHandler, error) {
	if timeout <= 0 {
		return RetryDeliveryCommandHandler{}, errs.NewValueIsInvalidError("timeout")
	}

	return RetryDeliveryCommandHandler{
		uowFactory: uowFactory,
		timeout:    timeout,
		now:        time.Now,
	}, nil
}

// Handle processes the retry and returns the new message id.
// Only TimedOut records are retryable; anything else fails with
// ValueIsInvalid.
func (h *RetryDeliveryCommandHandler) Handle(ctx context.Context, cmd RetryDeliveryCommand) (SendMessageResult, error) {
	if err := cmd.Validate(); err != nil {
		return SendMessageResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SendMessageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	record, err := deliveryRepo.GetByChannelSequence(ctx, cmd.Channel(), cmd.Sequence())
	if err != nil {
		return SendMessageResult{}, err
	}
	if record.Status() != delivery.TimedOut {
		return SendMessageResult{}, errs.NewValueIsInvalidErrorWithCause("delivery",
			fmt.Errorf("%s is %s, only TimedOut deliveries can be retried", record.MessageID(), record.Status()))
	}

	original, err := uow.OutboxRepository().GetByChannelSequence(ctx, cmd.Channel(), cmd.Sequence())
	if err != nil {
		return SendMessageResult{}, err
	}

	if err := debitOwnerAll(ctx, uow.AccountRepository(), record.Origin().String(), record.Escrow()); err != nil {
		return SendMessageResult{}, err
	}

	sequence, err := uow.ChannelSequences().Next(ctx, cmd.Channel())
	if err != nil {
		return SendMessageResult{}, err
	}

	now := h.now()
	if err := uow.OutboxRepository().Add(ctx, ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		Channel:   cmd.Channel(),
		Sequence:  sequence,
		Payload:   original.Payload,
		CreatedAt: now,
	}); err != nil {
		return SendMessageResult{}, err
	}

	retried, err := delivery.NewDelivery(
		kernel.NewUUID(),
		cmd.Channel(),
		sequence,
		record.Origin(),
		record.Escrow(),
		now,
		now.Add(h.timeout),
	)
	if err != nil {
		return SendMessageResult{}, err
	}

	if err := deliveryRepo.Add(ctx, retried); err != nil {
		return SendMessageResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return SendMessageResult{}, err
	}

	return SendMessageResult{MessageID: retried.MessageID()}, nil
}
