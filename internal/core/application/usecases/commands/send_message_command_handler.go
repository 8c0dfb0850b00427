package commands

import (
	"context"
	"time"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/envelope"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/services"
	"aos/internal/core/ports"
	"aos/internal/pkg/errs"
)

// SendMessageResult reports where a send ended up. Local sends complete
// inside the calling transaction; remote sends leave an AwaitingAck
// delivery record behind, identified by MessageID.
type SendMessageResult struct {
	MessageID string
	Local     bool
}

// SendMessageCommandHandler handles the kernel's send entrypoint.
//
// A destination resolving to a local address is invoked synchronously:
// the target's failure aborts the whole transaction, including the fund
// movement. A destination qualified with a foreign chain is dispatched
// through the transport outbox instead: funds move into escrow on the
// delivery record and the record awaits a later acknowledgement or
// timeout transaction.
type SendMessageCommandHandler struct {
	uowFactory SendUoWFactory
	dispatcher ports.LocalDispatcher
	codec      ports.EnvelopeCodec
	hostChain  string
	timeout    time.Duration
	now        func() time.Time
}

// NewSendMessageCommandHandler creates a handler for the send entrypoint.
// timeout is the acknowledgement window granted to remote dispatches.
func NewSendMessageCommandHandler(
	uowFactory SendUoWFactory,
	dispatcher ports.LocalDispatcher,
	codec ports.EnvelopeCodec,
	hostChain string,
	timeout time.Duration,
) (SendMessageCommandHandler, error) {
	if dispatcher == nil {
		return SendMessageCommandHandler{}, errs.NewValueIsRequiredError("dispatcher")
	}
	if codec == nil {
		return SendMessageCommandHandler{}, errs.NewValueIsRequiredError("codec")
	}
	if timeout <= 0 {
		return SendMessageCommandHandler{}, errs.NewValueIsInvalidError("timeout")
	}

	return SendMessageCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		codec:      codec,
		hostChain:  hostChain,
		timeout:    timeout,
		now:        time.Now,
	}, nil
}

// Handle processes the send command and returns the message id: a fresh
// identifier for local sends, "<channel>/<sequence>" for remote ones.
func (h *SendMessageCommandHandler) Handle(ctx context.Context, cmd SendMessageCommand) (SendMessageResult, error) {
	if err := cmd.Validate(); err != nil {
		return SendMessageResult{}, err
	}

	// Forwarded messages keep the chain they were first dispatched from;
	// only a first-hop send originates here.
	originChain := cmd.OriginChain()
	if originChain == "" {
		originChain = h.hostChain
	}

	env, err := envelope.RestoreEnvelope(
		cmd.Origin(),
		originChain,
		cmd.Destination(),
		cmd.Payload(),
		cmd.Funds(),
		cmd.Hops(),
	)
	if err != nil {
		return SendMessageResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SendMessageResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if cmd.Destination().IsRemote(h.hostChain) {
		return h.sendRemote(ctx, uow, cmd, env)
	}
	return h.sendLocal(ctx, uow, cmd, env)
}

// sendLocal resolves the destination and invokes the target module in
// the same transaction.
func (h *SendMessageCommandHandler) sendLocal(
	ctx context.Context,
	uow SendUoW,
	cmd SendMessageCommand,
	env envelope.Envelope,
) (SendMessageResult, error) {
	resolver, err := services.NewResolver(uow.NodeRepository(), h.hostChain)
	if err != nil {
		return SendMessageResult{}, err
	}

	target, err := resolver.Resolve(ctx, cmd.Destination())
	if err != nil {
		return SendMessageResult{}, err
	}

	if err := h.moveFunds(ctx, uow.AccountRepository(), cmd.Origin(), target, cmd.Funds()); err != nil {
		return SendMessageResult{}, err
	}

	if err := h.dispatcher.Dispatch(ctx, target, &env); err != nil {
		return SendMessageResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return SendMessageResult{}, err
	}

	return SendMessageResult{MessageID: kernel.NewUUID().String(), Local: true}, nil
}

// sendRemote advances the envelope's hop count, escrows funds, reserves
// the next channel sequence, queues the encoded envelope and persists the
// AwaitingAck record.
func (h *SendMessageCommandHandler) sendRemote(
	ctx context.Context,
	uow SendUoW,
	cmd SendMessageCommand,
	env envelope.Envelope,
) (SendMessageResult, error) {
	channel := cmd.Destination().Chain()

	// Crossing a chain consumes a hop. An envelope already at the bound
	// can still be delivered locally but is rejected here, which breaks
	// relay loops between misconfigured chains.
	outbound, err := env.NextHop()
	if err != nil {
		return SendMessageResult{}, err
	}

	// The channel qualifier must be known to the key-address table; the
	// remote subtree itself need not exist locally.
	if _, err := uow.KeyAddressRepository().Get(ctx, bridgeKey(channel)); err != nil {
		return SendMessageResult{}, errs.NewObjectNotFoundErrorWithCause("channel", channel, err)
	}

	if err := debitOwnerAll(ctx, uow.AccountRepository(), cmd.Origin().String(), cmd.Funds()); err != nil {
		return SendMessageResult{}, err
	}

	sequence, err := uow.ChannelSequences().Next(ctx, channel)
	if err != nil {
		return SendMessageResult{}, err
	}

	wire, err := h.codec.Encode(&outbound)
	if err != nil {
		return SendMessageResult{}, err
	}

	now := h.now()
	if err := uow.OutboxRepository().Add(ctx, ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		Channel:   channel,
		Sequence:  sequence,
		Payload:   wire,
		CreatedAt: now,
	}); err != nil {
		return SendMessageResult{}, err
	}

	record, err := delivery.NewDelivery(
		kernel.NewUUID(),
		channel,
		sequence,
		cmd.Origin(),
		cmd.Funds(),
		now,
		now.Add(h.timeout),
	)
	if err != nil {
		return SendMessageResult{}, err
	}

	if err := uow.DeliveryRepository().Add(ctx, record); err != nil {
		return SendMessageResult{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return SendMessageResult{}, err
	}

	return SendMessageResult{MessageID: record.MessageID()}, nil
}

// moveFunds settles attached funds for a local delivery: origin pays,
// the target's owner account receives.
func (h *SendMessageCommandHandler) moveFunds(
	ctx context.Context,
	accountRepo ports.AccountRepository,
	origin kernel.Address,
	target kernel.Address,
	funds kernel.Coins,
) error {
	if funds.IsZero() {
		return nil
	}

	if err := debitOwnerAll(ctx, accountRepo, origin.String(), funds); err != nil {
		return err
	}
	return creditOwnerAll(ctx, accountRepo, target.String(), funds)
}

// bridgeKey names the key-address entry registering a transport channel.
func bridgeKey(channel string) string {
	return "bridge/" + channel
}
