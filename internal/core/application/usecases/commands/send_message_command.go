package commands

import (
	"errors"

	"aos/internal/core/domain/model/envelope"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrSendMessageCommandIsNotConstructed = errors.New(
	"SendMessageCommand must be created via its constructors",
)

// SendMessageCommand represents a module's request to send a payload to a
// symbolic destination, optionally attaching funds. The hop count is zero
// for first-hop sends and carried over from the envelope for messages
// forwarded off the transport, together with the chain the message was
// first dispatched from.
type SendMessageCommand struct { //nolint:recvcheck //using for validation
	origin      kernel.Address
	originChain string
	destination kernel.Path
	payload     []byte
	funds       kernel.Coins
	hops        int

	guard guard.ConstructorGuard
}

// NewSendMessageCommand creates a first-hop send command. The origin chain
// is left empty, the handler stamps its host chain.
func NewSendMessageCommand(
	origin kernel.Address,
	destination kernel.Path,
	payload []byte,
	funds kernel.Coins,
) (SendMessageCommand, error) {
	return newSendMessageCommand(origin, "", destination, payload, funds, 0)
}

// NewForwardedSendMessageCommand creates a send command for a message
// received off the transport, carrying the decoded envelope's origin
// chain and accumulated hop count.
func NewForwardedSendMessageCommand(
	origin kernel.Address,
	originChain string,
	destination kernel.Path,
	payload []byte,
	funds kernel.Coins,
	hops int,
) (SendMessageCommand, error) {
	if originChain == "" {
		return SendMessageCommand{}, errs.NewValueIsRequiredError("origin chain")
	}
	return newSendMessageCommand(origin, originChain, destination, payload, funds, hops)
}

func newSendMessageCommand(
	origin kernel.Address,
	originChain string,
	destination kernel.Path,
	payload []byte,
	funds kernel.Coins,
	hops int,
) (SendMessageCommand, error) {
	cmd := SendMessageCommand{
		originChain: originChain,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrigin(origin),
		cmd.setDestination(destination),
		cmd.setPayload(payload),
		cmd.setFunds(funds),
		cmd.setHops(hops),
	); err != nil {
		return SendMessageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c SendMessageCommand) Validate() error {
	return c.guard.Validate(ErrSendMessageCommandIsNotConstructed)
}

// Origin returns the sending module's address.
func (c SendMessageCommand) Origin() kernel.Address {
	return c.origin
}

// OriginChain returns the chain the message was first dispatched from,
// or the empty string for a first-hop send.
func (c SendMessageCommand) OriginChain() string {
	return c.originChain
}

// Destination returns the symbolic destination path.
func (c SendMessageCommand) Destination() kernel.Path {
	return c.destination
}

// Payload returns the opaque message body.
func (c SendMessageCommand) Payload() []byte {
	return c.payload
}

// Funds returns the coins attached to the message.
func (c SendMessageCommand) Funds() kernel.Coins {
	return c.funds
}

// Hops returns the accumulated forwarding depth.
func (c SendMessageCommand) Hops() int {
	return c.hops
}

func (c *SendMessageCommand) setOrigin(origin kernel.Address) error {
	if err := origin.Validate(); err != nil {
		return err
	}

	c.origin = origin
	return nil
}

func (c *SendMessageCommand) setDestination(destination kernel.Path) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	c.destination = destination
	return nil
}

func (c *SendMessageCommand) setPayload(payload []byte) error {
	if len(payload) == 0 {
		return errs.NewValueIsRequiredError("payload")
	}

	c.payload = append([]byte{}, payload...)
	return nil
}

func (c *SendMessageCommand) setFunds(funds kernel.Coins) error {
	if err := funds.Validate(); err != nil {
		return err
	}

	c.funds = funds
	return nil
}

func (c *SendMessageCommand) setHops(hops int) error {
	if hops < 0 || hops > envelope.MaxHops {
		return errs.NewValueIsOutOfRangeError("hops", hops, 0, envelope.MaxHops)
	}

	c.hops = hops
	return nil
}
