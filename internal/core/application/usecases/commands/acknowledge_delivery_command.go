package commands

import (
	"errors"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrAcknowledgeDeliveryCommandIsNotConstructed = errors.New(
	"AcknowledgeDeliveryCommand must be created via NewAcknowledgeDeliveryCommand constructor",
)

// AcknowledgeDeliveryCommand represents a transport acknowledgement for
// the delivery record keyed by (channel, sequence). The transport may
// redeliver the same acknowledgement any number of times.
type AcknowledgeDeliveryCommand struct { //nolint:recvcheck //using for validation
	channel      string
	sequence     uint64
	success      bool
	replyPayload []byte

	guard guard.ConstructorGuard
}

// NewAcknowledgeDeliveryCommand creates a command finalizing a delivery
// from a transport acknowledgement. replyPayload may be nil.
func NewAcknowledgeDeliveryCommand(channel string, sequence uint64, success bool, replyPayload []byte) (AcknowledgeDeliveryCommand, error) {
	cmd := AcknowledgeDeliveryCommand{
		sequence: sequence,
		success:  success,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setChannel(channel); err != nil {
		return AcknowledgeDeliveryCommand{}, err
	}
	cmd.setReplyPayload(replyPayload)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcknowledgeDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgeDeliveryCommandIsNotConstructed)
}

// Channel returns the transport channel of the acknowledged delivery.
func (c AcknowledgeDeliveryCommand) Channel() string {
	return c.channel
}

// Sequence returns the per-channel sequence of the acknowledged delivery.
func (c AcknowledgeDeliveryCommand) Sequence() uint64 {
	return c.sequence
}

// Success reports whether the remote side executed the message.
func (c AcknowledgeDeliveryCommand) Success() bool {
	return c.success
}

// ReplyPayload returns the remote side's reply body, nil when absent.
func (c AcknowledgeDeliveryCommand) ReplyPayload() []byte {
	return c.replyPayload
}

func (c *AcknowledgeDeliveryCommand) setChannel(channel string) error {
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}

	c.channel = channel
	return nil
}

func (c *AcknowledgeDeliveryCommand) setReplyPayload(replyPayload []byte) {
	if len(replyPayload) == 0 {
		return
	}

	c.replyPayload = append([]byte{}, replyPayload...)
}
