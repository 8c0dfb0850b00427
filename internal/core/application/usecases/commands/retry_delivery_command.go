package commands

import (
	"errors"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrRetryDeliveryCommandIsNotConstructed = errors.New(
	"RetryDeliveryCommand must be created via NewRetryDeliveryCommand constructor",
)

// RetryDeliveryCommand represents a caller's request to re-dispatch a
// timed-out delivery. The retry always produces a new delivery record
// under a new sequence; the timed-out record is never touched.
type RetryDeliveryCommand struct { //nolint:recvcheck //using for validation
	channel  string
	sequence uint64

	guard guard.ConstructorGuard
}

// NewRetryDeliveryCommand creates a command re-dispatching the timed-out
// delivery keyed by (channel, sequence).
func NewRetryDeliveryCommand(channel string, sequence uint64) (RetryDeliveryCommand, error) {
	cmd := RetryDeliveryCommand{
		sequence: sequence,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setChannel(channel); err != nil {
		return RetryDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRetryDeliveryCommandIsNotConstructed)
}

// Channel returns the transport channel of the timed-out delivery.
func (c RetryDeliveryCommand) Channel() string {
	return c.channel
}

// Sequence returns the per-channel sequence of the timed-out delivery.
func (c RetryDeliveryCommand) Sequence() uint64 {
	return c.sequence
}

func (c *RetryDeliveryCommand) setChannel(channel string) error {
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}

	c.channel = channel
	return nil
}
