package commands

import (
	"errors"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrTimeoutDeliveryCommandIsNotConstructed = errors.New(
	"TimeoutDeliveryCommand must be created via NewTimeoutDeliveryCommand constructor",
)

// TimeoutDeliveryCommand represents a transport timeout for the delivery
// record keyed by (channel, sequence).
type TimeoutDeliveryCommand struct { //nolint:recvcheck //using for validation
	channel  string
	sequence uint64

	guard guard.ConstructorGuard
}

// NewTimeoutDeliveryCommand creates a command expiring a delivery.
func NewTimeoutDeliveryCommand(channel string, sequence uint64) (TimeoutDeliveryCommand, error) {
	cmd := TimeoutDeliveryCommand{
		sequence: sequence,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setChannel(channel); err != nil {
		return TimeoutDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TimeoutDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrTimeoutDeliveryCommandIsNotConstructed)
}

// Channel returns the transport channel of the expired delivery.
func (c TimeoutDeliveryCommand) Channel() string {
	return c.channel
}

// Sequence returns the per-channel sequence of the expired delivery.
func (c TimeoutDeliveryCommand) Sequence() uint64 {
	return c.sequence
}

func (c *TimeoutDeliveryCommand) setChannel(channel string) error {
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}

	c.channel = channel
	return nil
}
