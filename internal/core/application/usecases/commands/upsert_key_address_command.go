package commands

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrUpsertKeyAddressCommandIsNotConstructed = errors.New(
	"UpsertKeyAddressCommand must be created via NewUpsertKeyAddressCommand constructor",
)

// UpsertKeyAddressCommand represents an administrative request to bind a
// well-known role name (registry, resolver, economics, bridge) to a module
// address in the key-address table.
type UpsertKeyAddressCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Address
	key     string
	address kernel.Address

	guard guard.ConstructorGuard
}

// NewUpsertKeyAddressCommand creates a command to bind a role name to an
// address. The actor is the caller requesting the mutation; whether it is
// the administrator is decided by the handler.
func NewUpsertKeyAddressCommand(actor kernel.Address, key string, address kernel.Address) (UpsertKeyAddressCommand, error) {
	cmd := UpsertKeyAddressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setKey(key),
		cmd.setAddress(address),
	); err != nil {
		return UpsertKeyAddressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpsertKeyAddressCommand) Validate() error {
	return c.guard.Validate(ErrUpsertKeyAddressCommandIsNotConstructed)
}

// Actor returns the caller requesting the mutation.
func (c UpsertKeyAddressCommand) Actor() kernel.Address {
	return c.actor
}

// Key returns the role name being bound.
func (c UpsertKeyAddressCommand) Key() string {
	return c.key
}

// Address returns the module address being bound to the key.
func (c UpsertKeyAddressCommand) Address() kernel.Address {
	return c.address
}

func (c *UpsertKeyAddressCommand) setActor(actor kernel.Address) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *UpsertKeyAddressCommand) setKey(key string) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}

	c.key = key
	return nil
}

func (c *UpsertKeyAddressCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}
