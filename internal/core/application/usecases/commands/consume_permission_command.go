package commands

import (
	"errors"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrConsumePermissionCommandIsNotConstructed = errors.New(
	"ConsumePermissionCommand must be created via NewConsumePermissionCommand constructor",
)

// ConsumePermissionCommand represents a guarded action asking whether the
// actor may proceed, consuming one use of a limited grant when it does.
type ConsumePermissionCommand struct { //nolint:recvcheck //using for validation
	actor  string
	action string

	guard guard.ConstructorGuard
}

// NewConsumePermissionCommand creates a command to check and consume the
// actor's permission for the action.
func NewConsumePermissionCommand(actor, action string) (ConsumePermissionCommand, error) {
	cmd := ConsumePermissionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setAction(action),
	); err != nil {
		return ConsumePermissionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConsumePermissionCommand) Validate() error {
	return c.guard.Validate(ErrConsumePermissionCommandIsNotConstructed)
}

// Actor returns the identity performing the guarded action.
func (c ConsumePermissionCommand) Actor() string {
	return c.actor
}

// Action returns the guarded action name.
func (c ConsumePermissionCommand) Action() string {
	return c.action
}

func (c *ConsumePermissionCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *ConsumePermissionCommand) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}

	c.action = action
	return nil
}
