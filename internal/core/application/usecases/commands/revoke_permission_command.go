package commands

import (
	"errors"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrRevokePermissionCommandIsNotConstructed = errors.New(
	"RevokePermissionCommand must be created via NewRevokePermissionCommand constructor",
)

// RevokePermissionCommand represents an administrative request to remove
// every policy record covering an (actor, action) pair.
type RevokePermissionCommand struct { //nolint:recvcheck //using for validation
	actor  string
	action string

	guard guard.ConstructorGuard
}

// NewRevokePermissionCommand creates a command to remove the pair's
// policy records.
func NewRevokePermissionCommand(actor, action string) (RevokePermissionCommand, error) {
	cmd := RevokePermissionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setAction(action),
	); err != nil {
		return RevokePermissionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RevokePermissionCommand) Validate() error {
	return c.guard.Validate(ErrRevokePermissionCommandIsNotConstructed)
}

// Actor returns the identity whose records are removed.
func (c RevokePermissionCommand) Actor() string {
	return c.actor
}

// Action returns the guarded action name.
func (c RevokePermissionCommand) Action() string {
	return c.action
}

func (c *RevokePermissionCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *RevokePermissionCommand) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}

	c.action = action
	return nil
}
