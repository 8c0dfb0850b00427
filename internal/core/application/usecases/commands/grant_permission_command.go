package commands

import (
	"errors"
	"time"

	"aos/internal/core/domain/model/permission"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrGrantPermissionCommandIsNotConstructed = errors.New(
	"GrantPermissionCommand must be created via NewGrantPermissionCommand constructor",
)

// GrantPermissionCommand represents an administrative request to add a
// policy record for an (actor, action) pair. The remaining counter only
// applies to LimitedUse grants and the deadline only to Expiring grants.
type GrantPermissionCommand struct { //nolint:recvcheck //using for validation
	actor     string
	action    string
	kind      permission.Kind
	remaining uint32
	deadline  time.Time

	guard guard.ConstructorGuard
}

// NewGrantPermissionCommand creates a command to add a policy record.
// Kind-specific parameters are validated here: an Expiring grant needs a
// deadline, every other kind must leave it zero.
func NewGrantPermissionCommand(
	actor, action string,
	kind permission.Kind,
	remaining uint32,
	deadline time.Time,
) (GrantPermissionCommand, error) {
	cmd := GrantPermissionCommand{
		remaining: remaining,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setAction(action),
		cmd.setKind(kind),
		cmd.setDeadline(kind, deadline),
	); err != nil {
		return GrantPermissionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GrantPermissionCommand) Validate() error {
	return c.guard.Validate(ErrGrantPermissionCommandIsNotConstructed)
}

// Actor returns the identity the record applies to.
func (c GrantPermissionCommand) Actor() string {
	return c.actor
}

// Action returns the guarded action name.
func (c GrantPermissionCommand) Action() string {
	return c.action
}

// Kind returns the record classification.
func (c GrantPermissionCommand) Kind() permission.Kind {
	return c.kind
}

// Remaining returns the LimitedUse counter.
func (c GrantPermissionCommand) Remaining() uint32 {
	return c.remaining
}

// Deadline returns the Expiring deadline.
func (c GrantPermissionCommand) Deadline() time.Time {
	return c.deadline
}

func (c *GrantPermissionCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *GrantPermissionCommand) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}

	c.action = action
	return nil
}

func (c *GrantPermissionCommand) setKind(kind permission.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *GrantPermissionCommand) setDeadline(kind permission.Kind, deadline time.Time) error {
	if kind == permission.Expiring && deadline.IsZero() {
		return errs.NewValueIsRequiredError("deadline")
	}
	if kind != permission.Expiring && !deadline.IsZero() {
		return errs.NewValueIsInvalidError("deadline")
	}

	c.deadline = deadline
	return nil
}
