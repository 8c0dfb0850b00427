package commands

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrRegisterPathCommandIsNotConstructed = errors.New(
	"RegisterPathCommand must be created via its constructors",
)

// RegisterPathCommand represents a request to insert a uniquely-named
// child into the resolver tree. The child either binds a module address
// or aliases another path; a nil parent inserts at the top level.
type RegisterPathCommand struct { //nolint:recvcheck //using for validation
	parent      *kernel.Path
	name        string
	address     *kernel.Address
	aliasTarget *kernel.Path

	guard guard.ConstructorGuard
}

// NewRegisterPathCommand creates a command binding a module address under
// the parent path.
func NewRegisterPathCommand(parent *kernel.Path, name string, address kernel.Address) (RegisterPathCommand, error) {
	if err := address.Validate(); err != nil {
		return RegisterPathCommand{}, err
	}
	return newRegisterPathCommand(parent, name, &address, nil)
}

// NewRegisterAliasCommand creates a command aliasing the target path
// under the parent path.
func NewRegisterAliasCommand(parent *kernel.Path, name string, target kernel.Path) (RegisterPathCommand, error) {
	if err := target.Validate(); err != nil {
		return RegisterPathCommand{}, err
	}
	return newRegisterPathCommand(parent, name, nil, &target)
}

func newRegisterPathCommand(
	parent *kernel.Path,
	name string,
	address *kernel.Address,
	aliasTarget *kernel.Path,
) (RegisterPathCommand, error) {
	cmd := RegisterPathCommand{
		address:     address,
		aliasTarget: aliasTarget,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParent(parent),
		cmd.setName(name),
	); err != nil {
		return RegisterPathCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c RegisterPathCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPathCommandIsNotConstructed)
}

// Parent returns the parent path, nil for top-level insertion.
func (c RegisterPathCommand) Parent() *kernel.Path {
	return c.parent
}

// Name returns the segment the child occupies under its parent.
func (c RegisterPathCommand) Name() string {
	return c.name
}

// Address returns the module address to bind, nil for alias registration.
func (c RegisterPathCommand) Address() *kernel.Address {
	return c.address
}

// AliasTarget returns the alias target, nil for address registration.
func (c RegisterPathCommand) AliasTarget() *kernel.Path {
	return c.aliasTarget
}

func (c *RegisterPathCommand) setParent(parent *kernel.Path) error {
	if parent == nil {
		return nil
	}
	if err := parent.Validate(); err != nil {
		return err
	}

	p := *parent
	c.parent = &p
	return nil
}

func (c *RegisterPathCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if err := kernel.ValidatePathSegment(name); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("name", err)
	}

	c.name = name
	return nil
}
