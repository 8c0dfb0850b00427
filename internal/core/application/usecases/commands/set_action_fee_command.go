package commands

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrSetActionFeeCommandIsNotConstructed = errors.New(
	"SetActionFeeCommand must be created via its constructors",
)

// SetActionFeeCommand represents a request to change the fee schedule of
// an already published (type, version) catalog entry. A nil fee removes
// the action from the schedule.
type SetActionFeeCommand struct { //nolint:recvcheck //using for validation
	moduleType string
	version    registry.Version
	action     string
	fee        *kernel.Coin

	guard guard.ConstructorGuard
}

// NewSetActionFeeCommand creates a command setting or replacing the fee
// for an action.
func NewSetActionFeeCommand(moduleType string, version registry.Version, action string, fee kernel.Coin) (SetActionFeeCommand, error) {
	if err := fee.Validate(); err != nil {
		return SetActionFeeCommand{}, err
	}
	return newSetActionFeeCommand(moduleType, version, action, &fee)
}

// NewRemoveActionFeeCommand creates a command removing the fee for an
// action.
func NewRemoveActionFeeCommand(moduleType string, version registry.Version, action string) (SetActionFeeCommand, error) {
	return newSetActionFeeCommand(moduleType, version, action, nil)
}

func newSetActionFeeCommand(moduleType string, version registry.Version, action string, fee *kernel.Coin) (SetActionFeeCommand, error) {
	cmd := SetActionFeeCommand{
		fee:   fee,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setModuleType(moduleType),
		cmd.setVersion(version),
		cmd.setAction(action),
	); err != nil {
		return SetActionFeeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through a constructor.
func (c SetActionFeeCommand) Validate() error {
	return c.guard.Validate(ErrSetActionFeeCommandIsNotConstructed)
}

// ModuleType returns the catalog entry's module type.
func (c SetActionFeeCommand) ModuleType() string {
	return c.moduleType
}

// Version returns the catalog entry's version.
func (c SetActionFeeCommand) Version() registry.Version {
	return c.version
}

// Action returns the guarded action whose fee changes.
func (c SetActionFeeCommand) Action() string {
	return c.action
}

// Fee returns the fee to set, nil for removal.
func (c SetActionFeeCommand) Fee() *kernel.Coin {
	return c.fee
}

func (c *SetActionFeeCommand) setModuleType(moduleType string) error {
	if moduleType == "" {
		return errs.NewValueIsRequiredError("moduleType")
	}

	c.moduleType = moduleType
	return nil
}

func (c *SetActionFeeCommand) setVersion(version registry.Version) error {
	if err := version.Validate(); err != nil {
		return err
	}

	c.version = version
	return nil
}

func (c *SetActionFeeCommand) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}

	c.action = action
	return nil
}
