package commands

import (
	"errors"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrChargeActionFeeCommandIsNotConstructed = errors.New(
	"ChargeActionFeeCommand must be created via NewChargeActionFeeCommand constructor",
)

// ChargeActionFeeCommand represents a request to charge the catalog fee
// for a guarded action: the payer's ledger is debited and the type's
// publisher is credited. Actions without a configured fee charge nothing.
type ChargeActionFeeCommand struct { //nolint:recvcheck //using for validation
	payer      string
	moduleType string
	action     string

	guard guard.ConstructorGuard
}

// NewChargeActionFeeCommand creates a command to charge the action fee.
func NewChargeActionFeeCommand(payer, moduleType, action string) (ChargeActionFeeCommand, error) {
	cmd := ChargeActionFeeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPayer(payer),
		cmd.setModuleType(moduleType),
		cmd.setAction(action),
	); err != nil {
		return ChargeActionFeeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChargeActionFeeCommand) Validate() error {
	return c.guard.Validate(ErrChargeActionFeeCommandIsNotConstructed)
}

// Payer returns the actor paying the fee.
func (c ChargeActionFeeCommand) Payer() string {
	return c.payer
}

// ModuleType returns the module type whose fee schedule applies.
func (c ChargeActionFeeCommand) ModuleType() string {
	return c.moduleType
}

// Action returns the guarded action being charged.
func (c ChargeActionFeeCommand) Action() string {
	return c.action
}

func (c *ChargeActionFeeCommand) setPayer(payer string) error {
	if payer == "" {
		return errs.NewValueIsRequiredError("payer")
	}

	c.payer = payer
	return nil
}

func (c *ChargeActionFeeCommand) setModuleType(moduleType string) error {
	if moduleType == "" {
		return errs.NewValueIsRequiredError("moduleType")
	}

	c.moduleType = moduleType
	return nil
}

func (c *ChargeActionFeeCommand) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}

	c.action = action
	return nil
}
