package commands

import (
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrPublishVersionCommandIsNotConstructed = errors.New(
	"PublishVersionCommand must be created via NewPublishVersionCommand constructor",
)

// PublishVersionCommand represents a request to publish a (type, version)
// pairing into the code catalog, optionally with an initial action-fee
// schedule.
type PublishVersionCommand struct { //nolint:recvcheck //using for validation
	moduleType  string
	version     registry.Version
	codeID      uint64
	publisher   string
	feeSchedule map[string]kernel.Coin

	guard guard.ConstructorGuard
}

// NewPublishVersionCommand creates a command to publish a module version.
// The fee schedule may be nil when no action carries a fee.
func NewPublishVersionCommand(
	moduleType string,
	version registry.Version,
	codeID uint64,
	publisher string,
	feeSchedule map[string]kernel.Coin,
) (PublishVersionCommand, error) {
	cmd := PublishVersionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setModuleType(moduleType),
		cmd.setVersion(version),
		cmd.setCodeID(codeID),
		cmd.setPublisher(publisher),
		cmd.setFeeSchedule(feeSchedule),
	); err != nil {
		return PublishVersionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishVersionCommand) Validate() error {
	return c.guard.Validate(ErrPublishVersionCommandIsNotConstructed)
}

// ModuleType returns the module type being published.
func (c PublishVersionCommand) ModuleType() string {
	return c.moduleType
}

// Version returns the version being published.
func (c PublishVersionCommand) Version() registry.Version {
	return c.version
}

// CodeID returns the code store reference.
func (c PublishVersionCommand) CodeID() uint64 {
	return c.codeID
}

// Publisher returns the fee recipient.
func (c PublishVersionCommand) Publisher() string {
	return c.publisher
}

// FeeSchedule returns the initial action-fee schedule.
func (c PublishVersionCommand) FeeSchedule() map[string]kernel.Coin {
	return c.feeSchedule
}

func (c *PublishVersionCommand) setModuleType(moduleType string) error {
	if moduleType == "" {
		return errs.NewValueIsRequiredError("moduleType")
	}

	c.moduleType = moduleType
	return nil
}

func (c *PublishVersionCommand) setVersion(version registry.Version) error {
	if err := version.Validate(); err != nil {
		return err
	}

	c.version = version
	return nil
}

func (c *PublishVersionCommand) setCodeID(codeID uint64) error {
	if codeID == 0 {
		return errs.NewValueIsRequiredError("codeID")
	}

	c.codeID = codeID
	return nil
}

func (c *PublishVersionCommand) setPublisher(publisher string) error {
	if publisher == "" {
		return errs.NewValueIsRequiredError("publisher")
	}

	c.publisher = publisher
	return nil
}

func (c *PublishVersionCommand) setFeeSchedule(feeSchedule map[string]kernel.Coin) error {
	if feeSchedule == nil {
		return nil
	}

	copied := make(map[string]kernel.Coin, len(feeSchedule))
	for action, fee := range feeSchedule {
		if action == "" {
			return errs.NewValueIsRequiredError("action")
		}
		if err := fee.Validate(); err != nil {
			return err
		}
		copied[action] = fee
	}

	c.feeSchedule = copied
	return nil
}
