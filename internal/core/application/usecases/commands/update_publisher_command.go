package commands

import (
	"errors"

	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

var ErrUpdatePublisherCommandIsNotConstructed = errors.New(
	"UpdatePublisherCommand must be created via NewUpdatePublisherCommand constructor",
)

// UpdatePublisherCommand represents a request to change the fee recipient
// of an already published (type, version) catalog entry.
type UpdatePublisherCommand struct { //nolint:recvcheck //using for validation
	moduleType string
	version    registry.Version
	publisher  string

	guard guard.ConstructorGuard
}

// NewUpdatePublisherCommand creates a command changing the fee recipient.
func NewUpdatePublisherCommand(moduleType string, version registry.Version, publisher string) (UpdatePublisherCommand, error) {
	cmd := UpdatePublisherCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setModuleType(moduleType),
		cmd.setVersion(version),
		cmd.setPublisher(publisher),
	); err != nil {
		return UpdatePublisherCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePublisherCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePublisherCommandIsNotConstructed)
}

// ModuleType returns the catalog entry's module type.
func (c UpdatePublisherCommand) ModuleType() string {
	return c.moduleType
}

// Version returns the catalog entry's version.
func (c UpdatePublisherCommand) Version() registry.Version {
	return c.version
}

// Publisher returns the new fee recipient.
func (c UpdatePublisherCommand) Publisher() string {
	return c.publisher
}

func (c *UpdatePublisherCommand) setModuleType(moduleType string) error {
	if moduleType == "" {
		return errs.NewValueIsRequiredError("moduleType")
	}

	c.moduleType = moduleType
	return nil
}

func (c *UpdatePublisherCommand) setVersion(version registry.Version) error {
	if err := version.Validate(); err != nil {
		return err
	}

	c.version = version
	return nil
}

func (c *UpdatePublisherCommand) setPublisher(publisher string) error {
	if publisher == "" {
		return errs.NewValueIsRequiredError("publisher")
	}

	c.publisher = publisher
	return nil
}
