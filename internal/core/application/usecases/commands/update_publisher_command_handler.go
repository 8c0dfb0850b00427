package commands

import (
	"context"
)

// UpdatePublisherCommandHandler handles fee recipient changes on published
// catalog entries.
type UpdatePublisherCommandHandler struct {
	uowFactory RegistryUoWFactory
}

// NewUpdatePublisherCommandHandler creates a handler for publisher
// changes.
func NewUpdatePublisherCommandHandler(uowFactory RegistryUoWFactory) UpdatePublisherCommandHandler {
	return UpdatePublisherCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the publisher change command.
func (h *UpdatePublisherCommandHandler) Handle(ctx context.Context, cmd UpdatePublisherCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	registryRepo := uow.RegistryRepository()

	entry, err := registryRepo.GetByTypeAndVersion(ctx, cmd.ModuleType(), cmd.Version())
	if err != nil {
		return err
	}

	if err := entry.UpdatePublisher(cmd.Publisher()); err != nil {
		return err
	}

	if err := registryRepo.Update(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
