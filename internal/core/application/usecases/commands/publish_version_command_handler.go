package commands

import (
	"context"
	"errors"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"
)

// PublishVersionCommandHandler handles publication into the code catalog.
// A (type, version) pairing publishes at most once: re-publishing fails
// with DuplicateVersionError instead of overwriting.
type PublishVersionCommandHandler struct {
	uowFactory RegistryUoWFactory
}

// NewPublishVersionCommandHandler creates a handler for catalog
// publication.
func NewPublishVersionCommandHandler(uowFactory RegistryUoWFactory) PublishVersionCommandHandler {
	return PublishVersionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the publication command.
func (h *PublishVersionCommandHandler) Handle(ctx context.Context, cmd PublishVersionCommand) error {
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

	if _, err := registryRepo.GetByTypeAndVersion(ctx, cmd.ModuleType(), cmd.Version()); err == nil {
		return errs.NewDuplicateVersionError(cmd.ModuleType(), cmd.Version().String())
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	entry, err := registry.NewEntry(
		kernel.NewUUID(),
		cmd.ModuleType(),
		cmd.Version(),
		cmd.CodeID(),
		cmd.Publisher(),
	)
	if err != nil {
		return err
	}

	for action, fee := range cmd.FeeSchedule() {
		if err := entry.SetActionFee(action, fee); err != nil {
			return err
		}
	}

	if err := registryRepo.Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
