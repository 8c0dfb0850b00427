package commands

import (
	"context"
	"time"

	"aos/internal/core/domain/model/permission"
	"aos/internal/pkg/errs"
)

// ConsumePermissionCommandHandler handles check-and-consume for guarded
// actions.
//
// Evaluation is blacklist-first and fails closed. The limited-use
// decrement is a single conditional update inside the same transaction
// as the guarded action, so two concurrent calls can never both consume
// the last unit, and a blacklist written in the same transaction
// suppresses an already-open grant.
type ConsumePermissionCommandHandler struct {
	uowFactory PermissionUoWFactory
	now        func() time.Time
}

// NewConsumePermissionCommandHandler creates a handler for
// check-and-consume.
func NewConsumePermissionCommandHandler(uowFactory PermissionUoWFactory) ConsumePermissionCommandHandler {
	return ConsumePermissionCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the check-and-consume command.
// Returns nil when the action may proceed; otherwise a
// PermissionDeniedError carrying the deny reason.
func (h *ConsumePermissionCommandHandler) Handle(ctx context.Context, cmd ConsumePermissionCommand) error {
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

	permissionRepo := uow.PermissionRepository()

	records, err := permissionRepo.GetByActorAction(ctx, cmd.Actor(), cmd.Action())
	if err != nil {
		return err
	}

	decision := permission.Check(records, h.now())
	if !decision.Allowed {
		return errs.NewPermissionDeniedError(cmd.Actor(), cmd.Action(), decision.Reason)
	}

	if decision.ToConsume != nil {
		// The conditional update fails if another transaction drained
		// the counter after our read.
		if err := permissionRepo.ConsumeUse(ctx, decision.ToConsume.ID()); err != nil {
			return errs.NewPermissionDeniedError(cmd.Actor(), cmd.Action(), errs.DenyExhausted)
		}
	}

	return uow.Commit(ctx)
}
