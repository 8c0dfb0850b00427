package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aos/internal/core/application/usecases/commands"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

func mustAddr(t *testing.T, s string) kernel.Address {
	t.Helper()
	a, err := kernel.AddressFromString(s)
	require.NoError(t, err)
	return a
}

func TestUpsertKeyAddressCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	admin := mustAddr(t, "andr1admin")
	cmd, err := commands.NewUpsertKeyAddressCommand(admin, "resolver", mustAddr(t, "andr1resolver"))
	require.NoError(t, err)

	repo := new(MockKeyAddressRepository)
	uow := new(mockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("KeyAddressRepository").Return(repo).Once(),
		repo.On("Upsert", mock.Anything, "resolver", mustAddr(t, "andr1resolver")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(mockKeyAddressUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpsertKeyAddressCommandHandler(factory, admin)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpsertKeyAddressCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewUpsertKeyAddressCommand(mustAddr(t, "andr1intruder"), "resolver", mustAddr(t, "andr1resolver"))
	require.NoError(t, err)

	factory := new(mockKeyAddressUoWFactory)

	h := commands.NewUpsertKeyAddressCommandHandler(factory, mustAddr(t, "andr1admin"))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	factory.AssertNotCalled(t, "Create")
}

func TestUpsertKeyAddressCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(mockKeyAddressUoWFactory)

	h := commands.NewUpsertKeyAddressCommandHandler(factory, mustAddr(t, "andr1admin"))
	require.Error(t, h.Handle(ctx, commands.UpsertKeyAddressCommand{}))
}
