package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aos/internal/core/application/usecases/commands"
	"aos/internal/core/domain/model/economics"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"
)

func feeEntry(t *testing.T, version string, publisher string, fees map[string]kernel.Coin) *registry.Entry {
	t.Helper()
	entry, err := registry.RestoreEntry(kernel.NewUUID(), "splitter", mustVer(t, version), 42, publisher, fees)
	require.NoError(t, err)
	return entry
}

func mustCoin(t *testing.T, denom string, amount uint64) kernel.Coin {
	t.Helper()
	coin, err := kernel.NewCoin(denom, amount)
	require.NoError(t, err)
	return coin
}

func TestChargeActionFeeCommandHandler_Handle_PaysPublisher(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewChargeActionFeeCommand("andr1payer", "splitter", "split")
	require.NoError(t, err)

	// The 2.0.0-rc.1 entry is the greatest publication and carries the
	// authoritative fee schedule.
	registryRepo := new(MockRegistryRepository)
	registryRepo.On("GetAllByType", mock.Anything, "splitter").Return([]*registry.Entry{
		feeEntry(t, "1.4.0", "andr1old", map[string]kernel.Coin{"split": mustCoin(t, "uandr", 99)}),
		feeEntry(t, "2.0.0-rc.1", "andr1pub", map[string]kernel.Coin{"split": mustCoin(t, "uandr", 25)}),
	}, nil).Once()

	payer := fundedAccount(t, "andr1payer", "uandr", 30)
	accountRepo := new(MockAccountRepository)
	accountRepo.On("GetByOwner", mock.Anything, "andr1payer").Return(payer, nil).Once()
	accountRepo.On("Update", mock.Anything, payer).Return(nil).Once()
	accountRepo.On("GetByOwner", mock.Anything, "andr1pub").
		Return(nil, errs.NewObjectNotFoundError("account", "andr1pub")).Once()
	accountRepo.On("Add", mock.Anything, mock.MatchedBy(func(a *economics.Account) bool {
		return a.Owner() == "andr1pub" && a.BalanceOf("uandr") == 25
	})).Return(nil).Once()

	uow := new(mockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo).Once()
	uow.On("AccountRepository").Return(accountRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(mockFeeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChargeActionFeeCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, uint64(5), payer.BalanceOf("uandr"))
	accountRepo.AssertExpectations(t)
}

func TestChargeActionFeeCommandHandler_Handle_NoFeeConfigured(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewChargeActionFeeCommand("andr1payer", "splitter", "reset")
	require.NoError(t, err)

	registryRepo := new(MockRegistryRepository)
	registryRepo.On("GetAllByType", mock.Anything, "splitter").Return([]*registry.Entry{
		feeEntry(t, "1.4.0", "andr1pub", map[string]kernel.Coin{"split": mustCoin(t, "uandr", 25)}),
	}, nil).Once()

	accountRepo := new(MockAccountRepository)

	uow := new(mockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(mockFeeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChargeActionFeeCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	accountRepo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything)
}

func TestChargeActionFeeCommandHandler_Handle_UnknownType(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewChargeActionFeeCommand("andr1payer", "mystery", "split")
	require.NoError(t, err)

	registryRepo := new(MockRegistryRepository)
	registryRepo.On("GetAllByType", mock.Anything, "mystery").Return([]*registry.Entry{}, nil).Once()

	uow := new(mockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(mockFeeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChargeActionFeeCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChargeActionFeeCommandHandler_Handle_PayerCannotAfford(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewChargeActionFeeCommand("andr1payer", "splitter", "split")
	require.NoError(t, err)

	registryRepo := new(MockRegistryRepository)
	registryRepo.On("GetAllByType", mock.Anything, "splitter").Return([]*registry.Entry{
		feeEntry(t, "1.4.0", "andr1pub", map[string]kernel.Coin{"split": mustCoin(t, "uandr", 25)}),
	}, nil).Once()

	payer := fundedAccount(t, "andr1payer", "uandr", 10)
	accountRepo := new(MockAccountRepository)
	accountRepo.On("GetByOwner", mock.Anything, "andr1payer").Return(payer, nil).Once()

	uow := new(mockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo).Once()
	uow.On("AccountRepository").Return(accountRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(mockFeeUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChargeActionFeeCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInsufficientFunds)

	assert.Equal(t, uint64(10), payer.BalanceOf("uandr"))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
