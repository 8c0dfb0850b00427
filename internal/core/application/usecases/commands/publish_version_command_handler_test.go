package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aos/internal/core/application/usecases/commands"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"
)

func mustVer(t *testing.T, s string) registry.Version {
	t.Helper()
	v, err := registry.VersionFromString(s)
	require.NoError(t, err)
	return v
}

func TestPublishVersionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	version := mustVer(t, "1.2.0")
	fee, err := kernel.NewCoin("uandr", 100)
	require.NoError(t, err)

	cmd, err := commands.NewPublishVersionCommand("splitter", version, 7, "pub-1",
		map[string]kernel.Coin{"transfer": fee})
	require.NoError(t, err)

	repo := new(MockRegistryRepository)
	uow := new(mockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RegistryRepository").Return(repo).Once(),
		repo.On("GetByTypeAndVersion", mock.Anything, "splitter", version).
			Return(nil, errs.NewObjectNotFoundError("entry", "splitter@1.2.0")).Once(),
		repo.On("Add", mock.Anything, mock.MatchedBy(func(e *registry.Entry) bool {
			got, ok := e.ActionFee("transfer")
			return e.ModuleType() == "splitter" && e.CodeID() == 7 && ok && got.Amount() == 100
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(mockRegistryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPublishVersionCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertExpectations(t)
}

func TestPublishVersionCommandHandler_Handle_DuplicateVersion(t *testing.T) {
	ctx := t.Context()
	version := mustVer(t, "1.2.0")

	cmd, err := commands.NewPublishVersionCommand("splitter", version, 9, "pub-2", nil)
	require.NoError(t, err)

	existing, err := registry.NewEntry(kernel.NewUUID(), "splitter", version, 7, "pub-1")
	require.NoError(t, err)

	repo := new(MockRegistryRepository)
	uow := new(mockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RegistryRepository").Return(repo).Once(),
		repo.On("GetByTypeAndVersion", mock.Anything, "splitter", version).Return(existing, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(mockRegistryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPublishVersionCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrDuplicateVersion)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
