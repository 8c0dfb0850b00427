package postgres_test

import (
	"context"
	"testing"
	"time"

	"aos/internal/adapters/out/postgres"
	"aos/internal/adapters/out/postgres/accountrepo"
	"aos/internal/adapters/out/postgres/deliveryrepo"
	"aos/internal/adapters/out/postgres/keyaddressrepo"
	"aos/internal/adapters/out/postgres/noderepo"
	"aos/internal/adapters/out/postgres/outboxrepo"
	"aos/internal/adapters/out/postgres/permissionrepo"
	"aos/internal/adapters/out/postgres/registryrepo"
	"aos/internal/core/application/usecases/commands"
	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/economics"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"
	"aos/internal/core/domain/model/permission"
	"aos/internal/core/domain/model/registry"
	"aos/internal/core/ports"
	"aos/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work and the
// repositories it hands out against a real PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&noderepo.NodeDTO{},
		&registryrepo.EntryDTO{},
		&permissionrepo.PermissionDTO{},
		&accountrepo.AccountDTO{},
		&keyaddressrepo.KeyAddressDTO{},
		&outboxrepo.OutboxMessageDTO{},
		&outboxrepo.ChannelSequenceDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	for _, table := range []string{
		"deliveries", "nodes", "registry_entries", "permissions",
		"accounts", "key_addresses", "outbox_messages", "channel_sequences",
	} {
		err := suite.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) mustAddress(s string) kernel.Address {
	address, err := kernel.AddressFromString(s)
	suite.Require().NoError(err)
	return address
}

func (suite *UnitOfWorkIntegrationTestSuite) mustCoins(denom string, amount uint64) kernel.Coins {
	coin, err := kernel.NewCoin(denom, amount)
	suite.Require().NoError(err)
	coins, err := kernel.NewCoins(coin)
	suite.Require().NoError(err)
	return coins
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsRemoteSendArtifacts() {
	ctx := context.Background()
	origin := suite.mustAddress("andr1origin")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	sequence, err := uow.ChannelSequences().Next(ctx, "juno")
	suite.Require().NoError(err)
	suite.Equal(uint64(1), sequence)

	err = uow.OutboxRepository().Add(ctx, ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		Channel:   "juno",
		Sequence:  sequence,
		Payload:   []byte("wire"),
		CreatedAt: time.Now(),
	})
	suite.Require().NoError(err)

	now := time.Now()
	record, err := delivery.NewDelivery(
		kernel.NewUUID(), "juno", sequence, origin,
		suite.mustCoins("uandr", 40), now, now.Add(time.Minute),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DeliveryRepository().Add(ctx, record))

	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	loaded, err := check.DeliveryRepository().GetByChannelSequence(ctx, "juno", sequence)
	suite.Require().NoError(err)
	suite.Equal(delivery.AwaitingAck, loaded.Status())
	suite.Equal(uint64(40), loaded.Escrow().AmountOf("uandr"))
	suite.True(loaded.Origin().IsEqual(origin))

	queued, err := check.OutboxRepository().GetUnsent(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(queued, 1)
	suite.Equal([]byte("wire"), queued[0].Payload)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()

	account, err := economics.NewAccount(kernel.NewUUID(), "andr1actor")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.AccountRepository().Add(ctx, account))
	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	_, err = check.AccountRepository().GetByOwner(ctx, "andr1actor")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestChannelSequences_AreMonotonicPerChannel() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	first, err := uow.ChannelSequences().Next(ctx, "juno")
	suite.Require().NoError(err)
	second, err := uow.ChannelSequences().Next(ctx, "juno")
	suite.Require().NoError(err)
	other, err := uow.ChannelSequences().Next(ctx, "osmosis")
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(uint64(1), first)
	suite.Equal(uint64(2), second)
	suite.Equal(uint64(1), other)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConsumeUse_StopsAtZero() {
	ctx := context.Background()

	record, err := permission.NewLimitedUse(kernel.NewUUID(), "andr1actor", "split", 1)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.PermissionRepository().Add(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	repo := permissionrepo.NewGormPermissionRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.ConsumeUse(ctx, record.ID()))

	err = repo.ConsumeUse(ctx, record.ID())
	suite.Require().ErrorIs(err, permission.ErrPermissionExhausted)

	loaded, err := repo.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Zero(loaded.Remaining())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRegistryAdd_RejectsDuplicateVersion() {
	ctx := context.Background()

	version, err := registry.VersionFromString("1.2.0")
	suite.Require().NoError(err)

	first, err := registry.NewEntry(kernel.NewUUID(), "splitter", version, 7, "andr1pub")
	suite.Require().NoError(err)
	second, err := registry.NewEntry(kernel.NewUUID(), "splitter", version, 8, "andr1pub")
	suite.Require().NoError(err)

	repo := registryrepo.NewGormRegistryRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(ctx, first))

	err = repo.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrDuplicateVersion)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNodeAdd_RejectsOccupiedPosition() {
	ctx := context.Background()

	address := suite.mustAddress("andr1home")
	first, err := pathtree.NewAddressNode(kernel.NewUUID(), nil, "home", address)
	suite.Require().NoError(err)
	second, err := pathtree.NewAddressNode(kernel.NewUUID(), nil, "home", address)
	suite.Require().NoError(err)

	repo := noderepo.NewGormNodeRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(ctx, first))

	err = repo.Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrPathExists)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestKeyAddressUpsert_ReplacesBinding() {
	ctx := context.Background()

	repo := keyaddressrepo.NewGormKeyAddressRepository(suite.db)
	suite.Require().NoError(repo.Upsert(ctx, "bridge/juno", suite.mustAddress("andr1old")))
	suite.Require().NoError(repo.Upsert(ctx, "bridge/juno", suite.mustAddress("andr1new")))

	address, err := repo.Get(ctx, "bridge/juno")
	suite.Require().NoError(err)
	suite.Equal("andr1new", address.String())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetOverdueAwaitingAck_SkipsFinalizedAndFuture() {
	ctx := context.Background()
	origin := suite.mustAddress("andr1origin")
	now := time.Now()

	overdue, err := delivery.NewDelivery(
		kernel.NewUUID(), "juno", 1, origin, nil,
		now.Add(-2*time.Minute), now.Add(-time.Minute),
	)
	suite.Require().NoError(err)

	pending, err := delivery.NewDelivery(
		kernel.NewUUID(), "juno", 2, origin, nil,
		now, now.Add(time.Hour),
	)
	suite.Require().NoError(err)

	expired, err := delivery.NewDelivery(
		kernel.NewUUID(), "juno", 3, origin, nil,
		now.Add(-2*time.Minute), now.Add(-time.Minute),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(expired.Timeout(now))

	repo := deliveryrepo.NewGormDeliveryRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(ctx, overdue))
	suite.Require().NoError(repo.Add(ctx, pending))
	suite.Require().NoError(repo.Add(ctx, expired))

	records, err := repo.GetOverdueAwaitingAck(ctx, now)
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(overdue.MessageID(), records[0].MessageID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDuplicateAcknowledgementFinalizesOnce() {
	ctx := context.Background()
	origin := suite.mustAddress("andr1origin")
	now := time.Now()

	record, err := delivery.NewDelivery(
		kernel.NewUUID(), "juno", 1, origin,
		suite.mustCoins("uandr", 40), now, now.Add(time.Minute),
	)
	suite.Require().NoError(err)

	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.DeliveryRepository().Add(ctx, record))
	suite.Require().NoError(seed.Commit(ctx))

	factory := finalizeUoWFactoryFunc(func() commands.FinalizeUoW { return suite.factory.Create() })
	handler := commands.NewAcknowledgeDeliveryCommandHandler(factory)

	cmd, err := commands.NewAcknowledgeDeliveryCommand("juno", 1, true, nil)
	suite.Require().NoError(err)

	suite.Require().NoError(handler.Handle(ctx, cmd))
	suite.Require().NoError(handler.Handle(ctx, cmd))

	check := suite.factory.Create()
	loaded, err := check.DeliveryRepository().GetByChannelSequence(ctx, "juno", 1)
	suite.Require().NoError(err)
	suite.Equal(delivery.Completed, loaded.Status())

	// The escrow releases to the channel's bridge account exactly once.
	account, err := check.AccountRepository().GetByOwner(ctx, "bridge/juno")
	suite.Require().NoError(err)
	suite.Equal(uint64(40), account.BalanceOf("uandr"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryUpdate_SecondFinalizerMatchesNoRows() {
	ctx := context.Background()
	origin := suite.mustAddress("andr1origin")
	now := time.Now()

	record, err := delivery.NewDelivery(
		kernel.NewUUID(), "juno", 1, origin,
		suite.mustCoins("uandr", 40), now.Add(-2*time.Minute), now.Add(-time.Minute),
	)
	suite.Require().NoError(err)

	repo := deliveryrepo.NewGormDeliveryRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(ctx, record))

	ackTx := suite.factory.Create()
	suite.Require().NoError(ackTx.Begin(ctx))
	timeoutTx := suite.factory.Create()
	suite.Require().NoError(timeoutTx.Begin(ctx))

	// Both transactions read the record while it is still AwaitingAck.
	ackRecord, err := ackTx.DeliveryRepository().GetByChannelSequence(ctx, "juno", 1)
	suite.Require().NoError(err)
	timeoutRecord, err := timeoutTx.DeliveryRepository().GetByChannelSequence(ctx, "juno", 1)
	suite.Require().NoError(err)

	suite.Require().NoError(ackRecord.Complete(time.Now()))
	suite.Require().NoError(ackTx.DeliveryRepository().Update(ctx, ackRecord))
	suite.Require().NoError(ackTx.Commit(ctx))

	// The late finalizer's conditional write matches no rows.
	suite.Require().NoError(timeoutRecord.Timeout(time.Now()))
	err = timeoutTx.DeliveryRepository().Update(ctx, timeoutRecord)
	suite.Require().ErrorIs(err, delivery.ErrDeliveryAlreadyFinalized)
	suite.Require().NoError(timeoutTx.Rollback(ctx))

	loaded, err := repo.GetByChannelSequence(ctx, "juno", 1)
	suite.Require().NoError(err)
	suite.Equal(delivery.Completed, loaded.Status())
}

// finalizeUoWFactoryFunc adapts the suite's factory to the narrow factory
// interface the finalization handlers take.
type finalizeUoWFactoryFunc func() commands.FinalizeUoW

func (f finalizeUoWFactoryFunc) Create() commands.FinalizeUoW { return f() }

// noopTracker satisfies the repositories' tracker dependency where the
// test drives a repository outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
