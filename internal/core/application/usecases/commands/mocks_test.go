package commands_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"aos/internal/core/application/usecases/commands"
	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/economics"
	"aos/internal/core/domain/model/envelope"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"
	"aos/internal/core/domain/model/permission"
	"aos/internal/core/domain/model/registry"
	"aos/internal/core/ports"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}
func (m *MockDeliveryRepository) GetByChannelSequence(ctx context.Context, channel string, sequence uint64) (*delivery.Delivery, error) {
	args := m.Called(ctx, channel, sequence)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}
func (m *MockDeliveryRepository) GetOverdueAwaitingAck(ctx context.Context, now time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockNodeRepository struct{ mock.Mock }

func (m *MockNodeRepository) Add(ctx context.Context, n *pathtree.Node) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNodeRepository) Update(ctx context.Context, n *pathtree.Node) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNodeRepository) Get(ctx context.Context, id kernel.UUID) (*pathtree.Node, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pathtree.Node), args.Error(1)
}
func (m *MockNodeRepository) FindChild(ctx context.Context, parentID *kernel.UUID, name string) (*pathtree.Node, error) {
	args := m.Called(ctx, parentID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pathtree.Node), args.Error(1)
}

type MockRegistryRepository struct{ mock.Mock }

func (m *MockRegistryRepository) Add(ctx context.Context, e *registry.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockRegistryRepository) Update(ctx context.Context, e *registry.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockRegistryRepository) GetByTypeAndVersion(ctx context.Context, moduleType string, version registry.Version) (*registry.Entry, error) {
	args := m.Called(ctx, moduleType, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*registry.Entry), args.Error(1)
}
func (m *MockRegistryRepository) GetAllByType(ctx context.Context, moduleType string) ([]*registry.Entry, error) {
	args := m.Called(ctx, moduleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*registry.Entry), args.Error(1)
}

type MockPermissionRepository struct{ mock.Mock }

func (m *MockPermissionRepository) Add(ctx context.Context, p *permission.Permission) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPermissionRepository) Update(ctx context.Context, p *permission.Permission) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPermissionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPermissionRepository) Get(ctx context.Context, id kernel.UUID) (*permission.Permission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permission.Permission), args.Error(1)
}
func (m *MockPermissionRepository) GetByActorAction(ctx context.Context, actor, action string) ([]*permission.Permission, error) {
	args := m.Called(ctx, actor, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*permission.Permission), args.Error(1)
}
func (m *MockPermissionRepository) ConsumeUse(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *economics.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAccountRepository) Update(ctx context.Context, a *economics.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAccountRepository) GetByOwner(ctx context.Context, owner string) (*economics.Account, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economics.Account), args.Error(1)
}

type MockKeyAddressRepository struct{ mock.Mock }

func (m *MockKeyAddressRepository) Upsert(ctx context.Context, key string, address kernel.Address) error {
	args := m.Called(ctx, key, address)
	return args.Error(0)
}
func (m *MockKeyAddressRepository) Get(ctx context.Context, key string) (kernel.Address, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(kernel.Address), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, msg ports.OutboxMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockOutboxRepository) GetByChannelSequence(ctx context.Context, channel string, sequence uint64) (ports.OutboxMessage, error) {
	args := m.Called(ctx, channel, sequence)
	return args.Get(0).(ports.OutboxMessage), args.Error(1)
}
func (m *MockOutboxRepository) GetUnsent(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}
func (m *MockOutboxRepository) MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockChannelSequences struct{ mock.Mock }

func (m *MockChannelSequences) Next(ctx context.Context, channel string) (uint64, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).(uint64), args.Error(1)
}

type MockLocalDispatcher struct{ mock.Mock }

func (m *MockLocalDispatcher) Dispatch(ctx context.Context, target kernel.Address, env *envelope.Envelope) error {
	args := m.Called(ctx, target, env)
	return args.Error(0)
}

type MockEnvelopeCodec struct{ mock.Mock }

func (m *MockEnvelopeCodec) Encode(env *envelope.Envelope) ([]byte, error) {
	args := m.Called(env)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockEnvelopeCodec) Decode(data []byte) (*envelope.Envelope, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelope.Envelope), args.Error(1)
}

// mockUoW covers every narrowed unit of work interface the handlers
// declare; each test wires only the accessors its handler touches.
type mockUoW struct{ mock.Mock }

func (m *mockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *mockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}
func (m *mockUoW) NodeRepository() ports.NodeRepository {
	args := m.Called()
	return args.Get(0).(ports.NodeRepository)
}
func (m *mockUoW) RegistryRepository() ports.RegistryRepository {
	args := m.Called()
	return args.Get(0).(ports.RegistryRepository)
}
func (m *mockUoW) PermissionRepository() ports.PermissionRepository {
	args := m.Called()
	return args.Get(0).(ports.PermissionRepository)
}
func (m *mockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}
func (m *mockUoW) KeyAddressRepository() ports.KeyAddressRepository {
	args := m.Called()
	return args.Get(0).(ports.KeyAddressRepository)
}
func (m *mockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}
func (m *mockUoW) ChannelSequences() ports.ChannelSequences {
	args := m.Called()
	return args.Get(0).(ports.ChannelSequences)
}

type mockSendUoWFactory struct{ mock.Mock }

func (m *mockSendUoWFactory) Create() commands.SendUoW {
	args := m.Called()
	return args.Get(0).(commands.SendUoW)
}

type mockFinalizeUoWFactory struct{ mock.Mock }

func (m *mockFinalizeUoWFactory) Create() commands.FinalizeUoW {
	args := m.Called()
	return args.Get(0).(commands.FinalizeUoW)
}

type mockRetryUoWFactory struct{ mock.Mock }

func (m *mockRetryUoWFactory) Create() commands.RetryUoW {
	args := m.Called()
	return args.Get(0).(commands.RetryUoW)
}

type mockKeyAddressUoWFactory struct{ mock.Mock }

func (m *mockKeyAddressUoWFactory) Create() commands.KeyAddressUoW {
	args := m.Called()
	return args.Get(0).(commands.KeyAddressUoW)
}

type mockNodeUoWFactory struct{ mock.Mock }

func (m *mockNodeUoWFactory) Create() commands.NodeUoW {
	args := m.Called()
	return args.Get(0).(commands.NodeUoW)
}

type mockRegistryUoWFactory struct{ mock.Mock }

func (m *mockRegistryUoWFactory) Create() commands.RegistryUoW {
	args := m.Called()
	return args.Get(0).(commands.RegistryUoW)
}

type mockPermissionUoWFactory struct{ mock.Mock }

func (m *mockPermissionUoWFactory) Create() commands.PermissionUoW {
	args := m.Called()
	return args.Get(0).(commands.PermissionUoW)
}

type mockFeeUoWFactory struct{ mock.Mock }

func (m *mockFeeUoWFactory) Create() commands.FeeUoW {
	args := m.Called()
	return args.Get(0).(commands.FeeUoW)
}
