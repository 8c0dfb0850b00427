package cmd

import (
	"fmt"
	"strconv"
	"time"

	"aos/internal/adapters/out/bridge"
	"aos/internal/adapters/out/local"
	"aos/internal/adapters/out/postgres"
	"aos/internal/adapters/out/postgres/outboxrepo"
	"aos/internal/core/application/usecases/commands"
	"aos/internal/core/application/usecases/queries"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	dispatcher      *local.Dispatcher
	codec           bridge.JSONCodec
	transport       *bridge.HTTPTransportClient
	hostChain       string
	admin           kernel.Address
	deliveryTimeout time.Duration
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	admin, err := kernel.AddressFromString(config.AdminAddress)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid ADMIN_ADDRESS: %w", err)
	}

	transport, err := bridge.NewHTTPTransportClient(config.BridgeURL, nil)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid BRIDGE_URL: %w", err)
	}

	timeoutSeconds, err := strconv.Atoi(config.DeliveryTimeoutSeconds)
	if err != nil || timeoutSeconds <= 0 {
		return CompositionRoot{}, fmt.Errorf("invalid DELIVERY_TIMEOUT_SECONDS: %q", config.DeliveryTimeoutSeconds)
	}

	return CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher:      local.NewDispatcher(),
		codec:           bridge.NewJSONCodec(),
		transport:       transport,
		hostChain:       config.HostChain,
		admin:           admin,
		deliveryTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// LocalDispatcher exposes the dispatcher so deployments can register
// in-process module handlers before the server starts.
func (c *CompositionRoot) LocalDispatcher() *local.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) EnvelopeCodec() ports.EnvelopeCodec {
	return c.codec
}

func (c *CompositionRoot) TransportClient() ports.TransportClient {
	return c.transport
}

// OutboxRepository returns a repository bound to the root connection,
// outside any unit of work. The relay job reads and marks rows in
// autocommit mode.
func (c *CompositionRoot) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(c.gormDB)
}

func (c *CompositionRoot) CreateSendMessageCommandHandler() (commands.SendMessageCommandHandler, error) {
	var f commands.SendUoWFactory = FuncSendUoWFactory(func() commands.SendUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSendMessageCommandHandler(f, c.dispatcher, c.codec, c.hostChain, c.deliveryTimeout)
}

func (c *CompositionRoot) CreateUpsertKeyAddressCommandHandler() commands.UpsertKeyAddressCommandHandler {
	var f commands.KeyAddressUoWFactory = FuncKeyAddressUoWFactory(func() commands.KeyAddressUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpsertKeyAddressCommandHandler(f, c.admin)
}

func (c *CompositionRoot) CreateAcknowledgeDeliveryCommandHandler() commands.AcknowledgeDeliveryCommandHandler {
	return commands.NewAcknowledgeDeliveryCommandHandler(c.finalizeUoWFactory())
}

func (c *CompositionRoot) CreateTimeoutDeliveryCommandHandler() commands.TimeoutDeliveryCommandHandler {
	return commands.NewTimeoutDeliveryCommandHandler(c.finalizeUoWFactory())
}

func (c *CompositionRoot) CreateRetryDeliveryCommandHandler() (commands.RetryDeliveryCommandHandler, error) {
	var f commands.RetryUoWFactory = FuncRetryUoWFactory(func() commands.RetryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRetryDeliveryCommandHandler(f, c.deliveryTimeout)
}

func (c *CompositionRoot) CreateRegisterPathCommandHandler() commands.RegisterPathCommandHandler {
	var f commands.NodeUoWFactory = FuncNodeUoWFactory(func() commands.NodeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterPathCommandHandler(f)
}

func (c *CompositionRoot) CreatePublishVersionCommandHandler() commands.PublishVersionCommandHandler {
	return commands.NewPublishVersionCommandHandler(c.registryUoWFactory())
}

func (c *CompositionRoot) CreateSetActionFeeCommandHandler() commands.SetActionFeeCommandHandler {
	return commands.NewSetActionFeeCommandHandler(c.registryUoWFactory())
}

func (c *CompositionRoot) CreateUpdatePublisherCommandHandler() commands.UpdatePublisherCommandHandler {
	return commands.NewUpdatePublisherCommandHandler(c.registryUoWFactory())
}

func (c *CompositionRoot) CreateChargeActionFeeCommandHandler() commands.ChargeActionFeeCommandHandler {
	var f commands.FeeUoWFactory = FuncFeeUoWFactory(func() commands.FeeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChargeActionFeeCommandHandler(f)
}

func (c *CompositionRoot) CreateGrantPermissionCommandHandler() commands.GrantPermissionCommandHandler {
	return commands.NewGrantPermissionCommandHandler(c.permissionUoWFactory())
}

func (c *CompositionRoot) CreateRevokePermissionCommandHandler() commands.RevokePermissionCommandHandler {
	return commands.NewRevokePermissionCommandHandler(c.permissionUoWFactory())
}

func (c *CompositionRoot) CreateConsumePermissionCommandHandler() commands.ConsumePermissionCommandHandler {
	return commands.NewConsumePermissionCommandHandler(c.permissionUoWFactory())
}

func (c *CompositionRoot) CreateGetKeyAddressQueryHandler() queries.GetKeyAddressQueryHandler {
	return queries.NewGetKeyAddressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateVerifyAddressQueryHandler() queries.VerifyAddressQueryHandler {
	return queries.NewVerifyAddressQueryHandler(c.gormDB, c.hostChain)
}

func (c *CompositionRoot) CreateResolveVersionQueryHandler() queries.ResolveVersionQueryHandler {
	return queries.NewResolveVersionQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingDeliveriesQueryHandler() queries.GetPendingDeliveriesQueryHandler {
	return queries.NewGetPendingDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) FinalizeUoWFactory() commands.FinalizeUoWFactory {
	return c.finalizeUoWFactory()
}

func (c *CompositionRoot) finalizeUoWFactory() commands.FinalizeUoWFactory {
	return FuncFinalizeUoWFactory(func() commands.FinalizeUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) registryUoWFactory() commands.RegistryUoWFactory {
	return FuncRegistryUoWFactory(func() commands.RegistryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) permissionUoWFactory() commands.PermissionUoWFactory {
	return FuncPermissionUoWFactory(func() commands.PermissionUoW {
		return c.uowFactory.Create()
	})
}

type FuncSendUoWFactory func() commands.SendUoW

func (f FuncSendUoWFactory) Create() commands.SendUoW {
	return f()
}

type FuncFinalizeUoWFactory func() commands.FinalizeUoW

func (f FuncFinalizeUoWFactory) Create() commands.FinalizeUoW {
	return f()
}

type FuncRetryUoWFactory func() commands.RetryUoW

func (f FuncRetryUoWFactory) Create() commands.RetryUoW {
	return f()
}

type FuncKeyAddressUoWFactory func() commands.KeyAddressUoW

func (f FuncKeyAddressUoWFactory) Create() commands.KeyAddressUoW {
	return f()
}

type FuncNodeUoWFactory func() commands.NodeUoW

func (f FuncNodeUoWFactory) Create() commands.NodeUoW {
	return f()
}

type FuncRegistryUoWFactory func() commands.RegistryUoW

func (f FuncRegistryUoWFactory) Create() commands.RegistryUoW {
	return f()
}

type FuncPermissionUoWFactory func() commands.PermissionUoW

func (f FuncPermissionUoWFactory) Create() commands.PermissionUoW {
	return f()
}

type FuncFeeUoWFactory func() commands.FeeUoW

func (f FuncFeeUoWFactory) Create() commands.FeeUoW {
	return f()
}
