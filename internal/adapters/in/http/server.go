// Package http exposes the kernel's operations over echo: the send
// entrypoint, administrative mutations, the transport hooks invoked by
// the host, and the read queries.
package http

import (
	"net/http"
	"strconv"
	"time"

	"aos/internal/core/application/usecases/commands"
	"aos/internal/core/application/usecases/queries"
	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/permission"
	"aos/internal/core/domain/model/registry"
	"aos/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	sendMessageHandler         commands.SendMessageCommandHandler
	upsertKeyAddressHandler    commands.UpsertKeyAddressCommandHandler
	acknowledgeDeliveryHandler commands.AcknowledgeDeliveryCommandHandler
	timeoutDeliveryHandler     commands.TimeoutDeliveryCommandHandler
	retryDeliveryHandler       commands.RetryDeliveryCommandHandler
	registerPathHandler        commands.RegisterPathCommandHandler
	publishVersionHandler      commands.PublishVersionCommandHandler
	setActionFeeHandler        commands.SetActionFeeCommandHandler
	updatePublisherHandler     commands.UpdatePublisherCommandHandler
	chargeActionFeeHandler     commands.ChargeActionFeeCommandHandler
	grantPermissionHandler     commands.GrantPermissionCommandHandler
	revokePermissionHandler    commands.RevokePermissionCommandHandler
	consumePermissionHandler   commands.ConsumePermissionCommandHandler

	// Query handlers
	getKeyAddressHandler        queries.GetKeyAddressQueryHandler
	verifyAddressHandler        queries.VerifyAddressQueryHandler
	resolveVersionHandler       queries.ResolveVersionQueryHandler
	getPendingDeliveriesHandler queries.GetPendingDeliveriesQueryHandler

	// codec decodes inbound wire packets on the packet-received hook.
	codec ports.EnvelopeCodec
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	sendMessageHandler commands.SendMessageCommandHandler,
	upsertKeyAddressHandler commands.UpsertKeyAddressCommandHandler,
	acknowledgeDeliveryHandler commands.AcknowledgeDeliveryCommandHandler,
	timeoutDeliveryHandler commands.TimeoutDeliveryCommandHandler,
	retryDeliveryHandler commands.RetryDeliveryCommandHandler,
	registerPathHandler commands.RegisterPathCommandHandler,
	publishVersionHandler commands.PublishVersionCommandHandler,
	setActionFeeHandler commands.SetActionFeeCommandHandler,
	updatePublisherHandler commands.UpdatePublisherCommandHandler,
	chargeActionFeeHandler commands.ChargeActionFeeCommandHandler,
	grantPermissionHandler commands.GrantPermissionCommandHandler,
	revokePermissionHandler commands.RevokePermissionCommandHandler,
	consumePermissionHandler commands.ConsumePermissionCommandHandler,
	getKeyAddressHandler queries.GetKeyAddressQueryHandler,
	verifyAddressHandler queries.VerifyAddressQueryHandler,
	resolveVersionHandler queries.ResolveVersionQueryHandler,
	getPendingDeliveriesHandler queries.GetPendingDeliveriesQueryHandler,
	codec ports.EnvelopeCodec,
) *Server {
	return &Server{
		sendMessageHandler:          sendMessageHandler,
		upsertKeyAddressHandler:     upsertKeyAddressHandler,
		acknowledgeDeliveryHandler:  acknowledgeDeliveryHandler,
		timeoutDeliveryHandler:      timeoutDeliveryHandler,
		retryDeliveryHandler:        retryDeliveryHandler,
		registerPathHandler:         registerPathHandler,
		publishVersionHandler:       publishVersionHandler,
		setActionFeeHandler:         setActionFeeHandler,
		updatePublisherHandler:      updatePublisherHandler,
		chargeActionFeeHandler:      chargeActionFeeHandler,
		grantPermissionHandler:      grantPermissionHandler,
		revokePermissionHandler:     revokePermissionHandler,
		consumePermissionHandler:    consumePermissionHandler,
		getKeyAddressHandler:        getKeyAddressHandler,
		verifyAddressHandler:        verifyAddressHandler,
		resolveVersionHandler:       resolveVersionHandler,
		getPendingDeliveriesHandler: getPendingDeliveriesHandler,
		codec:                       codec,
	}
}

// RegisterRoutes binds every endpoint onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/messages", s.SendMessage)
	api.PUT("/keys/:key", s.UpsertKeyAddress)
	api.GET("/keys/:key", s.GetKeyAddress)

	api.POST("/paths", s.RegisterPath)
	api.GET("/addresses/verify", s.VerifyAddress)

	api.POST("/registry/entries", s.PublishVersion)
	api.PUT("/registry/entries/:type/:version/fees/:action", s.SetActionFee)
	api.PUT("/registry/entries/:type/:version/publisher", s.UpdatePublisher)
	api.GET("/registry/entries/:type/resolve", s.ResolveVersion)
	api.POST("/fees/charge", s.ChargeActionFee)

	api.POST("/permissions", s.GrantPermission)
	api.DELETE("/permissions", s.RevokePermission)
	api.POST("/permissions/consume", s.ConsumePermission)

	api.GET("/deliveries", s.GetPendingDeliveries)
	api.POST("/deliveries/:channel/:sequence/retry", s.RetryDelivery)

	hooks := api.Group("/hooks")
	hooks.POST("/packet-received", s.PacketReceived)
	hooks.POST("/packet-acknowledged", s.PacketAcknowledged)
	hooks.POST("/packet-timed-out", s.PacketTimedOut)

	e.GET("/health", s.Health)
}

// SendMessage handles POST /api/v1/messages - first-hop send from a local module.
func (s *Server) SendMessage(ctx echo.Context) error {
	var req SendMessageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	origin, err := kernel.AddressFromString(req.Origin)
	if err != nil {
		return writeError(ctx, err)
	}

	destination, err := kernel.PathFromString(req.Destination)
	if err != nil {
		return writeError(ctx, err)
	}

	funds, err := coinsFromMap(req.Funds)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSendMessageCommand(origin, destination, req.Payload, funds)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.sendMessageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SendMessageResponse{
		MessageID: result.MessageID,
		Local:     result.Local,
	})
}

// UpsertKeyAddress handles PUT /api/v1/keys/:key - admin-only key table mutation.
func (s *Server) UpsertKeyAddress(ctx echo.Context) error {
	var req UpsertKeyAddressRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := kernel.AddressFromString(req.Actor)
	if err != nil {
		return writeError(ctx, err)
	}

	address, err := kernel.AddressFromString(req.Address)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpsertKeyAddressCommand(actor, ctx.Param("key"), address)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.upsertKeyAddressHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetKeyAddress handles GET /api/v1/keys/:key.
func (s *Server) GetKeyAddress(ctx echo.Context) error {
	query, err := queries.NewGetKeyAddressQuery(ctx.Param("key"))
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.getKeyAddressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, KeyAddressResponse{
		Key:     resp.Key,
		Address: resp.Address.String(),
	})
}

// RegisterPath handles POST /api/v1/paths - adds a resolver tree node or alias.
func (s *Server) RegisterPath(ctx echo.Context) error {
	var req RegisterPathRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var parent *kernel.Path
	if req.Parent != "" {
		p, err := kernel.PathFromString(req.Parent)
		if err != nil {
			return writeError(ctx, err)
		}
		parent = &p
	}

	var (
		cmd commands.RegisterPathCommand
		err error
	)

	switch {
	case req.Address != "" && req.AliasTarget != "":
		return badRequest(ctx, "address and alias_target are mutually exclusive")
	case req.AliasTarget != "":
		var target kernel.Path
		target, err = kernel.PathFromString(req.AliasTarget)
		if err != nil {
			return writeError(ctx, err)
		}
		cmd, err = commands.NewRegisterAliasCommand(parent, req.Name, target)
	default:
		var address kernel.Address
		address, err = kernel.AddressFromString(req.Address)
		if err != nil {
			return writeError(ctx, err)
		}
		cmd, err = commands.NewRegisterPathCommand(parent, req.Name, address)
	}
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.registerPathHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// VerifyAddress handles GET /api/v1/addresses/verify?path=... .
func (s *Server) VerifyAddress(ctx echo.Context) error {
	path, err := kernel.PathFromString(ctx.QueryParam("path"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewVerifyAddressQuery(path)
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.verifyAddressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := VerifyAddressResponse{Exists: resp.Exists}
	if resp.Exists {
		response.Address = resp.Address.String()
	}

	return ctx.JSON(http.StatusOK, response)
}

// PublishVersion handles POST /api/v1/registry/entries.
func (s *Server) PublishVersion(ctx echo.Context) error {
	var req PublishVersionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	version, err := registry.VersionFromString(req.Version)
	if err != nil {
		return writeError(ctx, err)
	}

	fees := make(map[string]kernel.Coin, len(req.ActionFees))
	for action, fee := range req.ActionFees {
		coin, coinErr := kernel.NewCoin(fee.Denom, fee.Amount)
		if coinErr != nil {
			return writeError(ctx, coinErr)
		}
		fees[action] = coin
	}

	cmd, err := commands.NewPublishVersionCommand(req.ModuleType, version, req.CodeID, req.Publisher, fees)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.publishVersionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// SetActionFee handles PUT /api/v1/registry/entries/:type/:version/fees/:action.
// A body without a fee clears the action from the schedule.
func (s *Server) SetActionFee(ctx echo.Context) error {
	var req SetActionFeeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	version, err := registry.VersionFromString(ctx.Param("version"))
	if err != nil {
		return writeError(ctx, err)
	}

	var cmd commands.SetActionFeeCommand
	if req.Fee != nil {
		fee, coinErr := kernel.NewCoin(req.Fee.Denom, req.Fee.Amount)
		if coinErr != nil {
			return writeError(ctx, coinErr)
		}
		cmd, err = commands.NewSetActionFeeCommand(ctx.Param("type"), version, ctx.Param("action"), fee)
	} else {
		cmd, err = commands.NewRemoveActionFeeCommand(ctx.Param("type"), version, ctx.Param("action"))
	}
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.setActionFeeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdatePublisher handles PUT /api/v1/registry/entries/:type/:version/publisher.
func (s *Server) UpdatePublisher(ctx echo.Context) error {
	var req UpdatePublisherRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	version, err := registry.VersionFromString(ctx.Param("version"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdatePublisherCommand(ctx.Param("type"), version, req.Publisher)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.updatePublisherHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveVersion handles GET /api/v1/registry/entries/:type/resolve?constraint=... .
func (s *Server) ResolveVersion(ctx echo.Context) error {
	query, err := queries.NewResolveVersionQuery(ctx.Param("type"), ctx.QueryParam("constraint"))
	if err != nil {
		return writeError(ctx, err)
	}

	resp, err := s.resolveVersionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ResolveVersionResponse{
		ModuleType: resp.ModuleType,
		Version:    resp.Version,
		CodeID:     resp.CodeID,
	})
}

// ChargeActionFee handles POST /api/v1/fees/charge.
func (s *Server) ChargeActionFee(ctx echo.Context) error {
	var req ChargeActionFeeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChargeActionFeeCommand(req.Payer, req.ModuleType, req.Action)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.chargeActionFeeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GrantPermission handles POST /api/v1/permissions.
func (s *Server) GrantPermission(ctx echo.Context) error {
	var req GrantPermissionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := permission.KindFromString(req.Kind)
	if err != nil {
		return writeError(ctx, err)
	}

	var deadline time.Time
	if req.Deadline != "" {
		deadline, err = time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			return badRequest(ctx, "deadline must be RFC 3339")
		}
	}

	cmd, err := commands.NewGrantPermissionCommand(req.Actor, req.Action, kind, req.Remaining, deadline)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.grantPermissionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RevokePermission handles DELETE /api/v1/permissions.
func (s *Server) RevokePermission(ctx echo.Context) error {
	var req RevokePermissionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRevokePermissionCommand(req.Actor, req.Action)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.revokePermissionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConsumePermission handles POST /api/v1/permissions/consume. A 204 means
// the action is permitted and one use was consumed where applicable.
func (s *Server) ConsumePermission(ctx echo.Context) error {
	var req ConsumePermissionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConsumePermissionCommand(req.Actor, req.Action)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.consumePermissionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingDeliveries handles GET /api/v1/deliveries?status=... .
func (s *Server) GetPendingDeliveries(ctx echo.Context) error {
	status, err := delivery.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetPendingDeliveriesQuery(status)
	if err != nil {
		return writeError(ctx, err)
	}

	records, err := s.getPendingDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]DeliveryResponse, len(records))
	for i, record := range records {
		response[i] = DeliveryResponse{
			MessageID: record.MessageID,
			Channel:   record.Channel,
			Sequence:  record.Sequence,
			Origin:    record.Origin,
			Status:    record.Status,
			CreatedAt: record.CreatedAt.Format(time.RFC3339),
			Deadline:  record.Deadline.Format(time.RFC3339),
		}
		if record.FinalizedAt != nil {
			response[i].FinalizedAt = record.FinalizedAt.Format(time.RFC3339)
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RetryDelivery handles POST /api/v1/deliveries/:channel/:sequence/retry.
func (s *Server) RetryDelivery(ctx echo.Context) error {
	sequence, err := strconv.ParseUint(ctx.Param("sequence"), 10, 64)
	if err != nil {
		return badRequest(ctx, "sequence must be an unsigned integer")
	}

	cmd, err := commands.NewRetryDeliveryCommand(ctx.Param("channel"), sequence)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.retryDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SendMessageResponse{
		MessageID: result.MessageID,
		Local:     result.Local,
	})
}

// PacketReceived handles POST /api/v1/hooks/packet-received. The body is
// the raw wire packet; the decoded envelope is dispatched as a forwarded
// send and the outcome is returned as the acknowledgement result. The
// hook never fails the HTTP exchange for an execution error: the failure
// travels back inside the acknowledgement body.
func (s *Server) PacketReceived(ctx echo.Context) error {
	body, err := readBody(ctx)
	if err != nil {
		return badRequest(ctx, "Unreadable request body")
	}

	env, err := s.codec.Decode(body)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewForwardedSendMessageCommand(
		env.Origin(),
		env.OriginChain(),
		env.Destination(),
		env.Payload(),
		env.Funds(),
		env.Hops(),
	)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.sendMessageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusOK, PacketReceivedResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, PacketReceivedResponse{
		Success:   true,
		MessageID: result.MessageID,
	})
}

// PacketAcknowledged handles POST /api/v1/hooks/packet-acknowledged.
// Safe to invoke repeatedly for the same packet.
func (s *Server) PacketAcknowledged(ctx echo.Context) error {
	var req PacketAcknowledgedRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAcknowledgeDeliveryCommand(req.Channel, req.Sequence, req.Success, req.ReplyPayload)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.acknowledgeDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PacketTimedOut handles POST /api/v1/hooks/packet-timed-out.
// Safe to invoke repeatedly for the same packet.
func (s *Server) PacketTimedOut(ctx echo.Context) error {
	var req PacketTimedOutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTimeoutDeliveryCommand(req.Channel, req.Sequence)
	if err != nil {
		return writeError(ctx, err)
	}

	if handleErr := s.timeoutDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
