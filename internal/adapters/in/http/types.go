package http

import (
	"errors"
	"io"
	"net/http"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/permission"
	"aos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SendMessageRequest carries a first-hop send. Payload travels base64
// encoded, funds as a denom to amount map.
type SendMessageRequest struct {
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	Payload     []byte            `json:"payload"`
	Funds       map[string]uint64 `json:"funds,omitempty"`
}

// SendMessageResponse reports where the message went. MessageID is
// "<channel>/<sequence>" for remote sends and a fresh identifier for
// local ones.
type SendMessageResponse struct {
	MessageID string `json:"message_id"`
	Local     bool   `json:"local"`
}

// UpsertKeyAddressRequest binds a well-known key to an address. Actor
// must be the configured administrator.
type UpsertKeyAddressRequest struct {
	Actor   string `json:"actor"`
	Address string `json:"address"`
}

// PacketAcknowledgedRequest is the host-invoked acknowledgement hook body.
type PacketAcknowledgedRequest struct {
	Channel      string `json:"channel"`
	Sequence     uint64 `json:"sequence"`
	Success      bool   `json:"success"`
	ReplyPayload []byte `json:"reply_payload,omitempty"`
}

// PacketTimedOutRequest is the host-invoked timeout hook body.
type PacketTimedOutRequest struct {
	Channel  string `json:"channel"`
	Sequence uint64 `json:"sequence"`
}

// PacketReceivedResponse is the acknowledgement result returned to the
// transport for an inbound packet.
type PacketReceivedResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// RegisterPathRequest creates a resolver tree node. Exactly one of
// Address and AliasTarget must be set.
type RegisterPathRequest struct {
	Parent      string `json:"parent,omitempty"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	AliasTarget string `json:"alias_target,omitempty"`
}

// FeeBody is a single coin in request bodies.
type FeeBody struct {
	Denom  string `json:"denom"`
	Amount uint64 `json:"amount"`
}

// PublishVersionRequest publishes a new catalog entry.
type PublishVersionRequest struct {
	ModuleType string             `json:"module_type"`
	Version    string             `json:"version"`
	CodeID     uint64             `json:"code_id"`
	Publisher  string             `json:"publisher"`
	ActionFees map[string]FeeBody `json:"action_fees,omitempty"`
}

// SetActionFeeRequest updates or clears a single action fee on a
// published version. A nil Fee removes the action from the schedule.
type SetActionFeeRequest struct {
	Fee *FeeBody `json:"fee,omitempty"`
}

// UpdatePublisherRequest changes the payout address of a published version.
type UpdatePublisherRequest struct {
	Publisher string `json:"publisher"`
}

// ChargeActionFeeRequest debits the payer with the configured fee of an
// action and credits the publisher.
type ChargeActionFeeRequest struct {
	Payer      string `json:"payer"`
	ModuleType string `json:"module_type"`
	Action     string `json:"action"`
}

// GrantPermissionRequest adds a policy record for an (actor, action) pair.
type GrantPermissionRequest struct {
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Kind      string `json:"kind"`
	Remaining uint32 `json:"remaining,omitempty"`
	Deadline  string `json:"deadline,omitempty"`
}

// RevokePermissionRequest removes the policy record of an (actor, action) pair.
type RevokePermissionRequest struct {
	Actor  string `json:"actor"`
	Action string `json:"action"`
}

// ConsumePermissionRequest checks whether actor may perform action,
// consuming one use of a limited grant.
type ConsumePermissionRequest struct {
	Actor  string `json:"actor"`
	Action string `json:"action"`
}

// KeyAddressResponse is the read model of a key-address binding.
type KeyAddressResponse struct {
	Key     string `json:"key"`
	Address string `json:"address"`
}

// VerifyAddressResponse reports whether a symbolic path resolves.
type VerifyAddressResponse struct {
	Exists  bool   `json:"exists"`
	Address string `json:"address,omitempty"`
}

// ResolveVersionResponse is the catalog answer for a version constraint.
type ResolveVersionResponse struct {
	ModuleType string `json:"module_type"`
	Version    string `json:"version"`
	CodeID     uint64 `json:"code_id"`
}

// DeliveryResponse is the read model of a delivery record.
type DeliveryResponse struct {
	MessageID   string `json:"message_id"`
	Channel     string `json:"channel"`
	Sequence    uint64 `json:"sequence"`
	Origin      string `json:"origin"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	Deadline    string `json:"deadline"`
	FinalizedAt string `json:"finalized_at,omitempty"`
}

// writeError maps domain failures onto HTTP statuses. Unrecognized
// errors become 500 without leaking internals.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, errs.ErrUnauthorized),
		errors.Is(err, errs.ErrPermissionDenied),
		errors.Is(err, permission.ErrPermissionExhausted):
		code = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, errs.ErrDuplicateVersion),
		errors.Is(err, errs.ErrPathExists),
		errors.Is(err, errs.ErrInsufficientFunds):
		code = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrCycleDetected):
		code = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, errs.ErrInvalidEnvelope),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func readBody(ctx echo.Context) ([]byte, error) {
	defer func() { _ = ctx.Request().Body.Close() }()

	return io.ReadAll(ctx.Request().Body)
}

func coinsFromMap(funds map[string]uint64) (kernel.Coins, error) {
	coins := make([]kernel.Coin, 0, len(funds))
	for denom, amount := range funds {
		coin, err := kernel.NewCoin(denom, amount)
		if err != nil {
			return kernel.Coins{}, err
		}
		coins = append(coins, coin)
	}

	return kernel.NewCoins(coins...)
}
