// Package bridge implements the transport-facing side of the kernel: the
// wire codec carried over the inter-chain channel and the client pushing
// queued envelopes to the bridge endpoint.
package bridge

import (
	"encoding/json"
	"fmt"

	"aos/internal/core/domain/model/envelope"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

// wireVersion identifies the envelope encoding. A receiver seeing an
// unknown version rejects the packet instead of guessing at its layout.
const wireVersion = 1

// wireEnvelope is the JSON body carried on the transport.
type wireEnvelope struct {
	Version     int               `json:"version"`
	Origin      string            `json:"origin"`
	OriginChain string            `json:"origin_chain"`
	Destination string            `json:"destination"`
	Payload     []byte            `json:"payload"`
	Funds       map[string]uint64 `json:"funds,omitempty"`
	Hops        int               `json:"hops"`
}

// JSONCodec implements EnvelopeCodec with a versioned JSON body. Both
// directions are pure; Decode fails with InvalidEnvelopeError on anything
// it cannot fully reconstruct.
type JSONCodec struct{}

// NewJSONCodec creates the wire codec.
func NewJSONCodec() JSONCodec {
	return JSONCodec{}
}

// Encode serializes the envelope into the wire format.
func (JSONCodec) Encode(env *envelope.Envelope) ([]byte, error) {
	if env == nil {
		return nil, errs.NewValueIsRequiredError("envelope")
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	funds := env.Funds()
	amounts := make(map[string]uint64, len(funds))
	for _, denom := range funds.Denoms() {
		amounts[denom] = funds.AmountOf(denom)
	}

	return json.Marshal(wireEnvelope{
		Version:     wireVersion,
		Origin:      env.Origin().String(),
		OriginChain: env.OriginChain(),
		Destination: env.Destination().String(),
		Payload:     env.Payload(),
		Funds:       amounts,
		Hops:        env.Hops(),
	})
}

// Decode reconstructs an envelope from the wire format.
func (JSONCodec) Decode(data []byte) (*envelope.Envelope, error) {
	var wire wireEnvelope
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errs.NewInvalidEnvelopeError(err)
	}

	if wire.Version != wireVersion {
		return nil, errs.NewInvalidEnvelopeError(
			fmt.Errorf("unsupported wire version %d", wire.Version))
	}

	origin, err := kernel.AddressFromString(wire.Origin)
	if err != nil {
		return nil, errs.NewInvalidEnvelopeError(err)
	}

	destination, err := kernel.PathFromString(wire.Destination)
	if err != nil {
		return nil, errs.NewInvalidEnvelopeError(err)
	}

	coins := make([]kernel.Coin, 0, len(wire.Funds))
	for denom, amount := range wire.Funds {
		coin, coinErr := kernel.NewCoin(denom, amount)
		if coinErr != nil {
			return nil, errs.NewInvalidEnvelopeError(coinErr)
		}
		coins = append(coins, coin)
	}

	funds, err := kernel.NewCoins(coins...)
	if err != nil {
		return nil, errs.NewInvalidEnvelopeError(err)
	}

	env, err := envelope.RestoreEnvelope(origin, wire.OriginChain, destination, wire.Payload, funds, wire.Hops)
	if err != nil {
		return nil, errs.NewInvalidEnvelopeError(err)
	}

	return &env, nil
}
