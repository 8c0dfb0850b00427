package ports

import (
	"aos/internal/core/domain/model/envelope"
)

// EnvelopeCodec translates envelopes to and from the wire format carried
// by the transport. Both directions are pure; Decode fails with
// InvalidEnvelopeError on malformed input and never panics.
type EnvelopeCodec interface {
	Encode(env *envelope.Envelope) ([]byte, error)
	Decode(data []byte) (*envelope.Envelope, error)
}
