package ports

import (
	"context"

	"aos/internal/core/domain/model/envelope"
	"aos/internal/core/domain/model/kernel"
)

// LocalDispatcher invokes a module hosted in this kernel. Dispatch runs
// inside the sender's transaction: an error aborts the whole send and no
// partial effect survives.
type LocalDispatcher interface {
	Dispatch(ctx context.Context, target kernel.Address, env *envelope.Envelope) error
}

// TransportClient pushes encoded envelopes to the bridge endpoint of a
// channel. Delivery is at least once; the receiving side deduplicates by
// (channel, sequence).
type TransportClient interface {
	Push(ctx context.Context, channel string, sequence uint64, payload []byte) error
}
