package envelope

import (
	"errors"
	"fmt"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

// ErrEnvelopeIsNotConstructed is returned when attempting to use an improperly initialized Envelope.
var ErrEnvelopeIsNotConstructed = errs.NewValueIsRequiredError(
	"envelope must be created via NewEnvelope constructor")

// MaxHops bounds forwarding depth. An envelope whose hop count reaches the
// bound may be delivered but never forwarded again, which prevents unbounded
// relay loops across chains.
const MaxHops = 8

// Envelope is the structured message exchanged between modules, possibly
// across chains. It carries the originating module and chain, the symbolic
// destination, the payload bytes, attached funds and a hop count.
//
// Envelope is an immutable value object; forwarding produces a new envelope
// with an incremented hop count via NextHop.
type Envelope struct { //nolint:recvcheck //using for validation
	origin      kernel.Address
	originChain string
	destination kernel.Path
	payload     []byte
	funds       kernel.Coins
	hops        int

	guard guard.ConstructorGuard
}

// NewEnvelope creates an Envelope for a first-hop dispatch (hop count zero).
func NewEnvelope(
	origin kernel.Address,
	originChain string,
	destination kernel.Path,
	payload []byte,
	funds kernel.Coins,
) (Envelope, error) {
	return RestoreEnvelope(origin, originChain, destination, payload, funds, 0)
}

// RestoreEnvelope reconstructs an Envelope with an explicit hop count, as
// when decoding one received from the transport.
func RestoreEnvelope(
	origin kernel.Address,
	originChain string,
	destination kernel.Path,
	payload []byte,
	funds kernel.Coins,
	hops int,
) (Envelope, error) {
	e := Envelope{
		originChain: originChain,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setOrigin(origin),
		e.setDestination(destination),
		e.setPayload(payload),
		e.setFunds(funds),
		e.setHops(hops),
	); err != nil {
		return Envelope{}, err
	}

	return e, nil
}

// Validate ensures the Envelope was properly constructed.
func (e Envelope) Validate() error {
	return e.guard.Validate(ErrEnvelopeIsNotConstructed)
}

// Origin returns the address of the originating module.
func (e Envelope) Origin() kernel.Address {
	return e.origin
}

// OriginChain returns the chain the envelope was first dispatched from.
func (e Envelope) OriginChain() string {
	return e.originChain
}

// Destination returns the symbolic destination path.
func (e Envelope) Destination() kernel.Path {
	return e.destination
}

// Payload returns a copy of the opaque payload bytes.
func (e Envelope) Payload() []byte {
	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out
}

// Funds returns the funds attached to the message.
func (e Envelope) Funds() kernel.Coins {
	return e.funds
}

// Hops returns how many times the envelope has been forwarded.
func (e Envelope) Hops() int {
	return e.hops
}

// NextHop returns a copy of the envelope with its hop count incremented.
// Fails once the hop bound is reached.
func (e Envelope) NextHop() (Envelope, error) {
	if err := e.Validate(); err != nil {
		return Envelope{}, err
	}
	if e.hops+1 > MaxHops {
		return Envelope{}, errs.NewValueIsOutOfRangeError("hop count", e.hops+1, 0, MaxHops)
	}
	return RestoreEnvelope(e.origin, e.originChain, e.destination, e.payload, e.funds, e.hops+1)
}

func (e *Envelope) setOrigin(origin kernel.Address) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	e.origin = origin
	return nil
}

func (e *Envelope) setDestination(destination kernel.Path) error {
	if err := destination.Validate(); err != nil {
		return err
	}
	e.destination = destination
	return nil
}

func (e *Envelope) setPayload(payload []byte) error {
	e.payload = make([]byte, len(payload))
	copy(e.payload, payload)
	return nil
}

func (e *Envelope) setFunds(funds kernel.Coins) error {
	if err := funds.Validate(); err != nil {
		return err
	}
	e.funds = funds
	return nil
}

func (e *Envelope) setHops(hops int) error {
	if hops < 0 || hops > MaxHops {
		return errs.NewValueIsOutOfRangeErrorWithCause("hop count", hops, 0, MaxHops,
			fmt.Errorf("%d exceeds the forwarding bound", hops))
	}
	e.hops = hops
	return nil
}
