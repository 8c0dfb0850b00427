package delivery

import (
	"errors"
	"fmt"
	"time"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not created through
	// the NewDelivery factory method.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrDeliveryAlreadyFinalized is returned when an acknowledgement or
	// timeout arrives for a record that has already reached a terminal
	// state. Callers treat it as a signal to no-op, never as a failure.
	ErrDeliveryAlreadyFinalized = errors.New("delivery is already finalized")

	// ErrDeliveryDeadlineNotReached is returned when a timeout is applied
	// to a record whose deadline still lies in the future.
	ErrDeliveryDeadlineNotReached = errors.New("delivery deadline has not been reached")
)

// Delivery is the durable record tracking one in-flight remote dispatch.
// It is the aggregate root of the pending-delivery lifecycle, keyed uniquely
// by (channel, sequence).
//
// Delivery follows these invariants:
//   - Must have a valid unique identifier and a non-empty channel
//   - Created in AwaitingAck with the escrowed funds attached
//   - Finalized exactly once by the first matching ack or timeout
//   - Never mutated after finalization; retained for audit
//
// A retry of a TimedOut delivery is a new Delivery with a new sequence,
// never a mutation of the old record.
type Delivery struct {
	// id is the unique identifier for the record
	id kernel.UUID

	// channel is the transport channel the envelope left through
	channel string

	// sequence is the transport-assigned sequence number on the channel
	sequence uint64

	// origin is the module the escrow is refunded to on failure
	origin kernel.Address

	// escrow is the funds held until finalization
	escrow kernel.Coins

	// createdAt is the dispatch time
	createdAt time.Time

	// deadline is the instant after which the record may time out
	deadline time.Time

	// status is the current state in the delivery lifecycle
	status Status

	// finalizedAt records when a terminal state was reached (nil while pending)
	finalizedAt *time.Time

	// isConstructed ensures the delivery was created via NewDelivery
	isConstructed bool
}

// NewDelivery creates a pending Delivery in AwaitingAck status.
//
// Parameters:
//   - id: unique record identifier
//   - channel: transport channel identifier (non-empty)
//   - sequence: transport sequence number on the channel
//   - origin: originating module address (refund target)
//   - escrow: funds held for the dispatch (may be empty)
//   - createdAt: dispatch time
//   - deadline: timeout deadline, strictly after createdAt
func NewDelivery(
	id kernel.UUID,
	channel string,
	sequence uint64,
	origin kernel.Address,
	escrow kernel.Coins,
	createdAt time.Time,
	deadline time.Time,
) (*Delivery, error) {
	d := &Delivery{
		sequence:      sequence,
		status:        AwaitingAck,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setChannel(channel),
		d.setOrigin(origin),
		d.setEscrow(escrow),
		d.setWindow(createdAt, deadline),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistence with an explicit
// status and finalization time. Used by repositories only.
func RestoreDelivery(
	id kernel.UUID,
	channel string,
	sequence uint64,
	origin kernel.Address,
	escrow kernel.Coins,
	createdAt time.Time,
	deadline time.Time,
	status Status,
	finalizedAt *time.Time,
) (*Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	d, err := NewDelivery(id, channel, sequence, origin, escrow, createdAt, deadline)
	if err != nil {
		return nil, err
	}

	d.status = status
	if finalizedAt != nil {
		at := *finalizedAt
		d.finalizedAt = &at
	}
	return d, nil
}

// Validate ensures the Delivery instance was properly constructed through NewDelivery.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}

	return nil
}

// ID returns the record's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Channel returns the transport channel identifier.
func (d *Delivery) Channel() string {
	return d.channel
}

// Sequence returns the transport sequence number on the channel.
func (d *Delivery) Sequence() uint64 {
	return d.sequence
}

// MessageID returns the message identifier derived from (channel, sequence).
func (d *Delivery) MessageID() string {
	return MessageIDFor(d.channel, d.sequence)
}

// MessageIDFor derives the message identifier for the transport
// coordinates without a record in hand.
func MessageIDFor(channel string, sequence uint64) string {
	return fmt.Sprintf("%s/%d", channel, sequence)
}

// Origin returns the originating module address.
func (d *Delivery) Origin() kernel.Address {
	return d.origin
}

// Escrow returns the funds held for the dispatch.
func (d *Delivery) Escrow() kernel.Coins {
	return d.escrow
}

// CreatedAt returns the dispatch time.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// Deadline returns the timeout deadline.
func (d *Delivery) Deadline() time.Time {
	return d.deadline
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// FinalizedAt returns when a terminal state was reached, nil while pending.
func (d *Delivery) FinalizedAt() *time.Time {
	if d.finalizedAt == nil {
		return nil
	}
	at := *d.finalizedAt
	return &at
}

// IsFinalized reports whether the record has reached a terminal state.
func (d *Delivery) IsFinalized() bool {
	return d.status.IsFinal()
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// Complete finalizes the record after a successful acknowledgement.
// Returns ErrDeliveryAlreadyFinalized if a terminal state was already
// reached; the caller must treat that as a no-op.
func (d *Delivery) Complete(now time.Time) error {
	if d.IsFinalized() {
		return ErrDeliveryAlreadyFinalized
	}

	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.finalizedAt = &now
	return nil
}

// Fail finalizes the record after an error acknowledgement. Same
// idempotence contract as Complete.
func (d *Delivery) Fail(now time.Time) error {
	if d.IsFinalized() {
		return ErrDeliveryAlreadyFinalized
	}

	newStatus, err := d.status.Fail()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.finalizedAt = &now
	return nil
}

// Timeout finalizes the record after its deadline passed without an
// acknowledgement. Rejects the transition while the deadline still lies in
// the future; returns ErrDeliveryAlreadyFinalized for an already-terminal
// record.
func (d *Delivery) Timeout(now time.Time) error {
	if d.IsFinalized() {
		return ErrDeliveryAlreadyFinalized
	}

	if now.Before(d.deadline) {
		return ErrDeliveryDeadlineNotReached
	}

	newStatus, err := d.status.Timeout()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.finalizedAt = &now
	return nil
}

// setID validates and sets the record's unique identifier.
func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setChannel validates and sets the transport channel identifier.
func (d *Delivery) setChannel(channel string) error {
	if channel == "" {
		return errs.NewValueIsRequiredError("channel")
	}
	d.channel = channel
	return nil
}

// setOrigin validates and sets the originating module address.
func (d *Delivery) setOrigin(origin kernel.Address) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	d.origin = origin
	return nil
}

// setEscrow validates and sets the escrowed funds.
func (d *Delivery) setEscrow(escrow kernel.Coins) error {
	if err := escrow.Validate(); err != nil {
		return err
	}
	d.escrow = escrow
	return nil
}

// setWindow validates and sets the dispatch time and deadline.
func (d *Delivery) setWindow(createdAt, deadline time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if !deadline.After(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("deadline",
			fmt.Errorf("%s is not after %s", deadline, createdAt))
	}
	d.createdAt = createdAt
	d.deadline = deadline
	return nil
}
