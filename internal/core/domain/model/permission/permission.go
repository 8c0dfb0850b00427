package permission

import (
	"errors"
	"time"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

var (
	// ErrPermissionIsNotConstructed is returned when a Permission instance was not created
	// through one of the NewX factory methods.
	ErrPermissionIsNotConstructed = errors.New("Permission must be created via its constructors")

	// ErrPermissionExhausted is returned when consuming a LimitedUse record
	// whose remaining counter is already zero. The counter never goes
	// negative.
	ErrPermissionExhausted = errors.New("limited-use permission has no remaining uses")

	// ErrPermissionNotConsumable is returned when Consume is called on a
	// record that is not LimitedUse.
	ErrPermissionNotConsumable = errors.New("only limited-use permissions can be consumed")
)

// Permission is one policy record for an (actor, action) pair inside a
// module's private guarded-action namespace.
//
// Permission follows these invariants:
//   - Must name a non-empty actor and action
//   - A LimitedUse record's remaining counter is >= 0 and is decremented
//     exactly once per successful guarded action
//   - An Expiring record carries a deadline
//
// Several records may coexist for the same pair; Check resolves them with
// blacklist-first precedence.
type Permission struct {
	// id is the unique identifier for the record
	id kernel.UUID

	// actor is the identity the record applies to
	actor string

	// action is the guarded action name, private to the owning module
	action string

	// kind classifies the record
	kind Kind

	// remaining is the LimitedUse counter (zero for other kinds)
	remaining uint32

	// expiresAt is the Expiring deadline (zero for other kinds)
	expiresAt time.Time

	// isConstructed ensures the record was created via a constructor
	isConstructed bool
}

// NewAllow creates an unconditional grant for the actor/action pair.
func NewAllow(id kernel.UUID, actor, action string) (*Permission, error) {
	return newPermission(id, actor, action, Allow, 0, time.Time{})
}

// NewBlacklist creates a deny-always record for the actor/action pair.
func NewBlacklist(id kernel.UUID, actor, action string) (*Permission, error) {
	return newPermission(id, actor, action, Blacklist, 0, time.Time{})
}

// NewLimitedUse creates a grant permitting remaining further uses.
func NewLimitedUse(id kernel.UUID, actor, action string, remaining uint32) (*Permission, error) {
	return newPermission(id, actor, action, LimitedUse, remaining, time.Time{})
}

// NewExpiring creates a grant valid until the deadline.
func NewExpiring(id kernel.UUID, actor, action string, deadline time.Time) (*Permission, error) {
	if deadline.IsZero() {
		return nil, errs.NewValueIsRequiredError("deadline")
	}
	return newPermission(id, actor, action, Expiring, 0, deadline)
}

// RestorePermission reconstructs a Permission from persistence. Used by
// repositories only.
func RestorePermission(
	id kernel.UUID,
	actor, action string,
	kind Kind,
	remaining uint32,
	expiresAt time.Time,
) (*Permission, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if kind == Expiring && expiresAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("deadline")
	}
	return newPermission(id, actor, action, kind, remaining, expiresAt)
}

func newPermission(
	id kernel.UUID,
	actor, action string,
	kind Kind,
	remaining uint32,
	expiresAt time.Time,
) (*Permission, error) {
	p := &Permission{
		kind:          kind,
		remaining:     remaining,
		expiresAt:     expiresAt,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setActor(actor),
		p.setAction(action),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Permission was properly constructed.
func (p *Permission) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPermissionIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (p *Permission) ID() kernel.UUID {
	return p.id
}

// Actor returns the identity the record applies to.
func (p *Permission) Actor() string {
	return p.actor
}

// Action returns the guarded action name.
func (p *Permission) Action() string {
	return p.action
}

// Kind returns the record's classification.
func (p *Permission) Kind() Kind {
	return p.kind
}

// Remaining returns the LimitedUse counter. Zero for other kinds.
func (p *Permission) Remaining() uint32 {
	return p.remaining
}

// ExpiresAt returns the Expiring deadline. Zero for other kinds.
func (p *Permission) ExpiresAt() time.Time {
	return p.expiresAt
}

// IsExpired reports whether an Expiring record's deadline has passed.
// Records of other kinds never expire.
func (p *Permission) IsExpired(now time.Time) bool {
	return p.kind == Expiring && !now.Before(p.expiresAt)
}

// Consume decrements a LimitedUse record's remaining counter by one.
// The counter never goes negative: consuming at zero returns
// ErrPermissionExhausted.
func (p *Permission) Consume() error {
	if p.kind != LimitedUse {
		return ErrPermissionNotConsumable
	}
	if p.remaining == 0 {
		return ErrPermissionExhausted
	}
	p.remaining--
	return nil
}

// setID validates and sets the record's unique identifier.
func (p *Permission) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setActor validates and sets the actor.
func (p *Permission) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	p.actor = actor
	return nil
}

// setAction validates and sets the action.
func (p *Permission) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}
	p.action = action
	return nil
}
