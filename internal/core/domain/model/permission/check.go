package permission

import (
	"time"

	"aos/internal/pkg/errs"
)

// Decision is the outcome of evaluating the records for an (actor, action)
// pair at a point in time.
type Decision struct {
	// Allowed reports whether the guarded action may proceed.
	Allowed bool

	// Reason explains a denial. Empty when Allowed is true.
	Reason errs.DenyReason

	// ToConsume is the LimitedUse record whose counter must be
	// decremented in the same transaction as the guarded action.
	// Nil when no decrement is due.
	ToConsume *Permission
}

// Check evaluates all records for one (actor, action) pair with strict
// precedence:
//
//  1. Any Blacklist record denies, whatever else exists.
//  2. Otherwise an Expiring record decides: allowed before its deadline,
//     denied after.
//  3. Otherwise a LimitedUse record decides: allowed while uses remain,
//     and the use must be consumed atomically with the action.
//  4. Otherwise an Allow record permits.
//  5. No record at all denies. The engine fails closed.
//
// Check does not mutate any record. The caller decrements ToConsume (via
// Consume) inside the transaction that performs the guarded action, so a
// rejected action never burns a use.
func Check(records []*Permission, now time.Time) Decision {
	var expiring, limited, allow *Permission

	for _, r := range records {
		switch r.Kind() {
		case Blacklist:
			return Decision{Allowed: false, Reason: errs.DenyBlacklisted}
		case Expiring:
			if expiring == nil {
				expiring = r
			}
		case LimitedUse:
			if limited == nil {
				limited = r
			}
		case Allow:
			if allow == nil {
				allow = r
			}
		}
	}

	if expiring != nil {
		if expiring.IsExpired(now) {
			return Decision{Allowed: false, Reason: errs.DenyExpired}
		}
		return Decision{Allowed: true}
	}

	if limited != nil {
		if limited.Remaining() == 0 {
			return Decision{Allowed: false, Reason: errs.DenyExhausted}
		}
		return Decision{Allowed: true, ToConsume: limited}
	}

	if allow != nil {
		return Decision{Allowed: true}
	}

	return Decision{Allowed: false, Reason: errs.DenyNoGrant}
}
