package permission

import (
	"fmt"

	"aos/internal/pkg/errs"
)

// Kind classifies a permission record. Evaluation treats the kinds in
// strict precedence order: Blacklist always wins, then Expiring, then
// LimitedUse, then Allow, and with no record at all the engine fails
// closed.
type Kind int

const (
	// Unknown represents an invalid or undefined kind.
	// This value (0) helps catch uninitialized Kind values.
	Unknown Kind = iota

	// Allow grants the action unconditionally.
	Allow

	// Blacklist denies the action regardless of any other record for the
	// same actor/action pair.
	Blacklist

	// LimitedUse grants a fixed number of uses, decremented exactly once
	// per successful guarded action; at zero it behaves as deny.
	LimitedUse

	// Expiring grants the action until a deadline, after which it denies.
	Expiring
)

// getKindStrings returns a map of Kind values to their string representations.
func getKindStrings() map[Kind]string {
	return map[Kind]string{
		Unknown:    "Unknown",
		Allow:      "Allow",
		Blacklist:  "Blacklist",
		LimitedUse: "LimitedUse",
		Expiring:   "Expiring",
	}
}

// getValidKindStrings returns a map of only valid Kind values.
func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Kind]string{
		Allow:      "Allow",
		Blacklist:  "Blacklist",
		LimitedUse: "LimitedUse",
		Expiring:   "Expiring",
	}
}

// KindFromString parses a kind name as produced by String.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%q is not a valid kind", s))
}

// Validate checks if the Kind value is valid.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind is invalid", fmt.Errorf("%d is not a valid kind", k))
	}
	return nil
}

// String returns the human-readable name of the kind. It implements the
// fmt.Stringer interface and is safe to call on any Kind value.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}
