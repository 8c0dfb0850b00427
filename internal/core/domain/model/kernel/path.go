package kernel

import (
	"errors"
	"fmt"
	"strings"

	"aos/internal/pkg/errs"
	"aos/internal/pkg/guard"
)

// ErrPathIsNotConstructed is returned when attempting to use an improperly initialized Path.
var ErrPathIsNotConstructed = errs.NewValueIsRequiredError(
	"path must be created via NewPath or PathFromString constructors")

// MaxPathSegments bounds the depth of the symbolic namespace. Registration
// and resolution both refuse paths deeper than this.
const MaxPathSegments = 32

// Path is a slash-delimited symbolic name addressing a module through the
// resolver namespace, e.g. "/home/alice/splitter". A path may carry a chain
// qualifier ("chain-b:/home/alice"), in which case it addresses a module on
// a remote chain and only the qualifier needs to be known locally.
//
// Path is an immutable value object; the zero value is invalid.
type Path struct { //nolint:recvcheck //using for validation
	chain    string
	segments []string
	guard    guard.ConstructorGuard
}

// NewPath creates a Path from an optional chain qualifier and its segments.
// Each segment must be non-empty and consist of lowercase letters, digits,
// '.', '_' or '-'.
func NewPath(chain string, segments []string) (Path, error) {
	p := Path{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setChain(chain), p.setSegments(segments)); err != nil {
		return Path{}, err
	}

	return p, nil
}

// PathFromString parses the canonical string form of a path:
// "/seg/seg" for local paths or "chain:/seg/seg" for chain-qualified ones.
func PathFromString(s string) (Path, error) {
	if s == "" {
		return Path{}, errs.NewValueIsRequiredError("path")
	}

	chain := ""
	rest := s
	if !strings.HasPrefix(s, "/") {
		var found bool
		chain, rest, found = strings.Cut(s, ":")
		if !found || chain == "" {
			return Path{}, errs.NewValueIsInvalidErrorWithCause("path",
				fmt.Errorf("%q is neither rooted nor chain-qualified", s))
		}
	}

	if !strings.HasPrefix(rest, "/") {
		return Path{}, errs.NewValueIsInvalidErrorWithCause("path",
			fmt.Errorf("%q does not start with '/'", rest))
	}

	trimmed := strings.TrimPrefix(rest, "/")
	if trimmed == "" {
		return Path{}, errs.NewValueIsRequiredError("path segments")
	}

	return NewPath(chain, strings.Split(trimmed, "/"))
}

// Validate checks if the Path was properly constructed using a constructor.
func (p Path) Validate() error {
	return p.guard.Validate(ErrPathIsNotConstructed)
}

// Chain returns the chain qualifier. Empty for local paths.
func (p Path) Chain() string {
	return p.chain
}

// IsRemote reports whether the path carries a chain qualifier other than the
// given host chain.
func (p Path) IsRemote(hostChain string) bool {
	return p.chain != "" && p.chain != hostChain
}

// Segments returns a copy of the path segments in walk order.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// String returns the canonical string form of the path.
func (p Path) String() string {
	local := "/" + strings.Join(p.segments, "/")
	if p.chain == "" {
		return local
	}
	return fmt.Sprintf("%s:%s", p.chain, local)
}

// IsEqual compares two paths by chain qualifier and segments.
func (p Path) IsEqual(other Path) bool {
	if p.chain != other.chain || len(p.segments) != len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		if other.segments[i] != seg {
			return false
		}
	}
	return true
}

func (p *Path) setChain(chain string) error {
	if strings.ContainsAny(chain, ":/ \t\n") {
		return errs.NewValueIsInvalidErrorWithCause("path chain",
			fmt.Errorf("%q contains a separator or whitespace", chain))
	}
	p.chain = chain
	return nil
}

func (p *Path) setSegments(segments []string) error {
	if len(segments) == 0 {
		return errs.NewValueIsRequiredError("path segments")
	}
	if len(segments) > MaxPathSegments {
		return errs.NewValueIsOutOfRangeError("path segments", len(segments), 1, MaxPathSegments)
	}

	for _, seg := range segments {
		if err := ValidatePathSegment(seg); err != nil {
			return err
		}
	}

	p.segments = make([]string, len(segments))
	copy(p.segments, segments)
	return nil
}

// ValidatePathSegment checks a single namespace segment: non-empty,
// lowercase letters, digits, '.', '_' or '-'.
func ValidatePathSegment(seg string) error {
	if seg == "" {
		return errs.NewValueIsRequiredError("path segment")
	}
	for _, r := range seg {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-'
		if !valid {
			return errs.NewValueIsInvalidErrorWithCause("path segment",
				fmt.Errorf("%q contains invalid rune %q", seg, r))
		}
	}
	return nil
}
