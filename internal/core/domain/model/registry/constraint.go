package registry

import (
	"strings"

	"aos/internal/pkg/errs"
)

// Constraint selects one version out of the versions published for a
// module type.
//
// Three forms exist:
//   - an exact version string, which matches only itself
//   - "latest", which selects the greatest stable version
//   - "latest-any", which selects the greatest version including
//     pre-releases
type Constraint struct {
	exact  Version
	latest bool
	anyPre bool
}

// ParseConstraint parses a constraint string. An empty string means
// "latest".
func ParseConstraint(s string) (Constraint, error) {
	switch strings.TrimSpace(s) {
	case "", "latest":
		return Constraint{latest: true}, nil
	case "latest-any":
		return Constraint{latest: true, anyPre: true}, nil
	}

	v, err := VersionFromString(s)
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{exact: v}, nil
}

// ExactConstraint builds a constraint matching only the given version.
func ExactConstraint(v Version) (Constraint, error) {
	if err := v.Validate(); err != nil {
		return Constraint{}, err
	}
	return Constraint{exact: v}, nil
}

// LatestConstraint builds a constraint selecting the greatest version.
// With includePrerelease false, pre-release versions are skipped.
func LatestConstraint(includePrerelease bool) Constraint {
	return Constraint{latest: true, anyPre: includePrerelease}
}

// IsLatest reports whether the constraint selects a greatest version
// rather than an exact one.
func (c Constraint) IsLatest() bool {
	return c.latest
}

// Select picks the version the constraint resolves to out of the
// published set. Returns ObjectNotFoundError when nothing matches.
func (c Constraint) Select(published []Version) (Version, error) {
	if c.latest {
		return c.selectLatest(published)
	}

	for _, v := range published {
		if v.IsEqual(c.exact) {
			return v, nil
		}
	}
	return Version{}, errs.NewObjectNotFoundError("version", c.exact.String())
}

func (c Constraint) selectLatest(published []Version) (Version, error) {
	var best Version
	for _, v := range published {
		if v.IsPrerelease() && !c.anyPre {
			continue
		}
		if best.v == nil || best.LessThan(v) {
			best = v
		}
	}
	if best.v == nil {
		return Version{}, errs.NewObjectNotFoundError("version", "latest")
	}
	return best, nil
}
