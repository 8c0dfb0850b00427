package registry

import (
	"github.com/Masterminds/semver/v3"

	"aos/internal/pkg/errs"
)

// Version is a published module version. Ordering is total and follows
// semantic versioning, including pre-release qualifiers, so "latest" is
// well defined for any set of published versions.
type Version struct {
	v *semver.Version
}

// VersionFromString parses and validates a semantic version string.
func VersionFromString(s string) (Version, error) {
	if s == "" {
		return Version{}, errs.NewValueIsRequiredError("version")
	}

	parsed, err := semver.StrictNewVersion(s)
	if err != nil {
		return Version{}, errs.NewVersionIsInvalidErrorWithCause("version", err)
	}

	return Version{v: parsed}, nil
}

// Validate ensures the Version was properly constructed.
func (v Version) Validate() error {
	if v.v == nil {
		return errs.NewValueIsRequiredError("version")
	}
	return nil
}

// String returns the canonical version string.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Compare returns -1, 0 or 1 when v is less than, equal to or greater
// than other. Pre-release versions order below their release.
func (v Version) Compare(other Version) int {
	return v.v.Compare(other.v)
}

// LessThan reports whether v orders before other.
func (v Version) LessThan(other Version) bool {
	return v.v.LessThan(other.v)
}

// IsEqual reports whether two versions are the same.
func (v Version) IsEqual(other Version) bool {
	if v.v == nil || other.v == nil {
		return v.v == other.v
	}
	return v.v.Equal(other.v)
}

// IsPrerelease reports whether the version carries a pre-release
// qualifier, such as 1.2.0-beta.1.
func (v Version) IsPrerelease() bool {
	return v.v != nil && v.v.Prerelease() != ""
}
