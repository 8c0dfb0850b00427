package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aos/internal/core/domain/model/registry"
	"aos/internal/pkg/errs"
)

func TestParseConstraint(t *testing.T) {
	t.Run("empty and latest mean latest stable", func(t *testing.T) {
		for _, s := range []string{"", "latest", " latest "} {
			c, err := registry.ParseConstraint(s)
			require.NoError(t, err, s)
			assert.True(t, c.IsLatest(), s)
		}
	})

	t.Run("latest-any includes prereleases", func(t *testing.T) {
		c, err := registry.ParseConstraint("latest-any")
		require.NoError(t, err)
		assert.True(t, c.IsLatest())
	})

	t.Run("exact version", func(t *testing.T) {
		c, err := registry.ParseConstraint("1.2.3")
		require.NoError(t, err)
		assert.False(t, c.IsLatest())
	})

	t.Run("malformed version", func(t *testing.T) {
		_, err := registry.ParseConstraint("one.two")
		require.Error(t, err)
	})
}

func TestConstraint_Select(t *testing.T) {
	published := []registry.Version{
		mustVersion(t, "0.9.0"),
		mustVersion(t, "1.0.0"),
		mustVersion(t, "1.2.0"),
		mustVersion(t, "1.3.0-beta.1"),
	}

	t.Run("exact match", func(t *testing.T) {
		c, err := registry.ParseConstraint("1.0.0")
		require.NoError(t, err)

		v, err := c.Select(published)
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", v.String())
	})

	t.Run("exact miss", func(t *testing.T) {
		c, err := registry.ParseConstraint("2.0.0")
		require.NoError(t, err)

		_, err = c.Select(published)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("latest skips prereleases", func(t *testing.T) {
		c, err := registry.ParseConstraint("latest")
		require.NoError(t, err)

		v, err := c.Select(published)
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", v.String())
	})

	t.Run("latest-any takes the greatest prerelease", func(t *testing.T) {
		c, err := registry.ParseConstraint("latest-any")
		require.NoError(t, err)

		v, err := c.Select(published)
		require.NoError(t, err)
		assert.Equal(t, "1.3.0-beta.1", v.String())
	})

	t.Run("latest over only prereleases finds nothing", func(t *testing.T) {
		c := registry.LatestConstraint(false)

		_, err := c.Select([]registry.Version{mustVersion(t, "0.1.0-alpha")})
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("empty set finds nothing", func(t *testing.T) {
		c := registry.LatestConstraint(true)

		_, err := c.Select(nil)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
