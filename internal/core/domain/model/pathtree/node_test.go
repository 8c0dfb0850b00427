package pathtree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/core/domain/model/pathtree"
)

func mustAddress(t *testing.T, s string) kernel.Address {
	t.Helper()
	a, err := kernel.AddressFromString(s)
	require.NoError(t, err)
	return a
}

func mustPath(t *testing.T, s string) kernel.Path {
	t.Helper()
	p, err := kernel.PathFromString(s)
	require.NoError(t, err)
	return p
}

func TestNewDirectoryNode(t *testing.T) {
	parent := kernel.NewUUID()

	tests := []struct {
		name     string
		nodeName string
		parentID *kernel.UUID
		wantErr  bool
	}{
		{name: "top level", nodeName: "home", parentID: nil},
		{name: "nested", nodeName: "alice", parentID: &parent},
		{name: "empty name", nodeName: "", parentID: nil, wantErr: true},
		{name: "invalid segment", nodeName: "Has Space", parentID: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := pathtree.NewDirectoryNode(kernel.NewUUID(), tt.parentID, tt.nodeName)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, n.Validate())
			assert.Equal(t, tt.nodeName, n.Name())
			assert.False(t, n.IsAlias())
			assert.False(t, n.HasAddress())

			if tt.parentID == nil {
				assert.Nil(t, n.ParentID())
			} else {
				require.NotNil(t, n.ParentID())
				assert.Equal(t, *tt.parentID, *n.ParentID())
			}
		})
	}
}

func TestNewAddressNode(t *testing.T) {
	addr := mustAddress(t, "andr1xyz")

	n, err := pathtree.NewAddressNode(kernel.NewUUID(), nil, "splitter", addr)
	require.NoError(t, err)

	assert.True(t, n.HasAddress())
	got, err := n.Address()
	require.NoError(t, err)
	assert.True(t, addr.IsEqual(got))

	_, err = n.AliasTarget()
	require.ErrorIs(t, err, pathtree.ErrNodeIsNotAlias)
}

func TestNewAliasNode(t *testing.T) {
	target := mustPath(t, "/home/alice/splitter")

	n, err := pathtree.NewAliasNode(kernel.NewUUID(), nil, "shortcut", target)
	require.NoError(t, err)

	assert.True(t, n.IsAlias())
	got, err := n.AliasTarget()
	require.NoError(t, err)
	assert.True(t, target.IsEqual(got))

	_, err = n.Address()
	require.ErrorIs(t, err, pathtree.ErrNodeHasNoAddress)
}

func TestNode_BindAddress(t *testing.T) {
	t.Run("directory node accepts an address", func(t *testing.T) {
		n, err := pathtree.NewDirectoryNode(kernel.NewUUID(), nil, "home")
		require.NoError(t, err)

		require.NoError(t, n.BindAddress(mustAddress(t, "andr1abc")))
		assert.True(t, n.HasAddress())
	})

	t.Run("rebinding replaces the address", func(t *testing.T) {
		n, err := pathtree.NewAddressNode(kernel.NewUUID(), nil, "splitter", mustAddress(t, "andr1abc"))
		require.NoError(t, err)

		require.NoError(t, n.BindAddress(mustAddress(t, "andr1def")))
		got, err := n.Address()
		require.NoError(t, err)
		assert.Equal(t, "andr1def", got.String())
	})

	t.Run("alias node rejects an address", func(t *testing.T) {
		n, err := pathtree.NewAliasNode(kernel.NewUUID(), nil, "shortcut", mustPath(t, "/home/alice"))
		require.NoError(t, err)

		require.Error(t, n.BindAddress(mustAddress(t, "andr1abc")))
	})
}

func TestRestoreNode(t *testing.T) {
	addr := mustAddress(t, "andr1xyz")
	target := mustPath(t, "/home/alice")

	t.Run("address node round trip", func(t *testing.T) {
		n, err := pathtree.RestoreNode(kernel.NewUUID(), nil, "splitter", &addr, nil)
		require.NoError(t, err)
		assert.True(t, n.HasAddress())
	})

	t.Run("alias node round trip", func(t *testing.T) {
		n, err := pathtree.RestoreNode(kernel.NewUUID(), nil, "shortcut", nil, &target)
		require.NoError(t, err)
		assert.True(t, n.IsAlias())
	})

	t.Run("address and alias together rejected", func(t *testing.T) {
		_, err := pathtree.RestoreNode(kernel.NewUUID(), nil, "bad", &addr, &target)
		require.Error(t, err)
	})
}

func TestNode_ParentID_Copy(t *testing.T) {
	parent := kernel.NewUUID()
	n, err := pathtree.NewDirectoryNode(kernel.NewUUID(), &parent, "alice")
	require.NoError(t, err)

	got := n.ParentID()
	require.NotNil(t, got)
	*got = kernel.NewUUID()

	assert.Equal(t, parent, *n.ParentID())
}

func TestNode_Validate(t *testing.T) {
	var n *pathtree.Node
	require.ErrorIs(t, n.Validate(), pathtree.ErrNodeIsNotConstructed)
	require.ErrorIs(t, (&pathtree.Node{}).Validate(), pathtree.ErrNodeIsNotConstructed)
}
