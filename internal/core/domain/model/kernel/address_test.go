package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

func TestNewAddress(t *testing.T) {
	tests := []struct {
		name    string
		chain   string
		id      string
		wantErr bool
	}{
		{name: "valid local address", chain: "", id: "module1abc"},
		{name: "valid remote address", chain: "chain-b", id: "module1abc"},
		{name: "empty identifier", chain: "", id: "", wantErr: true},
		{name: "identifier with separator", chain: "", id: "a:b", wantErr: true},
		{name: "identifier with slash", chain: "", id: "a/b", wantErr: true},
		{name: "identifier with whitespace", chain: "", id: "a b", wantErr: true},
		{name: "chain with separator", chain: "a:b", id: "module1abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := kernel.NewAddress(tt.chain, tt.id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, addr.Validate())
			assert.Equal(t, tt.chain, addr.Chain())
			assert.Equal(t, tt.id, addr.ID())
		})
	}
}

func TestAddressFromString(t *testing.T) {
	t.Run("round trips local address", func(t *testing.T) {
		addr, err := kernel.AddressFromString("module1abc")
		require.NoError(t, err)
		assert.Equal(t, "", addr.Chain())
		assert.Equal(t, "module1abc", addr.String())
	})

	t.Run("round trips remote address", func(t *testing.T) {
		addr, err := kernel.AddressFromString("chain-b:module1abc")
		require.NoError(t, err)
		assert.Equal(t, "chain-b", addr.Chain())
		assert.Equal(t, "module1abc", addr.ID())
		assert.Equal(t, "chain-b:module1abc", addr.String())
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := kernel.AddressFromString("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestAddress_IsLocal(t *testing.T) {
	local, err := kernel.NewAddress("", "module1abc")
	require.NoError(t, err)
	sameChain, err := kernel.NewAddress("chain-a", "module1abc")
	require.NoError(t, err)
	remote, err := kernel.NewAddress("chain-b", "module1abc")
	require.NoError(t, err)

	assert.True(t, local.IsLocal("chain-a"))
	assert.True(t, sameChain.IsLocal("chain-a"))
	assert.False(t, remote.IsLocal("chain-a"))
}

func TestAddress_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var addr kernel.Address
		require.ErrorIs(t, addr.Validate(), errs.ErrValueIsRequired)
	})
}

func TestAddress_IsEqual(t *testing.T) {
	a, err := kernel.NewAddress("chain-b", "module1abc")
	require.NoError(t, err)
	b, err := kernel.AddressFromString("chain-b:module1abc")
	require.NoError(t, err)
	c, err := kernel.NewAddress("", "module1abc")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
