package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"
)

func TestNewCoin(t *testing.T) {
	t.Run("valid coin", func(t *testing.T) {
		c, err := kernel.NewCoin("uandr", 100)
		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "uandr", c.Denom())
		assert.Equal(t, uint64(100), c.Amount())
		assert.Equal(t, "100uandr", c.String())
	})

	t.Run("zero amount is valid", func(t *testing.T) {
		c, err := kernel.NewCoin("uandr", 0)
		require.NoError(t, err)
		assert.True(t, c.IsZero())
	})

	t.Run("empty denom", func(t *testing.T) {
		_, err := kernel.NewCoin("", 1)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var c kernel.Coin
		require.Error(t, c.Validate())
	})
}

func TestCoin_Add(t *testing.T) {
	t.Run("sums matching denoms", func(t *testing.T) {
		a, _ := kernel.NewCoin("uandr", 70)
		b, _ := kernel.NewCoin("uandr", 30)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), sum.Amount())
	})

	t.Run("rejects denom mismatch", func(t *testing.T) {
		a, _ := kernel.NewCoin("uandr", 70)
		b, _ := kernel.NewCoin("ujuno", 30)

		_, err := a.Add(b)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects overflow", func(t *testing.T) {
		a, _ := kernel.NewCoin("uandr", math.MaxUint64)
		b, _ := kernel.NewCoin("uandr", 1)

		_, err := a.Add(b)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCoin_Sub(t *testing.T) {
	t.Run("subtracts matching denoms", func(t *testing.T) {
		a, _ := kernel.NewCoin("uandr", 70)
		b, _ := kernel.NewCoin("uandr", 30)

		diff, err := a.Sub(b)
		require.NoError(t, err)
		assert.Equal(t, uint64(40), diff.Amount())
	})

	t.Run("rejects going negative", func(t *testing.T) {
		a, _ := kernel.NewCoin("uandr", 30)
		b, _ := kernel.NewCoin("uandr", 70)

		_, err := a.Sub(b)
		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})
}

func TestNewCoins(t *testing.T) {
	t.Run("merges duplicates and sorts by denom", func(t *testing.T) {
		a, _ := kernel.NewCoin("ujuno", 5)
		b, _ := kernel.NewCoin("uandr", 70)
		c, _ := kernel.NewCoin("uandr", 30)

		coins, err := kernel.NewCoins(a, b, c)
		require.NoError(t, err)
		require.Len(t, coins, 2)
		assert.Equal(t, "uandr", coins[0].Denom())
		assert.Equal(t, uint64(100), coins[0].Amount())
		assert.Equal(t, "ujuno", coins[1].Denom())
		assert.Equal(t, "100uandr,5ujuno", coins.String())
	})

	t.Run("drops zero amounts", func(t *testing.T) {
		z, _ := kernel.NewCoin("uandr", 0)
		coins, err := kernel.NewCoins(z)
		require.NoError(t, err)
		assert.True(t, coins.IsZero())
	})

	t.Run("rejects unconstructed coin", func(t *testing.T) {
		_, err := kernel.NewCoins(kernel.Coin{})
		require.Error(t, err)
	})
}

func TestCoins_Sub(t *testing.T) {
	a, _ := kernel.NewCoin("uandr", 100)
	b, _ := kernel.NewCoin("ujuno", 5)
	coins, err := kernel.NewCoins(a, b)
	require.NoError(t, err)

	t.Run("reduces held amount", func(t *testing.T) {
		fee, _ := kernel.NewCoin("uandr", 40)
		rest, err := coins.Sub(fee)
		require.NoError(t, err)
		assert.Equal(t, uint64(60), rest.AmountOf("uandr"))
		assert.Equal(t, uint64(5), rest.AmountOf("ujuno"))
	})

	t.Run("removes exhausted denom", func(t *testing.T) {
		fee, _ := kernel.NewCoin("ujuno", 5)
		rest, err := coins.Sub(fee)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), rest.AmountOf("ujuno"))
		require.Len(t, rest, 1)
	})

	t.Run("fails closed on insufficient funds", func(t *testing.T) {
		fee, _ := kernel.NewCoin("uandr", 101)
		_, err := coins.Sub(fee)
		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
	})

	t.Run("original set is unchanged", func(t *testing.T) {
		assert.Equal(t, uint64(100), coins.AmountOf("uandr"))
	})
}
