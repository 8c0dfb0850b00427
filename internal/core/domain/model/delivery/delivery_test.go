package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/kernel"
)

func testDelivery(t *testing.T) (*delivery.Delivery, time.Time) {
	t.Helper()

	origin, err := kernel.NewAddress("", "module1origin")
	require.NoError(t, err)
	coin, err := kernel.NewCoin("uandr", 100)
	require.NoError(t, err)
	escrow, err := kernel.NewCoins(coin)
	require.NoError(t, err)

	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	d, err := delivery.NewDelivery(
		kernel.NewUUID(), "channel-0", 7, origin, escrow, createdAt, createdAt.Add(time.Minute))
	require.NoError(t, err)
	return d, createdAt
}

func TestNewDelivery(t *testing.T) {
	d, createdAt := testDelivery(t)

	require.NoError(t, d.Validate())
	assert.Equal(t, delivery.AwaitingAck, d.Status())
	assert.Equal(t, "channel-0", d.Channel())
	assert.Equal(t, uint64(7), d.Sequence())
	assert.Equal(t, "channel-0/7", d.MessageID())
	assert.Equal(t, uint64(100), d.Escrow().AmountOf("uandr"))
	assert.Equal(t, createdAt, d.CreatedAt())
	assert.Nil(t, d.FinalizedAt())
	assert.False(t, d.IsFinalized())
}

func TestNewDelivery_Validation(t *testing.T) {
	origin, err := kernel.NewAddress("", "module1origin")
	require.NoError(t, err)
	now := time.Now()

	t.Run("empty channel", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), "", 1, origin, nil, now, now.Add(time.Minute))
		require.Error(t, err)
	})

	t.Run("deadline not after createdAt", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), "channel-0", 1, origin, nil, now, now)
		require.Error(t, err)
	})

	t.Run("unconstructed origin", func(t *testing.T) {
		_, err := delivery.NewDelivery(kernel.NewUUID(), "channel-0", 1, kernel.Address{}, nil, now, now.Add(time.Minute))
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var d delivery.Delivery
		require.ErrorIs(t, d.Validate(), delivery.ErrDeliveryIsNotConstructed)
	})
}

func TestDelivery_Complete(t *testing.T) {
	d, createdAt := testDelivery(t)
	ackAt := createdAt.Add(10 * time.Second)

	require.NoError(t, d.Complete(ackAt))
	assert.Equal(t, delivery.Completed, d.Status())
	require.NotNil(t, d.FinalizedAt())
	assert.Equal(t, ackAt, *d.FinalizedAt())

	t.Run("second completion is rejected as already finalized", func(t *testing.T) {
		err := d.Complete(ackAt.Add(time.Second))
		require.ErrorIs(t, err, delivery.ErrDeliveryAlreadyFinalized)
		assert.Equal(t, ackAt, *d.FinalizedAt())
	})

	t.Run("timeout after completion is rejected", func(t *testing.T) {
		err := d.Timeout(createdAt.Add(2 * time.Minute))
		require.ErrorIs(t, err, delivery.ErrDeliveryAlreadyFinalized)
		assert.Equal(t, delivery.Completed, d.Status())
	})
}

func TestDelivery_Fail(t *testing.T) {
	d, createdAt := testDelivery(t)

	require.NoError(t, d.Fail(createdAt.Add(time.Second)))
	assert.Equal(t, delivery.Failed, d.Status())

	require.ErrorIs(t, d.Fail(createdAt.Add(2*time.Second)), delivery.ErrDeliveryAlreadyFinalized)
}

func TestDelivery_Timeout(t *testing.T) {
	t.Run("rejected before the deadline", func(t *testing.T) {
		d, createdAt := testDelivery(t)
		err := d.Timeout(createdAt.Add(30 * time.Second))
		require.ErrorIs(t, err, delivery.ErrDeliveryDeadlineNotReached)
		assert.Equal(t, delivery.AwaitingAck, d.Status())
	})

	t.Run("applied at or after the deadline exactly once", func(t *testing.T) {
		d, createdAt := testDelivery(t)
		expireAt := createdAt.Add(time.Minute)

		require.NoError(t, d.Timeout(expireAt))
		assert.Equal(t, delivery.TimedOut, d.Status())

		require.ErrorIs(t, d.Timeout(expireAt.Add(time.Second)), delivery.ErrDeliveryAlreadyFinalized)
	})
}

func TestRestoreDelivery(t *testing.T) {
	origin, err := kernel.NewAddress("", "module1origin")
	require.NoError(t, err)
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	finalizedAt := createdAt.Add(time.Minute)

	t.Run("restores a finalized record", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), "channel-0", 7, origin, nil,
			createdAt, createdAt.Add(time.Minute), delivery.TimedOut, &finalizedAt)
		require.NoError(t, err)
		assert.True(t, d.IsFinalized())
		assert.Equal(t, finalizedAt, *d.FinalizedAt())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := delivery.RestoreDelivery(
			kernel.NewUUID(), "channel-0", 7, origin, nil,
			createdAt, createdAt.Add(time.Minute), delivery.Unknown, nil)
		require.Error(t, err)
	})
}

func TestDelivery_IsEqual(t *testing.T) {
	a, _ := testDelivery(t)
	b, _ := testDelivery(t)

	assert.True(t, a.IsEqual(a))
	assert.False(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(nil))
}
