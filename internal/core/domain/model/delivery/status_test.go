package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aos/internal/core/domain/model/delivery"
)

func TestStatus_Validate(t *testing.T) {
	valid := []delivery.Status{
		delivery.AwaitingAck,
		delivery.Completed,
		delivery.Failed,
		delivery.TimedOut,
	}
	for _, s := range valid {
		require.NoError(t, s.Validate(), s.String())
	}

	require.Error(t, delivery.Unknown.Validate())
	require.Error(t, delivery.Status(99).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "AwaitingAck", delivery.AwaitingAck.String())
	assert.Equal(t, "Completed", delivery.Completed.String())
	assert.Equal(t, "Failed", delivery.Failed.String())
	assert.Equal(t, "TimedOut", delivery.TimedOut.String())
	assert.Equal(t, "Unknown", delivery.Unknown.String())
	assert.Equal(t, "Unknown", delivery.Status(99).String())
}

func TestStatus_IsFinal(t *testing.T) {
	assert.False(t, delivery.AwaitingAck.IsFinal())
	assert.True(t, delivery.Completed.IsFinal())
	assert.True(t, delivery.Failed.IsFinal())
	assert.True(t, delivery.TimedOut.IsFinal())
	assert.False(t, delivery.Unknown.IsFinal())
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("AwaitingAck can reach each terminal state", func(t *testing.T) {
		s, err := delivery.AwaitingAck.Complete()
		require.NoError(t, err)
		assert.Equal(t, delivery.Completed, s)

		s, err = delivery.AwaitingAck.Fail()
		require.NoError(t, err)
		assert.Equal(t, delivery.Failed, s)

		s, err = delivery.AwaitingAck.Timeout()
		require.NoError(t, err)
		assert.Equal(t, delivery.TimedOut, s)
	})

	t.Run("terminal states cannot transition", func(t *testing.T) {
		for _, s := range []delivery.Status{delivery.Completed, delivery.Failed, delivery.TimedOut} {
			_, err := s.Complete()
			require.Error(t, err, s.String())
			_, err = s.Fail()
			require.Error(t, err, s.String())
			_, err = s.Timeout()
			require.Error(t, err, s.String())
		}
	})

	t.Run("Unknown cannot transition", func(t *testing.T) {
		_, err := delivery.Unknown.Complete()
		require.Error(t, err)
	})
}
