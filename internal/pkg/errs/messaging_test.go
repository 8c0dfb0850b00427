package errs_test

import (
	"errors"
	"testing"

	"aos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionDeniedError(t *testing.T) {
	t.Run("NewPermissionDeniedError", func(t *testing.T) {
		err := errs.NewPermissionDeniedError("actor1", "mint", errs.DenyBlacklisted)

		assert.Equal(t, "actor1", err.Actor)
		assert.Equal(t, "mint", err.Action)
		assert.Equal(t, errs.DenyBlacklisted, err.Reason)
		assert.Equal(t,
			"permission denied: actor is: actor1, action is: mint, reason is: Blacklisted",
			err.Error())
		assert.Equal(t, errs.ErrPermissionDenied, err.Unwrap())
	})

	t.Run("all deny reasons format", func(t *testing.T) {
		for _, reason := range []errs.DenyReason{
			errs.DenyBlacklisted, errs.DenyExpired, errs.DenyExhausted, errs.DenyNoGrant,
		} {
			err := errs.NewPermissionDeniedError("a", "b", reason)
			assert.Contains(t, err.Error(), string(reason))
		}
	})
}

func TestDuplicateVersionError(t *testing.T) {
	err := errs.NewDuplicateVersionError("splitter", "1.2.0")

	assert.Equal(t, "splitter", err.ModuleType)
	assert.Equal(t, "1.2.0", err.Version)
	assert.Equal(t, "duplicate version: splitter@1.2.0 is already published", err.Error())
	assert.Equal(t, errs.ErrDuplicateVersion, err.Unwrap())
}

func TestInvalidEnvelopeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewInvalidEnvelopeError(nil)
		assert.Equal(t, "invalid envelope", err.Error())
		assert.Equal(t, errs.ErrInvalidEnvelope, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := errs.NewInvalidEnvelopeError(cause)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "invalid envelope (cause: unexpected end of JSON input)", err.Error())
	})
}

func TestUnauthorizedError(t *testing.T) {
	err := errs.NewUnauthorizedError("mallory", "UpsertKeyAddress")

	assert.Equal(t, "unauthorized: actor is: mallory, operation is: UpsertKeyAddress", err.Error())
	assert.Equal(t, errs.ErrUnauthorized, err.Unwrap())
}

func TestInsufficientFundsError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewInsufficientFundsError("acct1", "uandr")
		assert.Equal(t, "insufficient funds: account is: acct1, denom is: uandr", err.Error())
		assert.Equal(t, errs.ErrInsufficientFunds, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("balance overflow")
		err := errs.NewInsufficientFundsErrorWithCause("acct1", "uandr", cause)
		assert.Equal(t,
			"insufficient funds: account is: acct1, denom is: uandr (cause: balance overflow)",
			err.Error())
	})
}

func TestCycleDetectedError(t *testing.T) {
	err := errs.NewCycleDetectedError("/home/loop")

	assert.Equal(t, "cycle detected: /home/loop", err.Error())
	assert.Equal(t, errs.ErrCycleDetected, err.Unwrap())
}

func TestMessagingErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewPermissionDeniedError("a", "b", errs.DenyNoGrant), errs.ErrPermissionDenied)
	require.ErrorIs(t, errs.NewDuplicateVersionError("t", "1.0.0"), errs.ErrDuplicateVersion)
	require.ErrorIs(t, errs.NewInvalidEnvelopeError(nil), errs.ErrInvalidEnvelope)
	require.ErrorIs(t, errs.NewUnauthorizedError("a", "op"), errs.ErrUnauthorized)
	require.ErrorIs(t, errs.NewInsufficientFundsError("a", "d"), errs.ErrInsufficientFunds)
	require.ErrorIs(t, errs.NewCycleDetectedError("/p"), errs.ErrCycleDetected)
}
