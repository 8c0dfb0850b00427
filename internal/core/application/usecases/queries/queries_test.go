package queries_test

import (
	"testing"

	"aos/internal/core/application/usecases/queries"
	"aos/internal/core/domain/model/delivery"
	"aos/internal/core/domain/model/kernel"
	"aos/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPath(t *testing.T, s string) kernel.Path {
	t.Helper()
	path, err := kernel.PathFromString(s)
	require.NoError(t, err)
	return path
}

func TestNewGetKeyAddressQuery_Valid(t *testing.T) {
	query, err := queries.NewGetKeyAddressQuery("economics")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "economics", query.Key())
}

func TestNewGetKeyAddressQuery_EmptyKey(t *testing.T) {
	_, err := queries.NewGetKeyAddressQuery("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetKeyAddressQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetKeyAddressQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetKeyAddressQueryIsNotConstructed)
}

func TestNewVerifyAddressQuery_Valid(t *testing.T) {
	path := mustPath(t, "/home/alice/splitter")

	query, err := queries.NewVerifyAddressQuery(path)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.Path().IsEqual(path))
}

func TestNewVerifyAddressQuery_UnconstructedPath(t *testing.T) {
	_, err := queries.NewVerifyAddressQuery(kernel.Path{})
	require.Error(t, err)
}

func TestVerifyAddressQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.VerifyAddressQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrVerifyAddressQueryIsNotConstructed)
}

func TestNewResolveVersionQuery_Valid(t *testing.T) {
	query, err := queries.NewResolveVersionQuery("splitter", "latest")
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "splitter", query.ModuleType())
	assert.True(t, query.Constraint().IsLatest())
}

func TestNewResolveVersionQuery_ExactConstraint(t *testing.T) {
	query, err := queries.NewResolveVersionQuery("splitter", "1.2.0")
	require.NoError(t, err)
	assert.False(t, query.Constraint().IsLatest())
}

func TestNewResolveVersionQuery_InvalidInput(t *testing.T) {
	tests := map[string]struct {
		moduleType string
		constraint string
	}{
		"empty module type":      {moduleType: "", constraint: "latest"},
		"uppercase module type":  {moduleType: "Splitter", constraint: "latest"},
		"malformed constraint":   {moduleType: "splitter", constraint: "not-a-version"},
		"negative version parts": {moduleType: "splitter", constraint: "1.-2.0"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := queries.NewResolveVersionQuery(tc.moduleType, tc.constraint)
			require.Error(t, err)
		})
	}
}

func TestResolveVersionQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ResolveVersionQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrResolveVersionQueryIsNotConstructed)
}

func TestNewGetPendingDeliveriesQuery_Valid(t *testing.T) {
	query, err := queries.NewGetPendingDeliveriesQuery(delivery.AwaitingAck)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, delivery.AwaitingAck, query.Status())
}

func TestNewGetPendingDeliveriesQuery_InvalidStatus(t *testing.T) {
	_, err := queries.NewGetPendingDeliveriesQuery(delivery.Unknown)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestGetPendingDeliveriesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPendingDeliveriesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPendingDeliveriesQueryIsNotConstructed)
}
