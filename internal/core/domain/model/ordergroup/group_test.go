package ordergroup_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderGroup(t *testing.T) {
	t.Run("creates group in pending status", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		providerID := kernel.NewUUID()

		g, err := ordergroup.NewOrderGroup(id, orderID, providerID)

		require.NoError(t, err)
		assert.True(t, g.ID().IsEqual(id))
		assert.True(t, g.OrderID().IsEqual(orderID))
		assert.True(t, g.ProviderID().IsEqual(providerID))
		assert.Equal(t, ordergroup.Pending, g.Status())
		require.NoError(t, g.Validate())
	})

	t.Run("rejects invalid identifiers", func(t *testing.T) {
		var zero kernel.UUID
		id := kernel.NewUUID()

		_, err := ordergroup.NewOrderGroup(zero, id, id)
		require.Error(t, err)

		_, err = ordergroup.NewOrderGroup(id, zero, id)
		require.Error(t, err)

		_, err = ordergroup.NewOrderGroup(id, id, zero)
		require.Error(t, err)
	})
}

func TestRestoreOrderGroup(t *testing.T) {
	t.Run("restores group with stored status", func(t *testing.T) {
		g, err := ordergroup.RestoreOrderGroup(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), ordergroup.InProgress)

		require.NoError(t, err)
		assert.Equal(t, ordergroup.InProgress, g.Status())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := ordergroup.RestoreOrderGroup(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), ordergroup.Unknown)

		require.Error(t, err)
	})
}

func TestOrderGroup_Validate(t *testing.T) {
	t.Run("zero value group is not constructed", func(t *testing.T) {
		var g ordergroup.OrderGroup

		require.ErrorIs(t, g.Validate(), ordergroup.ErrOrderGroupIsNotConstructed)
	})

	t.Run("nil group is not constructed", func(t *testing.T) {
		var g *ordergroup.OrderGroup

		require.ErrorIs(t, g.Validate(), ordergroup.ErrOrderGroupIsNotConstructed)
	})
}

func TestOrderGroup_ApplyDerivedStatus(t *testing.T) {
	g, err := ordergroup.NewOrderGroup(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	t.Run("applies valid status", func(t *testing.T) {
		require.NoError(t, g.ApplyDerivedStatus(ordergroup.Rejected))
		assert.Equal(t, ordergroup.Rejected, g.Status())

		// Derivation can move the group out of Rejected again when
		// the rejected service is deleted.
		require.NoError(t, g.ApplyDerivedStatus(ordergroup.Accepted))
		assert.Equal(t, ordergroup.Accepted, g.Status())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		require.Error(t, g.ApplyDerivedStatus(ordergroup.Unknown))
		require.Error(t, g.ApplyDerivedStatus(ordergroup.Status(42)))
	})
}

func TestOrderGroup_OverrideStatus(t *testing.T) {
	g, err := ordergroup.NewOrderGroup(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, g.OverrideStatus(ordergroup.Completed))
	assert.Equal(t, ordergroup.Completed, g.Status())

	require.Error(t, g.OverrideStatus(ordergroup.Unknown))
	assert.Equal(t, ordergroup.Completed, g.Status())
}

func TestOrderGroup_IsEqual(t *testing.T) {
	id := kernel.NewUUID()

	g1, err := ordergroup.NewOrderGroup(id, kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	g2, err := ordergroup.RestoreOrderGroup(id, kernel.NewUUID(), kernel.NewUUID(), ordergroup.Completed)
	require.NoError(t, err)

	assert.True(t, g1.IsEqual(g2))
	assert.False(t, g1.IsEqual(nil))
}
