package shipment_test

import (
	"fmt"
	"testing"

	"nexaci/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate all named statuses", func(t *testing.T) {
		statuses := []shipment.Status{
			shipment.StatusPending,
			shipment.StatusPreparing,
			shipment.StatusPickedUp,
			shipment.StatusInTransit,
			shipment.StatusOutForDelivery,
			shipment.StatusDelivered,
			shipment.StatusDeliveryFailed,
			shipment.StatusCanceled,
		}

		for _, status := range statuses {
			t.Run(fmt.Sprintf("should validate %s", status), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject unknown and out of range values", func(t *testing.T) {
		for _, status := range []shipment.Status{shipment.StatusUnknown, shipment.Status(-1), shipment.Status(100)} {
			require.Error(t, status.Validate())
		}
	})
}

func TestStatus_ParseStatus(t *testing.T) {
	t.Run("should round trip wire names", func(t *testing.T) {
		names := []string{
			"pending", "preparing", "picked_up", "in_transit",
			"out_for_delivery", "delivered", "delivery_failed", "canceled",
		}

		for _, name := range names {
			status, err := shipment.ParseStatus(name)
			require.NoError(t, err)
			assert.Equal(t, name, status.String())
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := shipment.ParseStatus("lost")
		require.Error(t, err)
	})
}

func TestStatus_RuleFor(t *testing.T) {
	legalEdges := []struct {
		from shipment.Status
		to   shipment.Status
	}{
		{shipment.StatusPending, shipment.StatusPreparing},
		{shipment.StatusPending, shipment.StatusCanceled},
		{shipment.StatusPreparing, shipment.StatusPickedUp},
		{shipment.StatusPreparing, shipment.StatusCanceled},
		{shipment.StatusPickedUp, shipment.StatusInTransit},
		{shipment.StatusInTransit, shipment.StatusOutForDelivery},
		{shipment.StatusOutForDelivery, shipment.StatusDelivered},
		{shipment.StatusOutForDelivery, shipment.StatusDeliveryFailed},
		{shipment.StatusDeliveryFailed, shipment.StatusOutForDelivery},
	}

	t.Run("should declare every legal edge", func(t *testing.T) {
		for _, edge := range legalEdges {
			t.Run(fmt.Sprintf("%s to %s", edge.from, edge.to), func(t *testing.T) {
				_, ok := edge.from.RuleFor(edge.to)
				assert.True(t, ok)
			})
		}
	})

	t.Run("should reject every pair outside the graph", func(t *testing.T) {
		all := []shipment.Status{
			shipment.StatusPending, shipment.StatusPreparing, shipment.StatusPickedUp,
			shipment.StatusInTransit, shipment.StatusOutForDelivery, shipment.StatusDelivered,
			shipment.StatusDeliveryFailed, shipment.StatusCanceled,
		}

		legal := make(map[[2]shipment.Status]bool)
		for _, edge := range legalEdges {
			legal[[2]shipment.Status{edge.from, edge.to}] = true
		}

		for _, from := range all {
			for _, to := range all {
				if legal[[2]shipment.Status{from, to}] {
					continue
				}
				_, ok := from.RuleFor(to)
				assert.False(t, ok, "%s to %s should not be an edge", from, to)
			}
		}
	})

	t.Run("terminal statuses have no outgoing edges", func(t *testing.T) {
		assert.True(t, shipment.StatusDelivered.IsTerminal())
		assert.True(t, shipment.StatusCanceled.IsTerminal())
		assert.False(t, shipment.StatusDeliveryFailed.IsTerminal())
	})

	t.Run("fulfillment edges require an assigned agent", func(t *testing.T) {
		rule, ok := shipment.StatusPreparing.RuleFor(shipment.StatusPickedUp)
		require.True(t, ok)
		assert.True(t, rule.RequiresAgent)

		rule, ok = shipment.StatusOutForDelivery.RuleFor(shipment.StatusDelivered)
		require.True(t, ok)
		assert.True(t, rule.RequiresAgent)

		rule, ok = shipment.StatusPending.RuleFor(shipment.StatusCanceled)
		require.True(t, ok)
		assert.False(t, rule.RequiresAgent)
	})

	t.Run("client may only cancel from pending", func(t *testing.T) {
		rule, ok := shipment.StatusPending.RuleFor(shipment.StatusCanceled)
		require.True(t, ok)
		assert.True(t, rule.AllowClient)

		rule, ok = shipment.StatusPreparing.RuleFor(shipment.StatusCanceled)
		require.True(t, ok)
		assert.False(t, rule.AllowClient)
	})
}
