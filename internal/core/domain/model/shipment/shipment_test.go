package shipment_test

import (
	"testing"
	"time"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/lifecycle"
	"nexaci/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	agencyID kernel.UUID
	client   *account.Account
	courier  *account.Account
	manager  *account.Account
	admin    *account.Account
	now      time.Time
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	agencyID := kernel.NewUUID()
	phone := func(raw string) kernel.Phone {
		p, err := kernel.NewPhone(raw)
		require.NoError(t, err)
		return p
	}

	client, err := account.NewAccount(kernel.NewUUID(), "Awa Diabaté", "", phone("0700000001"), account.RoleClient, nil)
	require.NoError(t, err)
	courier, err := account.NewAccount(kernel.NewUUID(), "Issa Koné", "", phone("0700000002"), account.RoleCourier, &agencyID)
	require.NoError(t, err)
	manager, err := account.NewAccount(kernel.NewUUID(), "Mariam Touré", "", phone("0700000003"), account.RoleManager, &agencyID)
	require.NoError(t, err)
	admin, err := account.NewAccount(kernel.NewUUID(), "Fanta Keita", "", phone("0700000004"), account.RoleAdmin, nil)
	require.NoError(t, err)

	return fixture{
		agencyID: agencyID,
		client:   client,
		courier:  courier,
		manager:  manager,
		admin:    admin,
		now:      time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
	}
}

func (f fixture) newShipment(t *testing.T) *shipment.Shipment {
	t.Helper()

	ref, err := kernel.NewReference(kernel.KindShipment, 2026, 1)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), ref, f.client.ID(), &f.agencyID, f.now)
	require.NoError(t, err)
	return s
}

func TestNewShipment(t *testing.T) {
	f := newFixture(t)

	t.Run("should seed history with initial status", func(t *testing.T) {
		s := f.newShipment(t)

		require.NoError(t, s.Validate())
		assert.Equal(t, shipment.StatusPending, s.Status())

		history := s.History()
		require.Len(t, history, 1)
		assert.Equal(t, s.Status().String(), history[0].Status())
		assert.Nil(t, history[0].ActorID())
		assert.Nil(t, s.AssignedAgent())
	})

	t.Run("should reject mandate reference", func(t *testing.T) {
		ref, err := kernel.NewReference(kernel.KindMandate, 2026, 1)
		require.NoError(t, err)

		_, err = shipment.NewShipment(kernel.NewUUID(), ref, f.client.ID(), nil, f.now)
		require.Error(t, err)
	})

	t.Run("non constructed shipment should fail validation", func(t *testing.T) {
		var s shipment.Shipment
		require.ErrorIs(t, s.Validate(), shipment.ErrShipmentIsNotConstructed)
	})
}

func TestShipment_TransitionTo(t *testing.T) {
	t.Run("client may cancel own pending shipment", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)

		err := s.TransitionTo(shipment.StatusCanceled, f.client, "changed my mind", nil, f.now.Add(time.Minute))

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusCanceled, s.Status())

		history := s.History()
		require.Len(t, history, 2)
		assert.Equal(t, "canceled", history[1].Status())
		require.NotNil(t, history[1].ActorID())
		assert.True(t, history[1].ActorID().IsEqual(f.client.ID()))
	})

	t.Run("illegal edge fails regardless of role", func(t *testing.T) {
		f := newFixture(t)
		for _, actor := range []*account.Account{f.client, f.courier, f.manager, f.admin} {
			s := f.newShipment(t)

			err := s.TransitionTo(shipment.StatusDelivered, actor, "", nil, f.now)

			require.ErrorIs(t, err, lifecycle.ErrIllegalTransition)
			assert.Equal(t, shipment.StatusPending, s.Status())
			assert.Len(t, s.History(), 1)
		}
	})

	t.Run("agent requiring edge fails NotAssigned before authorization", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)
		require.NoError(t, s.TransitionTo(shipment.StatusPreparing, f.manager, "", nil, f.now))

		err := s.TransitionTo(shipment.StatusPickedUp, f.courier, "", nil, f.now)

		require.ErrorIs(t, err, lifecycle.ErrNotAssigned)
	})

	t.Run("assigned courier may advance fulfillment edges", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)
		require.NoError(t, s.TransitionTo(shipment.StatusPreparing, f.manager, "", nil, f.now))
		require.NoError(t, s.Assign(f.courier, f.manager, f.now))

		require.NoError(t, s.TransitionTo(shipment.StatusPickedUp, f.courier, "", nil, f.now))
		require.NoError(t, s.TransitionTo(shipment.StatusInTransit, f.courier, "", nil, f.now))
		require.NoError(t, s.TransitionTo(shipment.StatusOutForDelivery, f.courier, "", nil, f.now))
		require.NoError(t, s.TransitionTo(shipment.StatusDelivered, f.courier, "recipient signed", map[string]any{
			"lat": 5.345317,
			"lng": -4.024429,
		}, f.now))

		assert.Equal(t, shipment.StatusDelivered, s.Status())

		history := s.History()
		require.Len(t, history, 6)
		last := history[len(history)-1]
		assert.Equal(t, "delivered", last.Status())
		assert.Equal(t, "recipient signed", last.Description())
		assert.Contains(t, last.Details(), "lat")
	})

	t.Run("unassigned courier is not authorized even once another agent is set", func(t *testing.T) {
		f := newFixture(t)
		other, err := account.NewAccount(kernel.NewUUID(), "Sekou Bamba", "", mustFixturePhone(t, "0700000009"), account.RoleCourier, &f.agencyID)
		require.NoError(t, err)

		s := f.newShipment(t)
		require.NoError(t, s.TransitionTo(shipment.StatusPreparing, f.manager, "", nil, f.now))
		require.NoError(t, s.Assign(f.courier, f.manager, f.now))

		err = s.TransitionTo(shipment.StatusPickedUp, other, "", nil, f.now)
		require.ErrorIs(t, err, lifecycle.ErrUnauthorized)
	})

	t.Run("client may not advance fulfillment edges", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)
		require.NoError(t, s.TransitionTo(shipment.StatusPreparing, f.admin, "", nil, f.now))
		require.NoError(t, s.Assign(f.courier, f.manager, f.now))

		err := s.TransitionTo(shipment.StatusPickedUp, f.client, "", nil, f.now)

		require.ErrorIs(t, err, lifecycle.ErrUnauthorized)
	})

	t.Run("manager of another agency is not authorized", func(t *testing.T) {
		f := newFixture(t)
		otherAgency := kernel.NewUUID()
		foreignManager, err := account.NewAccount(kernel.NewUUID(), "Aya N'Guessan", "", mustFixturePhone(t, "0700000010"), account.RoleManager, &otherAgency)
		require.NoError(t, err)

		s := f.newShipment(t)
		err = s.TransitionTo(shipment.StatusPreparing, foreignManager, "", nil, f.now)

		require.ErrorIs(t, err, lifecycle.ErrUnauthorized)
	})

	t.Run("failed delivery can be retried", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)
		require.NoError(t, s.TransitionTo(shipment.StatusPreparing, f.manager, "", nil, f.now))
		require.NoError(t, s.Assign(f.courier, f.manager, f.now))
		require.NoError(t, s.TransitionTo(shipment.StatusPickedUp, f.courier, "", nil, f.now))
		require.NoError(t, s.TransitionTo(shipment.StatusInTransit, f.courier, "", nil, f.now))
		require.NoError(t, s.TransitionTo(shipment.StatusOutForDelivery, f.courier, "", nil, f.now))
		require.NoError(t, s.TransitionTo(shipment.StatusDeliveryFailed, f.courier, "recipient absent", nil, f.now))

		err := s.TransitionTo(shipment.StatusOutForDelivery, f.courier, "second attempt", nil, f.now)

		require.NoError(t, err)
		assert.Equal(t, shipment.StatusOutForDelivery, s.Status())
	})

	t.Run("terminal statuses accept no transition", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)
		require.NoError(t, s.TransitionTo(shipment.StatusCanceled, f.client, "", nil, f.now))

		err := s.TransitionTo(shipment.StatusPreparing, f.admin, "", nil, f.now)

		require.ErrorIs(t, err, lifecycle.ErrIllegalTransition)
	})
}

func TestShipment_Assign(t *testing.T) {
	t.Run("manager of owner agency may assign eligible courier", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)

		err := s.Assign(f.courier, f.manager, f.now)

		require.NoError(t, err)
		require.NotNil(t, s.AssignedAgent())
		assert.True(t, s.AssignedAgent().IsEqual(f.courier.ID()))
		assert.Equal(t, shipment.StatusPending, s.Status(), "assignment must not change status")
		assert.Len(t, s.History(), 1, "first assignment appends no history entry")
	})

	t.Run("client may not assign", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)

		err := s.Assign(f.courier, f.client, f.now)

		require.ErrorIs(t, err, lifecycle.ErrUnauthorized)
	})

	t.Run("courier may not assign themself", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)

		err := s.Assign(f.courier, f.courier, f.now)

		require.ErrorIs(t, err, lifecycle.ErrUnauthorized)
	})

	t.Run("non courier agent is not eligible", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)

		err := s.Assign(f.manager, f.admin, f.now)

		require.ErrorIs(t, err, lifecycle.ErrAgentNotEligible)
	})

	t.Run("agent from another agency is not eligible", func(t *testing.T) {
		f := newFixture(t)
		otherAgency := kernel.NewUUID()
		foreignCourier, err := account.NewAccount(kernel.NewUUID(), "Moussa Traoré", "", mustFixturePhone(t, "0700000011"), account.RoleCourier, &otherAgency)
		require.NoError(t, err)

		s := f.newShipment(t)
		err = s.Assign(foreignCourier, f.manager, f.now)

		require.ErrorIs(t, err, lifecycle.ErrAgentNotEligible)
	})

	t.Run("reassignment appends informational history entry", func(t *testing.T) {
		f := newFixture(t)
		replacement, err := account.NewAccount(kernel.NewUUID(), "Sekou Bamba", "", mustFixturePhone(t, "0700000012"), account.RoleCourier, &f.agencyID)
		require.NoError(t, err)

		s := f.newShipment(t)
		require.NoError(t, s.Assign(f.courier, f.manager, f.now))

		err = s.Assign(replacement, f.manager, f.now.Add(time.Hour))

		require.NoError(t, err)
		assert.True(t, s.AssignedAgent().IsEqual(replacement.ID()))

		history := s.History()
		require.Len(t, history, 2)
		assert.Equal(t, "pending", history[1].Status(), "reassignment entry keeps current status")
		assert.Contains(t, history[1].Description(), "reassigned")
	})

	t.Run("may not assign to terminal shipment", func(t *testing.T) {
		f := newFixture(t)
		s := f.newShipment(t)
		require.NoError(t, s.TransitionTo(shipment.StatusCanceled, f.client, "", nil, f.now))

		err := s.Assign(f.courier, f.manager, f.now)

		require.Error(t, err)
	})
}

func mustFixturePhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	p, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return p
}
