package commands_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"nexaci/internal/core/application/usecases/commands"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/shipment"
	"nexaci/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newActorFixture(t)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), f.client.ID(), &f.agencyID)
	require.NoError(t, err)

	year := time.Now().UTC().Year()
	repo := new(MockShipmentRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUoW)

	uow.On("ShipmentRepository").Return(repo)
	uow.On("AccountRepository").Return(accounts)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	repo.On("NextSequence", ctx, year).Return(7, nil).Once()
	accounts.On("Get", ctx, f.client.ID()).Return(f.client, nil).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateShipmentCommandHandler(factory)
	ref, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("CLS-%d-000007", year), ref.String())
	repo.AssertExpectations(t)
	accounts.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_RetriesOnReferenceConflict(t *testing.T) {
	ctx := t.Context()
	f := newActorFixture(t)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), f.client.ID(), nil)
	require.NoError(t, err)

	year := time.Now().UTC().Year()
	repo := new(MockShipmentRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUoW)

	uow.On("ShipmentRepository").Return(repo)
	uow.On("AccountRepository").Return(accounts)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	accounts.On("Get", ctx, f.client.ID()).Return(f.client, nil)
	repo.On("NextSequence", ctx, year).Return(3, nil).Once()
	repo.On("NextSequence", ctx, year).Return(4, nil).Once()

	// A competing creation wins sequence 3; sequence 4 goes through.
	repo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).
		Return(errs.NewObjectAlreadyExistsError("shipment", "taken")).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateShipmentCommandHandler(factory)
	ref, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("CLS-%d-000004", year), ref.String())
	require.False(t, ref.IsFallback())
	repo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_FallsBackWhenCountingFails(t *testing.T) {
	ctx := t.Context()
	f := newActorFixture(t)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), f.client.ID(), nil)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUoW)

	uow.On("ShipmentRepository").Return(repo)
	uow.On("AccountRepository").Return(accounts)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	repo.On("NextSequence", ctx, mock.AnythingOfType("int")).
		Return(0, errors.New("count query failed")).Once()
	accounts.On("Get", ctx, f.client.ID()).Return(f.client, nil).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateShipmentCommandHandler(factory)
	ref, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, ref.IsFallback(), "counting failure must yield a fallback reference")
	require.Equal(t, kernel.KindShipment, ref.Kind())
	repo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_FallsBackAfterRetryBudget(t *testing.T) {
	ctx := t.Context()
	f := newActorFixture(t)
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), f.client.ID(), nil)
	require.NoError(t, err)

	year := time.Now().UTC().Year()
	repo := new(MockShipmentRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUoW)

	uow.On("ShipmentRepository").Return(repo)
	uow.On("AccountRepository").Return(accounts)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	accounts.On("Get", ctx, f.client.ID()).Return(f.client, nil)
	repo.On("NextSequence", ctx, year).Return(1, nil).Times(5)

	// Every canonical reference is taken; only the fallback lands.
	repo.On("Add", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return !s.Reference().IsFallback()
	})).Return(errs.NewObjectAlreadyExistsError("shipment", "taken")).Times(5)
	repo.On("Add", ctx, mock.MatchedBy(func(s *shipment.Shipment) bool {
		return s.Reference().IsFallback()
	})).Return(nil).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateShipmentCommandHandler(factory)
	ref, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.True(t, ref.IsFallback())
	repo.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_UnknownClientFails(t *testing.T) {
	ctx := t.Context()
	clientID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), clientID, nil)
	require.NoError(t, err)

	year := time.Now().UTC().Year()
	repo := new(MockShipmentRepository)
	accounts := new(MockAccountRepository)
	uow := new(MockUoW)

	uow.On("ShipmentRepository").Return(repo)
	uow.On("AccountRepository").Return(accounts)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	repo.On("NextSequence", ctx, year).Return(1, nil).Once()
	accounts.On("Get", ctx, clientID).Return(nil, errs.NewObjectNotFoundError("account", clientID.String())).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateShipmentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
	accounts.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCreateShipmentCommandHandler(new(MockShipmentUoWFactory))

	_, err := h.Handle(t.Context(), commands.CreateShipmentCommand{})

	require.ErrorIs(t, err, commands.ErrCreateShipmentCommandIsNotConstructed)
}

func TestNewCreateShipmentCommand_Validation(t *testing.T) {
	t.Run("should reject zero ids", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(kernel.UUID{}, kernel.NewUUID(), nil)
		require.Error(t, err)

		_, err = commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.UUID{}, nil)
		require.Error(t, err)
	})

	t.Run("should reject zero agency id when provided", func(t *testing.T) {
		_, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), &kernel.UUID{})
		require.Error(t, err)
	})
}
