package commands_test

import (
	"context"
	"testing"
	"time"

	"nexaci/internal/core/application/usecases/commands"
	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/mandate"
	"nexaci/internal/core/domain/model/shipment"
	"nexaci/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment, expected shipment.Status) error {
	args := m.Called(ctx, s, expected)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByReference(ctx context.Context, ref kernel.Reference) (*shipment.Shipment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) NextSequence(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

func (m *MockShipmentRepository) GetAllUnassigned(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllInStatus(ctx context.Context, status shipment.Status) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockMandateRepository struct{ mock.Mock }

func (m *MockMandateRepository) Add(ctx context.Context, a *mandate.Mandate) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockMandateRepository) Update(ctx context.Context, a *mandate.Mandate, expected mandate.Status) error {
	args := m.Called(ctx, a, expected)
	return args.Error(0)
}

func (m *MockMandateRepository) Get(ctx context.Context, id kernel.UUID) (*mandate.Mandate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mandate.Mandate), args.Error(1)
}

func (m *MockMandateRepository) GetByReference(ctx context.Context, ref kernel.Reference) (*mandate.Mandate, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mandate.Mandate), args.Error(1)
}

func (m *MockMandateRepository) NextSequence(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

func (m *MockMandateRepository) GetAllUnassigned(ctx context.Context) ([]*mandate.Mandate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mandate.Mandate), args.Error(1)
}

func (m *MockMandateRepository) GetAllInStatus(ctx context.Context, status mandate.Status) ([]*mandate.Mandate, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mandate.Mandate), args.Error(1)
}

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByPhone(ctx context.Context, variants []string) (*account.Account, error) {
	args := m.Called(ctx, variants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

// MockUoW implements every unit of work interface the command handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) MandateRepository() ports.MandateRepository {
	args := m.Called()
	return args.Get(0).(ports.MandateRepository)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockMandateUoWFactory struct{ mock.Mock }

func (m *MockMandateUoWFactory) Create() commands.MandateUoW {
	args := m.Called()
	return args.Get(0).(commands.MandateUoW)
}

type MockAccountUoWFactory struct{ mock.Mock }

func (m *MockAccountUoWFactory) Create() commands.AccountUoW {
	args := m.Called()
	return args.Get(0).(commands.AccountUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// Shared fixture accounts for handler tests.
type actorFixture struct {
	agencyID kernel.UUID
	client   *account.Account
	courier  *account.Account
	manager  *account.Account
}

func newActorFixture(t *testing.T) actorFixture {
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

	return actorFixture{agencyID: agencyID, client: client, courier: courier, manager: manager}
}

func (f actorFixture) pendingShipment(t *testing.T, id kernel.UUID) *shipment.Shipment {
	t.Helper()

	ref, err := kernel.NewReference(kernel.KindShipment, 2026, 1)
	require.NoError(t, err)
	s, err := shipment.NewShipment(id, ref, f.client.ID(), &f.agencyID, time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return s
}

func (f actorFixture) pendingMandate(t *testing.T, id kernel.UUID) *mandate.Mandate {
	t.Helper()

	ref, err := kernel.NewReference(kernel.KindMandate, 2026, 1)
	require.NoError(t, err)
	m, err := mandate.NewMandate(id, ref, f.client.ID(), &f.agencyID, time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return m
}
