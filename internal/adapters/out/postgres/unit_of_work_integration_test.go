package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "nexaci/internal/adapters/out/postgres"
	"nexaci/internal/adapters/out/postgres/accountrepo"
	"nexaci/internal/adapters/out/postgres/mandaterepo"
	"nexaci/internal/adapters/out/postgres/shipmentrepo"
	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/shipment"
	"nexaci/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction boundaries of the
// GORM-based unit of work with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &mandaterepo.MandateDTO{}, &accountrepo.AccountDTO{})
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments, mandates, accounts").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	client := suite.createClient("Awa Diabaté", "0700000001")
	suite.Require().NoError(uow.AccountRepository().Add(ctx, client))

	s := suite.createShipment(client.ID(), 1)
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))

	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	restored, err := verify.ShipmentRepository().Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(s.ID(), restored.ID())

	restoredClient, err := verify.AccountRepository().Get(ctx, client.ID())
	suite.Require().NoError(err)
	suite.Equal(client.ID(), restoredClient.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	client := suite.createClient("Issa Koné", "0700000002")
	suite.Require().NoError(uow.AccountRepository().Add(ctx, client))

	s := suite.createShipment(client.ID(), 2)
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))

	suite.Require().NoError(uow.Rollback(ctx))

	var shipmentCount, accountCount int64
	suite.Require().NoError(suite.db.Model(&shipmentrepo.ShipmentDTO{}).Count(&shipmentCount).Error)
	suite.Require().NoError(suite.db.Model(&accountrepo.AccountDTO{}).Count(&accountCount).Error)
	suite.Zero(shipmentCount)
	suite.Zero(accountCount)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.Require().Error(uow.Commit(context.Background()))
	suite.Require().Error(uow.Rollback(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) createClient(name, rawPhone string) *account.Account {
	phone, err := kernel.NewPhone(rawPhone)
	suite.Require().NoError(err)
	acc, err := account.NewAccount(kernel.NewUUID(), name, "", phone, account.RoleClient, nil)
	suite.Require().NoError(err)
	return acc
}

func (suite *UnitOfWorkIntegrationTestSuite) createShipment(clientID kernel.UUID, seq int64) *shipment.Shipment {
	ref, err := kernel.NewReference(kernel.KindShipment, time.Now().Year(), seq)
	suite.Require().NoError(err)
	s, err := shipment.NewShipment(kernel.NewUUID(), ref, clientID, nil, time.Now().UTC())
	suite.Require().NoError(err)
	return s
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
