// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work spans one business transaction: every repository it
// hands out shares the same underlying gorm transaction, so a transition and
// its history append either both land or neither does.
package postgres

import (
	"context"

	"nexaci/internal/adapters/out/postgres/accountrepo"
	"nexaci/internal/adapters/out/postgres/mandaterepo"
	"nexaci/internal/adapters/out/postgres/shipmentrepo"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database handle. Each business operation gets a fresh unit of work with its
// own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the shipment,
// mandate and account repositories and tracks aggregates modified within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Repeated calls on the same instance do not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ShipmentRepository returns a shipment repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.handle(), uow)
}

// MandateRepository returns a mandate repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) MandateRepository() ports.MandateRepository {
	return mandaterepo.NewGormMandateRepository(uow.handle(), uow)
}

// AccountRepository returns an account repository bound to the current
// transaction, or to the main connection when none is active.
func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.handle(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repository implementations call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// GetTrackedAggregates returns the aggregates modified within this unit of work.
func (uow *GormUnitOfWork) GetTrackedAggregates() []trackedAggregate {
	return uow.trackedAggregates
}

func (uow *GormUnitOfWork) handle() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
