// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"nexaci/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// MandateRepoFactory provides access to the mandate repository within a transaction.
	MandateRepoFactory interface {
		MandateRepository() ports.MandateRepository
	}

	// AccountRepoFactory provides access to the account repository within a transaction.
	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	// ShipmentUoW manages transactions for shipment operations. Account
	// access is included because every lifecycle mutation loads its actor.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
		AccountRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// MandateUoW manages transactions for mandate operations.
	MandateUoW interface {
		TxManager
		MandateRepoFactory
		AccountRepoFactory
	}

	// MandateUoWFactory creates new mandate unit of work instances.
	MandateUoWFactory interface {
		Create() MandateUoW
	}

	// AccountUoW manages transactions for account-only operations.
	AccountUoW interface {
		TxManager
		AccountRepoFactory
	}

	// AccountUoWFactory creates new account unit of work instances.
	AccountUoWFactory interface {
		Create() AccountUoW
	}

	// UoW manages transactions across all aggregates. Used by the
	// kind-dispatching commands that may touch either workflow.
	UoW interface {
		TxManager
		ShipmentRepoFactory
		MandateRepoFactory
		AccountRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
