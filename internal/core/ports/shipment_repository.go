// Package ports defines repository and cache interfaces for the fulfillment
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// Returns errs.ErrObjectAlreadyExists when the reference is already taken.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate, guarded by
	// the status the caller observed when loading it. Returns
	// lifecycle.ErrConcurrentModification when the stored status no longer
	// matches expectedStatus.
	Update(ctx context.Context, aggregate *shipment.Shipment, expectedStatus shipment.Status) error

	// Get retrieves a shipment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByReference retrieves a shipment aggregate by its tracking reference.
	GetByReference(ctx context.Context, reference kernel.Reference) (*shipment.Shipment, error)

	// NextSequence returns the next free sequence number for shipment
	// references created in the given year, based on the stored count.
	NextSequence(ctx context.Context, year int) (int, error)

	// GetAllUnassigned retrieves non-terminal shipments without an agent.
	GetAllUnassigned(ctx context.Context) ([]*shipment.Shipment, error)

	// GetAllInStatus retrieves all shipments currently in the given status.
	GetAllInStatus(ctx context.Context, status shipment.Status) ([]*shipment.Shipment, error)
}
