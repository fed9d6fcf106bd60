package ports

import (
	"context"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/mandate"
)

// MandateRepository defines the persistence contract for mandate aggregates.
type MandateRepository interface {
	// Add persists a new mandate aggregate to storage.
	// Returns errs.ErrObjectAlreadyExists when the reference is already taken.
	Add(ctx context.Context, aggregate *mandate.Mandate) error

	// Update persists changes to an existing mandate aggregate, guarded by
	// the status the caller observed when loading it. Returns
	// lifecycle.ErrConcurrentModification when the stored status no longer
	// matches expectedStatus.
	Update(ctx context.Context, aggregate *mandate.Mandate, expectedStatus mandate.Status) error

	// Get retrieves a mandate aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*mandate.Mandate, error)

	// GetByReference retrieves a mandate aggregate by its tracking reference.
	GetByReference(ctx context.Context, reference kernel.Reference) (*mandate.Mandate, error)

	// NextSequence returns the next free sequence number for mandate
	// references created in the given year, based on the stored count.
	NextSequence(ctx context.Context, year int) (int, error)

	// GetAllUnassigned retrieves non-terminal mandates without an agent.
	GetAllUnassigned(ctx context.Context) ([]*mandate.Mandate, error)

	// GetAllInStatus retrieves all mandates currently in the given status.
	GetAllInStatus(ctx context.Context, status mandate.Status) ([]*mandate.Mandate, error)
}
