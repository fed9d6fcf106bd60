package ports

import (
	"context"

	"nexaci/internal/core/domain/model/kernel"
)

// IdentityCache caches the mapping from a canonical phone number to the
// owning account's identifier. It is a lookup accelerator only: a miss or a
// cache failure must fall back to the repository, never surface to callers
// as a resolution failure.
type IdentityCache interface {
	// Get returns the cached account id for a canonical phone number.
	// Returns errs.ErrObjectNotFound on a miss.
	Get(ctx context.Context, canonicalPhone string) (kernel.UUID, error)

	// Set stores the account id for a canonical phone number.
	Set(ctx context.Context, canonicalPhone string, accountID kernel.UUID) error

	// Invalidate removes a cached entry, used when an account's phone changes.
	Invalidate(ctx context.Context, canonicalPhone string) error
}
