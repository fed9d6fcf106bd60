package ports

import (
	"context"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for account aggregates.
type AccountRepository interface {
	// Add persists a new account aggregate to storage.
	// Returns errs.ErrObjectAlreadyExists when the phone or email is taken.
	Add(ctx context.Context, aggregate *account.Account) error

	// Update persists changes to an existing account aggregate.
	Update(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// FindByPhone retrieves the account whose stored phone matches any of the
	// given variants. Variants come from kernel.PhoneVariants and cover the
	// historical spellings a number may have been stored under.
	FindByPhone(ctx context.Context, variants []string) (*account.Account, error)

	// FindByEmail retrieves the account with the given email, compared
	// case-insensitively.
	FindByEmail(ctx context.Context, email string) (*account.Account, error)
}
