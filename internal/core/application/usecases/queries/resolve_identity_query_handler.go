package queries

import (
	"context"
	"errors"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/ports"
	"nexaci/internal/pkg/errs"
)

// ResolveIdentityQueryHandler resolves identifiers to accounts. Phone lookups
// go through the identity cache first, keyed by the canonical spelling; a miss
// or a cache failure falls back to the variant lookup against the store, and
// the resolved mapping is written back on a best-effort basis. Email lookups
// never touch the cache.
type ResolveIdentityQueryHandler struct {
	accounts ports.AccountRepository
	cache    ports.IdentityCache
}

// NewResolveIdentityQueryHandler creates a handler for identity resolution.
// The cache may be nil, in which case every lookup goes to the store.
func NewResolveIdentityQueryHandler(
	accounts ports.AccountRepository,
	cache ports.IdentityCache,
) ResolveIdentityQueryHandler {
	return ResolveIdentityQueryHandler{accounts: accounts, cache: cache}
}

// Handle resolves the identifier to an account identity.
// Returns errs.ErrObjectNotFound when no account matches.
func (h ResolveIdentityQueryHandler) Handle(
	ctx context.Context,
	query ResolveIdentityQuery,
) (ResolveIdentityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveIdentityQueryResponse{}, err
	}

	if query.IsEmail() {
		found, err := h.accounts.FindByEmail(ctx, query.Identifier())
		if err != nil {
			return ResolveIdentityQueryResponse{}, err
		}
		return toIdentityResponse(found), nil
	}

	return h.resolvePhone(ctx, query.Identifier())
}

func (h ResolveIdentityQueryHandler) resolvePhone(
	ctx context.Context,
	rawPhone string,
) (ResolveIdentityQueryResponse, error) {
	canonical := kernel.NormalizePhone(rawPhone)

	if h.cache != nil {
		if accountID, err := h.cache.Get(ctx, canonical); err == nil {
			found, getErr := h.accounts.Get(ctx, accountID)
			if getErr == nil {
				return toIdentityResponse(found), nil
			}
			// A stale mapping must not shadow the store.
			if !errors.Is(getErr, errs.ErrObjectNotFound) {
				return ResolveIdentityQueryResponse{}, getErr
			}
			_ = h.cache.Invalidate(ctx, canonical)
		}
	}

	found, err := h.accounts.FindByPhone(ctx, kernel.PhoneVariants(rawPhone))
	if err != nil {
		return ResolveIdentityQueryResponse{}, err
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, canonical, found.ID())
	}

	return toIdentityResponse(found), nil
}

func toIdentityResponse(found *account.Account) ResolveIdentityQueryResponse {
	return ResolveIdentityQueryResponse{
		AccountID: found.ID(),
		Name:      found.Name(),
		Role:      found.Role().String(),
		Phone:     found.Phone().String(),
		Email:     found.Email(),
	}
}
