package queries

import (
	"errors"
	"strings"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/errs"
	"nexaci/internal/pkg/guard"
)

var ErrResolveIdentityQueryIsNotConstructed = errors.New(
	"ResolveIdentityQuery must be created via NewResolveIdentityQuery constructor",
)

// ResolveIdentityQuery finds the account behind a free-form identifier.
// An identifier containing "@" is treated as an email address; anything else
// is treated as an Ivorian phone number and matched against every historical
// spelling of that number.
//
// Example:
//
//	query, err := NewResolveIdentityQuery("07 89 01 23 45")
//	if err != nil {
//	    return err
//	}
//
//	identity, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to resolve identity: %w", err)
//	}
//
//	fmt.Printf("resolved %s (%s)\n", identity.Name, identity.Role)
type ResolveIdentityQuery struct {
	identifier string
	isEmail    bool

	guard guard.ConstructorGuard
}

// NewResolveIdentityQuery creates an identity resolution query.
// The identifier is classified here so handlers never re-parse it.
func NewResolveIdentityQuery(identifier string) (ResolveIdentityQuery, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ResolveIdentityQuery{}, errs.NewValueIsRequiredError("identifier")
	}

	isEmail := strings.Contains(identifier, "@")
	if isEmail {
		identifier = strings.ToLower(identifier)
	} else if !strings.ContainsAny(identifier, "0123456789") {
		return ResolveIdentityQuery{}, errs.NewValueIsInvalidError("identifier")
	}

	return ResolveIdentityQuery{
		identifier: identifier,
		isEmail:    isEmail,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Identifier returns the trimmed identifier as the caller supplied it.
func (q ResolveIdentityQuery) Identifier() string {
	return q.identifier
}

// IsEmail reports whether the identifier was classified as an email address.
func (q ResolveIdentityQuery) IsEmail() bool {
	return q.isEmail
}

// Validate ensures the query was created through the constructor.
// Returns ErrResolveIdentityQueryIsNotConstructed if validation fails.
func (q ResolveIdentityQuery) Validate() error {
	return q.guard.Validate(ErrResolveIdentityQueryIsNotConstructed)
}

// ResolveIdentityQueryResponse is the resolved account identity.
type ResolveIdentityQueryResponse struct {
	AccountID kernel.UUID
	Name      string
	Role      string
	Phone     string
	Email     string
}
