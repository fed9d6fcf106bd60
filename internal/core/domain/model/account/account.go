package account

import (
	"errors"
	"strings"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/errs"
	"nexaci/internal/pkg/guard"
)

// ErrAccountIsNotConstructed is returned when an Account instance was not
// created through NewAccount or RestoreAccount.
var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")

// Account is a platform participant: a client, a fulfillment agent (courier),
// an agency manager, or an administrator.
//
// Invariants:
//   - The stored phone is the canonical form and is unique across the store
//     (the database unique index is the arbiter; lookup matches historical
//     formats through the phone variant set).
//   - Email, when present, is stored lowercased and is unique.
//   - Courier and manager accounts are bound to an agency.
type Account struct {
	id       kernel.UUID
	name     string
	email    string
	phone    kernel.Phone
	role     Role
	agencyID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAccount creates a participant. Email is optional; pass the empty string
// when the participant registered with a phone only.
func NewAccount(id kernel.UUID, name string, email string, phone kernel.Phone, role Role, agencyID *kernel.UUID) (*Account, error) {
	acc := &Account{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acc.setID(id),
		acc.setName(name),
		acc.setEmail(email),
		acc.setPhone(phone),
		acc.setRole(role),
		acc.setAgency(role, agencyID),
	); err != nil {
		return nil, err
	}

	return acc, nil
}

// RestoreAccount rebuilds a participant from persistence.
func RestoreAccount(id kernel.UUID, name string, email string, phone kernel.Phone, role Role, agencyID *kernel.UUID) (*Account, error) {
	return NewAccount(id, name, email, phone, role, agencyID)
}

// Validate ensures the account was created through a constructor.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// ID returns the account identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Name returns the display name.
func (a *Account) Name() string {
	return a.name
}

// Email returns the lowercased email, or the empty string when absent.
func (a *Account) Email() string {
	return a.email
}

// Phone returns the canonical phone identity.
func (a *Account) Phone() kernel.Phone {
	return a.phone
}

// Role returns the participant role.
func (a *Account) Role() Role {
	return a.role
}

// AgencyID returns the bound agency, or nil for roles without one.
func (a *Account) AgencyID() *kernel.UUID {
	return a.agencyID
}

// BelongsToAgency reports whether the account is bound to the given agency.
func (a *Account) BelongsToAgency(agencyID kernel.UUID) bool {
	return a.agencyID != nil && a.agencyID.IsEqual(agencyID)
}

func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Account) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	a.name = name
	return nil
}

func (a *Account) setEmail(email string) error {
	if email == "" {
		return nil
	}
	lowered := strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(lowered, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	a.email = lowered
	return nil
}

func (a *Account) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	a.phone = phone
	return nil
}

func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}

func (a *Account) setAgency(role Role, agencyID *kernel.UUID) error {
	if role.IsAgencyBound() && agencyID == nil {
		return errs.NewValueIsRequiredError("agencyId")
	}
	if agencyID != nil {
		if err := agencyID.Validate(); err != nil {
			return err
		}
		a.agencyID = agencyID
	}
	return nil
}
