package commands

import (
	"errors"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/errs"
	"nexaci/internal/pkg/guard"
)

var ErrRegisterAccountCommandIsNotConstructed = errors.New(
	"RegisterAccountCommand must be created via NewRegisterAccountCommand constructor",
)

// RegisterAccountCommand represents a request to register a platform
// participant. The raw phone input is normalized here so every account the
// platform writes carries the canonical form.
type RegisterAccountCommand struct { //nolint:recvcheck //using for validation
	accountID kernel.UUID
	name      string
	email     string
	phone     kernel.Phone
	role      account.Role
	agencyID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterAccountCommand creates a command to register an account.
// Email is optional; role is given in wire form ("client", "courier", ...).
func NewRegisterAccountCommand(
	accountID kernel.UUID,
	name, email, rawPhone, role string,
	agencyID *kernel.UUID,
) (RegisterAccountCommand, error) {
	cmd := RegisterAccountCommand{
		email: email,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAccountID(accountID),
		cmd.setName(name),
		cmd.setPhone(rawPhone),
		cmd.setRole(role),
		cmd.setAgencyID(agencyID),
	); err != nil {
		return RegisterAccountCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterAccountCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAccountCommandIsNotConstructed)
}

// AccountID returns the identifier for the new account.
func (c RegisterAccountCommand) AccountID() kernel.UUID {
	return c.accountID
}

// Name returns the display name.
func (c RegisterAccountCommand) Name() string {
	return c.name
}

// Email returns the optional email.
func (c RegisterAccountCommand) Email() string {
	return c.email
}

// Phone returns the normalized phone identity.
func (c RegisterAccountCommand) Phone() kernel.Phone {
	return c.phone
}

// Role returns the participant role.
func (c RegisterAccountCommand) Role() account.Role {
	return c.role
}

// AgencyID returns the bound agency, or nil.
func (c RegisterAccountCommand) AgencyID() *kernel.UUID {
	return c.agencyID
}

func (c *RegisterAccountCommand) setAccountID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.accountID = id
	return nil
}

func (c *RegisterAccountCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterAccountCommand) setPhone(rawPhone string) error {
	phone, err := kernel.NewPhone(rawPhone)
	if err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *RegisterAccountCommand) setRole(role string) error {
	parsed, err := account.ParseRole(role)
	if err != nil {
		return err
	}
	c.role = parsed
	return nil
}

func (c *RegisterAccountCommand) setAgencyID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.agencyID = id
	return nil
}
