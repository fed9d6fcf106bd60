package commands

import (
	"errors"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/guard"
)

var ErrCreateMandateCommandIsNotConstructed = errors.New(
	"CreateMandateCommand must be created via NewCreateMandateCommand constructor",
)

// CreateMandateCommand represents a request to register a new administrative
// document mandate for a client, optionally scoped to an agency.
type CreateMandateCommand struct { //nolint:recvcheck //using for validation
	mandateID kernel.UUID
	clientID  kernel.UUID
	agencyID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateMandateCommand creates a command to register a new mandate.
func NewCreateMandateCommand(mandateID, clientID kernel.UUID, agencyID *kernel.UUID) (CreateMandateCommand, error) {
	cmd := CreateMandateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMandateID(mandateID),
		cmd.setClientID(clientID),
		cmd.setAgencyID(agencyID),
	); err != nil {
		return CreateMandateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMandateCommand) Validate() error {
	return c.guard.Validate(ErrCreateMandateCommandIsNotConstructed)
}

// MandateID returns the identifier for the new mandate.
func (c CreateMandateCommand) MandateID() kernel.UUID {
	return c.mandateID
}

// ClientID returns the originating client's identifier.
func (c CreateMandateCommand) ClientID() kernel.UUID {
	return c.clientID
}

// AgencyID returns the scoping agency, or nil.
func (c CreateMandateCommand) AgencyID() *kernel.UUID {
	return c.agencyID
}

func (c *CreateMandateCommand) setMandateID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.mandateID = id
	return nil
}

func (c *CreateMandateCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clientID = id
	return nil
}

func (c *CreateMandateCommand) setAgencyID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.agencyID = id
	return nil
}
