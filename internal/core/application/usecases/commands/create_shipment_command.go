package commands

import (
	"errors"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a request to register a new parcel
// shipment for a client, optionally scoped to an agency.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	clientID   kernel.UUID
	agencyID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
func NewCreateShipmentCommand(shipmentID, clientID kernel.UUID, agencyID *kernel.UUID) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setClientID(clientID),
		cmd.setAgencyID(agencyID),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ClientID returns the originating client's identifier.
func (c CreateShipmentCommand) ClientID() kernel.UUID {
	return c.clientID
}

// AgencyID returns the scoping agency, or nil.
func (c CreateShipmentCommand) AgencyID() *kernel.UUID {
	return c.agencyID
}

func (c *CreateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *CreateShipmentCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.clientID = id
	return nil
}

func (c *CreateShipmentCommand) setAgencyID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.agencyID = id
	return nil
}
