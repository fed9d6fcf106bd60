// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. This package implements the repository pattern for
// the shipment domain aggregate, handling the conversion between domain
// entities and database representations.
package shipmentrepo

import (
	"time"

	"nexaci/internal/adapters/out/postgres/historydto"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The unique index on Reference is the arbiter of reference
// uniqueness; the history ledger lives in a JSONB column on the same row so
// appends commit atomically with the status change.
type ShipmentDTO struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Reference        string             `gorm:"type:varchar(32);uniqueIndex"`
	Status           int                `gorm:"index"`
	OriginatingParty uuid.UUID          `gorm:"type:uuid;index"`
	AssignedAgentID  *uuid.UUID         `gorm:"type:uuid;index"`
	OwnerAgencyID    *uuid.UUID         `gorm:"type:uuid;index"`
	History          []historydto.Entry `gorm:"serializer:json;type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var agentID *uuid.UUID
	if id := aggregate.AssignedAgent(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	var agencyID *uuid.UUID
	if id := aggregate.OwnerAgency(); id != nil {
		raw := id.Bytes()
		agencyID = &raw
	}

	return ShipmentDTO{
		ID:               aggregate.ID().Bytes(),
		Reference:        aggregate.Reference().String(),
		Status:           int(aggregate.Status()),
		OriginatingParty: aggregate.OriginatingParty().Bytes(),
		AssignedAgentID:  agentID,
		OwnerAgencyID:    agencyID,
		History:          historydto.FromDomain(aggregate.History()),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	reference, err := kernel.ParseReference(dto.Reference)
	if err != nil {
		return nil, err
	}

	originatingParty, err := kernel.UUIDFromBytes(dto.OriginatingParty[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AssignedAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AssignedAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	var agencyID *kernel.UUID
	if dto.OwnerAgencyID != nil {
		aID, agencyErr := kernel.UUIDFromBytes((*dto.OwnerAgencyID)[:])
		if agencyErr != nil {
			return nil, agencyErr
		}
		agencyID = &aID
	}

	history, err := historydto.ToDomain(dto.History)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		reference,
		shipment.Status(dto.Status),
		originatingParty,
		agentID,
		agencyID,
		history,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
