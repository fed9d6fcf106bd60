// Package accountrepo provides data transfer objects and mapping functions
// for account persistence.
package accountrepo

import (
	"time"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for persisting account
// aggregates. Phone carries the canonical "+<CC>..." form; the unique indexes
// on phone and email are the arbiters of identity uniqueness.
type AccountDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:varchar(255)"`
	Email     *string    `gorm:"type:varchar(255);uniqueIndex"`
	Phone     string     `gorm:"type:varchar(32);uniqueIndex"`
	Role      int        `gorm:"index"`
	AgencyID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// fromDomain converts an account domain aggregate to its database
// representation. An absent email maps to NULL so the unique index ignores
// phone-only registrations.
func fromDomain(aggregate *account.Account) AccountDTO {
	var email *string
	if e := aggregate.Email(); e != "" {
		email = &e
	}

	var agencyID *uuid.UUID
	if id := aggregate.AgencyID(); id != nil {
		raw := id.Bytes()
		agencyID = &raw
	}

	return AccountDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Email:    email,
		Phone:    aggregate.Phone().String(),
		Role:     int(aggregate.Role()),
		AgencyID: agencyID,
	}
}

// toDomain converts a database DTO to an account domain aggregate.
// The stored phone is restored byte for byte, never re-normalized.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.RestorePhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	var email string
	if dto.Email != nil {
		email = *dto.Email
	}

	var agencyID *kernel.UUID
	if dto.AgencyID != nil {
		aID, agencyErr := kernel.UUIDFromBytes((*dto.AgencyID)[:])
		if agencyErr != nil {
			return nil, agencyErr
		}
		agencyID = &aID
	}

	return account.RestoreAccount(id, dto.Name, email, phone, account.Role(dto.Role), agencyID)
}
