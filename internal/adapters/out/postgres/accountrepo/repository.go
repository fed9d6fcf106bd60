package accountrepo

import (
	"context"
	"errors"
	"strings"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB, tracker aggregateTracker) *GormAccountRepository {
	return &GormAccountRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new account to the database. A taken phone or email surfaces as
// errs.ErrObjectAlreadyExists.
func (r *GormAccountRepository) Add(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("account", dto.Phone, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing account to the database.
func (r *GormAccountRepository) Update(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	// Select("*") forces zero-value fields into the write, so clearing the
	// email or the agency actually persists.
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AccountDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("account", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an account by ID.
func (r *GormAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByPhone retrieves the account whose stored phone matches any of the
// given variants. New records always carry the canonical form, but variants
// keep numbers stored under historical spellings reachable.
func (r *GormAccountRepository) FindByPhone(ctx context.Context, variants []string) (*account.Account, error) {
	if len(variants) == 0 {
		return nil, errs.NewValueIsRequiredError("phone variants")
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "phone IN ?", variants).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", variants[0])
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindByEmail retrieves the account with the given email.
// Emails are stored lowercased; the lookup lowercases the input to match.
func (r *GormAccountRepository) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	lowered := strings.ToLower(strings.TrimSpace(email))

	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "email = ?", lowered).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", lowered)
		}
		return nil, err
	}

	return toDomain(dto)
}
