package mandaterepo

import (
	"context"
	"errors"
	"fmt"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/lifecycle"
	"nexaci/internal/core/domain/model/mandate"
	"nexaci/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMandateRepository implements MandateRepository using GORM.
type GormMandateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMandateRepository creates a new GORM mandate repository.
func NewGormMandateRepository(db *gorm.DB, tracker aggregateTracker) *GormMandateRepository {
	return &GormMandateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new mandate to the database. A reference collision surfaces as
// errs.ErrObjectAlreadyExists so the caller can retry with a new sequence.
func (r *GormMandateRepository) Add(ctx context.Context, aggregate *mandate.Mandate) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("mandate", dto.Reference, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing mandate, guarded by the status the caller loaded.
func (r *GormMandateRepository) Update(ctx context.Context, aggregate *mandate.Mandate, expectedStatus mandate.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	// Select("*") forces zero-value fields into the write; a struct update
	// would silently keep a stale assigned_agent_id once it goes back to nil.
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MandateDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expectedStatus)).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&MandateDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("mandate", aggregate.ID().String())
		}
		return fmt.Errorf("%w: mandate %s left status %s", lifecycle.ErrConcurrentModification,
			aggregate.ID(), expectedStatus)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a mandate by ID.
func (r *GormMandateRepository) Get(ctx context.Context, id kernel.UUID) (*mandate.Mandate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MandateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mandate", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByReference retrieves a mandate by its tracking reference.
func (r *GormMandateRepository) GetByReference(ctx context.Context, reference kernel.Reference) (*mandate.Mandate, error) {
	if err := reference.Validate(); err != nil {
		return nil, err
	}

	var dto MandateDTO
	if err := r.db.WithContext(ctx).First(&dto, "reference = ?", reference.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mandate", reference.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// NextSequence proposes the next reference sequence for the year by counting
// stored references carrying that year.
func (r *GormMandateRepository) NextSequence(ctx context.Context, year int) (int, error) {
	var count int64
	prefix := fmt.Sprintf("%s-%04d-%%", kernel.KindMandate.Prefix(), year)
	if err := r.db.WithContext(ctx).Model(&MandateDTO{}).
		Where("reference LIKE ?", prefix).Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count) + 1, nil
}

// GetAllUnassigned retrieves non-terminal mandates without an assigned agent.
func (r *GormMandateRepository) GetAllUnassigned(ctx context.Context) ([]*mandate.Mandate, error) {
	var dtos []MandateDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "assigned_agent_id IS NULL AND status NOT IN ?", terminalStatuses()).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllInStatus retrieves all mandates currently in the given status.
func (r *GormMandateRepository) GetAllInStatus(ctx context.Context, status mandate.Status) ([]*mandate.Mandate, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []MandateDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []MandateDTO) ([]*mandate.Mandate, error) {
	mandates := make([]*mandate.Mandate, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		mandates = append(mandates, m)
	}
	return mandates, nil
}

func terminalStatuses() []int {
	return []int{int(mandate.StatusDelivered), int(mandate.StatusCanceled), int(mandate.StatusFailed)}
}
