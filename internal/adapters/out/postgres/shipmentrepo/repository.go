package shipmentrepo

import (
	"context"
	"errors"
	"fmt"

	"nexaci/internal/core/domain/model/kernel"
	"nexaci/internal/core/domain/model/lifecycle"
	"nexaci/internal/core/domain/model/shipment"
	"nexaci/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database. The unique index on the reference
// column arbitrates reference collisions; a collision surfaces as
// errs.ErrObjectAlreadyExists so the caller can retry with a new sequence.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("shipment", dto.Reference, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment, guarded by the status the caller loaded.
// The conditional WHERE clause turns a lost race into
// lifecycle.ErrConcurrentModification instead of silently overwriting the
// winner's transition.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment, expectedStatus shipment.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expectedStatus.Validate(); err != nil {
		return err
	}

	// Select("*") forces zero-value fields into the write; a struct update
	// would silently keep a stale assigned_agent_id once it goes back to nil.
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expectedStatus)).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("shipment", aggregate.ID().String())
		}
		return fmt.Errorf("%w: shipment %s left status %s", lifecycle.ErrConcurrentModification,
			aggregate.ID(), expectedStatus)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByReference retrieves a shipment by its tracking reference.
func (r *GormShipmentRepository) GetByReference(ctx context.Context, reference kernel.Reference) (*shipment.Shipment, error) {
	if err := reference.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "reference = ?", reference.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", reference.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// NextSequence proposes the next reference sequence for the year by counting
// stored references carrying that year. The count is not atomic; the unique
// index on reference catches races and Add reports them for retry.
func (r *GormShipmentRepository) NextSequence(ctx context.Context, year int) (int, error) {
	var count int64
	prefix := fmt.Sprintf("%s-%04d-%%", kernel.KindShipment.Prefix(), year)
	if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("reference LIKE ?", prefix).Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count) + 1, nil
}

// GetAllUnassigned retrieves non-terminal shipments without an assigned agent.
func (r *GormShipmentRepository) GetAllUnassigned(ctx context.Context) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).
		Find(&dtos, "assigned_agent_id IS NULL AND status NOT IN ?", terminalStatuses()).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllInStatus retrieves all shipments currently in the given status.
func (r *GormShipmentRepository) GetAllInStatus(ctx context.Context, status shipment.Status) ([]*shipment.Shipment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}

func terminalStatuses() []int {
	return []int{int(shipment.StatusDelivered), int(shipment.StatusCanceled)}
}
