package deliveryrepo

import (
	"context"
	"errors"

	"handover/internal/core/domain/model/delivery"
	"handover/internal/core/domain/model/kernel"
	"handover/internal/core/ports"
	"handover/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolationCode = "23505"

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database together with its creation history
// entry. A duplicate delivery number surfaces as a value-is-invalid error.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("delivery number", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery using a compare-and-swap on the version
// column. The aggregate carries the version it was loaded with; the row is
// written with that version incremented, and only if no other writer got
// there first. History rows are insert-only: existing sequence numbers are
// left untouched, new entries are appended.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":            dto.Status,
			"courier_id":        dto.CourierID,
			"address":           dto.Address,
			"phone":             dto.Phone,
			"delivery_time":     dto.DeliveryTime,
			"instructions":      dto.Instructions,
			"order_ref":         dto.OrderRef,
			"proof_signature":   dto.ProofSignature,
			"proof_rating":      dto.ProofRating,
			"proof_verified_at": dto.ProofVerifiedAt,
			"version":           dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	if len(dto.History) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&dto.History).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID with its full history.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves a delivery by its human-readable number.
func (r *GormDeliveryRepository) GetByNumber(ctx context.Context, number string) (*delivery.Delivery, error) {
	if err := delivery.ValidateDeliveryNumber(number); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// isUniqueViolation reports whether the error is a postgres unique constraint
// violation, either from the native driver or wrapped by GORM.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
