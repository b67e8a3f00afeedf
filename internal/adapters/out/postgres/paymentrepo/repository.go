package paymentrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate ddd.PersistentAggregate)
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a payment. A second payment for the order or a reused provider
// reference is reported as errs.ErrConcurrentModification.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrConcurrentModification
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes the new status only while the stored status is one of the
// allowed predecessors of it; otherwise errs.ErrConcurrentModification.
func (r *GormPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	predecessors := payment.PredecessorsOf(aggregate.Status())
	expected := make([]string, 0, len(predecessors))
	for _, s := range predecessors {
		expected = append(expected, s.String())
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("provider_reference = ? AND status = ANY(?)", dto.ProviderReference, pq.Array(expected)).
		Updates(map[string]any{
			"status":         dto.Status,
			"failure_reason": dto.FailureReason,
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.ErrConcurrentModification
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormPaymentRepository) GetByProviderReference(ctx context.Context, ref string) (*payment.Payment, error) {
	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "provider_reference = ?", ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", ref)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPaymentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
