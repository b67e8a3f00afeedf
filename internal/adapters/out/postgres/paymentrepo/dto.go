// Package paymentrepo maps payment aggregates to the payments table.
package paymentrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO is a row of the payments table. One payment per order, and the
// provider reference identifies it for webhooks.
type PaymentDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	UserID            string          `gorm:"size:64;not null;index"`
	Amount            decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency          string          `gorm:"size:3;not null"`
	PaymentMethod     string          `gorm:"size:16;not null"`
	Status            string          `gorm:"size:32;not null"`
	ProviderReference string          `gorm:"size:255;not null;uniqueIndex"`
	FailureReason     string
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:                p.ID().Bytes(),
		OrderID:           p.OrderID().Bytes(),
		UserID:            p.UserID(),
		Amount:            p.Amount(),
		Currency:          p.Currency(),
		PaymentMethod:     p.Method().String(),
		Status:            p.Status().String(),
		ProviderReference: p.ProviderReference(),
		FailureReason:     p.FailureReason(),
		CreatedAt:         p.CreatedAt(),
		UpdatedAt:         p.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(payment.RestoreParams{
		ID:                id,
		OrderID:           orderID,
		UserID:            dto.UserID,
		Amount:            dto.Amount,
		Currency:          dto.Currency,
		Method:            method,
		Status:            status,
		ProviderReference: dto.ProviderReference,
		FailureReason:     dto.FailureReason,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}
