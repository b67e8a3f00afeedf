// Package orderrepo maps order aggregates to the orders and order_items tables.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of the orders table. Statuses are stored by name so the
// table stays readable for the reporting side.
type OrderDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID       string          `gorm:"size:64;not null;index"`
	RestaurantID     string          `gorm:"size:64;not null;index"`
	DeliveryPersonID *string         `gorm:"size:64;index"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status           string          `gorm:"size:32;not null;index"`
	PaymentStatus    string          `gorm:"size:32;not null"`
	DeliveryAddress  string          `gorm:"not null"`
	PaymentMethod    string          `gorm:"size:16;not null"`
	CreatedAt        time.Time       `gorm:"not null;index"`
	UpdatedAt        time.Time       `gorm:"not null"`
	Items            []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a priced line of an order. Position keeps the order of entry.
type OrderItemDTO struct {
	ID         uint            `gorm:"primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	MenuItemID string          `gorm:"size:64;not null"`
	Name       string          `gorm:"not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, OrderItemDTO{
			OrderID:    o.ID().Bytes(),
			Position:   i,
			MenuItemID: item.MenuItemID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:               o.ID().Bytes(),
		CustomerID:       o.CustomerID(),
		RestaurantID:     o.RestaurantID(),
		DeliveryPersonID: o.DeliveryPersonID(),
		TotalAmount:      o.TotalAmount(),
		Status:           o.Status().String(),
		PaymentStatus:    o.PaymentStatus().String(),
		DeliveryAddress:  o.DeliveryAddress(),
		PaymentMethod:    o.PaymentMethod().String(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
		Items:            items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.MenuItemID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:               id,
		CustomerID:       dto.CustomerID,
		RestaurantID:     dto.RestaurantID,
		DeliveryPersonID: dto.DeliveryPersonID,
		Items:            items,
		TotalAmount:      dto.TotalAmount,
		Status:           status,
		PaymentStatus:    paymentStatus,
		DeliveryAddress:  dto.DeliveryAddress,
		PaymentMethod:    method,
		CreatedAt:        dto.CreatedAt,
		UpdatedAt:        dto.UpdatedAt,
	})
}
