package http

import (
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Point is a GeoJSON point; Coordinates is [longitude, latitude].
type Point struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func newPoint(longitude, latitude float64) Point {
	return Point{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

// Requests.

type NewOrderItem struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

type NewOrder struct {
	RestaurantID    string         `json:"restaurantId"`
	Items           []NewOrderItem `json:"items"`
	DeliveryAddress string         `json:"deliveryAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
}

type StatusChange struct {
	Status string `json:"status"`
}

type NewPayment struct {
	ProviderReference string `json:"providerReference"`
	Currency          string `json:"currency"`
}

type Acceptance struct {
	DeliveryPersonID string `json:"deliveryPersonId"`
}

type LocationReport struct {
	Coordinates []float64 `json:"coordinates"`
}

type CourierLocationReport struct {
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates"`
}

// Responses.

type OrderItem struct {
	MenuItemID string          `json:"menuItemId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
}

type Order struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customerId"`
	RestaurantID     string          `json:"restaurantId"`
	DeliveryPersonID *string         `json:"deliveryPersonId"`
	Items            []OrderItem     `json:"items"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"paymentStatus"`
	DeliveryAddress  string          `json:"deliveryAddress"`
	PaymentMethod    string          `json:"paymentMethod"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type Delivery struct {
	ID               string     `json:"id"`
	OrderID          string     `json:"orderId"`
	DeliveryPersonID string     `json:"deliveryPersonId"`
	Status           string     `json:"status"`
	CurrentLocation  Point      `json:"currentLocation"`
	AcceptedAt       *time.Time `json:"acceptedAt"`
	PickupTime       *time.Time `json:"pickupTime"`
	DeliveryTime     *time.Time `json:"deliveryTime"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type Payment struct {
	ID                string          `json:"id"`
	OrderID           string          `json:"orderId"`
	UserID            string          `json:"userId"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	PaymentMethod     string          `json:"paymentMethod"`
	Status            string          `json:"status"`
	ProviderReference string          `json:"providerReference"`
	CreatedAt         time.Time       `json:"createdAt"`
}

type Courier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  Point     `json:"location"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WebhookAck struct {
	Received      bool   `json:"received"`
	Status        string `json:"status"`
	EventType     string `json:"eventType,omitempty"`
	PaymentID     string `json:"paymentId,omitempty"`
	OrderID       string `json:"orderId,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			MenuItemID: item.MenuItemID(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice(),
		})
	}

	return Order{
		ID:               o.ID().String(),
		CustomerID:       o.CustomerID(),
		RestaurantID:     o.RestaurantID(),
		DeliveryPersonID: o.DeliveryPersonID(),
		Items:            items,
		TotalAmount:      o.TotalAmount(),
		Status:           o.Status().String(),
		PaymentStatus:    o.PaymentStatus().String(),
		DeliveryAddress:  o.DeliveryAddress(),
		PaymentMethod:    o.PaymentMethod().String(),
		CreatedAt:        o.CreatedAt(),
		UpdatedAt:        o.UpdatedAt(),
	}
}

func orderFromQuery(r queries.GetOrderQueryResponse) Order {
	items := make([]OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}

	return Order{
		ID:               r.ID,
		CustomerID:       r.CustomerID,
		RestaurantID:     r.RestaurantID,
		DeliveryPersonID: r.DeliveryPersonID,
		Items:            items,
		TotalAmount:      r.TotalAmount,
		Status:           r.Status,
		PaymentStatus:    r.PaymentStatus,
		DeliveryAddress:  r.DeliveryAddress,
		PaymentMethod:    r.PaymentMethod,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func deliveryFromDomain(d *delivery.Delivery) Delivery {
	location := d.CurrentLocation()
	return Delivery{
		ID:               d.ID().String(),
		OrderID:          d.OrderID().String(),
		DeliveryPersonID: d.DeliveryPersonID(),
		Status:           d.Status().String(),
		CurrentLocation:  newPoint(location.Longitude(), location.Latitude()),
		AcceptedAt:       d.AcceptedAt(),
		PickupTime:       d.PickupTime(),
		DeliveryTime:     d.DeliveryTime(),
		CreatedAt:        d.CreatedAt(),
		UpdatedAt:        d.UpdatedAt(),
	}
}

func deliveryFromQuery(r queries.GetDeliveryQueryResponse) Delivery {
	return Delivery{
		ID:               r.ID,
		OrderID:          r.OrderID,
		DeliveryPersonID: r.DeliveryPersonID,
		Status:           r.Status,
		CurrentLocation:  newPoint(r.Longitude, r.Latitude),
		AcceptedAt:       r.AcceptedAt,
		PickupTime:       r.PickupTime,
		DeliveryTime:     r.DeliveryTime,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func paymentFromDomain(p *payment.Payment) Payment {
	return Payment{
		ID:                p.ID().String(),
		OrderID:           p.OrderID().String(),
		UserID:            p.UserID(),
		Amount:            p.Amount(),
		Currency:          p.Currency(),
		PaymentMethod:     p.Method().String(),
		Status:            p.Status().String(),
		ProviderReference: p.ProviderReference(),
		CreatedAt:         p.CreatedAt(),
	}
}

func courierFromDomain(c *courier.Courier) Courier {
	location := c.Location()
	return Courier{
		ID:        c.ID(),
		Name:      c.Name(),
		Location:  newPoint(location.Longitude(), location.Latitude()),
		UpdatedAt: c.UpdatedAt(),
	}
}

func webhookAckFromResult(r commands.WebhookResult) WebhookAck {
	return WebhookAck{
		Received:      true,
		Status:        string(r.Status),
		EventType:     r.EventType,
		PaymentID:     r.PaymentID,
		OrderID:       r.OrderID,
		PaymentStatus: r.PaymentStatus,
	}
}
