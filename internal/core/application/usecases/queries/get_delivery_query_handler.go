package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler reads a delivery. Besides admin, system and
// restaurant staff, the courier holding the delivery and the customer of the
// order may read it.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	var (
		resp       GetDeliveryQueryResponse
		id         uuid.UUID
		orderID    uuid.UUID
		customerID sql.NullString
		accepted   sql.NullTime
		pickedUp   sql.NullTime
		delivered  sql.NullTime
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.order_id,
			d.delivery_person_id,
			d.status,
			d.current_latitude,
			d.current_longitude,
			d.accepted_at,
			d.pickup_time,
			d.delivery_time,
			d.created_at,
			d.updated_at,
			o.customer_id
		FROM deliveries d
		LEFT JOIN orders o ON o.id = d.order_id
		WHERE d.id = ?
	`, query.DeliveryID().Bytes()).Row()

	err := row.Scan(
		&id,
		&orderID,
		&resp.DeliveryPersonID,
		&resp.Status,
		&resp.Latitude,
		&resp.Longitude,
		&accepted,
		&pickedUp,
		&delivered,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&customerID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetDeliveryQueryResponse{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
		}
		return GetDeliveryQueryResponse{}, err
	}
	resp.ID = id.String()
	resp.OrderID = orderID.String()
	resp.AcceptedAt = nullTime(accepted)
	resp.PickupTime = nullTime(pickedUp)
	resp.DeliveryTime = nullTime(delivered)

	actor := query.Actor()
	allowed := false
	switch actor.Role {
	case kernel.RoleAdmin, kernel.RoleSystem, kernel.RoleRestaurant:
		allowed = true
	case kernel.RoleDelivery:
		allowed = actor.ID == resp.DeliveryPersonID
	case kernel.RoleCustomer:
		allowed = customerID.Valid && actor.ID == customerID.String
	}
	if !allowed {
		return GetDeliveryQueryResponse{}, errs.NewNotAuthorizedError(actor.ID, string(actor.Role),
			fmt.Sprintf("read delivery %s", resp.ID))
	}

	return resp, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
