package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its items.
//
// Visibility:
//   - admin and system see every order
//   - a customer sees only their own orders
//   - restaurant staff see orders of any restaurant
//   - a courier sees the orders assigned to them
//
// An order the actor may not see is reported as NotAuthorized.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		resp    GetOrderQueryResponse
		id      uuid.UUID
		courier sql.NullString
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			delivery_person_id,
			total_amount,
			status,
			payment_status,
			delivery_address,
			payment_method,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.CustomerID,
		&resp.RestaurantID,
		&courier,
		&resp.TotalAmount,
		&resp.Status,
		&resp.PaymentStatus,
		&resp.DeliveryAddress,
		&resp.PaymentMethod,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}
	resp.ID = id.String()
	if courier.Valid {
		resp.DeliveryPersonID = &courier.String
	}

	if !canReadOrder(query.Actor(), resp.CustomerID, resp.DeliveryPersonID) {
		return GetOrderQueryResponse{}, errs.NewNotAuthorizedError(query.Actor().ID, string(query.Actor().Role),
			fmt.Sprintf("read order %s", resp.ID))
	}

	items, err := h.items(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, orderID kernel.UUID) ([]GetOrderQueryItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderQueryItem, 0)
	for rows.Next() {
		var item GetOrderQueryItem
		if err = rows.Scan(&item.MenuItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func canReadOrder(actor kernel.Actor, customerID string, courierID *string) bool {
	switch actor.Role {
	case kernel.RoleAdmin, kernel.RoleSystem, kernel.RoleRestaurant:
		return true
	case kernel.RoleCustomer:
		return actor.ID == customerID
	case kernel.RoleDelivery:
		return courierID != nil && *courierID == actor.ID
	default:
		return false
	}
}
