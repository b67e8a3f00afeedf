package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Restaurant is the read-only view of a restaurant owned by the catalog service.
type Restaurant struct {
	ID       string
	OwnerID  string
	IsActive bool
	Location kernel.Location
}

// MenuItem is the current menu snapshot of one dish.
type MenuItem struct {
	ID           string
	RestaurantID string
	Name         string
	Price        decimal.Decimal
	IsAvailable  bool
}

// RestaurantCatalog reads restaurants and menu items from the catalog service.
// Missing entities are reported as errs.ObjectNotFoundError.
type RestaurantCatalog interface {
	GetRestaurant(ctx context.Context, id string) (Restaurant, error)
	GetMenuItem(ctx context.Context, id string) (MenuItem, error)
}
