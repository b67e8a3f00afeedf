// Package restaurant reads restaurants and menu items from the catalog service.
package restaurant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type restaurantResponse struct {
	ID       string `json:"id"`
	OwnerID  string `json:"ownerId"`
	IsActive bool   `json:"isActive"`
	Location struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"location"`
}

type menuItemResponse struct {
	ID           string          `json:"id"`
	RestaurantID string          `json:"restaurantId"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	IsAvailable  bool            `json:"isAvailable"`
}

// Client implements ports.RestaurantCatalog over the catalog's REST API:
//
//	GET {baseURL}/restaurants/{id}
//	GET {baseURL}/menu-items/{id}
//
// Every call is bounded by the client timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetRestaurant(ctx context.Context, id string) (ports.Restaurant, error) {
	var resp restaurantResponse
	if err := c.get(ctx, "restaurant", id, "/restaurants/"+url.PathEscape(id), &resp); err != nil {
		return ports.Restaurant{}, err
	}

	location, err := kernel.NewLocationFromCoordinates(resp.Location.Coordinates)
	if err != nil {
		return ports.Restaurant{}, fmt.Errorf("restaurant %s: %w", id, err)
	}

	return ports.Restaurant{
		ID:       resp.ID,
		OwnerID:  resp.OwnerID,
		IsActive: resp.IsActive,
		Location: location,
	}, nil
}

func (c *Client) GetMenuItem(ctx context.Context, id string) (ports.MenuItem, error) {
	var resp menuItemResponse
	if err := c.get(ctx, "menuItem", id, "/menu-items/"+url.PathEscape(id), &resp); err != nil {
		return ports.MenuItem{}, err
	}

	return ports.MenuItem{
		ID:           resp.ID,
		RestaurantID: resp.RestaurantID,
		Name:         resp.Name,
		Price:        resp.Price,
		IsAvailable:  resp.IsAvailable,
	}, nil
}

func (c *Client) get(ctx context.Context, entity string, id string, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.NewObjectNotFoundError(entity, id)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("catalog request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog response %s: %w", path, err)
	}
	return nil
}
