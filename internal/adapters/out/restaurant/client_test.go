package restaurant_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /restaurants/restaurant-1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"restaurant-1","ownerId":"owner-1","isActive":true,
			"location":{"type":"Point","coordinates":[13.405,52.52]}}`))
	})
	mux.HandleFunc("GET /restaurants/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("GET /restaurants/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	mux.HandleFunc("GET /menu-items/ramen", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":"ramen","restaurantId":"restaurant-1","name":"Ramen","price":"11.75","isAvailable":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetRestaurant(t *testing.T) {
	srv := newCatalog(t)
	client := restaurant.NewClient(srv.URL+"/", 100*time.Millisecond)

	t.Run("found", func(t *testing.T) {
		r, err := client.GetRestaurant(t.Context(), "restaurant-1")

		require.NoError(t, err)
		assert.Equal(t, "owner-1", r.OwnerID)
		assert.True(t, r.IsActive)
		assert.InDelta(t, 52.52, r.Location.Latitude(), 1e-9)
		assert.InDelta(t, 13.405, r.Location.Longitude(), 1e-9)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := client.GetRestaurant(t.Context(), "restaurant-404")

		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.GetRestaurant(t.Context(), "broken")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("timeout", func(t *testing.T) {
		_, err := client.GetRestaurant(t.Context(), "slow")

		require.Error(t, err)
	})
}

func TestClient_GetMenuItem(t *testing.T) {
	srv := newCatalog(t)
	client := restaurant.NewClient(srv.URL, time.Second)

	item, err := client.GetMenuItem(t.Context(), "ramen")

	require.NoError(t, err)
	assert.Equal(t, "restaurant-1", item.RestaurantID)
	assert.Equal(t, "Ramen", item.Name)
	assert.True(t, decimal.RequireFromString("11.75").Equal(item.Price))
	assert.True(t, item.IsAvailable)
}
