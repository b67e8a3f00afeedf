package kernel_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"customer", "restaurant", "delivery", "admin", " Admin "} {
		t.Run(s, func(t *testing.T) {
			_, err := kernel.ParseRole(s)
			require.NoError(t, err)
		})
	}

	t.Run("system cannot be claimed", func(t *testing.T) {
		_, err := kernel.ParseRole("system")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewActor(t *testing.T) {
	t.Run("requires id", func(t *testing.T) {
		_, err := kernel.NewActor(" ", kernel.RoleCustomer)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("matches roles", func(t *testing.T) {
		a, err := kernel.NewActor("u-1", kernel.RoleRestaurant)

		require.NoError(t, err)
		assert.True(t, a.Is(kernel.RoleAdmin, kernel.RoleRestaurant))
		assert.False(t, a.Is(kernel.RoleCustomer))
	})
}
