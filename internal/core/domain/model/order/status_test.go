package order_test

import (
	"fmt"
	"testing"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.Pending,
	order.Confirmed,
	order.Preparing,
	order.OutForDelivery,
	order.Delivered,
	order.Cancelled,
}

func TestStatus_Transition(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:        {order.Confirmed, order.Cancelled},
		order.Confirmed:      {order.Preparing, order.Cancelled},
		order.Preparing:      {order.OutForDelivery, order.Cancelled},
		order.OutForDelivery: {order.Delivered},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				next, err := from.Transition(to)

				if contains(allowed[from], to) {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}

				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				var transitionErr *errs.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, from.String(), transitionErr.From)
				assert.Equal(t, to.String(), transitionErr.To)
			})
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
		t.Run(terminal.String(), func(t *testing.T) {
			assert.True(t, terminal.IsTerminal())
			for _, to := range allStatuses {
				assert.False(t, terminal.CanTransitionTo(to))
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse every wire name", func(t *testing.T) {
		for _, s := range allStatuses {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should accept ready_for_delivery alias", func(t *testing.T) {
		parsed, err := order.ParseStatus("ready_for_delivery")

		require.NoError(t, err)
		assert.Equal(t, order.OutForDelivery, parsed)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("shipped")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown as a value", func(t *testing.T) {
		_, err := order.ParseStatus("unknown")

		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
	for _, s := range allStatuses {
		require.NoError(t, s.Validate())
	}
}

func TestPaymentStatus_Transition(t *testing.T) {
	tests := []struct {
		from    order.PaymentStatus
		to      order.PaymentStatus
		allowed bool
	}{
		{order.PaymentPending, order.PaymentPaid, true},
		{order.PaymentPending, order.PaymentFailed, true},
		{order.PaymentFailed, order.PaymentPaid, true},
		{order.PaymentPaid, order.PaymentRefunded, true},
		{order.PaymentPaid, order.PaymentFailed, false},
		{order.PaymentPaid, order.PaymentPaid, false},
		{order.PaymentRefunded, order.PaymentPaid, false},
		{order.PaymentPending, order.PaymentRefunded, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.to), func(t *testing.T) {
			_, err := tt.from.Transition(tt.to)
			if tt.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		})
	}
}

func contains(list []order.Status, s order.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
