package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateDeliveryLocationCommandHandler_Handle(t *testing.T) {
	next, err := kernel.NewLocation(52.531, 13.412)
	require.NoError(t, err)

	tests := map[string]struct {
		status    delivery.Status
		actor     kernel.Actor
		expectErr error
	}{
		"courier in transit": {status: delivery.InTransit, actor: courierActor},
		"admin override":     {status: delivery.PickedUp, actor: kernel.Actor{ID: "ops", Role: kernel.RoleAdmin}},
		"customer": {
			status: delivery.InTransit, actor: customerActor,
			expectErr: errs.ErrNotAuthorized,
		},
		"finished delivery": {
			status: delivery.Delivered, actor: courierActor,
			expectErr: delivery.ErrDeliveryIsFinished,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			deliveryRepo := new(MockDeliveryRepository)
			uow := new(MockUoW)
			factory := new(MockDeliveryUoWFactory)
			handler := commands.NewUpdateDeliveryLocationCommandHandler(factory)

			d := persistedDelivery(t, kernel.NewUUID(), tt.status)
			cmd, err := commands.NewUpdateDeliveryLocationCommand(d.ID(), next, tt.actor)
			require.NoError(t, err)

			factory.On("Create").Return(uow).Once()
			uow.On("DeliveryRepository").Return(deliveryRepo)
			uow.On("Begin", ctx).Return(nil).Once()
			deliveryRepo.On("Get", ctx, d.ID()).Return(d, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()
			if tt.expectErr == nil {
				deliveryRepo.On("Update", ctx, d).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}

			result, err := handler.Handle(ctx, cmd)

			if tt.expectErr != nil {
				require.ErrorIs(t, err, tt.expectErr)
				deliveryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			eq, err := result.CurrentLocation().IsEqual(next)
			require.NoError(t, err)
			assert.True(t, eq)
			assert.Equal(t, tt.status, result.Status(), "location updates never change the status")
			uow.AssertExpectations(t)
		})
	}
}

func TestNewUpdateDeliveryLocationCommand(t *testing.T) {
	_, err := commands.NewUpdateDeliveryLocationCommand(kernel.NewUUID(), kernel.Location{}, courierActor)
	require.Error(t, err)

	loc, _ := kernel.NewLocation(1, 2)
	cmd, err := commands.NewUpdateDeliveryLocationCommand(kernel.NewUUID(), loc, courierActor)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}
