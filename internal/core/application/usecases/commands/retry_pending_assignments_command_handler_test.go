package commands_test

import (
	"errors"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRetryPendingAssignmentsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	assigner := new(MockCourierAssigner)
	handler := commands.NewRetryPendingAssignmentsCommandHandler(factory, assigner, discardLogger())

	assignable := persistedOrder(t, order.Pending, nil)
	noDriver := persistedOrder(t, order.Confirmed, nil)
	broken := persistedOrder(t, order.Preparing, nil)
	cmd, err := commands.NewRetryPendingAssignmentsCommand(5)
	require.NoError(t, err)

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("ListUnassigned", ctx, 5).Return([]*order.Order{assignable, noDriver, broken}, nil).Once()
	assigner.On("Handle", ctx, mock.MatchedBy(func(c commands.AssignCourierCommand) bool {
		return c.OrderID().IsEqual(assignable.ID())
	})).Return(persistedDelivery(t, assignable.ID(), delivery.Assigned), nil).Once()
	assigner.On("Handle", ctx, mock.MatchedBy(func(c commands.AssignCourierCommand) bool {
		return c.OrderID().IsEqual(noDriver.ID())
	})).Return(nil, commands.ErrNoDriverAvailable).Once()
	assigner.On("Handle", ctx, mock.MatchedBy(func(c commands.AssignCourierCommand) bool {
		return c.OrderID().IsEqual(broken.ID())
	})).Return(nil, errors.New("restaurant service timeout")).Once()

	n, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assigner.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestRetryPendingAssignmentsCommandHandler_Handle_ListFailure(t *testing.T) {
	ctx := t.Context()
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	assigner := new(MockCourierAssigner)
	handler := commands.NewRetryPendingAssignmentsCommandHandler(factory, assigner, discardLogger())
	cmd, _ := commands.NewRetryPendingAssignmentsCommand(commands.DefaultRetryBatchSize)
	dbErr := errors.New("connection reset")

	factory.On("Create").Return(uow).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("ListUnassigned", ctx, commands.DefaultRetryBatchSize).Return(nil, dbErr).Once()

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, dbErr)
	assigner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestNewRetryPendingAssignmentsCommand(t *testing.T) {
	_, err := commands.NewRetryPendingAssignmentsCommand(-1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
