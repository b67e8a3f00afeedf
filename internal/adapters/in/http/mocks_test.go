package http_test

import (
	"context"
	"io"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockChangeOrderStatusHandler struct{ mock.Mock }

func (m *MockChangeOrderStatusHandler) Handle(
	ctx context.Context,
	cmd commands.ChangeOrderStatusCommand,
) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockAssignCourierHandler struct{ mock.Mock }

func (m *MockAssignCourierHandler) Handle(
	ctx context.Context,
	cmd commands.AssignCourierCommand,
) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockCreatePaymentHandler struct{ mock.Mock }

func (m *MockCreatePaymentHandler) Handle(
	ctx context.Context,
	cmd commands.CreatePaymentCommand,
) (*payment.Payment, error) {
	args := m.Called(ctx, cmd)
	p, _ := args.Get(0).(*payment.Payment)
	return p, args.Error(1)
}

type MockChangeDeliveryStatusHandler struct{ mock.Mock }

func (m *MockChangeDeliveryStatusHandler) Handle(
	ctx context.Context,
	cmd commands.ChangeDeliveryStatusCommand,
) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockAcceptDeliveryHandler struct{ mock.Mock }

func (m *MockAcceptDeliveryHandler) Handle(
	ctx context.Context,
	cmd commands.AcceptDeliveryCommand,
) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockUpdateDeliveryLocationHandler struct{ mock.Mock }

func (m *MockUpdateDeliveryLocationHandler) Handle(
	ctx context.Context,
	cmd commands.UpdateDeliveryLocationCommand,
) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockUpdateCourierLocationHandler struct{ mock.Mock }

func (m *MockUpdateCourierLocationHandler) Handle(
	ctx context.Context,
	cmd commands.UpdateCourierLocationCommand,
) (*courier.Courier, error) {
	args := m.Called(ctx, cmd)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

type MockPaymentWebhookHandler struct{ mock.Mock }

func (m *MockPaymentWebhookHandler) Handle(
	ctx context.Context,
	cmd commands.HandlePaymentWebhookCommand,
) (commands.WebhookResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.WebhookResult), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(
	ctx context.Context,
	query queries.GetOrderQuery,
) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockGetDeliveryHandler struct{ mock.Mock }

func (m *MockGetDeliveryHandler) Handle(
	ctx context.Context,
	query queries.GetDeliveryQuery,
) (queries.GetDeliveryQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetDeliveryQueryResponse), args.Error(1)
}
