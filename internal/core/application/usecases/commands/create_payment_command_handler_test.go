package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createPaymentFixture struct {
	orderRepo   *MockOrderRepository
	paymentRepo *MockPaymentRepository
	uow         *MockUoW
	factory     *MockPaymentUoWFactory
	handler     commands.CreatePaymentCommandHandler
}

func newCreatePaymentFixture() *createPaymentFixture {
	f := &createPaymentFixture{
		orderRepo:   new(MockOrderRepository),
		paymentRepo: new(MockPaymentRepository),
		uow:         new(MockUoW),
		factory:     new(MockPaymentUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("PaymentRepository").Return(f.paymentRepo)
	f.handler = commands.NewCreatePaymentCommandHandler(f.factory, discardLogger())
	return f
}

func TestCreatePaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreatePaymentFixture()
	o := persistedOrder(t, order.Pending, nil)
	cmd, err := commands.NewCreatePaymentCommand(o.ID(), providerRef, "eur", customerActor)
	require.NoError(t, err)

	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.paymentRepo.On("GetByOrderID", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("payment", o.ID())).Once(),
		f.paymentRepo.On("Add", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	p, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, p.OrderID().IsEqual(o.ID()))
	assert.Equal(t, customerID, p.UserID())
	assert.True(t, decimal.RequireFromString("23.50").Equal(p.Amount()), "amount is the order total")
	assert.Equal(t, "EUR", p.Currency())
	assert.Equal(t, payment.Pending, p.Status())
	assert.Equal(t, providerRef, p.ProviderReference())
	f.paymentRepo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
}

func TestCreatePaymentCommandHandler_Handle_PaymentExists(t *testing.T) {
	ctx := t.Context()
	f := newCreatePaymentFixture()
	o := persistedOrder(t, order.Pending, nil)
	cmd, _ := commands.NewCreatePaymentCommand(o.ID(), "pi_456", "EUR", customerActor)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.paymentRepo.On("GetByOrderID", ctx, o.ID()).Return(persistedPayment(t, o, payment.Pending), nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrPaymentAlreadyExists)
	f.paymentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreatePaymentCommandHandler_Handle_DuplicateInsert(t *testing.T) {
	ctx := t.Context()
	f := newCreatePaymentFixture()
	o := persistedOrder(t, order.Confirmed, nil)
	cmd, _ := commands.NewCreatePaymentCommand(o.ID(), providerRef, "EUR", customerActor)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.paymentRepo.On("GetByOrderID", ctx, o.ID()).Return(nil, errs.NewObjectNotFoundError("payment", o.ID())).Once()
	f.paymentRepo.On("Add", ctx, mock.Anything).Return(errs.ErrConcurrentModification).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	_, err := f.handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrPaymentAlreadyExists)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreatePaymentCommandHandler_Handle_Rejections(t *testing.T) {
	tests := map[string]struct {
		status    order.Status
		actor     kernel.Actor
		expectErr error
	}{
		"another customer": {
			status:    order.Pending,
			actor:     kernel.Actor{ID: "customer-2", Role: kernel.RoleCustomer},
			expectErr: errs.ErrNotAuthorized,
		},
		"restaurant": {
			status:    order.Pending,
			actor:     restaurantActor,
			expectErr: errs.ErrNotAuthorized,
		},
		"cancelled order": {
			status:    order.Cancelled,
			actor:     customerActor,
			expectErr: errs.ErrInvalidTransition,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := t.Context()
			f := newCreatePaymentFixture()
			o := persistedOrder(t, tt.status, nil)
			cmd, err := commands.NewCreatePaymentCommand(o.ID(), providerRef, "EUR", tt.actor)
			require.NoError(t, err)

			f.uow.On("Begin", ctx).Return(nil).Once()
			f.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
			f.uow.On("Rollback", ctx).Return(nil).Once()

			_, err = f.handler.Handle(ctx, cmd)

			require.ErrorIs(t, err, tt.expectErr)
			f.paymentRepo.AssertNotCalled(t, "GetByOrderID", mock.Anything, mock.Anything)
		})
	}
}

func TestNewCreatePaymentCommand(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewCreatePaymentCommand(id, "", "EUR", customerActor)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreatePaymentCommand(id, providerRef, "EURO", customerActor)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewCreatePaymentCommand(id, " pi_1 ", " usd", customerActor)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", cmd.ProviderReference())
	assert.Equal(t, "USD", cmd.Currency())
}
