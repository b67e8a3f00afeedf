// Package http is the REST adapter of the fulfillment core.
//
// Callers are identified by the X-User-ID and X-User-Role headers set by the
// authentication gateway. The payment webhook is authenticated by its
// signature instead and reads the raw request body.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// MaxWebhookBody bounds the provider payload read into memory. Larger bodies
// are refused with 413 instead of being verified truncated.
const MaxWebhookBody = 1 << 20

// Use case contracts the server depends on.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}
	AssignCourierHandler interface {
		Handle(ctx context.Context, cmd commands.AssignCourierCommand) (*delivery.Delivery, error)
	}
	CreatePaymentHandler interface {
		Handle(ctx context.Context, cmd commands.CreatePaymentCommand) (*payment.Payment, error)
	}
	ChangeDeliveryStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeDeliveryStatusCommand) (*delivery.Delivery, error)
	}
	AcceptDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptDeliveryCommand) (*delivery.Delivery, error)
	}
	UpdateDeliveryLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryLocationCommand) (*delivery.Delivery, error)
	}
	UpdateCourierLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateCourierLocationCommand) (*courier.Courier, error)
	}
	PaymentWebhookHandler interface {
		Handle(ctx context.Context, cmd commands.HandlePaymentWebhookCommand) (commands.WebhookResult, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	GetDeliveryHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveryQuery) (queries.GetDeliveryQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder            CreateOrderHandler
	ChangeOrderStatus      ChangeOrderStatusHandler
	AssignCourier          AssignCourierHandler
	CreatePayment          CreatePaymentHandler
	ChangeDeliveryStatus   ChangeDeliveryStatusHandler
	AcceptDelivery         AcceptDeliveryHandler
	UpdateDeliveryLocation UpdateDeliveryLocationHandler
	UpdateCourierLocation  UpdateCourierLocationHandler
	PaymentWebhook         PaymentWebhookHandler

	// Query handlers
	GetOrder    GetOrderHandler
	GetDelivery GetDeliveryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

var _ ServerInterface = (*Server)(nil)

// CreateOrder handles POST /api/v1/orders - places an order for the calling customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if !actor.Is(kernel.RoleCustomer) {
		return writeError(ctx, s.logger, errs.NewNotAuthorizedError(actor.ID, string(actor.Role), "place orders"))
	}

	var body NewOrder
	if err = ctx.Bind(&body); err != nil {
		return badRequestBody(ctx)
	}

	method, err := order.ParsePaymentMethod(body.PaymentMethod)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	lines := make([]commands.OrderLine, 0, len(body.Items))
	for _, item := range body.Items {
		lines = append(lines, commands.OrderLine{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actor.ID, body.RestaurantID, lines, body.DeliveryAddress, method,
	)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	o, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetOrderQuery(id, actor)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	result, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, orderFromQuery(result))
}

// ChangeOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return badRequestBody(ctx)
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status, actor)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	o, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// AssignCourier handles POST /api/v1/orders/{orderId}/assignment - the
// manual re-trigger for orders left unassigned by the saga.
func (s *Server) AssignCourier(ctx echo.Context, orderID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	if !actor.Is(kernel.RoleRestaurant, kernel.RoleAdmin) {
		return writeError(ctx, s.logger, errs.NewNotAuthorizedError(actor.ID, string(actor.Role), "assign couriers"))
	}
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewAssignCourierCommand(id)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	d, err := s.handlers.AssignCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, deliveryFromDomain(d))
}

// CreatePayment handles POST /api/v1/orders/{orderId}/payments.
func (s *Server) CreatePayment(ctx echo.Context, orderID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body NewPayment
	if err = ctx.Bind(&body); err != nil {
		return badRequestBody(ctx)
	}

	cmd, err := commands.NewCreatePaymentCommand(id, body.ProviderReference, body.Currency, actor)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	p, err := s.handlers.CreatePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusCreated, paymentFromDomain(p))
}

// GetDelivery handles GET /api/v1/deliveries/{deliveryId}.
func (s *Server) GetDelivery(ctx echo.Context, deliveryID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := kernel.UUIDFromString(deliveryID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	query, err := queries.NewGetDeliveryQuery(id, actor)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	result, err := s.handlers.GetDelivery.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromQuery(result))
}

// ChangeDeliveryStatus handles PUT /api/v1/deliveries/{deliveryId}/status.
func (s *Server) ChangeDeliveryStatus(ctx echo.Context, deliveryID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := kernel.UUIDFromString(deliveryID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return badRequestBody(ctx)
	}
	status, err := delivery.ParseStatus(body.Status)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewChangeDeliveryStatusCommand(id, status, actor)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	d, err := s.handlers.ChangeDeliveryStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(d))
}

// AcceptDelivery handles PUT /api/v1/deliveries/{deliveryId}/accept.
func (s *Server) AcceptDelivery(ctx echo.Context, deliveryID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := kernel.UUIDFromString(deliveryID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body Acceptance
	if err = ctx.Bind(&body); err != nil {
		return badRequestBody(ctx)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(id, body.DeliveryPersonID, actor)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	d, err := s.handlers.AcceptDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(d))
}

// UpdateDeliveryLocation handles PUT /api/v1/deliveries/{deliveryId}/location.
func (s *Server) UpdateDeliveryLocation(ctx echo.Context, deliveryID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}
	id, err := kernel.UUIDFromString(deliveryID)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body LocationReport
	if err = ctx.Bind(&body); err != nil {
		return badRequestBody(ctx)
	}
	location, err := kernel.NewLocationFromCoordinates(body.Coordinates)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateDeliveryLocationCommand(id, location, actor)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	d, err := s.handlers.UpdateDeliveryLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, deliveryFromDomain(d))
}

// UpdateCourierLocation handles PUT /api/v1/couriers/{courierId}/location.
func (s *Server) UpdateCourierLocation(ctx echo.Context, courierID string) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	var body CourierLocationReport
	if err = ctx.Bind(&body); err != nil {
		return badRequestBody(ctx)
	}
	location, err := kernel.NewLocationFromCoordinates(body.Coordinates)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, body.Name, location, actor)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	c, err := s.handlers.UpdateCourierLocation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, courierFromDomain(c))
}

// HandlePaymentWebhook handles POST /api/v1/payments/webhook. Applied,
// duplicate and ignored events are all acknowledged with 200.
func (s *Server) HandlePaymentWebhook(ctx echo.Context, params HandlePaymentWebhookParams) error {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request().Body, MaxWebhookBody+1))
	if err != nil {
		return badRequestBody(ctx)
	}
	if len(payload) > MaxWebhookBody {
		return ctx.JSON(http.StatusRequestEntityTooLarge, Error{
			Code:    http.StatusRequestEntityTooLarge,
			Message: "Request body too large",
		})
	}

	cmd, err := commands.NewHandlePaymentWebhookCommand(payload, params.XPaymentSignature)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	result, err := s.handlers.PaymentWebhook.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, s.logger, err)
	}

	return ctx.JSON(http.StatusOK, webhookAckFromResult(result))
}

func badRequestBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
