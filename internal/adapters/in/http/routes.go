package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// HandlePaymentWebhookParams defines parameters for HandlePaymentWebhook.
type HandlePaymentWebhookParams struct {
	XPaymentSignature string
}

// ServerInterface represents all server handlers of api/openapi.yaml.
type ServerInterface interface {
	// Place an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Get an order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID string) error
	// Change the order status
	// (PUT /api/v1/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderID string) error
	// Assign the nearest courier to the order
	// (POST /api/v1/orders/{orderId}/assignment)
	AssignCourier(ctx echo.Context, orderID string) error
	// Start the payment of an order
	// (POST /api/v1/orders/{orderId}/payments)
	CreatePayment(ctx echo.Context, orderID string) error
	// Get a delivery
	// (GET /api/v1/deliveries/{deliveryId})
	GetDelivery(ctx echo.Context, deliveryID string) error
	// Change the delivery status
	// (PUT /api/v1/deliveries/{deliveryId}/status)
	ChangeDeliveryStatus(ctx echo.Context, deliveryID string) error
	// Accept a delivery
	// (PUT /api/v1/deliveries/{deliveryId}/accept)
	AcceptDelivery(ctx echo.Context, deliveryID string) error
	// Report the delivery position
	// (PUT /api/v1/deliveries/{deliveryId}/location)
	UpdateDeliveryLocation(ctx echo.Context, deliveryID string) error
	// Report the courier position used for matching
	// (PUT /api/v1/couriers/{courierId}/location)
	UpdateCourierLocation(ctx echo.Context, courierID string) error
	// Payment provider events
	// (POST /api/v1/payments/webhook)
	HandlePaymentWebhook(ctx echo.Context, params HandlePaymentWebhookParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathParam(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value, nil
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

// ChangeOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := bindPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderID)
}

// AssignCourier converts echo context to params.
func (w *ServerInterfaceWrapper) AssignCourier(ctx echo.Context) error {
	orderID, err := bindPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AssignCourier(ctx, orderID)
}

// CreatePayment converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePayment(ctx echo.Context) error {
	orderID, err := bindPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.CreatePayment(ctx, orderID)
}

// GetDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) GetDelivery(ctx echo.Context) error {
	deliveryID, err := bindPathParam(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.GetDelivery(ctx, deliveryID)
}

// ChangeDeliveryStatus converts echo context to params.
func (w *ServerInterfaceWrapper) ChangeDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := bindPathParam(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.ChangeDeliveryStatus(ctx, deliveryID)
}

// AcceptDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptDelivery(ctx echo.Context) error {
	deliveryID, err := bindPathParam(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.AcceptDelivery(ctx, deliveryID)
}

// UpdateDeliveryLocation converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateDeliveryLocation(ctx echo.Context) error {
	deliveryID, err := bindPathParam(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateDeliveryLocation(ctx, deliveryID)
}

// UpdateCourierLocation converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateCourierLocation(ctx echo.Context) error {
	courierID, err := bindPathParam(ctx, "courierId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateCourierLocation(ctx, courierID)
}

// HandlePaymentWebhook converts echo context to params.
func (w *ServerInterfaceWrapper) HandlePaymentWebhook(ctx echo.Context) error {
	var params HandlePaymentWebhookParams

	headers := ctx.Request().Header
	if valueList, found := headers[http.CanonicalHeaderKey("X-Payment-Signature")]; found {
		if n := len(valueList); n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Expected one value for X-Payment-Signature, got %d", n))
		}
		var signature string
		err := runtime.BindStyledParameterWithOptions("simple", "X-Payment-Signature", valueList[0], &signature,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Invalid format for parameter X-Payment-Signature: %s", err))
		}
		params.XPaymentSignature = signature
	} else {
		return echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Payment-Signature is required, but not found")
	}

	return w.Handler.HandlePaymentWebhook(ctx, params)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers and prepends baseURL to the paths.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.PUT(baseURL+"/api/v1/orders/:orderId/status", wrapper.ChangeOrderStatus)
	router.POST(baseURL+"/api/v1/orders/:orderId/assignment", wrapper.AssignCourier)
	router.POST(baseURL+"/api/v1/orders/:orderId/payments", wrapper.CreatePayment)
	router.GET(baseURL+"/api/v1/deliveries/:deliveryId", wrapper.GetDelivery)
	router.PUT(baseURL+"/api/v1/deliveries/:deliveryId/status", wrapper.ChangeDeliveryStatus)
	router.PUT(baseURL+"/api/v1/deliveries/:deliveryId/accept", wrapper.AcceptDelivery)
	router.PUT(baseURL+"/api/v1/deliveries/:deliveryId/location", wrapper.UpdateDeliveryLocation)
	router.PUT(baseURL+"/api/v1/couriers/:courierId/location", wrapper.UpdateCourierLocation)
	router.POST(baseURL+"/api/v1/payments/webhook", wrapper.HandlePaymentWebhook)
}
