package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errUnauthenticated is returned when the caller's identity headers are missing or unusable.
var errUnauthenticated = errors.New("missing or invalid caller identity")

// statusOf maps an application error to an HTTP status code.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, commands.ErrRestaurantNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrNoDriverAvailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, commands.ErrAlreadyAssigned),
		errors.Is(err, commands.ErrPaymentAlreadyExists),
		errors.Is(err, order.ErrCourierRequired),
		errors.Is(err, delivery.ErrDeliveryIsFinished):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, services.ErrSignatureInvalid),
		errors.Is(err, commands.ErrMenuItemUnavailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an Error body. Internal errors are logged and
// their text is not exposed.
func writeError(ctx echo.Context, logger *slog.Logger, err error) error {
	code := statusOf(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

// ErrorHandler renders errors that escape the handlers, such as unknown
// routes and parameter binding failures, in the same shape as handler errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			message, ok := he.Message.(string)
			if !ok {
				message = http.StatusText(he.Code)
			}
			err = ctx.JSON(he.Code, Error{Code: he.Code, Message: message})
		} else {
			err = writeError(ctx, logger, err)
		}
		if err != nil {
			logger.ErrorContext(ctx.Request().Context(), "failed to write error response", "error", err)
		}
	}
}
