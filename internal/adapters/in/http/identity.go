package http

import (
	"fmt"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the authentication gateway in front of this service.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// actorFromRequest reads the caller from the identity headers. The system
// role cannot be claimed by a request.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	id := strings.TrimSpace(ctx.Request().Header.Get(HeaderUserID))
	rawRole := ctx.Request().Header.Get(HeaderUserRole)
	if id == "" || strings.TrimSpace(rawRole) == "" {
		return kernel.Actor{}, errUnauthenticated
	}

	role, err := kernel.ParseRole(rawRole)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", errUnauthenticated, err)
	}

	actor, err := kernel.NewActor(id, role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", errUnauthenticated, err)
	}
	return actor, nil
}
