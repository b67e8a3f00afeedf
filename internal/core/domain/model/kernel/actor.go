package kernel

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Role is the role claim issued by the authentication service.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleDelivery   Role = "delivery"
	RoleAdmin      Role = "admin"
	// RoleSystem is used for transitions caused by this service itself
	// (payment settlement, delivery propagation, assignment).
	RoleSystem Role = "system"
)

// ParseRole accepts the external roles. RoleSystem cannot be claimed from outside.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleCustomer, RoleRestaurant, RoleDelivery, RoleAdmin:
		return r, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
	}
}

// Actor is the caller of a state-changing operation.
type Actor struct {
	ID   string
	Role Role
}

// NewActor validates an identity received from the authentication service.
func NewActor(id string, role Role) (Actor, error) {
	if strings.TrimSpace(id) == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor id")
	}
	if role == "" {
		return Actor{}, errs.NewValueIsRequiredError("actor role")
	}
	return Actor{ID: id, Role: role}, nil
}

// SystemActor is the actor for transitions performed by the service on its own behalf.
func SystemActor() Actor {
	return Actor{ID: "system", Role: RoleSystem}
}

// Is reports whether the actor has one of roles.
func (a Actor) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
