package delivery

import (
	"fmt"

	"handover/internal/pkg/errs"
)

// Role identifies the authority tier of the actor requesting an operation.
// The service does not issue sessions or authenticate callers; roles arrive
// from the trusted boundary and are only evaluated against the transition
// gates here.
type Role string

const (
	// RoleAdmin is a manager-tier role with full oversight authority.
	RoleAdmin Role = "ADMIN"

	// RoleManager is a manager-tier role responsible for courier assignment.
	RoleManager Role = "MANAGER"

	// RoleDriver is the delivery-capable role; drivers advance their own
	// deliveries through the status machine.
	RoleDriver Role = "DRIVER"
)

func getValidRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleAdmin:   {},
		RoleManager: {},
		RoleDriver:  {},
	}
}

// RoleFromToken parses a role token arriving at the service boundary.
func RoleFromToken(token string) (Role, error) {
	role := Role(token)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks that the role is one of the enumerated values.
func (r Role) Validate() error {
	if _, ok := getValidRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the canonical role token.
func (r Role) String() string {
	return string(r)
}

// IsManagerTier reports whether the role belongs to the manager-tier set that
// may assign couriers and drive manager-gated transitions.
func (r Role) IsManagerTier() bool {
	return r == RoleAdmin || r == RoleManager
}

// satisfiesGate evaluates a transition gate for this role, where isAssignedCourier
// tells whether the requester is the courier bound to the delivery.
func (r Role) satisfiesGate(gate Gate, isAssignedCourier bool) bool {
	switch gate {
	case GateManager:
		return r.IsManagerTier()
	case GateDriver:
		return r == RoleDriver && isAssignedCourier
	case GateDriverOrManager:
		return r.IsManagerTier() || (r == RoleDriver && isAssignedCourier)
	default:
		return false
	}
}
