package account

import (
	"fmt"

	"nexaci/internal/pkg/errs"
)

// Role classifies a participant and gates which lifecycle edges they may take.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient originates shipments and mandates.
	RoleClient

	// RoleCourier is the fulfillment agent physically completing deliveries.
	RoleCourier

	// RoleManager operates an agency and its couriers.
	RoleManager

	// RoleAdmin administers the whole platform.
	RoleAdmin

	// RoleSuperAdmin holds unrestricted privileges.
	RoleSuperAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleClient:     "client",
		RoleCourier:    "courier",
		RoleManager:    "manager",
		RoleAdmin:      "admin",
		RoleSuperAdmin: "superadmin",
	}
}

// String returns the wire name of the role, or "unknown".
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the role is one of the known values.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole converts a wire name to a Role.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// IsAgencyBound reports whether the role must be attached to an agency.
func (r Role) IsAgencyBound() bool {
	return r == RoleCourier || r == RoleManager
}

// IsPrivileged reports whether the role may perform any lifecycle edge
// unconditionally.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
