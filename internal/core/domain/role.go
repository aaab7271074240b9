package domain

import "fmt"

// Role is the account category carried in the credential's role claim.
// It is a closed set: adding a role means revisiting every switch over Role.
type Role uint8

const (
	// RoleNone marks a view with no role requirement.
	RoleNone Role = iota
	RoleLister
	RoleRenter
)

// ParseRole converts the wire name used by the rental API into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Lister":
		return RoleLister, nil
	case "Renter":
		return RoleRenter, nil
	}
	return RoleNone, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// String returns the wire name of the role ("" for RoleNone).
func (r Role) String() string {
	switch r {
	case RoleLister:
		return "Lister"
	case RoleRenter:
		return "Renter"
	case RoleNone:
		return ""
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}
