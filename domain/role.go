package domain

import "strings"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStoreOwner Role = "store_owner"
	RoleNormalUser Role = "normal_user"
)

// Roles lists every role in a stable order.
var Roles = []Role{RoleAdmin, RoleStoreOwner, RoleNormalUser}

// ParseRole accepts the canonical lower-case names, ignoring surrounding space and case.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStoreOwner, RoleNormalUser:
		return true
	}
	return false
}

// LandingPath is where the client should route a freshly authenticated user.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleStoreOwner:
		return "/owner"
	case RoleNormalUser:
		return "/stores"
	}
	return "/login"
}

func (r Role) String() string {
	return string(r)
}
