package role

import (
	"fmt"
	"strings"
)

// Role is the closed set of platform roles stored on users.role.
type Role string

const (
	SuperAdmin Role = "super_admin"
	Owner      Role = "owner"
	Barber     Role = "barber"
	User       Role = "user"
)

func (r Role) IsValid() bool {
	switch r {
	case SuperAdmin, Owner, Barber, User:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Parse rejects anything outside the known set instead of defaulting to User.
func Parse(value string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid role %q", value)
	}
	return r, nil
}

// Dashboard is the landing path a client should route the role to.
func (r Role) Dashboard() string {
	switch r {
	case SuperAdmin:
		return "/dashboard/admin"
	case Owner:
		return "/dashboard/owner"
	case Barber:
		return "/dashboard/barber"
	default:
		return "/dashboard/user"
	}
}

// CanPublish reports whether the role may upload images and create posts.
func (r Role) CanPublish() bool {
	return r == Owner || r == Barber
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	UserID uint
	Role   Role
}

func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Role == SuperAdmin
}
