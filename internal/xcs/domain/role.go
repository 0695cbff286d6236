package domain

import (
	"fmt"
	"strings"
)

// Role is a member's ordinal trust level inside an organization.
type Role int

const (
	RoleGuest Role = iota
	RoleMember
	RoleManager
	RoleOwner
)

// Roles lists every role in ascending order.
var Roles = []Role{RoleGuest, RoleMember, RoleManager, RoleOwner}

func (r Role) Valid() bool { return r >= RoleGuest && r <= RoleOwner }

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleMember:
		return "member"
	case RoleManager:
		return "manager"
	case RoleOwner:
		return "owner"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole accepts either the role name or its number.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "guest", "0":
		return RoleGuest, nil
	case "member", "1":
		return RoleMember, nil
	case "manager", "2":
		return RoleManager, nil
	case "owner", "3":
		return RoleOwner, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}
