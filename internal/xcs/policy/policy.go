// Package policy decides which organization mutations a member role may
// perform.
package policy

import "github.com/ppongpeauk/xcs/internal/xcs/domain"

// Action is an organization mutation gated by role.
type Action int

const (
	EditOrganization Action = iota
	DeleteOrganization
	ViewLogs
	ManageAPIKeys
	CreateLocation
	EditLocation
	DeleteLocation
	CreateAccessPoint
	EditAccessPoint
	DeleteAccessPoint
	CreateInvitation
	CreateAccessGroup
	EditAccessGroup
	DeleteAccessGroup

	// ManageMembers takes the target member's current role.
	ManageMembers
	// GrantRole takes the role being assigned.
	GrantRole
)

// Actions lists every action, for exhaustive checks.
var Actions = []Action{
	EditOrganization, DeleteOrganization, ViewLogs, ManageAPIKeys,
	CreateLocation, EditLocation, DeleteLocation,
	CreateAccessPoint, EditAccessPoint, DeleteAccessPoint,
	CreateInvitation, CreateAccessGroup, EditAccessGroup, DeleteAccessGroup,
	ManageMembers, GrantRole,
}

func (a Action) String() string {
	switch a {
	case EditOrganization:
		return "edit-organization"
	case DeleteOrganization:
		return "delete-organization"
	case ViewLogs:
		return "view-logs"
	case ManageAPIKeys:
		return "manage-api-keys"
	case CreateLocation:
		return "create-location"
	case EditLocation:
		return "edit-location"
	case DeleteLocation:
		return "delete-location"
	case CreateAccessPoint:
		return "create-access-point"
	case EditAccessPoint:
		return "edit-access-point"
	case DeleteAccessPoint:
		return "delete-access-point"
	case CreateInvitation:
		return "create-invitation"
	case CreateAccessGroup:
		return "create-access-group"
	case EditAccessGroup:
		return "edit-access-group"
	case DeleteAccessGroup:
		return "delete-access-group"
	case ManageMembers:
		return "manage-members"
	case GrantRole:
		return "grant-role"
	default:
		return "unknown"
	}
}

// Policy answers whether a member holding acting may perform action. target
// is only consulted by ManageMembers and GrantRole.
type Policy interface {
	CanPerform(acting, target domain.Role, action Action) bool
}

// Thresholds is a Policy driven by a minimum role per action.
type Thresholds map[Action]domain.Role

// Default is the canonical threshold table: Manager for structural edits,
// Owner for deleting the organization and handling its API keys.
var Default = Thresholds{
	EditOrganization:   domain.RoleManager,
	DeleteOrganization: domain.RoleOwner,
	ViewLogs:           domain.RoleManager,
	ManageAPIKeys:      domain.RoleOwner,
	CreateLocation:     domain.RoleManager,
	EditLocation:       domain.RoleManager,
	DeleteLocation:     domain.RoleManager,
	CreateAccessPoint:  domain.RoleManager,
	EditAccessPoint:    domain.RoleManager,
	DeleteAccessPoint:  domain.RoleManager,
	CreateInvitation:   domain.RoleManager,
	CreateAccessGroup:  domain.RoleManager,
	EditAccessGroup:    domain.RoleManager,
	DeleteAccessGroup:  domain.RoleManager,
	ManageMembers:      domain.RoleManager,
	GrantRole:          domain.RoleManager,
}

// CanPerform implements Policy.
//
// ManageMembers additionally requires the target to rank strictly below the
// actor and never be the owner. GrantRole requires the new role to rank
// strictly below the actor; the owner role can never be granted.
func (t Thresholds) CanPerform(acting, target domain.Role, action Action) bool {
	if !acting.Valid() {
		return false
	}
	min, ok := t[action]
	if !ok || acting < min {
		return false
	}

	switch action {
	case ManageMembers, GrantRole:
		return target.Valid() && target < acting && target < domain.RoleOwner
	default:
		return true
	}
}
