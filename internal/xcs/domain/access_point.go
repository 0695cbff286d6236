package domain

import (
	"slices"
	"time"
)

type AccessPoint struct {
	ID             string
	OrganizationID string
	LocationID     string
	Name           string
	Description    string
	Tags           []string
	Config         AccessPointConfig
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type AccessPointConfig struct {
	Active        bool
	Armed         bool
	UnlockTime    int // seconds the door stays unlocked after a grant
	AlwaysAllowed AlwaysAllowed
	Webhook       Webhook
	ScanData      map[string]any
}

// AlwaysAllowed is the explicit allow-list of an access point. Users holds
// member keys (user ids or Roblox ids), Groups holds access group ids and
// Cards holds card numbers.
type AlwaysAllowed struct {
	Users  []string
	Groups []string
	Cards  []string
}

// WithoutUsers returns a copy with ids removed from Users.
func (a AlwaysAllowed) WithoutUsers(ids ...string) AlwaysAllowed {
	a.Users = slices.DeleteFunc(slices.Clone(a.Users), func(u string) bool {
		return slices.Contains(ids, u)
	})
	return a
}

// WithoutGroup returns a copy with groupID removed from Groups.
func (a AlwaysAllowed) WithoutGroup(groupID string) AlwaysAllowed {
	a.Groups = slices.DeleteFunc(slices.Clone(a.Groups), func(g string) bool {
		return g == groupID
	})
	return a
}

// Webhook is notified after each scan at the access point.
type Webhook struct {
	URL          string
	EventGranted bool
	EventDenied  bool
}

const MaxUnlockTime = 3600

// DefaultUnlockTime is applied to new access points.
const DefaultUnlockTime = 8
