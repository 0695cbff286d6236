package domain

import "time"

// InvitationKind separates organization invite codes from platform
// registration codes.
type InvitationKind string

const (
	InvitationOrganization InvitationKind = "organization"
	InvitationPlatform     InvitationKind = "platform"
)

// Invitation is a shared, redeemable code. Only the fingerprint of the code
// is stored.
type Invitation struct {
	ID             string
	Kind           InvitationKind
	CodeHash       string
	OrganizationID string   // organization kind only
	Role           Role     // organization kind only, never RoleOwner
	AccessGroups   []string // organization kind only
	MaxUses        int      // 1 for single-use codes
	Uses           int
	CreatorID      string
	SponsorID      string // platform kind only
	ExpiresAt      *time.Time
	CreatedAt      time.Time
}

func (i Invitation) SingleUse() bool { return i.MaxUses == 1 }

func (i Invitation) Exhausted() bool { return i.Uses >= i.MaxUses }

func (i Invitation) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}
