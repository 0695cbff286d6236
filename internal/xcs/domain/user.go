package domain

import "time"

type User struct {
	ID           string
	Username     string
	DisplayName  string
	AvatarURL    string
	Email        Email
	PasswordHash string // argon2 encoded
	Roblox       LinkedAccount
	Discord      LinkedAccount
	Platform     Platform
	Privacy      Privacy
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Email struct {
	Address  string
	Verified bool
}

// LinkedAccount is an external identity attached through an OAuth exchange.
// An empty ID means nothing is linked.
type LinkedAccount struct {
	ID       string
	Username string
	Verified bool
}

func (a LinkedAccount) Linked() bool { return a.ID != "" }

type Platform struct {
	Staff          bool
	MembershipTier int
	Invites        int // remaining platform invite credits
}

type Privacy struct {
	OrganizationsVisible bool
	LinkScansVisible     bool
}

// DefaultPrivacy is applied to newly registered users.
var DefaultPrivacy = Privacy{OrganizationsVisible: true, LinkScansVisible: false}

// LinkProvider names an external account provider.
type LinkProvider string

const (
	LinkRoblox  LinkProvider = "roblox"
	LinkDiscord LinkProvider = "discord"
)

// ExternalProfile is what an OAuth provider reports for a linked account.
type ExternalProfile struct {
	Provider LinkProvider
	ID       string
	Username string
}
