package xcssdk

import (
	"time"

	"github.com/ppongpeauk/xcs/pkg/jwtx"
)

// ============================================================================
// Common
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a machine readable code (e.g. "not_found", "conflict")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`

	// Details maps field names to problems when request validation fails
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// JWKSResponse is the public key set used to verify session tokens.
type JWKSResponse jwtx.JWKS

// ============================================================================
// Accounts & Sessions
// ============================================================================

// BootstrapRequest creates the first staff account.
type BootstrapRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type BootstrapResponse struct {
	UserID string `json:"user_id"`
}

// RegisterRequest creates an account with a platform invitation code.
type RegisterRequest struct {
	Code        string `json:"code"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// LoginRequest accepts a username or an email address as Login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// TokenResponse carries a session token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

type LinkedAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Verified bool   `json:"verified"`
}

type Privacy struct {
	OrganizationsVisible bool `json:"organizations_visible"`
	LinkScansVisible     bool `json:"link_scans_visible"`
}

// User is the caller's own account.
type User struct {
	ID            string         `json:"id"`
	Username      string         `json:"username"`
	DisplayName   string         `json:"display_name"`
	AvatarURL     string         `json:"avatar_url,omitempty"`
	Email         string         `json:"email"`
	EmailVerified bool           `json:"email_verified"`
	Roblox        *LinkedAccount `json:"roblox,omitempty"`
	Discord       *LinkedAccount `json:"discord,omitempty"`
	Staff         bool           `json:"staff"`
	Invites       int            `json:"invites"`
	Privacy       Privacy        `json:"privacy"`
	CreatedAt     time.Time      `json:"created_at"`
}

// PublicProfile is what other users can see. Organizations is omitted when
// the user hides them.
type PublicProfile struct {
	ID            string                `json:"id"`
	Username      string                `json:"username"`
	DisplayName   string                `json:"display_name"`
	AvatarURL     string                `json:"avatar_url,omitempty"`
	Staff         bool                  `json:"staff"`
	Roblox        *LinkedAccount        `json:"roblox,omitempty"`
	Organizations []OrganizationSummary `json:"organizations,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

type VerifyEmailRequest struct {
	Code string `json:"code"`
}

// LinkAccountRequest carries the OAuth authorization code returned by the
// provider.
type LinkAccountRequest struct {
	Code string `json:"code"`
}

type PlatformInviteRequest struct {
	MaxUses int `json:"max_uses,omitempty"`
}

// ============================================================================
// Organizations & Members
// ============================================================================

type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateOrganizationRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// OrganizationSummary is an organization without its members.
type OrganizationSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// Organization is the caller's view of an organization.
type Organization struct {
	OrganizationSummary
	OwnerID      string        `json:"owner_id"`
	Role         int           `json:"role"` // the caller's role
	MemberCount  int           `json:"member_count"`
	AccessGroups []AccessGroup `json:"access_groups"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Member is one member entry. Which subject fields are set depends on Type.
type Member struct {
	Key          string         `json:"key"`
	Type         string         `json:"type"`
	Role         int            `json:"role"`
	State        string         `json:"state"`
	AccessGroups []string       `json:"access_groups"`
	ScanData     map[string]any `json:"scan_data,omitempty"`

	UserID         string   `json:"user_id,omitempty"`
	RobloxUserID   int64    `json:"roblox_user_id,omitempty"`
	RobloxUsername string   `json:"roblox_username,omitempty"`
	GroupID        int64    `json:"group_id,omitempty"`
	GroupName      string   `json:"group_name,omitempty"`
	Rolesets       []int64  `json:"rolesets,omitempty"`
	CardName       string   `json:"card_name,omitempty"`
	CardNumbers    []string `json:"card_numbers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// InviteMemberRequest invites a platform user by id or username.
type InviteMemberRequest struct {
	Recipient    string   `json:"recipient"`
	Role         int      `json:"role"`
	AccessGroups []string `json:"access_groups,omitempty"`
}

type UpdateMemberRequest struct {
	Role         *int           `json:"role,omitempty"`
	AccessGroups *[]string      `json:"access_groups,omitempty"`
	ScanData     map[string]any `json:"scan_data,omitempty"`
}

type AddRobloxMemberRequest struct {
	RobloxUserID int64  `json:"roblox_user_id"`
	Username     string `json:"username,omitempty"`
}

type AddRobloxGroupMemberRequest struct {
	GroupID   int64   `json:"group_id"`
	GroupName string  `json:"group_name,omitempty"`
	Rolesets  []int64 `json:"rolesets,omitempty"`
}

type AddCardMemberRequest struct {
	Name    string   `json:"name"`
	Numbers []string `json:"numbers"`
}

// CreateInviteCodeRequest mints an organization code. ExpiresIn is in
// seconds, 0 never expires.
type CreateInviteCodeRequest struct {
	Role         int      `json:"role"`
	MaxUses      int      `json:"max_uses,omitempty"`
	ExpiresIn    int      `json:"expires_in,omitempty"`
	AccessGroups []string `json:"access_groups,omitempty"`
}

// InviteCode describes an outstanding code. The plaintext is only returned
// on creation.
type InviteCode struct {
	ID             string     `json:"id"`
	Kind           string     `json:"kind"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Role           int        `json:"role"`
	AccessGroups   []string   `json:"access_groups,omitempty"`
	Uses           int        `json:"uses"`
	MaxUses        int        `json:"max_uses"`
	CreatorID      string     `json:"creator_id"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreateInviteCodeResponse struct {
	Code       string     `json:"code"`
	InviteCode InviteCode `json:"invite_code"`
}

type InvitePreview struct {
	OrganizationID   string     `json:"organization_id"`
	OrganizationName string     `json:"organization_name"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
	Role             int        `json:"role"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

type RedeemInviteRequest struct {
	Code string `json:"code"`
}

type Notification struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Read           bool      `json:"read"`
	SenderID       string    `json:"sender_id"`
	OrganizationID string    `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type LogEntry struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	PerformerID string         `json:"performer_id"`
	Data        map[string]any `json:"data,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ============================================================================
// Access Groups, Locations & Access Points
// ============================================================================

type AccessGroup struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Type           string         `json:"type"`
	LocationID     string         `json:"location_id,omitempty"`
	ScanData       map[string]any `json:"scan_data,omitempty"`
	Active         bool           `json:"active"`
	OpenToEveryone bool           `json:"open_to_everyone"`
}

// AccessGroupRequest creates or replaces an access group.
type AccessGroupRequest struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Type           string         `json:"type"`
	LocationID     string         `json:"location_id,omitempty"`
	ScanData       map[string]any `json:"scan_data,omitempty"`
	Active         bool           `json:"active"`
	OpenToEveryone bool           `json:"open_to_everyone"`
}

type Location struct {
	ID               string    `json:"id"`
	OrganizationID   string    `json:"organization_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Enabled          bool      `json:"enabled"`
	Tags             []string  `json:"tags,omitempty"`
	RobloxPlaceID    int64     `json:"roblox_place_id,omitempty"`
	RobloxUniverseID int64     `json:"roblox_universe_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// LocationRequest creates or replaces a location. Omitted Roblox ids keep
// the current binding.
type LocationRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description,omitempty"`
	Enabled          bool     `json:"enabled"`
	Tags             []string `json:"tags,omitempty"`
	RobloxPlaceID    int64    `json:"roblox_place_id,omitempty"`
	RobloxUniverseID int64    `json:"roblox_universe_id,omitempty"`
}

type AlwaysAllowed struct {
	Users  []string `json:"users"`
	Groups []string `json:"groups"`
	Cards  []string `json:"cards"`
}

type Webhook struct {
	URL          string `json:"url,omitempty"`
	EventGranted bool   `json:"event_granted"`
	EventDenied  bool   `json:"event_denied"`
}

type AccessPointConfig struct {
	Active        bool           `json:"active"`
	Armed         bool           `json:"armed"`
	UnlockTime    int            `json:"unlock_time"`
	AlwaysAllowed AlwaysAllowed  `json:"always_allowed"`
	Webhook       Webhook        `json:"webhook"`
	ScanData      map[string]any `json:"scan_data,omitempty"`
}

type AccessPoint struct {
	ID             string            `json:"id"`
	OrganizationID string            `json:"organization_id"`
	LocationID     string            `json:"location_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Tags           []string          `json:"tags,omitempty"`
	Config         AccessPointConfig `json:"config"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// AccessPointRequest creates or replaces an access point.
type AccessPointRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Config      AccessPointConfig `json:"config"`
}

// ============================================================================
// API Keys & Devices
// ============================================================================

type APIKey struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateAPIKeyRequest struct {
	Name string `json:"name"`
}

// CreateAPIKeyResponse returns the plaintext key. It is never shown again.
type CreateAPIKeyResponse struct {
	Key    string `json:"key"`
	APIKey APIKey `json:"api_key"`
}

// ScanRequest is an identity presented at an access point. RobloxGroups
// maps Roblox group ids (as strings) to the scanner's roleset.
type ScanRequest struct {
	UserID       string           `json:"user_id,omitempty"`
	RobloxUserID int64            `json:"roblox_user_id,omitempty"`
	RobloxGroups map[string]int64 `json:"roblox_groups,omitempty"`
	CardNumber   string           `json:"card_number,omitempty"`
}

type ScanResponse struct {
	Granted       bool           `json:"granted"`
	Reason        string         `json:"reason"`
	MemberKey     string         `json:"member_key,omitempty"`
	AccessGroupID string         `json:"access_group_id,omitempty"`
	ScanData      map[string]any `json:"scan_data,omitempty"`
}

// LegacyAccessPoint is one door of the axesys sync document. Field names
// are fixed by the hardware.
type LegacyAccessPoint struct {
	DoorSettings     LegacyDoorSettings `json:"DoorSettings"`
	AuthorizedUsers  map[string]string  `json:"AuthorizedUsers"`
	AuthorizedGroups map[string][]int64 `json:"AuthorizedGroups"`
}

// LegacyDoorSettings: Locked is the armed flag, Timer the unlock time in
// seconds.
type LegacyDoorSettings struct {
	DoorName string `json:"DoorName"`
	Active   bool   `json:"Active"`
	Locked   bool   `json:"Locked"`
	Timer    int    `json:"Timer"`
}

// LegacySyncResponse is keyed by access point id.
type LegacySyncResponse map[string]LegacyAccessPoint
