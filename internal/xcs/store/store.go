package store

import (
	"context"
	"errors"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConditionFailed is returned by conditional counter updates when the
	// guard did not hold (e.g. an invitation already at its maximum uses).
	ErrConditionFailed = errors.New("store: condition failed")
)

// Store is the root data access interface. Concrete drivers (sqlite, mongo)
// implement this. It exposes one repository per collection so that services
// never reach into storage directly and so that transactions are opened in
// exactly one place.
type Store interface {
	Users() Users
	Organizations() Organizations
	Locations() Locations
	AccessPoints() AccessPoints
	Invitations() Invitations
	Notifications() Notifications
	VerificationCodes() VerificationCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Every
	// multi-collection mutation goes through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. Username, email and linked account ids
	// are unique; a clash returns ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername matches case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByLinkedAccount finds the user that linked the external id.
	GetUserByLinkedAccount(ctx context.Context, provider domain.LinkProvider, externalID string) (domain.User, error)

	// UpdateUser overwrites every mutable field and bumps updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// DecrementInvites consumes one platform invite credit. Returns
	// ErrConditionFailed when the user has none left.
	DecrementInvites(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Organizations interface {
	// CreateOrganization inserts the organization together with its members,
	// access groups and API keys.
	CreateOrganization(ctx context.Context, o domain.Organization) error

	// GetOrganization returns the full aggregate without logs.
	GetOrganization(ctx context.Context, id string) (domain.Organization, error)

	// GetOrganizationByName matches case-insensitively.
	GetOrganizationByName(ctx context.Context, name string) (domain.Organization, error)

	// ListOrganizationsForUser returns every organization where userID is an
	// active member, ordered by name.
	ListOrganizationsForUser(ctx context.Context, userID string) ([]domain.Organization, error)

	// UpdateOrganization writes name, description and avatar.
	UpdateOrganization(ctx context.Context, o domain.Organization) error

	// DeleteOrganization removes the organization and everything embedded in
	// it (members, access groups, API keys, logs).
	DeleteOrganization(ctx context.Context, id string) error

	// PutMember inserts or replaces the member stored under m.Key.
	PutMember(ctx context.Context, orgID string, m domain.Member) error

	// UpdateMember overwrites an existing member. Returns ErrNotFound when
	// no member is stored under m.Key, so a concurrent removal is never
	// undone.
	UpdateMember(ctx context.Context, orgID string, m domain.Member) error
	DeleteMember(ctx context.Context, orgID, key string) error

	PutAccessGroup(ctx context.Context, orgID string, g domain.AccessGroup) error
	DeleteAccessGroup(ctx context.Context, orgID, groupID string) error

	// RemoveAccessGroupFromMembers pulls groupID from every member's access
	// group list.
	RemoveAccessGroupFromMembers(ctx context.Context, orgID, groupID string) error

	PutAPIKey(ctx context.Context, orgID string, k domain.APIKey) error
	DeleteAPIKey(ctx context.Context, orgID, keyID string) error

	// GetOrganizationByAPIKey resolves the organization owning keyID.
	GetOrganizationByAPIKey(ctx context.Context, keyID string) (domain.Organization, domain.APIKey, error)

	AppendLog(ctx context.Context, e domain.LogEntry) error

	// ListLogs returns the newest entries first. limit <= 0 means all.
	ListLogs(ctx context.Context, orgID string, limit int) ([]domain.LogEntry, error)
}

type Locations interface {
	CreateLocation(ctx context.Context, l domain.Location) error
	GetLocation(ctx context.Context, id string) (domain.Location, error)

	// ListLocations returns an organization's locations ordered by name.
	ListLocations(ctx context.Context, orgID string) ([]domain.Location, error)

	UpdateLocation(ctx context.Context, l domain.Location) error
	DeleteLocation(ctx context.Context, id string) error
	DeleteLocationsByOrganization(ctx context.Context, orgID string) error
}

type AccessPoints interface {
	CreateAccessPoint(ctx context.Context, ap domain.AccessPoint) error
	GetAccessPoint(ctx context.Context, id string) (domain.AccessPoint, error)

	// ListAccessPointsByLocation returns the location's access points ordered by name.
	ListAccessPointsByLocation(ctx context.Context, locationID string) ([]domain.AccessPoint, error)
	ListAccessPointsByOrganization(ctx context.Context, orgID string) ([]domain.AccessPoint, error)

	UpdateAccessPoint(ctx context.Context, ap domain.AccessPoint) error
	DeleteAccessPoint(ctx context.Context, id string) error
	DeleteAccessPointsByLocation(ctx context.Context, locationID string) error
	DeleteAccessPointsByOrganization(ctx context.Context, orgID string) error

	// PullAlwaysAllowedGroup removes groupID from the always-allowed groups
	// of every access point in the organization.
	PullAlwaysAllowedGroup(ctx context.Context, orgID, groupID string) error

	// PullAlwaysAllowedUsers removes ids from the always-allowed users of
	// every access point in the organization.
	PullAlwaysAllowedUsers(ctx context.Context, orgID string, ids ...string) error
}

type Invitations interface {
	CreateInvitation(ctx context.Context, inv domain.Invitation) error
	GetInvitation(ctx context.Context, id string) (domain.Invitation, error)

	// GetInvitationByCodeHash returns the invitation regardless of expiry;
	// callers check Expired and Exhausted.
	GetInvitationByCodeHash(ctx context.Context, hash string) (domain.Invitation, error)

	// IncrementInvitationUses bumps uses when uses < max_uses and returns the
	// updated invitation. Returns ErrConditionFailed when exhausted.
	IncrementInvitationUses(ctx context.Context, id string) (domain.Invitation, error)

	// ListInvitations returns an organization's invitation codes, newest first.
	ListInvitations(ctx context.Context, orgID string) ([]domain.Invitation, error)

	DeleteInvitation(ctx context.Context, id string) error
	DeleteInvitationsByOrganization(ctx context.Context, orgID string) error

	// DeleteExpiredInvitations is housekeeping. Returns the number removed.
	DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error)
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.Notification) error
	GetNotification(ctx context.Context, id string) (domain.Notification, error)

	// ListNotifications returns the recipient's notifications, newest first.
	ListNotifications(ctx context.Context, recipientID string) ([]domain.Notification, error)

	MarkNotificationRead(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteNotificationsByOrganization(ctx context.Context, orgID string) error

	// DeleteNotificationsForMember removes pending invitations tied to one
	// member entry.
	DeleteNotificationsForMember(ctx context.Context, orgID, memberKey string) error
}

type VerificationCodes interface {
	CreateVerificationCode(ctx context.Context, c domain.VerificationCode) error
	GetVerificationCodeByHash(ctx context.Context, hash string) (domain.VerificationCode, error)
	DeleteVerificationCode(ctx context.Context, id string) error

	// DeleteVerificationCodesForUser drops every outstanding code of kind.
	DeleteVerificationCodesForUser(ctx context.Context, userID string, kind domain.VerificationKind) error

	// DeleteExpiredVerificationCodes is housekeeping. Returns the number removed.
	DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error)
}
