package domain

import "time"

type Organization struct {
	ID          string
	Name        string
	Description string
	AvatarURL   string
	OwnerID     string

	Members      map[string]Member      // keyed by Member.Key
	AccessGroups map[string]AccessGroup // keyed by AccessGroup.ID
	APIKeys      map[string]APIKey      // keyed by APIKey.ID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActiveMember returns the joined member keyed by userID.
func (o Organization) ActiveMember(userID string) (Member, bool) {
	m, ok := o.Members[userID]
	if !ok || !m.Joined {
		return Member{}, false
	}
	if _, isUser := m.Subject.(UserSubject); !isUser {
		return Member{}, false
	}
	return m, true
}

// AccessGroupByName finds a group by case-insensitive name.
func (o Organization) AccessGroupByName(name string) (AccessGroup, bool) {
	key := NormalizeName(name)
	for _, g := range o.AccessGroups {
		if NormalizeName(g.Name) == key {
			return g, true
		}
	}
	return AccessGroup{}, false
}

// APIKey is an organization-scoped device credential. Only the fingerprint
// of the presented key is stored.
type APIKey struct {
	ID          string
	Name        string
	Fingerprint string
	CreatedBy   string
	CreatedAt   time.Time
}

// LogType identifies an organization log entry.
type LogType string

const (
	LogOrganizationCreated LogType = "organization-created"
	LogOrganizationUpdated LogType = "organization-updated"
	LogMemberInvited       LogType = "member-invited"
	LogMemberJoined        LogType = "member-joined"
	LogMemberRejected      LogType = "member-rejected"
	LogMemberLeft          LogType = "member-left"
	LogMemberRemoved       LogType = "member-removed"
	LogMemberUpdated       LogType = "member-updated"
	LogMemberAdded         LogType = "member-added"
	LogInviteCodeCreated   LogType = "invite-code-created"
	LogInviteCodeRevoked   LogType = "invite-code-revoked"
	LogAccessGroupCreated  LogType = "access-group-created"
	LogAccessGroupUpdated  LogType = "access-group-updated"
	LogAccessGroupDeleted  LogType = "access-group-deleted"
	LogLocationCreated     LogType = "location-created"
	LogLocationUpdated     LogType = "location-updated"
	LogLocationDeleted     LogType = "location-deleted"
	LogAccessPointCreated  LogType = "access-point-created"
	LogAccessPointUpdated  LogType = "access-point-updated"
	LogAccessPointDeleted  LogType = "access-point-deleted"
	LogAPIKeyCreated       LogType = "api-key-created"
	LogAPIKeyRevoked       LogType = "api-key-revoked"
	LogScan                LogType = "scan"
)

// LogEntry is one append-only organization audit record.
type LogEntry struct {
	ID             string
	OrganizationID string
	Type           LogType
	PerformerID    string
	Data           map[string]any
	CreatedAt      time.Time
}
