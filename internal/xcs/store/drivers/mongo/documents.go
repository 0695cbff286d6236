package mongo

import (
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type userDoc struct {
	ID           string      `bson:"_id"`
	Username     string      `bson:"username"`
	UsernameKey  string      `bson:"usernameKey"`
	DisplayName  string      `bson:"displayName"`
	AvatarURL    string      `bson:"avatar"`
	Email        emailDoc    `bson:"email"`
	PasswordHash string      `bson:"passwordHash"`
	Roblox       linkDoc     `bson:"roblox"`
	Discord      linkDoc     `bson:"discord"`
	Platform     platformDoc `bson:"platform"`
	Privacy      privacyDoc  `bson:"privacy"`
	CreatedAt    time.Time   `bson:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt"`
}

type emailDoc struct {
	Address  string `bson:"address"`
	Key      string `bson:"key"`
	Verified bool   `bson:"verified"`
}

type linkDoc struct {
	ID       string `bson:"id"`
	Username string `bson:"username"`
	Verified bool   `bson:"verified"`
}

type platformDoc struct {
	Staff          bool `bson:"staff"`
	MembershipTier int  `bson:"membershipTier"`
	Invites        int  `bson:"invites"`
}

type privacyDoc struct {
	OrganizationsVisible bool `bson:"organizations"`
	LinkScansVisible     bool `bson:"linkScans"`
}

func toUserDoc(u domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Username:     u.Username,
		UsernameKey:  domain.NormalizeName(u.Username),
		DisplayName:  u.DisplayName,
		AvatarURL:    u.AvatarURL,
		Email:        emailDoc{Address: u.Email.Address, Key: domain.NormalizeName(u.Email.Address), Verified: u.Email.Verified},
		PasswordHash: u.PasswordHash,
		Roblox:       linkDoc(u.Roblox),
		Discord:      linkDoc(u.Discord),
		Platform:     platformDoc(u.Platform),
		Privacy:      privacyDoc(u.Privacy),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) domain() domain.User {
	return domain.User{
		ID:           d.ID,
		Username:     d.Username,
		DisplayName:  d.DisplayName,
		AvatarURL:    d.AvatarURL,
		Email:        domain.Email{Address: d.Email.Address, Verified: d.Email.Verified},
		PasswordHash: d.PasswordHash,
		Roblox:       domain.LinkedAccount(d.Roblox),
		Discord:      domain.LinkedAccount(d.Discord),
		Platform:     domain.Platform(d.Platform),
		Privacy:      domain.Privacy(d.Privacy),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type organizationDoc struct {
	ID           string                    `bson:"_id"`
	Name         string                    `bson:"name"`
	NameKey      string                    `bson:"nameKey"`
	Description  string                    `bson:"description"`
	AvatarURL    string                    `bson:"avatar"`
	OwnerID      string                    `bson:"ownerId"`
	Members      map[string]memberDoc      `bson:"members"`
	AccessGroups map[string]accessGroupDoc `bson:"accessGroups"`
	APIKeys      map[string]apiKeyDoc      `bson:"apiKeys"`
	Logs         []logDoc                  `bson:"logs"`
	CreatedAt    time.Time                 `bson:"createdAt"`
	UpdatedAt    time.Time                 `bson:"updatedAt"`
}

type memberDoc struct {
	Subject      domain.SubjectRecord `bson:"subject"`
	Role         int                  `bson:"role"`
	AccessGroups []string             `bson:"accessGroups"`
	ScanData     map[string]any       `bson:"scanData"`
	Joined       bool                 `bson:"joined"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

type accessGroupDoc struct {
	ID          string         `bson:"id"`
	Name        string         `bson:"name"`
	Description string         `bson:"description"`
	Type        string         `bson:"type"`
	LocationID  string         `bson:"locationId,omitempty"`
	ScanData    map[string]any `bson:"scanData"`
	Config      struct {
		Active         bool `bson:"active"`
		OpenToEveryone bool `bson:"openToEveryone"`
	} `bson:"config"`
}

type apiKeyDoc struct {
	ID          string    `bson:"id"`
	Name        string    `bson:"name"`
	Fingerprint string    `bson:"fingerprint"`
	CreatedBy   string    `bson:"createdBy"`
	CreatedAt   time.Time `bson:"createdAt"`
}

type logDoc struct {
	ID          string         `bson:"id"`
	Type        string         `bson:"type"`
	PerformerID string         `bson:"performer"`
	Data        map[string]any `bson:"data"`
	CreatedAt   time.Time      `bson:"timestamp"`
}

func toMemberDoc(m domain.Member) memberDoc {
	return memberDoc{
		Subject:      domain.EncodeSubject(m.Subject),
		Role:         int(m.Role),
		AccessGroups: nonNil(m.AccessGroups),
		ScanData:     m.ScanData,
		Joined:       m.Joined,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (d memberDoc) domain(key string) (domain.Member, error) {
	subject, err := domain.DecodeSubject(d.Subject)
	if err != nil {
		return domain.Member{}, err
	}
	return domain.Member{
		Key:          key,
		Subject:      subject,
		Role:         domain.Role(d.Role),
		AccessGroups: d.AccessGroups,
		ScanData:     d.ScanData,
		Joined:       d.Joined,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func toAccessGroupDoc(g domain.AccessGroup) accessGroupDoc {
	d := accessGroupDoc{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Type:        string(g.Type),
		LocationID:  g.LocationID,
		ScanData:    g.ScanData,
	}
	d.Config.Active = g.Config.Active
	d.Config.OpenToEveryone = g.Config.OpenToEveryone
	return d
}

func (d accessGroupDoc) domain() domain.AccessGroup {
	return domain.AccessGroup{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Type:        domain.AccessGroupType(d.Type),
		LocationID:  d.LocationID,
		ScanData:    d.ScanData,
		Config: domain.AccessGroupConfig{
			Active:         d.Config.Active,
			OpenToEveryone: d.Config.OpenToEveryone,
		},
	}
}

func toOrganizationDoc(o domain.Organization) organizationDoc {
	d := organizationDoc{
		ID:           o.ID,
		Name:         o.Name,
		NameKey:      domain.NormalizeName(o.Name),
		Description:  o.Description,
		AvatarURL:    o.AvatarURL,
		OwnerID:      o.OwnerID,
		Members:      make(map[string]memberDoc, len(o.Members)),
		AccessGroups: make(map[string]accessGroupDoc, len(o.AccessGroups)),
		APIKeys:      make(map[string]apiKeyDoc, len(o.APIKeys)),
		Logs:         []logDoc{},
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	for k, m := range o.Members {
		d.Members[k] = toMemberDoc(m)
	}
	for k, g := range o.AccessGroups {
		d.AccessGroups[k] = toAccessGroupDoc(g)
	}
	for k, key := range o.APIKeys {
		d.APIKeys[k] = apiKeyDoc(key)
	}
	return d
}

func (d organizationDoc) domain() (domain.Organization, error) {
	o := domain.Organization{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		AvatarURL:    d.AvatarURL,
		OwnerID:      d.OwnerID,
		Members:      make(map[string]domain.Member, len(d.Members)),
		AccessGroups: make(map[string]domain.AccessGroup, len(d.AccessGroups)),
		APIKeys:      make(map[string]domain.APIKey, len(d.APIKeys)),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	for k, m := range d.Members {
		member, err := m.domain(k)
		if err != nil {
			return domain.Organization{}, err
		}
		o.Members[k] = member
	}
	for k, g := range d.AccessGroups {
		o.AccessGroups[k] = g.domain()
	}
	for k, key := range d.APIKeys {
		o.APIKeys[k] = domain.APIKey(key)
	}
	return o, nil
}

type locationDoc struct {
	ID             string   `bson:"_id"`
	OrganizationID string   `bson:"organizationId"`
	Name           string   `bson:"name"`
	NameKey        string   `bson:"nameKey"`
	Description    string   `bson:"description"`
	Enabled        bool     `bson:"enabled"`
	Tags           []string `bson:"tags"`
	Roblox         struct {
		PlaceID    int64 `bson:"placeId"`
		UniverseID int64 `bson:"universeId"`
	} `bson:"roblox"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toLocationDoc(l domain.Location) locationDoc {
	d := locationDoc{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		Name:           l.Name,
		NameKey:        domain.NormalizeName(l.Name),
		Description:    l.Description,
		Enabled:        l.Enabled,
		Tags:           nonNil(l.Tags),
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	d.Roblox.PlaceID = l.Roblox.PlaceID
	d.Roblox.UniverseID = l.Roblox.UniverseID
	return d
}

func (d locationDoc) domain() domain.Location {
	return domain.Location{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Description:    d.Description,
		Enabled:        d.Enabled,
		Tags:           d.Tags,
		Roblox:         domain.RobloxPlace{PlaceID: d.Roblox.PlaceID, UniverseID: d.Roblox.UniverseID},
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type accessPointDoc struct {
	ID             string            `bson:"_id"`
	OrganizationID string            `bson:"organizationId"`
	LocationID     string            `bson:"locationId"`
	Name           string            `bson:"name"`
	NameKey        string            `bson:"nameKey"`
	Description    string            `bson:"description"`
	Tags           []string          `bson:"tags"`
	Config         accessPointConfig `bson:"config"`
	CreatedAt      time.Time         `bson:"createdAt"`
	UpdatedAt      time.Time         `bson:"updatedAt"`
}

type accessPointConfig struct {
	Active        bool `bson:"active"`
	Armed         bool `bson:"armed"`
	UnlockTime    int  `bson:"unlockTime"`
	AlwaysAllowed struct {
		Users  []string `bson:"users"`
		Groups []string `bson:"groups"`
		Cards  []string `bson:"cards"`
	} `bson:"alwaysAllowed"`
	Webhook struct {
		URL          string `bson:"url"`
		EventGranted bool   `bson:"eventGranted"`
		EventDenied  bool   `bson:"eventDenied"`
	} `bson:"webhook"`
	ScanData map[string]any `bson:"scanData"`
}

func toAccessPointDoc(ap domain.AccessPoint) accessPointDoc {
	d := accessPointDoc{
		ID:             ap.ID,
		OrganizationID: ap.OrganizationID,
		LocationID:     ap.LocationID,
		Name:           ap.Name,
		NameKey:        domain.NormalizeName(ap.Name),
		Description:    ap.Description,
		Tags:           nonNil(ap.Tags),
		CreatedAt:      ap.CreatedAt,
		UpdatedAt:      ap.UpdatedAt,
	}
	c := ap.Config
	d.Config.Active = c.Active
	d.Config.Armed = c.Armed
	d.Config.UnlockTime = c.UnlockTime
	d.Config.AlwaysAllowed.Users = nonNil(c.AlwaysAllowed.Users)
	d.Config.AlwaysAllowed.Groups = nonNil(c.AlwaysAllowed.Groups)
	d.Config.AlwaysAllowed.Cards = nonNil(c.AlwaysAllowed.Cards)
	d.Config.Webhook.URL = c.Webhook.URL
	d.Config.Webhook.EventGranted = c.Webhook.EventGranted
	d.Config.Webhook.EventDenied = c.Webhook.EventDenied
	d.Config.ScanData = c.ScanData
	return d
}

func (d accessPointDoc) domain() domain.AccessPoint {
	c := d.Config
	return domain.AccessPoint{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		LocationID:     d.LocationID,
		Name:           d.Name,
		Description:    d.Description,
		Tags:           d.Tags,
		Config: domain.AccessPointConfig{
			Active:     c.Active,
			Armed:      c.Armed,
			UnlockTime: c.UnlockTime,
			AlwaysAllowed: domain.AlwaysAllowed{
				Users:  c.AlwaysAllowed.Users,
				Groups: c.AlwaysAllowed.Groups,
				Cards:  c.AlwaysAllowed.Cards,
			},
			Webhook: domain.Webhook{
				URL:          c.Webhook.URL,
				EventGranted: c.Webhook.EventGranted,
				EventDenied:  c.Webhook.EventDenied,
			},
			ScanData: c.ScanData,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type invitationDoc struct {
	ID             string     `bson:"_id"`
	Kind           string     `bson:"type"`
	CodeHash       string     `bson:"codeHash"`
	OrganizationID string     `bson:"organizationId,omitempty"`
	Role           int        `bson:"role"`
	AccessGroups   []string   `bson:"accessGroups"`
	MaxUses        int        `bson:"maxUses"`
	Uses           int        `bson:"uses"`
	CreatorID      string     `bson:"creator"`
	SponsorID      string     `bson:"sponsor,omitempty"`
	ExpiresAt      *time.Time `bson:"expiresAt"`
	CreatedAt      time.Time  `bson:"createdAt"`
}

func toInvitationDoc(i domain.Invitation) invitationDoc {
	return invitationDoc{
		ID:             i.ID,
		Kind:           string(i.Kind),
		CodeHash:       i.CodeHash,
		OrganizationID: i.OrganizationID,
		Role:           int(i.Role),
		AccessGroups:   nonNil(i.AccessGroups),
		MaxUses:        i.MaxUses,
		Uses:           i.Uses,
		CreatorID:      i.CreatorID,
		SponsorID:      i.SponsorID,
		ExpiresAt:      i.ExpiresAt,
		CreatedAt:      i.CreatedAt,
	}
}

func (d invitationDoc) domain() domain.Invitation {
	return domain.Invitation{
		ID:             d.ID,
		Kind:           domain.InvitationKind(d.Kind),
		CodeHash:       d.CodeHash,
		OrganizationID: d.OrganizationID,
		Role:           domain.Role(d.Role),
		AccessGroups:   d.AccessGroups,
		MaxUses:        d.MaxUses,
		Uses:           d.Uses,
		CreatorID:      d.CreatorID,
		SponsorID:      d.SponsorID,
		ExpiresAt:      d.ExpiresAt,
		CreatedAt:      d.CreatedAt,
	}
}

type notificationDoc struct {
	ID             string    `bson:"_id"`
	RecipientID    string    `bson:"recipient"`
	SenderID       string    `bson:"sender"`
	Type           string    `bson:"type"`
	Read           bool      `bson:"read"`
	OrganizationID string    `bson:"organizationId,omitempty"`
	MemberKey      string    `bson:"memberKey,omitempty"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

func toNotificationDoc(n domain.Notification) notificationDoc {
	return notificationDoc{
		ID:             n.ID,
		RecipientID:    n.RecipientID,
		SenderID:       n.SenderID,
		Type:           string(n.Type),
		Read:           n.Read,
		OrganizationID: n.OrganizationID,
		MemberKey:      n.MemberKey,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

func (d notificationDoc) domain() domain.Notification {
	return domain.Notification{
		ID:             d.ID,
		RecipientID:    d.RecipientID,
		SenderID:       d.SenderID,
		Type:           domain.NotificationType(d.Type),
		Read:           d.Read,
		OrganizationID: d.OrganizationID,
		MemberKey:      d.MemberKey,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type verificationCodeDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Kind      string    `bson:"type"`
	CodeHash  string    `bson:"codeHash"`
	ExpiresAt time.Time `bson:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt"`
}
