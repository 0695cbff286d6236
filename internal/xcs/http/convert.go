package http

import (
	"slices"
	"strconv"
	"strings"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

func toUser(u domain.User) xcssdk.User {
	return xcssdk.User{
		ID:            u.ID,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		Email:         u.Email.Address,
		EmailVerified: u.Email.Verified,
		Roblox:        toLinkedAccount(u.Roblox),
		Discord:       toLinkedAccount(u.Discord),
		Staff:         u.Platform.Staff,
		Invites:       u.Platform.Invites,
		Privacy:       xcssdk.Privacy(u.Privacy),
		CreatedAt:     u.CreatedAt,
	}
}

func toLinkedAccount(a domain.LinkedAccount) *xcssdk.LinkedAccount {
	if !a.Linked() {
		return nil
	}
	return &xcssdk.LinkedAccount{ID: a.ID, Username: a.Username, Verified: a.Verified}
}

func toPublicProfile(p service.PublicProfile) xcssdk.PublicProfile {
	out := xcssdk.PublicProfile{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Staff:       p.Staff,
		CreatedAt:   p.CreatedAt,
	}
	if p.Roblox != nil {
		out.Roblox = toLinkedAccount(*p.Roblox)
	}
	for _, o := range p.Organizations {
		out.Organizations = append(out.Organizations, toOrganizationSummary(o))
	}
	return out
}

func toOrganizationSummary(o domain.Organization) xcssdk.OrganizationSummary {
	return xcssdk.OrganizationSummary{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		AvatarURL:   o.AvatarURL,
	}
}

// toOrganization renders o as seen by the member with role.
func toOrganization(o domain.Organization, role domain.Role) xcssdk.Organization {
	active := 0
	for _, m := range o.Members {
		if m.Joined {
			active++
		}
	}
	return xcssdk.Organization{
		OrganizationSummary: toOrganizationSummary(o),
		OwnerID:             o.OwnerID,
		Role:                int(role),
		MemberCount:         active,
		AccessGroups:        toAccessGroups(o.AccessGroups),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

// toOrganizationFor looks up the caller's role in o.
func toOrganizationFor(o domain.Organization, userID string) xcssdk.Organization {
	m, _ := o.ActiveMember(userID)
	return toOrganization(o, m.Role)
}

// toAccessGroups returns groups sorted by name.
func toAccessGroups(groups map[string]domain.AccessGroup) []xcssdk.AccessGroup {
	out := make([]xcssdk.AccessGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, toAccessGroup(g))
	}
	slices.SortFunc(out, func(a, b xcssdk.AccessGroup) int {
		if c := strings.Compare(domain.NormalizeName(a.Name), domain.NormalizeName(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func toAccessGroup(g domain.AccessGroup) xcssdk.AccessGroup {
	return xcssdk.AccessGroup{
		ID:             g.ID,
		Name:           g.Name,
		Description:    g.Description,
		Type:           string(g.Type),
		LocationID:     g.LocationID,
		ScanData:       g.ScanData,
		Active:         g.Config.Active,
		OpenToEveryone: g.Config.OpenToEveryone,
	}
}

func fromAccessGroupRequest(req xcssdk.AccessGroupRequest) service.AccessGroupInput {
	return service.AccessGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.AccessGroupType(req.Type),
		LocationID:  req.LocationID,
		ScanData:    req.ScanData,
		Config: domain.AccessGroupConfig{
			Active:         req.Active,
			OpenToEveryone: req.OpenToEveryone,
		},
	}
}

func toMember(m domain.Member) xcssdk.Member {
	rec := domain.EncodeSubject(m.Subject)
	return xcssdk.Member{
		Key:            m.Key,
		Type:           string(rec.Type),
		Role:           int(m.Role),
		State:          string(m.State()),
		AccessGroups:   nonNil(m.AccessGroups),
		ScanData:       m.ScanData,
		UserID:         rec.UserID,
		RobloxUserID:   rec.RobloxUserID,
		RobloxUsername: rec.RobloxUsername,
		GroupID:        rec.GroupID,
		GroupName:      rec.GroupName,
		Rolesets:       rec.Rolesets,
		CardName:       rec.CardName,
		CardNumbers:    rec.CardNumbers,
		CreatedAt:      m.CreatedAt,
	}
}

func toInviteCode(inv domain.Invitation) xcssdk.InviteCode {
	return xcssdk.InviteCode{
		ID:             inv.ID,
		Kind:           string(inv.Kind),
		OrganizationID: inv.OrganizationID,
		Role:           int(inv.Role),
		AccessGroups:   inv.AccessGroups,
		Uses:           inv.Uses,
		MaxUses:        inv.MaxUses,
		CreatorID:      inv.CreatorID,
		ExpiresAt:      inv.ExpiresAt,
		CreatedAt:      inv.CreatedAt,
	}
}

func toNotification(n domain.Notification) xcssdk.Notification {
	return xcssdk.Notification{
		ID:             n.ID,
		Type:           string(n.Type),
		Read:           n.Read,
		SenderID:       n.SenderID,
		OrganizationID: n.OrganizationID,
		CreatedAt:      n.CreatedAt,
	}
}

func toLogEntry(e domain.LogEntry) xcssdk.LogEntry {
	return xcssdk.LogEntry{
		ID:          e.ID,
		Type:        string(e.Type),
		PerformerID: e.PerformerID,
		Data:        e.Data,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPIKey(k domain.APIKey) xcssdk.APIKey {
	return xcssdk.APIKey{ID: k.ID, Name: k.Name, CreatedBy: k.CreatedBy, CreatedAt: k.CreatedAt}
}

func toLocation(l domain.Location) xcssdk.Location {
	return xcssdk.Location{
		ID:               l.ID,
		OrganizationID:   l.OrganizationID,
		Name:             l.Name,
		Description:      l.Description,
		Enabled:          l.Enabled,
		Tags:             l.Tags,
		RobloxPlaceID:    l.Roblox.PlaceID,
		RobloxUniverseID: l.Roblox.UniverseID,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func fromLocationRequest(req xcssdk.LocationRequest) service.LocationInput {
	return service.LocationInput{
		Name:        req.Name,
		Description: req.Description,
		Enabled:     req.Enabled,
		Tags:        req.Tags,
		Roblox:      domain.RobloxPlace{PlaceID: req.RobloxPlaceID, UniverseID: req.RobloxUniverseID},
	}
}

func toAccessPoint(ap domain.AccessPoint) xcssdk.AccessPoint {
	c := ap.Config
	return xcssdk.AccessPoint{
		ID:             ap.ID,
		OrganizationID: ap.OrganizationID,
		LocationID:     ap.LocationID,
		Name:           ap.Name,
		Description:    ap.Description,
		Tags:           ap.Tags,
		Config: xcssdk.AccessPointConfig{
			Active:     c.Active,
			Armed:      c.Armed,
			UnlockTime: c.UnlockTime,
			AlwaysAllowed: xcssdk.AlwaysAllowed{
				Users:  nonNil(c.AlwaysAllowed.Users),
				Groups: nonNil(c.AlwaysAllowed.Groups),
				Cards:  nonNil(c.AlwaysAllowed.Cards),
			},
			Webhook:  xcssdk.Webhook(c.Webhook),
			ScanData: c.ScanData,
		},
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}
}

func fromAccessPointRequest(req xcssdk.AccessPointRequest) service.AccessPointInput {
	c := req.Config
	return service.AccessPointInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Config: domain.AccessPointConfig{
			Active:     c.Active,
			Armed:      c.Armed,
			UnlockTime: c.UnlockTime,
			AlwaysAllowed: domain.AlwaysAllowed{
				Users:  c.AlwaysAllowed.Users,
				Groups: c.AlwaysAllowed.Groups,
				Cards:  c.AlwaysAllowed.Cards,
			},
			Webhook:  domain.Webhook(c.Webhook),
			ScanData: c.ScanData,
		},
	}
}

// fromScanRequest parses the string keyed group map. Non-numeric group ids
// are dropped.
func fromScanRequest(req xcssdk.ScanRequest) domain.ScanIdentity {
	id := domain.ScanIdentity{
		UserID:       req.UserID,
		RobloxUserID: req.RobloxUserID,
		CardNumber:   req.CardNumber,
	}
	if len(req.RobloxGroups) > 0 {
		id.RobloxGroups = make(map[int64]int64, len(req.RobloxGroups))
		for k, rank := range req.RobloxGroups {
			if gid, err := strconv.ParseInt(k, 10, 64); err == nil {
				id.RobloxGroups[gid] = rank
			}
		}
	}
	return id
}

func toScanResponse(d domain.Decision) xcssdk.ScanResponse {
	return xcssdk.ScanResponse{
		Granted:       d.Granted,
		Reason:        string(d.Reason),
		MemberKey:     d.MemberKey,
		AccessGroupID: d.AccessGroupID,
		ScanData:      d.ScanData,
	}
}

func toLegacy(in map[string]service.LegacyAccessPoint) xcssdk.LegacySyncResponse {
	out := make(xcssdk.LegacySyncResponse, len(in))
	for id, ap := range in {
		out[id] = xcssdk.LegacyAccessPoint{
			DoorSettings:     xcssdk.LegacyDoorSettings(ap.DoorSettings),
			AuthorizedUsers:  ap.AuthorizedUsers,
			AuthorizedGroups: ap.AuthorizedGroups,
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
