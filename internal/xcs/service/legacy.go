package service

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// LegacyAccessPoint is the per-door document consumed by axesys hardware.
// Field names are a fixed wire contract.
type LegacyAccessPoint struct {
	DoorSettings     LegacyDoorSettings `json:"DoorSettings"`
	AuthorizedUsers  map[string]string  `json:"AuthorizedUsers"`
	AuthorizedGroups map[string][]int64 `json:"AuthorizedGroups"`
}

type LegacyDoorSettings struct {
	DoorName string `json:"DoorName"`
	Active   bool   `json:"Active"`
	Locked   bool   `json:"Locked"`
	Timer    int    `json:"Timer"`
}

// LegacySyncService flattens a location into the axesys sync format.
type LegacySyncService struct {
	Store store.Store
}

// Sync returns every access point of the location keyed by id. Only Roblox
// identities are representable: users without a verified Roblox link and
// card members are left out.
func (s *LegacySyncService) Sync(
	ctx context.Context,
	apiKey, locationID string,
) (map[string]LegacyAccessPoint, error) {
	// 1. Authenticate and scope the location
	o, key, err := authenticateAPIKey(ctx, s.Store, apiKey)
	if err != nil {
		return nil, err
	}
	ctx = slogx.WithDevice(ctx, o.ID, key.ID)
	log := slogx.FromContext(ctx)
	loc, err := s.Store.Locations().GetLocation(ctx, locationID)
	if err != nil {
		return nil, notFound(err, ErrLocationNotFound)
	}
	if loc.OrganizationID != o.ID {
		return nil, ErrLocationNotFound
	}

	aps, err := s.Store.AccessPoints().ListAccessPointsByLocation(ctx, loc.ID)
	if err != nil {
		log.Error("failed to list access points", slog.Any("error", err))
		return nil, err
	}

	// 2. Flatten each access point
	r := robloxResolver{st: s.Store, org: o, loc: loc, users: map[string]domain.User{}}
	out := make(map[string]LegacyAccessPoint, len(aps))
	for _, ap := range aps {
		doc, err := r.accessPoint(ctx, ap)
		if err != nil {
			log.Error("failed to flatten access point",
				slog.String("access_point_id", ap.ID),
				slog.Any("error", err),
			)
			return nil, err
		}
		out[ap.ID] = doc
	}

	log.Debug("legacy sync served",
		slog.String("location_id", loc.ID),
		slog.Int("access_points", len(out)),
	)
	return out, nil
}

type robloxResolver struct {
	st    store.Store
	org   domain.Organization
	loc   domain.Location
	users map[string]domain.User
}

func (r *robloxResolver) accessPoint(ctx context.Context, ap domain.AccessPoint) (LegacyAccessPoint, error) {
	doc := LegacyAccessPoint{
		DoorSettings: LegacyDoorSettings{
			DoorName: ap.Name,
			Active:   ap.Config.Active && r.loc.Enabled,
			Locked:   ap.Config.Armed,
			Timer:    ap.Config.UnlockTime,
		},
		AuthorizedUsers:  map[string]string{},
		AuthorizedGroups: map[string][]int64{},
	}

	// Explicitly allowed users
	for _, key := range ap.Config.AlwaysAllowed.Users {
		id, name, ok, err := r.robloxFor(ctx, key)
		if err != nil {
			return LegacyAccessPoint{}, err
		}
		if ok {
			doc.AuthorizedUsers[id] = name
		}
	}

	// Members granted through an active bound group
	bound := make(map[string]domain.AccessGroup)
	for _, gid := range ap.Config.AlwaysAllowed.Groups {
		if g, ok := r.org.AccessGroups[gid]; ok && g.Config.Active && g.BindableAt(ap.LocationID) {
			bound[gid] = g
		}
	}
	for _, key := range slices.Sorted(maps.Keys(r.org.Members)) {
		m := r.org.Members[key]
		if !m.Joined {
			continue
		}
		if _, ok := m.InAnyGroup(bound); !ok {
			continue
		}
		switch sub := m.Subject.(type) {
		case domain.UserSubject, domain.RobloxSubject:
			id, name, ok, err := r.robloxFor(ctx, m.Key)
			if err != nil {
				return LegacyAccessPoint{}, err
			}
			if ok {
				doc.AuthorizedUsers[id] = name
			}
		case domain.RobloxGroupSubject:
			gid := strconv.FormatInt(sub.GroupID, 10)
			rolesets := doc.AuthorizedGroups[gid]
			if rolesets == nil {
				rolesets = []int64{}
			}
			for _, rs := range sub.AdmittedRolesets() {
				if !slices.Contains(rolesets, rs) {
					rolesets = append(rolesets, rs)
				}
			}
			slices.Sort(rolesets)
			doc.AuthorizedGroups[gid] = rolesets
		}
	}
	return doc, nil
}

// robloxFor maps a member key or allow-list entry to a Roblox id and
// username.
func (r *robloxResolver) robloxFor(ctx context.Context, key string) (string, string, bool, error) {
	if m, ok := r.org.Members[key]; ok {
		if sub, ok := m.Subject.(domain.RobloxSubject); ok {
			return domain.RobloxMemberKey(sub.UserID), sub.Username, true, nil
		}
	}
	if _, err := strconv.ParseInt(key, 10, 64); err == nil {
		// A bare Roblox id, possibly linked to a platform user.
		u, err := r.st.Users().GetUserByLinkedAccount(ctx, domain.LinkRoblox, key)
		switch {
		case err == nil:
			return key, u.Roblox.Username, true, nil
		case errors.Is(err, store.ErrNotFound):
			return key, "", true, nil
		default:
			return "", "", false, err
		}
	}
	if !idx.Valid(key) {
		return "", "", false, nil
	}

	u, ok := r.users[key]
	if !ok {
		var err error
		u, err = r.st.Users().GetUserByID(ctx, key)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return "", "", false, nil
		case err != nil:
			return "", "", false, err
		}
		r.users[key] = u
	}
	if !u.Roblox.Linked() || !u.Roblox.Verified {
		return "", "", false, nil
	}
	return u.Roblox.ID, u.Roblox.Username, true, nil
}
