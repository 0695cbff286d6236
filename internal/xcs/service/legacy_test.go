package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
)

func TestLegacySync(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	o := e.organization(t, owner, "Acme")
	other := e.organization(t, owner, "Other")

	staff := e.group(t, o, owner.ID, "Staff", domain.AccessGroupConfig{Active: true})
	l, ap := e.door(t, o, owner.ID, domain.AccessPointConfig{
		Active:     true,
		Armed:      true,
		UnlockTime: 8,
		AlwaysAllowed: domain.AlwaysAllowed{
			Users:  []string{"999"},
			Groups: []string{staff.ID},
		},
	})
	otherLoc, _ := e.door(t, other, owner.ID, domain.AccessPointConfig{Active: true})

	setGroups := func(key string) {
		t.Helper()
		groups := []string{staff.ID}
		_, err := e.membership.UpdateMember(ctx, o.ID, owner.ID, key, service.MemberUpdate{AccessGroups: &groups})
		require.NoError(t, err)
	}

	_, err := e.membership.AddRobloxMember(ctx, o.ID, owner.ID, 100, "Builder")
	require.NoError(t, err)
	setGroups("100")

	player := e.user(t, "player")
	player.Roblox = domain.LinkedAccount{ID: "200", Username: "Player", Verified: true}
	require.NoError(t, e.store.Users().UpdateUser(ctx, player))
	e.join(t, o, player, domain.RoleMember, staff.ID)

	unlinked := e.user(t, "unlinked")
	e.join(t, o, unlinked, domain.RoleMember, staff.ID)

	guild, err := e.membership.AddRobloxGroupMember(ctx, o.ID, owner.ID, 55, "Guild", []int64{3, 1})
	require.NoError(t, err)
	setGroups(guild.Key)
	everyone, err := e.membership.AddRobloxGroupMember(ctx, o.ID, owner.ID, 66, "Fans", nil)
	require.NoError(t, err)
	setGroups(everyone.Key)

	card, err := e.membership.AddCardMember(ctx, o.ID, owner.ID, "Badge", []string{"C-1"})
	require.NoError(t, err)
	setGroups(card.Key)

	key, _, err := e.apiKeys.CreateAPIKey(ctx, o.ID, owner.ID, "Sync")
	require.NoError(t, err)

	docs, err := e.legacy.Sync(ctx, key, l.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	// A group member without rolesets admits every rank.
	doc := docs[ap.ID]
	fans := doc.AuthorizedGroups["66"]
	require.Len(t, fans, domain.MaxRobloxRank)
	require.Equal(t, int64(1), fans[0])
	require.Equal(t, int64(domain.MaxRobloxRank), fans[len(fans)-1])
	delete(doc.AuthorizedGroups, "66")

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"DoorSettings": {"DoorName": "Front door", "Active": true, "Locked": true, "Timer": 8},
		"AuthorizedUsers": {"100": "Builder", "200": "Player", "999": ""},
		"AuthorizedGroups": {"55": [1, 3]}
	}`, string(raw))

	_, err = e.legacy.Sync(ctx, key, otherLoc.ID)
	require.ErrorIs(t, err, service.ErrLocationNotFound)

	_, err = e.legacy.Sync(ctx, "xcs_bogus_key", l.ID)
	require.ErrorIs(t, err, service.ErrInvalidAPIKey)
}

func TestLegacySyncFollowsScanDecision(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	o := e.organization(t, owner, "Acme")

	hq, door := e.door(t, o, owner.ID, domain.AccessPointConfig{Active: true})
	annex, err := e.locations.CreateLocation(ctx, o.ID, owner.ID, service.LocationInput{Name: "Annex", Enabled: true})
	require.NoError(t, err)

	hqOnly, err := e.groups.CreateAccessGroup(ctx, o.ID, owner.ID, service.AccessGroupInput{
		Name:       "HQ crew",
		Type:       domain.AccessGroupLocation,
		LocationID: hq.ID,
		Config:     domain.AccessGroupConfig{Active: true},
	})
	require.NoError(t, err)

	door.Config.AlwaysAllowed.Groups = []string{hqOnly.ID}
	_, err = e.accessPoints.UpdateAccessPoint(ctx, owner.ID, door.ID, service.AccessPointInput{Name: door.Name, Config: door.Config})
	require.NoError(t, err)

	builder, err := e.membership.AddRobloxMember(ctx, o.ID, owner.ID, 100, "Builder")
	require.NoError(t, err)
	groups := []string{hqOnly.ID}
	_, err = e.membership.UpdateMember(ctx, o.ID, owner.ID, builder.Key, service.MemberUpdate{AccessGroups: &groups})
	require.NoError(t, err)

	key, _, err := e.apiKeys.CreateAPIKey(ctx, o.ID, owner.ID, "Sync")
	require.NoError(t, err)

	docs, err := e.legacy.Sync(ctx, key, hq.ID)
	require.NoError(t, err)
	require.Equal(t, "Builder", docs[door.ID].AuthorizedUsers["100"])

	// Moving the group to another location unbinds it here.
	_, err = e.groups.UpdateAccessGroup(ctx, o.ID, owner.ID, hqOnly.ID, service.AccessGroupInput{
		Name:       "HQ crew",
		Type:       domain.AccessGroupLocation,
		LocationID: annex.ID,
		Config:     domain.AccessGroupConfig{Active: true},
	})
	require.NoError(t, err)
	docs, err = e.legacy.Sync(ctx, key, hq.ID)
	require.NoError(t, err)
	require.Empty(t, docs[door.ID].AuthorizedUsers)

	// A disabled location reports every door as inactive.
	_, err = e.locations.UpdateLocation(ctx, owner.ID, hq.ID, service.LocationInput{Name: "HQ", Enabled: false})
	require.NoError(t, err)
	docs, err = e.legacy.Sync(ctx, key, hq.ID)
	require.NoError(t, err)
	require.False(t, docs[door.ID].DoorSettings.Active)
}
