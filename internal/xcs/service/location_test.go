package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
)

func TestLocationRobloxBinding(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	o := e.organization(t, owner, "Acme")

	l, err := e.locations.CreateLocation(ctx, o.ID, owner.ID, service.LocationInput{Name: "Hangar", Enabled: true})
	require.NoError(t, err)
	require.False(t, l.Roblox.Bound())

	place := domain.RobloxPlace{PlaceID: 42, UniverseID: 7}
	l, err = e.locations.UpdateLocation(ctx, owner.ID, l.ID, service.LocationInput{Name: "Hangar", Enabled: true, Roblox: place})
	require.NoError(t, err)
	require.Equal(t, place, l.Roblox)

	// Omitting the binding keeps it.
	l, err = e.locations.UpdateLocation(ctx, owner.ID, l.ID, service.LocationInput{Name: "Hangar 2"})
	require.NoError(t, err)
	require.Equal(t, place, l.Roblox)
	require.False(t, l.Enabled)

	_, err = e.locations.UpdateLocation(ctx, owner.ID, l.ID, service.LocationInput{
		Name:   "Hangar 2",
		Roblox: domain.RobloxPlace{PlaceID: 43, UniverseID: 7},
	})
	require.ErrorIs(t, err, service.ErrRobloxPlaceBound)

	got, err := e.locations.GetLocation(ctx, owner.ID, l.ID)
	require.NoError(t, err)
	require.Equal(t, "Hangar 2", got.Name)
	require.Equal(t, place, got.Roblox)
}

func TestLocationPermissions(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	member := e.user(t, "member")
	stranger := e.user(t, "stranger")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, member, domain.RoleMember)
	l, ap := e.door(t, o, owner.ID, domain.AccessPointConfig{Active: true})

	_, err := e.locations.CreateLocation(ctx, o.ID, member.ID, service.LocationInput{Name: "Annex"})
	require.ErrorIs(t, err, service.ErrInsufficientRole)

	_, err = e.locations.GetLocation(ctx, stranger.ID, l.ID)
	require.ErrorIs(t, err, service.ErrNotAMember)

	locs, err := e.locations.ListLocations(ctx, o.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, locs, 1)

	aps, err := e.accessPoints.ListAccessPoints(ctx, member.ID, l.ID)
	require.NoError(t, err)
	require.Len(t, aps, 1)

	require.ErrorIs(t, e.accessPoints.DeleteAccessPoint(ctx, member.ID, ap.ID), service.ErrInsufficientRole)
	require.ErrorIs(t, e.locations.DeleteLocation(ctx, member.ID, l.ID), service.ErrInsufficientRole)

	require.NoError(t, e.accessPoints.DeleteAccessPoint(ctx, owner.ID, ap.ID))
	_, err = e.accessPoints.GetAccessPoint(ctx, owner.ID, ap.ID)
	require.ErrorIs(t, err, service.ErrAccessPointNotFound)
}

func TestAccessPointValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	o := e.organization(t, owner, "Acme")
	l, _ := e.door(t, o, owner.ID, domain.AccessPointConfig{Active: true})

	tests := []struct {
		name string
		cfg  domain.AccessPointConfig
	}{
		{"negative unlock time", domain.AccessPointConfig{UnlockTime: -1}},
		{"unlock time over an hour", domain.AccessPointConfig{UnlockTime: domain.MaxUnlockTime + 1}},
		{"unknown group", domain.AccessPointConfig{AlwaysAllowed: domain.AlwaysAllowed{Groups: []string{"nope"}}}},
		{"relative webhook", domain.AccessPointConfig{Webhook: domain.Webhook{URL: "/hook"}}},
		{"non http webhook", domain.AccessPointConfig{Webhook: domain.Webhook{URL: "ftp://example.com/hook"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.accessPoints.CreateAccessPoint(ctx, owner.ID, l.ID, service.AccessPointInput{Name: "Side door", Config: tt.cfg})
			require.ErrorIs(t, err, service.ErrValidation)
		})
	}

	t.Run("location group of another location", func(t *testing.T) {
		annex, err := e.locations.CreateLocation(ctx, o.ID, owner.ID, service.LocationInput{Name: "Annex", Enabled: true})
		require.NoError(t, err)
		annexCrew, err := e.groups.CreateAccessGroup(ctx, o.ID, owner.ID, service.AccessGroupInput{
			Name:       "Annex crew",
			Type:       domain.AccessGroupLocation,
			LocationID: annex.ID,
			Config:     domain.AccessGroupConfig{Active: true},
		})
		require.NoError(t, err)
		allow := domain.AccessPointConfig{AlwaysAllowed: domain.AlwaysAllowed{Groups: []string{annexCrew.ID}}}

		_, err = e.accessPoints.CreateAccessPoint(ctx, owner.ID, l.ID, service.AccessPointInput{Name: "Side door", Config: allow})
		require.ErrorIs(t, err, service.ErrValidation)

		ap, err := e.accessPoints.CreateAccessPoint(ctx, owner.ID, annex.ID, service.AccessPointInput{Name: "Annex door", Config: allow})
		require.NoError(t, err)
		require.Equal(t, []string{annexCrew.ID}, ap.Config.AlwaysAllowed.Groups)
	})

	t.Run("allow lists are compacted", func(t *testing.T) {
		ap, err := e.accessPoints.CreateAccessPoint(ctx, owner.ID, l.ID, service.AccessPointInput{
			Name: "Side door",
			Config: domain.AccessPointConfig{
				UnlockTime:    domain.MaxUnlockTime,
				AlwaysAllowed: domain.AlwaysAllowed{Cards: []string{" 12 ", "12", "", "34"}},
			},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"12", "34"}, ap.Config.AlwaysAllowed.Cards)
	})
}
