package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
)

func TestCreateOrganization(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u1 := e.user(t, "u1")

	o := e.organization(t, u1, "Acme")
	require.Equal(t, u1.ID, o.OwnerID)

	m, ok := e.member(t, o.ID, u1.ID)
	require.True(t, ok)
	require.Equal(t, domain.RoleOwner, m.Role)
	require.True(t, m.Joined)
	requireSingleOwner(t, e.store, o.ID)

	require.ErrorIs(t, e.membership.Leave(ctx, o.ID, u1.ID), service.ErrOwnerCannotLeave)

	t.Run("name is case-insensitively unique", func(t *testing.T) {
		_, err := e.orgs.CreateOrganization(ctx, u1.ID, "ACME", "")
		require.ErrorIs(t, err, service.ErrOrganizationNameTaken)
		require.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("name length is validated", func(t *testing.T) {
		for _, name := range []string{"ab", "  a  ", "this name is definitely far too long for us"} {
			_, err := e.orgs.CreateOrganization(ctx, u1.ID, name, "")
			require.ErrorIs(t, err, service.ErrValidation, name)
		}
	})

	t.Run("logs creation", func(t *testing.T) {
		logs, err := e.orgs.ListLogs(ctx, u1.ID, o.ID, 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		require.Equal(t, domain.LogOrganizationCreated, logs[0].Type)
		require.Equal(t, u1.ID, logs[0].PerformerID)
	})
}

func TestOrganizationAccessByRole(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	manager := e.user(t, "manager")
	member := e.user(t, "member")
	stranger := e.user(t, "stranger")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, manager, domain.RoleManager)
	e.join(t, o, member, domain.RoleMember)

	name := "Acme Corp"
	upd := service.OrganizationUpdate{Name: &name}

	_, _, err := e.orgs.GetOrganization(ctx, stranger.ID, o.ID)
	require.ErrorIs(t, err, service.ErrNotAMember)

	_, _, err = e.orgs.GetOrganization(ctx, member.ID, o.ID)
	require.NoError(t, err)

	_, err = e.orgs.UpdateOrganization(ctx, member.ID, o.ID, upd)
	require.ErrorIs(t, err, service.ErrInsufficientRole)

	updated, err := e.orgs.UpdateOrganization(ctx, manager.ID, o.ID, upd)
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)

	_, err = e.orgs.ListLogs(ctx, member.ID, o.ID, 0)
	require.ErrorIs(t, err, service.ErrForbidden)

	require.ErrorIs(t, e.orgs.DeleteOrganization(ctx, manager.ID, o.ID), service.ErrInsufficientRole)

	orgs, err := e.orgs.ListOrganizations(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
}

func TestDeleteOrganizationCascades(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	guest := e.user(t, "guest")
	o := e.organization(t, owner, "Acme")

	l, ap := e.door(t, o, owner.ID, domain.AccessPointConfig{Active: true})
	_, inv, err := e.invites.CreateInviteCode(ctx, o.ID, owner.ID, service.InviteCodeRequest{Role: domain.RoleMember})
	require.NoError(t, err)
	_, err = e.membership.CreateInvitation(ctx, o.ID, owner.ID, guest.Username, domain.RoleGuest, nil)
	require.NoError(t, err)

	require.NoError(t, e.orgs.DeleteOrganization(ctx, owner.ID, o.ID))

	_, err = e.store.Organizations().GetOrganization(ctx, o.ID)
	require.Error(t, err)
	_, err = e.store.Locations().GetLocation(ctx, l.ID)
	require.Error(t, err)
	_, err = e.store.AccessPoints().GetAccessPoint(ctx, ap.ID)
	require.Error(t, err)
	_, err = e.store.Invitations().GetInvitation(ctx, inv.ID)
	require.Error(t, err)

	notes, err := e.notifications.ListNotifications(ctx, guest.ID)
	require.NoError(t, err)
	require.Empty(t, notes)
}
