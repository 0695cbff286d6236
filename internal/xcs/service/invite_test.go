package service_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/idx"
)

func TestSingleUseInviteCode(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u1 := e.user(t, "u1")
	u3 := e.user(t, "u3")
	u4 := e.user(t, "u4")
	o := e.organization(t, u1, "Acme")
	g := e.group(t, o, u1.ID, "Visitors", domain.AccessGroupConfig{Active: true})

	code, inv, err := e.invites.CreateInviteCode(ctx, o.ID, u1.ID, service.InviteCodeRequest{
		Role:         domain.RoleMember,
		AccessGroups: []string{g.ID},
	})
	require.NoError(t, err)
	require.True(t, inv.SingleUse())
	require.NotEqual(t, code, inv.CodeHash)

	preview, err := e.invites.PreviewInviteCode(ctx, strings.ToLower(code))
	require.NoError(t, err)
	require.Equal(t, "Acme", preview.OrganizationName)
	require.Equal(t, domain.RoleMember, preview.Role)

	_, err = e.invites.RedeemInviteCode(ctx, code, u3.ID)
	require.NoError(t, err)
	m, ok := e.member(t, o.ID, u3.ID)
	require.True(t, ok)
	require.True(t, m.Joined)
	require.Equal(t, domain.RoleMember, m.Role)
	require.Equal(t, []string{g.ID}, m.AccessGroups)

	_, err = e.invites.RedeemInviteCode(ctx, code, u4.ID)
	require.ErrorIs(t, err, service.ErrInvitationNotFound)
	_, ok = e.member(t, o.ID, u4.ID)
	require.False(t, ok)
}

func TestMultiUseInviteCode(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	o := e.organization(t, owner, "Acme")

	code, inv, err := e.invites.CreateInviteCode(ctx, o.ID, owner.ID, service.InviteCodeRequest{
		Role:    domain.RoleGuest,
		MaxUses: 3,
	})
	require.NoError(t, err)

	first := e.user(t, "first")
	_, err = e.invites.RedeemInviteCode(ctx, code, first.ID)
	require.NoError(t, err)

	_, err = e.invites.RedeemInviteCode(ctx, code, first.ID)
	require.ErrorIs(t, err, service.ErrAlreadyMember)

	got, err := e.store.Invitations().GetInvitation(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Uses)

	// Concurrent redemptions never exceed the remaining two uses.
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := range 5 {
		u := e.user(t, "racer"+string(rune('a'+i)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.invites.RedeemInviteCode(ctx, code, u.ID); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 2, successes)

	_, err = e.store.Invitations().GetInvitation(ctx, inv.ID)
	require.Error(t, err, "exhausted codes are deleted")
}

func TestInviteCodeValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	manager := e.user(t, "manager")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, manager, domain.RoleManager)

	tests := []struct {
		name    string
		actor   string
		req     service.InviteCodeRequest
		wantErr error
	}{
		{"owner role", owner.ID, service.InviteCodeRequest{Role: domain.RoleOwner}, service.ErrOwnerRoleNotGranted},
		{"manager grants manager", manager.ID, service.InviteCodeRequest{Role: domain.RoleManager}, service.ErrEqualOrHigherRole},
		{"too many uses", owner.ID, service.InviteCodeRequest{MaxUses: service.MaxInviteUses + 1}, service.ErrValidation},
		{"negative expiry", owner.ID, service.InviteCodeRequest{ExpiresIn: -time.Hour}, service.ErrValidation},
		{"unknown group", owner.ID, service.InviteCodeRequest{AccessGroups: []string{"nope"}}, service.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.invites.CreateInviteCode(ctx, o.ID, tt.actor, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExpiredAndRevokedInviteCodes(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	joiner := e.user(t, "joiner")
	o := e.organization(t, owner, "Acme")

	code, inv, err := e.invites.CreateInviteCode(ctx, o.ID, owner.ID, service.InviteCodeRequest{ExpiresIn: time.Hour})
	require.NoError(t, err)

	// A second code whose expiry has already passed.
	past := time.Now().Add(-time.Minute)
	inv.ID = idx.New().String()
	inv.ExpiresAt = &past
	inv.CodeHash = cryptox.FingerprintToken(cryptox.NormalizeCode("STALE-CODE"))
	require.NoError(t, e.store.Invitations().CreateInvitation(ctx, inv))
	_, err = e.invites.PreviewInviteCode(ctx, "stale-code")
	require.ErrorIs(t, err, service.ErrInvitationNotFound)
	_, err = e.invites.RedeemInviteCode(ctx, "stale-code", joiner.ID)
	require.ErrorIs(t, err, service.ErrInvitationNotFound)

	codes, err := e.invites.ListInviteCodes(ctx, o.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, codes, 2)

	for _, c := range codes {
		require.NoError(t, e.invites.RevokeInviteCode(ctx, o.ID, owner.ID, c.ID))
	}
	_, err = e.invites.RedeemInviteCode(ctx, code, joiner.ID)
	require.ErrorIs(t, err, service.ErrInvitationNotFound)
	require.ErrorIs(t, e.invites.RevokeInviteCode(ctx, o.ID, owner.ID, inv.ID), service.ErrInvitationNotFound)
}

func TestRedeemSupersedesPendingInvitation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	invitee := e.user(t, "invitee")
	o := e.organization(t, owner, "Acme")

	_, err := e.membership.CreateInvitation(ctx, o.ID, owner.ID, invitee.ID, domain.RoleGuest, nil)
	require.NoError(t, err)
	code, _, err := e.invites.CreateInviteCode(ctx, o.ID, owner.ID, service.InviteCodeRequest{Role: domain.RoleMember})
	require.NoError(t, err)

	_, err = e.invites.RedeemInviteCode(ctx, code, invitee.ID)
	require.NoError(t, err)

	m, ok := e.member(t, o.ID, invitee.ID)
	require.True(t, ok)
	require.True(t, m.Joined)
	require.Equal(t, domain.RoleMember, m.Role)

	notes, err := e.notifications.ListNotifications(ctx, invitee.ID)
	require.NoError(t, err)
	require.Empty(t, notes)
}

func TestPlatformInvites(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	sponsor := e.user(t, "sponsor")
	sponsor.Platform.Invites = 1
	require.NoError(t, e.store.Users().UpdateUser(ctx, sponsor))

	_, _, err := e.invites.CreatePlatformInvite(ctx, sponsor.ID, 5)
	require.ErrorIs(t, err, service.ErrValidation)

	code, inv, err := e.invites.CreatePlatformInvite(ctx, sponsor.ID, 1)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationPlatform, inv.Kind)
	require.Equal(t, sponsor.ID, inv.SponsorID)

	_, _, err = e.invites.CreatePlatformInvite(ctx, sponsor.ID, 1)
	require.ErrorIs(t, err, service.ErrNoInviteCredits)

	// Platform codes do not join organizations.
	_, err = e.invites.RedeemInviteCode(ctx, code, sponsor.ID)
	require.ErrorIs(t, err, service.ErrInvitationNotFound)

	staff := e.user(t, "staff")
	staff.Platform.Staff = true
	require.NoError(t, e.store.Users().UpdateUser(ctx, staff))
	for range 3 {
		_, _, err := e.invites.CreatePlatformInvite(ctx, staff.ID, 10)
		require.NoError(t, err)
	}
}
