package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/idx"
)

func TestHousekeepingCleanup(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	o := e.organization(t, owner, "Acme")

	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	invite := func(hash string, expires *time.Time) domain.Invitation {
		inv := domain.Invitation{
			ID:             idx.New().String(),
			Kind:           domain.InvitationOrganization,
			CodeHash:       hash,
			OrganizationID: o.ID,
			Role:           domain.RoleGuest,
			MaxUses:        1,
			CreatorID:      owner.ID,
			ExpiresAt:      expires,
			CreatedAt:      now,
		}
		require.NoError(t, e.store.Invitations().CreateInvitation(ctx, inv))
		return inv
	}
	expired := invite("expired", &past)
	live := invite("live", &future)
	forever := invite("forever", nil)

	code := func(hash string, expires time.Time) domain.VerificationCode {
		vc := domain.VerificationCode{
			ID:        idx.New().String(),
			UserID:    owner.ID,
			Kind:      domain.VerificationEmail,
			CodeHash:  hash,
			ExpiresAt: expires,
			CreatedAt: now,
		}
		require.NoError(t, e.store.VerificationCodes().CreateVerificationCode(ctx, vc))
		return vc
	}
	code("stale", past)
	fresh := code("fresh", future)

	hk := service.NewHousekeepingService(e.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)
	hk.Cleanup(ctx)

	_, err := e.store.Invitations().GetInvitation(ctx, expired.ID)
	require.Error(t, err)
	for _, id := range []string{live.ID, forever.ID} {
		_, err := e.store.Invitations().GetInvitation(ctx, id)
		require.NoError(t, err)
	}

	_, err = e.store.VerificationCodes().GetVerificationCodeByHash(ctx, "stale")
	require.Error(t, err)
	got, err := e.store.VerificationCodes().GetVerificationCodeByHash(ctx, "fresh")
	require.NoError(t, err)
	require.Equal(t, fresh.ID, got.ID)
}

func TestHousekeepingStartStop(t *testing.T) {
	e := newEnv(t)
	hk := service.NewHousekeepingService(e.store, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	invitee := e.user(t, "invitee")
	o := e.organization(t, owner, "Acme")

	_, err := e.membership.CreateInvitation(ctx, o.ID, owner.ID, invitee.ID, domain.RoleMember, nil)
	require.NoError(t, err)

	notes, err := e.notifications.ListNotifications(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.False(t, notes[0].Read)

	require.ErrorIs(t, e.notifications.MarkRead(ctx, notes[0].ID, owner.ID), service.ErrNotRecipient)
	require.NoError(t, e.notifications.MarkRead(ctx, notes[0].ID, invitee.ID))

	notes, err = e.notifications.ListNotifications(ctx, invitee.ID)
	require.NoError(t, err)
	require.True(t, notes[0].Read)
}
