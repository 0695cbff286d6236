package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/internal/xcs/store/drivers/sqlite"
	"github.com/ppongpeauk/xcs/pkg/idx"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "xcs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newUser(username string) domain.User {
	now := time.Now()
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  username,
		Email:        domain.Email{Address: username + "@example.com"},
		PasswordHash: "hash",
		Privacy:      domain.DefaultPrivacy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newOrganization(owner domain.User, name string) domain.Organization {
	now := time.Now()
	return domain.Organization{
		ID:      idx.New().String(),
		Name:    name,
		OwnerID: owner.ID,
		Members: map[string]domain.Member{
			owner.ID: {
				Key:       owner.ID,
				Subject:   domain.UserSubject{UserID: owner.ID},
				Role:      domain.RoleOwner,
				Joined:    true,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	alice := newUser("Alice")
	alice.Platform.Invites = 1
	require.NoError(t, s.Users().CreateUser(ctx, alice))

	t.Run("lookups are case-insensitive", func(t *testing.T) {
		got, err := s.Users().GetUserByUsername(ctx, "ALICE")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)
		require.True(t, got.Privacy.OrganizationsVisible)

		got, err = s.Users().GetUserByEmail(ctx, "alice@EXAMPLE.com")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)
	})

	t.Run("username clash", func(t *testing.T) {
		dup := newUser("alice")
		dup.Email.Address = "other@example.com"
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("linked account lookup", func(t *testing.T) {
		alice.Roblox = domain.LinkedAccount{ID: "1234", Username: "alice_rbx", Verified: true}
		require.NoError(t, s.Users().UpdateUser(ctx, alice))

		got, err := s.Users().GetUserByLinkedAccount(ctx, domain.LinkRoblox, "1234")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)
		require.True(t, got.Roblox.Verified)

		_, err = s.Users().GetUserByLinkedAccount(ctx, domain.LinkDiscord, "1234")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("decrement invites is conditional", func(t *testing.T) {
		require.NoError(t, s.Users().DecrementInvites(ctx, alice.ID))
		require.ErrorIs(t, s.Users().DecrementInvites(ctx, alice.ID), store.ErrConditionFailed)

		got, err := s.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, 0, got.Platform.Invites)
	})

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOrganizationAggregate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	owner := newUser("owner")
	require.NoError(t, s.Users().CreateUser(ctx, owner))

	org := newOrganization(owner, "Acme")
	org.AccessGroups = map[string]domain.AccessGroup{
		"g1": {ID: "g1", Name: "Staff", Type: domain.AccessGroupOrganization, Config: domain.AccessGroupConfig{Active: true}},
	}
	require.NoError(t, s.Organizations().CreateOrganization(ctx, org))

	t.Run("name is unique case-insensitively", func(t *testing.T) {
		require.ErrorIs(t, s.Organizations().CreateOrganization(ctx, newOrganization(owner, "ACME")), store.ErrAlreadyExists)

		got, err := s.Organizations().GetOrganizationByName(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, org.ID, got.ID)
	})

	t.Run("members keep their subject variant", func(t *testing.T) {
		now := time.Now()
		group := domain.Member{
			Key:          "grp-key",
			Subject:      domain.RobloxGroupSubject{GroupID: 77, GroupName: "Builders", Rolesets: []int64{1, 2}},
			Role:         domain.RoleGuest,
			AccessGroups: []string{"g1"},
			ScanData:     map[string]any{"floor": "3"},
			Joined:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, s.Organizations().PutMember(ctx, org.ID, group))

		got, err := s.Organizations().GetOrganization(ctx, org.ID)
		require.NoError(t, err)
		require.Len(t, got.Members, 2)
		require.Equal(t, domain.RobloxGroupSubject{GroupID: 77, GroupName: "Builders", Rolesets: []int64{1, 2}}, got.Members["grp-key"].Subject)
		require.Equal(t, "3", got.Members["grp-key"].ScanData["floor"])
		require.Equal(t, domain.RoleOwner, got.Members[owner.ID].Role)
		require.Equal(t, "Staff", got.AccessGroups["g1"].Name)
	})

	t.Run("update never recreates a deleted member", func(t *testing.T) {
		got, err := s.Organizations().GetOrganization(ctx, org.ID)
		require.NoError(t, err)
		m := got.Members["grp-key"]
		m.Role = domain.RoleMember
		require.NoError(t, s.Organizations().UpdateMember(ctx, org.ID, m))

		gone := m
		gone.Key = "gone-key"
		require.ErrorIs(t, s.Organizations().UpdateMember(ctx, org.ID, gone), store.ErrNotFound)

		got, err = s.Organizations().GetOrganization(ctx, org.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, got.Members["grp-key"].Role)
		require.NotContains(t, got.Members, "gone-key")
	})

	t.Run("list for user only returns joined user memberships", func(t *testing.T) {
		orgs, err := s.Organizations().ListOrganizationsForUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, orgs, 1)

		orgs, err = s.Organizations().ListOrganizationsForUser(ctx, "grp-key")
		require.NoError(t, err)
		require.Empty(t, orgs)
	})

	t.Run("removing a group from members", func(t *testing.T) {
		require.NoError(t, s.Organizations().RemoveAccessGroupFromMembers(ctx, org.ID, "g1"))
		require.NoError(t, s.Organizations().DeleteAccessGroup(ctx, org.ID, "g1"))

		got, err := s.Organizations().GetOrganization(ctx, org.ID)
		require.NoError(t, err)
		require.Empty(t, got.AccessGroups)
		require.Empty(t, got.Members["grp-key"].AccessGroups)
	})

	t.Run("api keys resolve their organization", func(t *testing.T) {
		key := domain.APIKey{ID: "key1", Name: "door", Fingerprint: "fp", CreatedBy: owner.ID, CreatedAt: time.Now()}
		require.NoError(t, s.Organizations().PutAPIKey(ctx, org.ID, key))

		got, k, err := s.Organizations().GetOrganizationByAPIKey(ctx, "key1")
		require.NoError(t, err)
		require.Equal(t, org.ID, got.ID)
		require.Equal(t, "fp", k.Fingerprint)

		require.NoError(t, s.Organizations().DeleteAPIKey(ctx, org.ID, "key1"))
		_, _, err = s.Organizations().GetOrganizationByAPIKey(ctx, "key1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("logs are newest first", func(t *testing.T) {
		for _, typ := range []domain.LogType{domain.LogOrganizationCreated, domain.LogMemberJoined} {
			require.NoError(t, s.Organizations().AppendLog(ctx, domain.LogEntry{
				ID:             idx.New().String(),
				OrganizationID: org.ID,
				Type:           typ,
				PerformerID:    owner.ID,
				CreatedAt:      time.Now(),
			}))
		}

		logs, err := s.Organizations().ListLogs(ctx, org.ID, 0)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		require.Equal(t, domain.LogMemberJoined, logs[0].Type)

		logs, err = s.Organizations().ListLogs(ctx, org.ID, 1)
		require.NoError(t, err)
		require.Len(t, logs, 1)
	})

	require.ErrorIs(t, s.Organizations().DeleteMember(ctx, org.ID, "nobody"), store.ErrNotFound)
}

func TestAccessPointAllowListCleanup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	owner := newUser("owner")
	require.NoError(t, s.Users().CreateUser(ctx, owner))
	org := newOrganization(owner, "Acme")
	require.NoError(t, s.Organizations().CreateOrganization(ctx, org))

	loc := domain.Location{ID: idx.New().String(), OrganizationID: org.ID, Name: "HQ", Enabled: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, s.Locations().CreateLocation(ctx, loc))

	ap := domain.AccessPoint{
		ID:             idx.New().String(),
		OrganizationID: org.ID,
		LocationID:     loc.ID,
		Name:           "Front door",
		Config: domain.AccessPointConfig{
			Active:     true,
			UnlockTime: domain.DefaultUnlockTime,
			AlwaysAllowed: domain.AlwaysAllowed{
				Users:  []string{"u1", "u2", "42"},
				Groups: []string{"g1", "g2"},
				Cards:  []string{"0001"},
			},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, s.AccessPoints().CreateAccessPoint(ctx, ap))

	require.NoError(t, s.AccessPoints().PullAlwaysAllowedGroup(ctx, org.ID, "g1"))
	require.NoError(t, s.AccessPoints().PullAlwaysAllowedUsers(ctx, org.ID, "u1", "42"))

	got, err := s.AccessPoints().GetAccessPoint(ctx, ap.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"g2"}, got.Config.AlwaysAllowed.Groups)
	require.Equal(t, []string{"u2"}, got.Config.AlwaysAllowed.Users)
	require.Equal(t, []string{"0001"}, got.Config.AlwaysAllowed.Cards)

	t.Run("deleting the organization cascades", func(t *testing.T) {
		require.NoError(t, s.Organizations().DeleteOrganization(ctx, org.ID))

		_, err := s.AccessPoints().GetAccessPoint(ctx, ap.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = s.Locations().GetLocation(ctx, loc.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestInvitationUses(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	past := time.Now().Add(-time.Minute)
	inv := domain.Invitation{
		ID:        idx.New().String(),
		Kind:      domain.InvitationPlatform,
		CodeHash:  "hash-1",
		MaxUses:   2,
		CreatorID: "creator",
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))

	got, err := s.Invitations().IncrementInvitationUses(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Uses)

	got, err = s.Invitations().IncrementInvitationUses(ctx, inv.ID)
	require.NoError(t, err)
	require.True(t, got.Exhausted())

	_, err = s.Invitations().IncrementInvitationUses(ctx, inv.ID)
	require.ErrorIs(t, err, store.ErrConditionFailed)

	_, err = s.Invitations().IncrementInvitationUses(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	expired := inv
	expired.ID = idx.New().String()
	expired.CodeHash = "hash-2"
	expired.ExpiresAt = &past
	require.NoError(t, s.Invitations().CreateInvitation(ctx, expired))

	n, err := s.Invitations().DeleteExpiredInvitations(ctx, time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Invitations().GetInvitationByCodeHash(ctx, "hash-1")
	require.NoError(t, err)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u := newUser("carol")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return store.ErrConditionFailed
	})
	require.ErrorIs(t, err, store.ErrConditionFailed)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	}))
	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
}
