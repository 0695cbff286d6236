package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/internal/xcs/store/drivers/mongo"
)

// newTestStore starts a single node replica set so transactions are available.
func newTestStore(t *testing.T) *mongo.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	code, _, err := container.Exec(ctx, []string{"mongosh", "--quiet", "--eval",
		`rs.initiate({_id: "rs0", members: [{_id: 0, host: "localhost:27017"}]})`})
	require.NoError(t, err)
	require.Zero(t, code)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	s, err := mongo.NewStore(fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port()), "xcs_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// Writes fail until the node elects itself primary.
	require.Eventually(t, func() bool {
		return s.ApplyMigrations() == nil
	}, 30*time.Second, 500*time.Millisecond)
	return s
}

func TestMongoStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	owner := domain.User{
		ID:        "01J0000000000000000000OWNR",
		Username:  "Owner",
		Email:     domain.Email{Address: "owner@example.com"},
		Roblox:    domain.LinkedAccount{ID: "1001", Username: "owner_rbx", Verified: true},
		Platform:  domain.Platform{Invites: 1},
		Privacy:   domain.DefaultPrivacy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.Run("users", func(t *testing.T) {
		empty, err := s.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)

		require.NoError(t, s.Users().CreateUser(ctx, owner))

		clash := owner
		clash.ID = "01J0000000000000000000CLSH"
		clash.Email.Address = "other@example.com"
		clash.Roblox = domain.LinkedAccount{}
		require.ErrorIs(t, s.Users().CreateUser(ctx, clash), store.ErrAlreadyExists)

		got, err := s.Users().GetUserByUsername(ctx, "OWNER")
		require.NoError(t, err)
		require.Equal(t, owner, got)

		got, err = s.Users().GetUserByLinkedAccount(ctx, domain.LinkRoblox, "1001")
		require.NoError(t, err)
		require.Equal(t, owner.ID, got.ID)

		require.NoError(t, s.Users().DecrementInvites(ctx, owner.ID))
		require.ErrorIs(t, s.Users().DecrementInvites(ctx, owner.ID), store.ErrConditionFailed)

		_, err = s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	org := domain.Organization{
		ID:      "01J0000000000000000000ORG1",
		Name:    "Acme",
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
		AccessGroups: map[string]domain.AccessGroup{},
		APIKeys:      map[string]domain.APIKey{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("organization aggregate", func(t *testing.T) {
		require.NoError(t, s.Organizations().CreateOrganization(ctx, org))

		dup := org
		dup.ID = "01J0000000000000000000ORG2"
		dup.Name = " acme "
		require.ErrorIs(t, s.Organizations().CreateOrganization(ctx, dup), store.ErrAlreadyExists)

		group := domain.AccessGroup{ID: "grp-1", Name: "Staff", Type: domain.AccessGroupOrganization}
		require.NoError(t, s.Organizations().PutAccessGroup(ctx, org.ID, group))
		require.ErrorIs(t, s.Organizations().PutAccessGroup(ctx, org.ID,
			domain.AccessGroup{ID: "grp-2", Name: "staff"}), store.ErrAlreadyExists)

		robloxMember := domain.Member{
			Key:          domain.RobloxMemberKey(42),
			Subject:      domain.RobloxSubject{UserID: 42, Username: "builder"},
			Role:         domain.RoleMember,
			AccessGroups: []string{group.ID},
			Joined:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, s.Organizations().PutMember(ctx, org.ID, robloxMember))

		missing := robloxMember
		missing.Key = domain.RobloxMemberKey(43)
		require.ErrorIs(t, s.Organizations().UpdateMember(ctx, org.ID, missing), store.ErrNotFound)
		robloxMember.Role = domain.RoleGuest
		require.NoError(t, s.Organizations().UpdateMember(ctx, org.ID, robloxMember))

		require.NoError(t, s.Organizations().RemoveAccessGroupFromMembers(ctx, org.ID, group.ID))
		require.NoError(t, s.Organizations().DeleteAccessGroup(ctx, org.ID, group.ID))
		require.ErrorIs(t, s.Organizations().DeleteAccessGroup(ctx, org.ID, group.ID), store.ErrNotFound)

		got, err := s.Organizations().GetOrganization(ctx, org.ID)
		require.NoError(t, err)
		require.Empty(t, got.AccessGroups)
		require.Empty(t, got.Members[robloxMember.Key].AccessGroups)
		require.Equal(t, domain.RobloxSubject{UserID: 42, Username: "builder"}, got.Members[robloxMember.Key].Subject)
		require.Equal(t, domain.RoleGuest, got.Members[robloxMember.Key].Role)
		require.NotContains(t, got.Members, missing.Key)

		orgs, err := s.Organizations().ListOrganizationsForUser(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, orgs, 1)

		key := domain.APIKey{ID: "key-1", Name: "door", Fingerprint: "fp", CreatedBy: owner.ID, CreatedAt: now}
		require.NoError(t, s.Organizations().PutAPIKey(ctx, org.ID, key))
		require.ErrorIs(t, s.Organizations().PutAPIKey(ctx, org.ID, key), store.ErrAlreadyExists)

		byKey, gotKey, err := s.Organizations().GetOrganizationByAPIKey(ctx, key.ID)
		require.NoError(t, err)
		require.Equal(t, org.ID, byKey.ID)
		require.Equal(t, key, gotKey)

		for i := range 3 {
			require.NoError(t, s.Organizations().AppendLog(ctx, domain.LogEntry{
				ID:             fmt.Sprintf("log-%d", i),
				OrganizationID: org.ID,
				Type:           domain.LogMemberUpdated,
				PerformerID:    owner.ID,
				CreatedAt:      now,
			}))
		}
		logs, err := s.Organizations().ListLogs(ctx, org.ID, 2)
		require.NoError(t, err)
		require.Len(t, logs, 2)
		require.Equal(t, "log-2", logs[0].ID)
		require.Equal(t, "log-1", logs[1].ID)
	})

	t.Run("access point allow lists", func(t *testing.T) {
		loc := domain.Location{ID: "loc-1", OrganizationID: org.ID, Name: "HQ", Enabled: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, s.Locations().CreateLocation(ctx, loc))

		ap := domain.AccessPoint{
			ID:             "ap-1",
			OrganizationID: org.ID,
			LocationID:     loc.ID,
			Name:           "Front door",
			Config: domain.AccessPointConfig{
				Active:     true,
				UnlockTime: domain.DefaultUnlockTime,
				AlwaysAllowed: domain.AlwaysAllowed{
					Users:  []string{"42", owner.ID},
					Groups: []string{"grp-1", "grp-9"},
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		require.NoError(t, s.AccessPoints().CreateAccessPoint(ctx, ap))

		require.NoError(t, s.AccessPoints().PullAlwaysAllowedUsers(ctx, org.ID, "42"))
		require.NoError(t, s.AccessPoints().PullAlwaysAllowedGroup(ctx, org.ID, "grp-1"))

		got, err := s.AccessPoints().GetAccessPoint(ctx, ap.ID)
		require.NoError(t, err)
		require.Equal(t, []string{owner.ID}, got.Config.AlwaysAllowed.Users)
		require.Equal(t, []string{"grp-9"}, got.Config.AlwaysAllowed.Groups)

		aps, err := s.AccessPoints().ListAccessPointsByLocation(ctx, loc.ID)
		require.NoError(t, err)
		require.Len(t, aps, 1)
	})

	t.Run("invitation uses", func(t *testing.T) {
		inv := domain.Invitation{
			ID:             "inv-1",
			Kind:           domain.InvitationOrganization,
			CodeHash:       "hash-1",
			OrganizationID: org.ID,
			Role:           domain.RoleMember,
			MaxUses:        1,
			CreatorID:      owner.ID,
			CreatedAt:      now,
		}
		require.NoError(t, s.Invitations().CreateInvitation(ctx, inv))

		got, err := s.Invitations().IncrementInvitationUses(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, 1, got.Uses)

		_, err = s.Invitations().IncrementInvitationUses(ctx, inv.ID)
		require.ErrorIs(t, err, store.ErrConditionFailed)

		_, err = s.Invitations().IncrementInvitationUses(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("transaction rollback", func(t *testing.T) {
		errBoom := fmt.Errorf("boom")
		err := s.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Notifications().CreateNotification(ctx, domain.Notification{
				ID:          "n-1",
				RecipientID: owner.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}))
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		_, err = s.Notifications().GetNotification(ctx, "n-1")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("organization delete", func(t *testing.T) {
		require.NoError(t, s.Organizations().DeleteOrganization(ctx, org.ID))
		require.ErrorIs(t, s.Organizations().DeleteOrganization(ctx, org.ID), store.ErrNotFound)
	})
}
