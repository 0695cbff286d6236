package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/mail"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

func ptr[T any](v T) *T { return &v }

func TestInvitationAccept(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u1 := e.user(t, "u1")
	u2 := e.user(t, "u2")
	o := e.organization(t, u1, "Acme")

	m, err := e.membership.CreateInvitation(ctx, o.ID, u1.ID, "U2", domain.RoleMember, nil)
	require.NoError(t, err)
	require.Equal(t, domain.MemberInvited, m.State())

	// Invited members are not active yet.
	_, _, err = e.orgs.GetOrganization(ctx, u2.ID, o.ID)
	require.ErrorIs(t, err, service.ErrNotAMember)

	msg := e.mail.last(t)
	require.Equal(t, mail.TemplateOrganizationInvitation, msg.Template)
	require.Equal(t, u2.Email.Address, msg.To)

	notes, err := e.notifications.ListNotifications(ctx, u2.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	n := notes[0]
	require.Equal(t, domain.NotificationOrganizationInvitation, n.Type)
	require.Equal(t, o.ID, n.OrganizationID)

	t.Run("only the recipient may answer", func(t *testing.T) {
		_, err := e.membership.AcceptInvitation(ctx, n.ID, u1.ID)
		require.ErrorIs(t, err, service.ErrNotRecipient)
		require.ErrorIs(t, e.membership.RejectInvitation(ctx, n.ID, u1.ID), service.ErrNotRecipient)
	})

	t.Run("duplicate invitation conflicts", func(t *testing.T) {
		_, err := e.membership.CreateInvitation(ctx, o.ID, u1.ID, u2.ID, domain.RoleMember, nil)
		require.ErrorIs(t, err, service.ErrAlreadyMember)
	})

	org, err := e.membership.AcceptInvitation(ctx, n.ID, u2.ID)
	require.NoError(t, err)
	require.True(t, org.Members[u2.ID].Joined)

	m, ok := e.member(t, o.ID, u2.ID)
	require.True(t, ok)
	require.Equal(t, domain.MemberActive, m.State())
	require.Equal(t, domain.RoleMember, m.Role)

	notes, err = e.notifications.ListNotifications(ctx, u2.ID)
	require.NoError(t, err)
	require.Empty(t, notes)

	_, err = e.membership.AcceptInvitation(ctx, n.ID, u2.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	requireSingleOwner(t, e.store, o.ID)
}

func TestInvitationReject(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u1 := e.user(t, "u1")
	u2 := e.user(t, "u2")
	o := e.organization(t, u1, "Acme")

	_, err := e.membership.CreateInvitation(ctx, o.ID, u1.ID, u2.Username, domain.RoleGuest, nil)
	require.NoError(t, err)
	notes, err := e.notifications.ListNotifications(ctx, u2.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	// Allow-listed while the invitation is pending.
	_, ap := e.door(t, o, u1.ID, domain.AccessPointConfig{
		Active:        true,
		AlwaysAllowed: domain.AlwaysAllowed{Users: []string{u2.ID, u1.ID}},
	})
	d, err := e.access.IsAuthorized(ctx, domain.ScanIdentity{UserID: u2.ID}, ap.ID)
	require.NoError(t, err)
	require.True(t, d.Granted)

	require.NoError(t, e.membership.RejectInvitation(ctx, notes[0].ID, u2.ID))

	_, ok := e.member(t, o.ID, u2.ID)
	require.False(t, ok)
	notes, err = e.notifications.ListNotifications(ctx, u2.ID)
	require.NoError(t, err)
	require.Empty(t, notes)

	got, err := e.store.AccessPoints().GetAccessPoint(ctx, ap.ID)
	require.NoError(t, err)
	require.Equal(t, []string{u1.ID}, got.Config.AlwaysAllowed.Users)

	d, err = e.access.IsAuthorized(ctx, domain.ScanIdentity{UserID: u2.ID}, ap.ID)
	require.NoError(t, err)
	require.False(t, d.Granted)
	require.Equal(t, domain.ReasonNoMatch, d.Reason)

	logs, err := e.orgs.ListLogs(ctx, u1.ID, o.ID, 1)
	require.NoError(t, err)
	require.Equal(t, domain.LogMemberRejected, logs[0].Type)
}

func TestCreateInvitationRules(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	manager := e.user(t, "manager")
	member := e.user(t, "member")
	target := e.user(t, "target")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, manager, domain.RoleManager)
	e.join(t, o, member, domain.RoleMember)

	tests := []struct {
		name    string
		actor   string
		role    domain.Role
		recip   string
		groups  []string
		wantErr error
	}{
		{"member cannot invite", member.ID, domain.RoleGuest, target.ID, nil, service.ErrInsufficientRole},
		{"manager cannot invite a manager", manager.ID, domain.RoleManager, target.ID, nil, service.ErrEqualOrHigherRole},
		{"owner role is never granted", owner.ID, domain.RoleOwner, target.ID, nil, service.ErrOwnerRoleNotGranted},
		{"unknown recipient", owner.ID, domain.RoleGuest, "nobody", nil, service.ErrUserNotFound},
		{"unknown access group", owner.ID, domain.RoleGuest, target.ID, []string{"missing"}, service.ErrValidation},
		{"existing member", owner.ID, domain.RoleGuest, member.ID, nil, service.ErrAlreadyMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.membership.CreateInvitation(ctx, o.ID, tt.actor, tt.recip, tt.role, tt.groups)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := e.membership.CreateInvitation(ctx, o.ID, manager.ID, target.ID, domain.RoleMember, nil)
	require.NoError(t, err)
}

func TestUpdateMember(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	m1 := e.user(t, "manager1")
	m2 := e.user(t, "manager2")
	guest := e.user(t, "guest")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, m1, domain.RoleManager)
	e.join(t, o, m2, domain.RoleManager)
	e.join(t, o, guest, domain.RoleGuest)
	g := e.group(t, o, owner.ID, "Staff", domain.AccessGroupConfig{Active: true})

	t.Run("equal role is rejected", func(t *testing.T) {
		_, err := e.membership.UpdateMember(ctx, o.ID, m1.ID, m2.ID, service.MemberUpdate{AccessGroups: &[]string{g.ID}})
		require.ErrorIs(t, err, service.ErrEqualOrHigherRole)
	})

	t.Run("cannot promote to own role", func(t *testing.T) {
		_, err := e.membership.UpdateMember(ctx, o.ID, m1.ID, guest.ID, service.MemberUpdate{Role: ptr(domain.RoleManager)})
		require.ErrorIs(t, err, service.ErrEqualOrHigherRole)
	})

	t.Run("owner role is never granted", func(t *testing.T) {
		_, err := e.membership.UpdateMember(ctx, o.ID, owner.ID, m1.ID, service.MemberUpdate{Role: ptr(domain.RoleOwner)})
		require.ErrorIs(t, err, service.ErrOwnerRoleNotGranted)
		requireSingleOwner(t, e.store, o.ID)
	})

	t.Run("the owner is not editable", func(t *testing.T) {
		_, err := e.membership.UpdateMember(ctx, o.ID, m1.ID, owner.ID, service.MemberUpdate{Role: ptr(domain.RoleGuest)})
		require.ErrorIs(t, err, service.ErrEqualOrHigherRole)
	})

	t.Run("manager edits a guest", func(t *testing.T) {
		m, err := e.membership.UpdateMember(ctx, o.ID, m1.ID, guest.ID, service.MemberUpdate{
			Role:         ptr(domain.RoleMember),
			AccessGroups: &[]string{g.ID},
			ScanData:     map[string]any{"badge": "blue"},
		})
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, m.Role)

		stored, ok := e.member(t, o.ID, guest.ID)
		require.True(t, ok)
		require.Equal(t, domain.RoleMember, stored.Role)
		require.Equal(t, []string{g.ID}, stored.AccessGroups)
		require.Equal(t, "blue", stored.ScanData["badge"])
	})

	t.Run("unknown access group", func(t *testing.T) {
		_, err := e.membership.UpdateMember(ctx, o.ID, owner.ID, guest.ID, service.MemberUpdate{AccessGroups: &[]string{"nope"}})
		require.ErrorIs(t, err, service.ErrValidation)
	})
}

// vanishingStore deletes victim inside the transaction right after the
// organization is first read, the way a Remove committing in between would.
type vanishingStore struct {
	store.Store
	victim string
}

func (s vanishingStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(vanishingTx{innerTx: tx, victim: s.victim, fired: new(bool)})
	})
}

// innerTx names the embedded field so it does not shadow store.Tx's Tx method.
type innerTx = store.Tx

type vanishingTx struct {
	innerTx
	victim string
	fired  *bool
}

func (t vanishingTx) Organizations() store.Organizations {
	return vanishingOrganizations{Organizations: t.innerTx.Organizations(), victim: t.victim, fired: t.fired}
}

type vanishingOrganizations struct {
	store.Organizations
	victim string
	fired  *bool
}

func (r vanishingOrganizations) GetOrganization(ctx context.Context, id string) (domain.Organization, error) {
	o, err := r.Organizations.GetOrganization(ctx, id)
	if err != nil || *r.fired {
		return o, err
	}
	*r.fired = true
	return o, r.Organizations.DeleteMember(ctx, id, r.victim)
}

func TestUpdateMemberNeverRecreatesRemovedMember(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	guest := e.user(t, "guest")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, guest, domain.RoleGuest)

	t.Run("removed between read and write", func(t *testing.T) {
		racing := &service.MembershipService{Store: vanishingStore{Store: e.store, victim: guest.ID}}
		_, err := racing.UpdateMember(ctx, o.ID, owner.ID, guest.ID, service.MemberUpdate{Role: ptr(domain.RoleManager)})
		require.ErrorIs(t, err, service.ErrMemberNotFound)

		// The transaction rolled back as a whole: no promotion happened.
		m, ok := e.member(t, o.ID, guest.ID)
		require.True(t, ok)
		require.Equal(t, domain.RoleGuest, m.Role)
	})

	t.Run("removed before the edit", func(t *testing.T) {
		require.NoError(t, e.membership.Remove(ctx, o.ID, owner.ID, guest.ID))

		_, err := e.membership.UpdateMember(ctx, o.ID, owner.ID, guest.ID, service.MemberUpdate{Role: ptr(domain.RoleManager)})
		require.ErrorIs(t, err, service.ErrMemberNotFound)
		_, ok := e.member(t, o.ID, guest.ID)
		require.False(t, ok)
	})

	t.Run("removed actor loses its rights", func(t *testing.T) {
		manager := e.user(t, "manager")
		target := e.user(t, "target")
		e.join(t, o, manager, domain.RoleManager)
		e.join(t, o, target, domain.RoleGuest)
		require.NoError(t, e.membership.Remove(ctx, o.ID, owner.ID, manager.ID))

		_, err := e.membership.UpdateMember(ctx, o.ID, manager.ID, target.ID, service.MemberUpdate{Role: ptr(domain.RoleMember)})
		require.ErrorIs(t, err, service.ErrNotAMember)
		m, ok := e.member(t, o.ID, target.ID)
		require.True(t, ok)
		require.Equal(t, domain.RoleGuest, m.Role)
	})
	requireSingleOwner(t, e.store, o.ID)
}

func TestConcurrentRemoveAndUpdate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	manager := e.user(t, "manager")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, manager, domain.RoleManager)

	const rounds = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		removeErrs []error
		updateErrs []error
		victims    []string
	)
	for i := range rounds {
		u := e.user(t, fmt.Sprintf("racer%d", i))
		e.join(t, o, u, domain.RoleGuest)
		victims = append(victims, u.ID)

		wg.Add(2)
		go func() {
			defer wg.Done()
			err := e.membership.Remove(ctx, o.ID, owner.ID, u.ID)
			mu.Lock()
			removeErrs = append(removeErrs, err)
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			_, err := e.membership.UpdateMember(ctx, o.ID, manager.ID, u.ID, service.MemberUpdate{Role: ptr(domain.RoleMember)})
			mu.Lock()
			updateErrs = append(updateErrs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, err := range removeErrs {
		require.NoError(t, err)
	}
	for _, err := range updateErrs {
		if err != nil {
			require.ErrorIs(t, err, service.ErrMemberNotFound)
		}
	}
	for _, key := range victims {
		_, ok := e.member(t, o.ID, key)
		require.False(t, ok, "a removed member must stay removed")
	}
	requireSingleOwner(t, e.store, o.ID)
}

func TestLeaveAndRemove(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	manager := e.user(t, "manager")
	leaver := e.user(t, "leaver")
	removed := e.user(t, "removed")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, manager, domain.RoleManager)
	e.join(t, o, leaver, domain.RoleMember)
	e.join(t, o, removed, domain.RoleMember)

	// leaver has a verified Roblox link that is allow-listed on the door.
	leaver.Roblox = domain.LinkedAccount{ID: "4242", Username: "leaver_rbx", Verified: true}
	require.NoError(t, e.store.Users().UpdateUser(ctx, leaver))

	_, ap := e.door(t, o, owner.ID, domain.AccessPointConfig{
		Active: true,
		AlwaysAllowed: domain.AlwaysAllowed{
			Users: []string{leaver.ID, "4242", removed.ID, manager.ID},
		},
	})

	require.ErrorIs(t, e.membership.Remove(ctx, o.ID, manager.ID, owner.ID), service.ErrOwnerNotRemovable)
	require.ErrorIs(t, e.membership.Remove(ctx, o.ID, leaver.ID, removed.ID), service.ErrEqualOrHigherRole)

	require.NoError(t, e.membership.Leave(ctx, o.ID, leaver.ID))
	require.NoError(t, e.membership.Remove(ctx, o.ID, manager.ID, removed.ID))

	_, ok := e.member(t, o.ID, leaver.ID)
	require.False(t, ok)
	_, ok = e.member(t, o.ID, removed.ID)
	require.False(t, ok)

	got, err := e.store.AccessPoints().GetAccessPoint(ctx, ap.ID)
	require.NoError(t, err)
	require.Equal(t, []string{manager.ID}, got.Config.AlwaysAllowed.Users)

	require.ErrorIs(t, e.membership.Leave(ctx, o.ID, leaver.ID), service.ErrNotAMember)
	require.ErrorIs(t, e.membership.Remove(ctx, o.ID, manager.ID, removed.ID), service.ErrMemberNotFound)

	logs, err := e.orgs.ListLogs(ctx, owner.ID, o.ID, 2)
	require.NoError(t, err)
	require.Equal(t, domain.LogMemberRemoved, logs[0].Type)
	require.Equal(t, domain.LogMemberLeft, logs[1].Type)
}

func TestDirectAdds(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	owner := e.user(t, "owner")
	member := e.user(t, "member")
	o := e.organization(t, owner, "Acme")
	e.join(t, o, member, domain.RoleMember)

	_, err := e.membership.AddRobloxMember(ctx, o.ID, member.ID, 1001, "builder")
	require.ErrorIs(t, err, service.ErrInsufficientRole)

	rm, err := e.membership.AddRobloxMember(ctx, o.ID, owner.ID, 1001, "builder")
	require.NoError(t, err)
	require.Equal(t, "1001", rm.Key)
	require.Equal(t, domain.RoleGuest, rm.Role)
	require.True(t, rm.Joined)

	_, err = e.membership.AddRobloxMember(ctx, o.ID, owner.ID, 1001, "builder")
	require.ErrorIs(t, err, service.ErrAlreadyMember)

	gm, err := e.membership.AddRobloxGroupMember(ctx, o.ID, owner.ID, 77, "Builders Club", []int64{1, 2})
	require.NoError(t, err)
	require.Equal(t, domain.MemberRobloxGroup, gm.Kind())
	_, err = e.membership.AddRobloxGroupMember(ctx, o.ID, owner.ID, 77, "Builders Club", nil)
	require.ErrorIs(t, err, service.ErrAlreadyMember)

	cm, err := e.membership.AddCardMember(ctx, o.ID, owner.ID, "Visitor cards", []string{"A1", " A1 ", "B2"})
	require.NoError(t, err)
	require.Equal(t, []string{"A1", "B2"}, cm.Subject.(domain.CardSubject).Numbers)
	_, err = e.membership.AddCardMember(ctx, o.ID, owner.ID, "More cards", []string{"B2"})
	require.ErrorIs(t, err, service.ErrAlreadyMember)
	_, err = e.membership.AddCardMember(ctx, o.ID, owner.ID, "Empty", nil)
	require.ErrorIs(t, err, service.ErrValidation)

	members, err := e.membership.ListMembers(ctx, o.ID, member.ID)
	require.NoError(t, err)
	require.Len(t, members, 5)
	require.Equal(t, owner.ID, members[0].Key)
}
