package xcs_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

const (
	roleGuest   = 0
	roleMember  = 1
	roleManager = 2
	roleOwner   = 3
)

// TestMemberInvitation covers the invite, notify, accept lifecycle.
func TestMemberInvitation(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	staff := bootstrapStaff(t, client)
	owner := registerUser(t, client, staff, "owner")
	alice := registerUser(t, client, staff, "alice")

	org, err := owner.CreateOrganization(ctx, xcssdk.CreateOrganizationRequest{Name: "Acme"})
	require.NoError(t, err)
	require.Equal(t, roleOwner, org.Role)

	// Not a member yet
	_, err = alice.GetOrganization(ctx, org.ID)
	assertAPIError(t, err, http.StatusForbidden, "Outsider should not see the organization")

	invited, err := owner.InviteMember(ctx, org.ID, xcssdk.InviteMemberRequest{Recipient: "alice", Role: roleMember})
	require.NoError(t, err)
	require.Equal(t, "invited", invited.State)

	_, err = owner.InviteMember(ctx, org.ID, xcssdk.InviteMemberRequest{Recipient: "alice", Role: roleMember})
	assertAPIError(t, err, http.StatusConflict, "Duplicate invitation should conflict")

	notes, err := alice.ListNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, org.ID, notes[0].OrganizationID)

	joined, err := alice.AcceptInvitation(ctx, notes[0].ID)
	require.NoError(t, err)
	require.Equal(t, org.ID, joined.ID)
	require.Equal(t, roleMember, joined.Role)

	members, err := owner.ListMembers(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	// Members cannot manage members
	_, err = alice.AddCardMember(ctx, org.ID, xcssdk.AddCardMemberRequest{Name: "Badge", Numbers: []string{"1"}})
	assertAPIError(t, err, http.StatusForbidden, "Member should not add members")

	require.NoError(t, alice.LeaveOrganization(ctx, org.ID))
	orgs, err := alice.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Empty(t, orgs)

	// The owner can never leave
	assertAPIError(t, owner.LeaveOrganization(ctx, org.ID), http.StatusForbidden, "Owner should not leave")
}

// TestInviteCodes covers organization invite codes from mint to redemption.
func TestInviteCodes(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	staff := bootstrapStaff(t, client)
	owner := registerUser(t, client, staff, "owner")
	alice := registerUser(t, client, staff, "alice")

	org, err := owner.CreateOrganization(ctx, xcssdk.CreateOrganizationRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = owner.CreateInviteCode(ctx, org.ID, xcssdk.CreateInviteCodeRequest{Role: roleOwner})
	require.Error(t, err, "Owner role can never be granted by code")

	created, err := owner.CreateInviteCode(ctx, org.ID, xcssdk.CreateInviteCodeRequest{
		Role:      roleManager,
		MaxUses:   1,
		ExpiresIn: 3600,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Code)

	preview, err := client.PreviewInvite(ctx, created.Code)
	require.NoError(t, err)
	require.Equal(t, "Acme", preview.OrganizationName)
	require.Equal(t, roleManager, preview.Role)

	joined, err := alice.RedeemInvite(ctx, created.Code)
	require.NoError(t, err)
	require.Equal(t, roleManager, joined.Role)

	_, err = alice.RedeemInvite(ctx, created.Code)
	require.Error(t, err, "Exhausted code should not redeem again")

	codes, err := owner.ListInviteCodes(ctx, org.ID)
	require.NoError(t, err)
	for _, c := range codes {
		require.NotEqual(t, created.InviteCode.ID, c.ID, "Exhausted code should be gone")
	}
}

// TestOrganizationDeletion verifies only the owner can delete and that
// everything under the organization goes with it.
func TestOrganizationDeletion(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	staff := bootstrapStaff(t, client)
	owner := registerUser(t, client, staff, "owner")

	org, err := owner.CreateOrganization(ctx, xcssdk.CreateOrganizationRequest{Name: "Acme"})
	require.NoError(t, err)
	loc, err := owner.CreateLocation(ctx, org.ID, xcssdk.LocationRequest{Name: "HQ", Enabled: true})
	require.NoError(t, err)
	ap, err := owner.CreateAccessPoint(ctx, loc.ID, xcssdk.AccessPointRequest{Name: "Front door"})
	require.NoError(t, err)

	require.NoError(t, owner.DeleteOrganization(ctx, org.ID))

	_, err = owner.GetOrganization(ctx, org.ID)
	assertAPIError(t, err, http.StatusNotFound, "Deleted organization should be gone")
	_, err = owner.GetLocation(ctx, loc.ID)
	assertAPIError(t, err, http.StatusNotFound, "Location should be deleted with its organization")
	_, err = owner.GetAccessPoint(ctx, ap.ID)
	assertAPIError(t, err, http.StatusNotFound, "Access point should be deleted with its organization")
}
