package xcs_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// TestBootstrapOnce verifies bootstrap is guarded by its token and only
// succeeds while no accounts exist.
func TestBootstrapOnce(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()

	req := xcssdk.BootstrapRequest{Username: staffUsername, Email: staffEmail, Password: staffPassword}

	_, err := client.Bootstrap(ctx, "wrong-token", req)
	assertAPIError(t, err, http.StatusUnauthorized, "Wrong bootstrap token should be rejected")

	staff := bootstrapStaff(t, client)
	require.True(t, staff.User().Staff)
	require.True(t, staff.User().EmailVerified)

	_, err = client.Bootstrap(ctx, bootstrapToken, xcssdk.BootstrapRequest{
		Username: "second",
		Email:    "second@example.com",
		Password: staffPassword,
	})
	assertAPIError(t, err, http.StatusConflict, "Second bootstrap should conflict")
}

// TestRegistrationFlow covers platform invitations, registration and login.
func TestRegistrationFlow(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	staff := bootstrapStaff(t, client)

	invite, err := staff.CreatePlatformInvite(ctx, 1)
	require.NoError(t, err)

	_, err = client.Register(ctx, xcssdk.RegisterRequest{
		Code:     invite.Code,
		Username: "x",
		Email:    "alice@example.com",
		Password: userPassword,
	})
	assertAPIError(t, err, http.StatusBadRequest, "Short username should fail validation")

	alice, err := client.Register(ctx, xcssdk.RegisterRequest{
		Code:     invite.Code,
		Username: "alice",
		Email:    "alice@example.com",
		Password: userPassword,
	})
	require.NoError(t, err)
	require.False(t, alice.EmailVerified)

	_, err = client.Register(ctx, xcssdk.RegisterRequest{
		Code:     invite.Code,
		Username: "bob",
		Email:    "bob@example.com",
		Password: userPassword,
	})
	assertAPIError(t, err, http.StatusNotFound, "Single use code should be consumed")

	session, err := client.AuthenticateWithPassword(ctx, "alice@example.com", userPassword)
	require.NoError(t, err)
	require.Equal(t, alice.ID, session.User().ID)

	_, err = client.Login(ctx, "alice", "wrong password")
	assertAPIError(t, err, http.StatusUnauthorized, "Wrong password should be rejected")

	// Non-staff accounts can only mint single use codes.
	_, err = session.CreatePlatformInvite(ctx, 5)
	assertAPIError(t, err, http.StatusBadRequest, "Multi use code from non-staff should fail")
}

// TestProfile covers profile edits, privacy and public profiles.
func TestProfile(t *testing.T) {
	client := setupContainer(t)
	ctx := t.Context()
	staff := bootstrapStaff(t, client)
	alice := registerUser(t, client, staff, "alice")

	_, err := alice.CreateOrganization(ctx, xcssdk.CreateOrganizationRequest{Name: "Acme"})
	require.NoError(t, err)

	name := "Alice A."
	me, err := alice.UpdateProfile(ctx, xcssdk.UpdateProfileRequest{DisplayName: &name})
	require.NoError(t, err)
	require.Equal(t, name, me.DisplayName)

	profile, err := client.GetPublicProfile(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, name, profile.DisplayName)
	require.Len(t, profile.Organizations, 1)

	_, err = alice.UpdatePrivacy(ctx, xcssdk.Privacy{OrganizationsVisible: false})
	require.NoError(t, err)

	profile, err = client.GetPublicProfile(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, profile.Organizations)
}

// TestInvalidAccessToken verifies authenticated routes reject bad tokens.
func TestInvalidAccessToken(t *testing.T) {
	client := setupContainer(t)

	_, err := client.NewSessionFromToken("invalid-token-12345", 3600).GetMe(t.Context())
	assertAPIError(t, err, http.StatusUnauthorized, "Invalid token should be rejected")
}
