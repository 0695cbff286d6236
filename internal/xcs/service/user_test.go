package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/mail"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/jwtx"
)

// platformCode mints a single-use registration code sponsored by a staff user.
func (e *env) platformCode(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	staff := e.user(t, "staff")
	staff.Platform.Staff = true
	require.NoError(t, e.store.Users().UpdateUser(ctx, staff))
	code, _, err := e.invites.CreatePlatformInvite(ctx, staff.ID, 1)
	require.NoError(t, err)
	return code
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	code := e.platformCode(t)

	req := service.RegisterRequest{
		Code:     code,
		Username: " NewUser ",
		Email:    "new@example.com",
		Password: "correct horse",
	}

	t.Run("rejects invalid input", func(t *testing.T) {
		for _, mutate := range []func(*service.RegisterRequest){
			func(r *service.RegisterRequest) { r.Username = "no" },
			func(r *service.RegisterRequest) { r.Username = "has space" },
			func(r *service.RegisterRequest) { r.Email = "not-an-email" },
			func(r *service.RegisterRequest) { r.Password = "short" },
		} {
			bad := req
			mutate(&bad)
			_, err := e.users.Register(ctx, bad)
			require.ErrorIs(t, err, service.ErrValidation)
		}

		bad := req
		bad.Code = "WRONGCODE"
		_, err := e.users.Register(ctx, bad)
		require.ErrorIs(t, err, service.ErrInvitationNotFound)

		bad = req
		bad.Email = "staff@example.com"
		_, err = e.users.Register(ctx, bad)
		require.ErrorIs(t, err, service.ErrEmailTaken)
	})

	u, err := e.users.Register(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "newuser", u.Username)
	require.Equal(t, "newuser", u.DisplayName)
	require.False(t, u.Email.Verified)
	require.Equal(t, 1, u.Platform.Invites)
	require.NotEqual(t, req.Password, u.PasswordHash)

	msg := e.mail.last(t)
	require.Equal(t, "new@example.com", msg.To)
	require.Equal(t, mail.TemplateVerifyEmail, msg.Template)
	require.Len(t, msg.Data["code"], service.VerificationCodeLength)

	t.Run("code is single use", func(t *testing.T) {
		again := req
		again.Username = "another"
		again.Email = "another@example.com"
		_, err := e.users.Register(ctx, again)
		require.ErrorIs(t, err, service.ErrInvitationNotFound)
	})

	t.Run("verify email", func(t *testing.T) {
		require.ErrorIs(t, e.verification.VerifyEmail(ctx, u.ID, "000000x"), service.ErrCodeNotFound)

		// A fresh code replaces the first one.
		require.NoError(t, e.verification.SendVerification(ctx, u.ID))
		fresh := e.mail.last(t).Data["code"]
		if fresh != msg.Data["code"] {
			require.ErrorIs(t, e.verification.VerifyEmail(ctx, u.ID, msg.Data["code"]), service.ErrCodeNotFound)
		}

		require.NoError(t, e.verification.VerifyEmail(ctx, u.ID, fresh))
		me, err := e.users.GetMe(ctx, u.ID)
		require.NoError(t, err)
		require.True(t, me.Email.Verified)

		require.ErrorIs(t, e.verification.SendVerification(ctx, u.ID), service.ErrEmailAlreadyVerified)
		require.ErrorIs(t, e.verification.VerifyEmail(ctx, u.ID, fresh), service.ErrCodeNotFound)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u, err := e.users.Register(ctx, service.RegisterRequest{
		Code:     e.platformCode(t),
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "xcs-test", Audience: []string{"xcs"}, NumKeys: 1})
	require.NoError(t, err)
	sessions := &service.SessionService{Store: e.store, KeyManager: km, Issuer: "xcs-test", Audience: []string{"xcs"}}

	for _, login := range []string{"alice", "ALICE", "alice@example.com"} {
		s, err := sessions.Login(ctx, login, "correct horse")
		require.NoError(t, err, login)
		require.Equal(t, u.ID, s.User.ID)

		claims, err := km.Verifier.Verify(s.AccessToken)
		require.NoError(t, err)
		require.Equal(t, u.ID, claims.Subject)
		require.Equal(t, "alice", claims.Username)
	}

	for _, tc := range [][2]string{
		{"alice", "wrong password"},
		{"bob", "correct horse"},
		{"", ""},
	} {
		_, err := sessions.Login(ctx, tc[0], tc[1])
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
		require.ErrorIs(t, err, service.ErrUnauthorized)
	}
}

func TestProfileAndPrivacy(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := e.user(t, "alice")
	e.organization(t, u, "Acme")

	name := "Alice A."
	updated, err := e.users.UpdateProfile(ctx, u.ID, service.ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.DisplayName)

	long := "a name that is far longer than allowed"
	_, err = e.users.UpdateProfile(ctx, u.ID, service.ProfileUpdate{DisplayName: &long})
	require.ErrorIs(t, err, service.ErrValidation)

	p, err := e.users.GetPublicProfile(ctx, "ALICE")
	require.NoError(t, err)
	require.Equal(t, name, p.DisplayName)
	require.Len(t, p.Organizations, 1)
	require.Nil(t, p.Roblox)

	_, err = e.users.UpdatePrivacy(ctx, u.ID, domain.Privacy{OrganizationsVisible: false})
	require.NoError(t, err)
	p, err = e.users.GetPublicProfile(ctx, "alice")
	require.NoError(t, err)
	require.Nil(t, p.Organizations)

	_, err = e.users.GetPublicProfile(ctx, "nobody")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

// fakeProvider resolves codes from a fixed table.
type fakeProvider map[string]domain.ExternalProfile

func (f fakeProvider) Exchange(_ context.Context, code string) (domain.ExternalProfile, error) {
	p, ok := f[code]
	if !ok {
		return domain.ExternalProfile{}, errors.New("invalid_grant")
	}
	return p, nil
}

func TestLinkAccount(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.user(t, "alice")
	bob := e.user(t, "bob")

	links := &service.LinkService{
		Store: e.store,
		Providers: map[domain.LinkProvider]service.ProfileProvider{
			domain.LinkRoblox: fakeProvider{
				"alice-code": {Provider: domain.LinkRoblox, ID: "100", Username: "AliceRbx"},
			},
		},
	}

	u, err := links.LinkAccount(ctx, alice.ID, domain.LinkRoblox, "alice-code")
	require.NoError(t, err)
	require.Equal(t, domain.LinkedAccount{ID: "100", Username: "AliceRbx", Verified: true}, u.Roblox)

	p, err := e.users.GetPublicProfile(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, p.Roblox)
	require.Equal(t, "AliceRbx", p.Roblox.Username)

	_, err = links.LinkAccount(ctx, bob.ID, domain.LinkRoblox, "alice-code")
	require.ErrorIs(t, err, service.ErrAccountLinked)

	_, err = links.LinkAccount(ctx, bob.ID, domain.LinkRoblox, "bad-code")
	require.ErrorIs(t, err, service.ErrValidation)

	_, err = links.LinkAccount(ctx, bob.ID, domain.LinkDiscord, "alice-code")
	require.ErrorIs(t, err, service.ErrValidation)

	u, err = links.Unlink(ctx, alice.ID, domain.LinkRoblox)
	require.NoError(t, err)
	require.False(t, u.Roblox.Linked())

	// Once released the account can move to someone else.
	u, err = links.LinkAccount(ctx, bob.ID, domain.LinkRoblox, "alice-code")
	require.NoError(t, err)
	require.Equal(t, "100", u.Roblox.ID)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	b := &service.BootstrapService{Store: e.store, Token: "s3cret"}

	done, err := b.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	req := service.BootstrapRequest{Username: "root", Email: "root@example.com", Password: "correct horse"}

	_, err = b.Bootstrap(ctx, "wrong", req)
	require.ErrorIs(t, err, service.ErrBootstrapUnauthorized)

	u, err := b.Bootstrap(ctx, "s3cret", req)
	require.NoError(t, err)
	require.True(t, u.Platform.Staff)
	require.True(t, u.Email.Verified)

	_, err = b.Bootstrap(ctx, "s3cret", req)
	require.ErrorIs(t, err, service.ErrBootstrapAlready)

	done, err = b.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.True(t, done)
}
