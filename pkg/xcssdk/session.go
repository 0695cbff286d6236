package xcssdk

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// ErrSessionExpired is returned once the session token has expired. Session
// tokens cannot be refreshed; log in again.
var ErrSessionExpired = errors.New("session token expired")

// Session is an authenticated user session.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	user        User
}

// newSession creates a session from a login response.
func newSession(client *SDKClient, tok *TokenResponse) *Session {
	return &Session{
		client:      client,
		accessToken: tok.AccessToken,
		expiresAt:   time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
		user:        tok.User,
	}
}

// NewSessionFromToken wraps an existing access token. A zero expiresIn
// leaves expiry checks to the server.
func (c *SDKClient) NewSessionFromToken(accessToken string, expiresIn int) *Session {
	s := &Session{client: c, accessToken: accessToken}
	if expiresIn > 0 {
		s.expiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return s
}

// AccessToken returns the bearer token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// User returns the account the session was created for. Empty for sessions
// built with NewSessionFromToken until GetMe is called.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) validToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.expiresAt.IsZero() && !time.Now().Before(s.expiresAt) {
		return "", ErrSessionExpired
	}
	return s.accessToken, nil
}

// call performs an authenticated request. out may be nil for 204 responses.
func (s *Session) call(ctx context.Context, method, path string, body, out any, expectedStatus int) error {
	resp, err := s.doAuthRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return checkStatusNoContent(resp)
	}
	return decodeJSON(resp, out, expectedStatus)
}

// GetMe returns the signed-in user.
func (s *Session) GetMe(ctx context.Context) (*User, error) {
	var u User
	if err := s.call(ctx, http.MethodGet, "/api/v1/me", nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return &u, nil
}

// UpdateProfile changes the display name and/or avatar.
func (s *Session) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	var u User
	if err := s.call(ctx, http.MethodPatch, "/api/v1/me", req, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdatePrivacy replaces the privacy settings.
func (s *Session) UpdatePrivacy(ctx context.Context, p Privacy) (*User, error) {
	var u User
	if err := s.call(ctx, http.MethodPut, "/api/v1/me/privacy", p, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// ResendVerification emails a fresh verification code.
func (s *Session) ResendVerification(ctx context.Context) error {
	return s.call(ctx, http.MethodPost, "/api/v1/me/email/resend", nil, nil, http.StatusNoContent)
}

// VerifyEmail confirms the email address with the mailed code.
func (s *Session) VerifyEmail(ctx context.Context, code string) error {
	return s.call(ctx, http.MethodPost, "/api/v1/me/email/verify", VerifyEmailRequest{Code: code}, nil, http.StatusNoContent)
}

// LinkAccount attaches an external account ("roblox" or "discord").
func (s *Session) LinkAccount(ctx context.Context, provider, code string) (*User, error) {
	var u User
	if err := s.call(ctx, http.MethodPost, "/api/v1/me/links/"+provider, LinkAccountRequest{Code: code}, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// UnlinkAccount detaches an external account.
func (s *Session) UnlinkAccount(ctx context.Context, provider string) (*User, error) {
	var u User
	if err := s.call(ctx, http.MethodDelete, "/api/v1/me/links/"+provider, nil, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreatePlatformInvite mints a registration code. Consumes an invite credit
// unless the caller is staff.
func (s *Session) CreatePlatformInvite(ctx context.Context, maxUses int) (*CreateInviteCodeResponse, error) {
	var out CreateInviteCodeResponse
	if err := s.call(ctx, http.MethodPost, "/api/v1/me/invites", PlatformInviteRequest{MaxUses: maxUses}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListNotifications returns the caller's notifications, newest first.
func (s *Session) ListNotifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := s.call(ctx, http.MethodGet, "/api/v1/notifications", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) MarkNotificationRead(ctx context.Context, id string) error {
	return s.call(ctx, http.MethodPost, "/api/v1/notifications/"+id+"/read", nil, nil, http.StatusNoContent)
}

// AcceptInvitation joins the organization an invitation notification is for.
func (s *Session) AcceptInvitation(ctx context.Context, notificationID string) (*Organization, error) {
	var o Organization
	if err := s.call(ctx, http.MethodPost, "/api/v1/notifications/"+notificationID+"/accept", nil, &o, http.StatusOK); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Session) RejectInvitation(ctx context.Context, notificationID string) error {
	return s.call(ctx, http.MethodPost, "/api/v1/notifications/"+notificationID+"/reject", nil, nil, http.StatusNoContent)
}

// RedeemInvite joins an organization with an invite code.
func (s *Session) RedeemInvite(ctx context.Context, code string) (*Organization, error) {
	var o Organization
	if err := s.call(ctx, http.MethodPost, "/api/v1/invites/redeem", RedeemInviteRequest{Code: code}, &o, http.StatusOK); err != nil {
		return nil, err
	}
	return &o, nil
}
