package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/jwtx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// SessionService signs users in with a password and issues session tokens.
type SessionService struct {
	Store      store.Store
	KeyManager *jwtx.KeyManager
	Issuer     string
	Audience   []string
	TTL        time.Duration
}

// Session is an issued access token.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        domain.User
}

// Login accepts a username or an email address.
func (s *SessionService) Login(ctx context.Context, login, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Find the account
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	var (
		u   domain.User
		err error
	)
	if strings.Contains(login, "@") {
		u, err = s.Store.Users().GetUserByEmail(ctx, login)
	} else {
		u, err = s.Store.Users().GetUserByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login for unknown account")
			return Session{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return Session{}, err
	}

	// 2. Check the password
	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("stored password hash unusable",
				slog.String("user_id", u.ID),
				slog.Any("error", err),
			)
		}
		log.Info("login with wrong password", slog.String("user_id", u.ID))
		return Session{}, ErrInvalidCredentials
	}

	// 3. Issue the token
	session, err := s.Issue(u)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return Session{}, err
	}

	log.Info("user signed in", slog.String("user_id", u.ID))
	return session, nil
}

// Issue signs a session token for u.
func (s *SessionService) Issue(u domain.User) (Session, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	now := time.Now()
	claims := jwtx.NewSessionClaims(u.ID, u.Username, u.DisplayName, u.Platform.Staff, ttl, s.Issuer, s.Audience, now)

	token, err := s.KeyManager.GetSigner().Sign(claims)
	if err != nil {
		return Session{}, err
	}
	return Session{AccessToken: token, ExpiresAt: now.Add(ttl), User: u}, nil
}
