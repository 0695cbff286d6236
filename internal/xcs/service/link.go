package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// DefaultLinkTimeout bounds one OAuth code exchange.
const DefaultLinkTimeout = 10 * time.Second

// ProfileProvider exchanges an OAuth authorization code for the external
// account it belongs to.
type ProfileProvider interface {
	Exchange(ctx context.Context, code string) (domain.ExternalProfile, error)
}

// LinkService attaches Roblox and Discord accounts to users.
type LinkService struct {
	Store     store.Store
	Providers map[domain.LinkProvider]ProfileProvider
	Timeout   time.Duration
}

func linkedAccount(u *domain.User, p domain.LinkProvider) *domain.LinkedAccount {
	switch p {
	case domain.LinkRoblox:
		return &u.Roblox
	case domain.LinkDiscord:
		return &u.Discord
	}
	return nil
}

// LinkAccount completes an OAuth exchange and records the external account.
// An account can belong to only one user.
func (s *LinkService) LinkAccount(
	ctx context.Context,
	userID string,
	provider domain.LinkProvider,
	code string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	pp, ok := s.Providers[provider]
	if !ok || pp == nil {
		return domain.User{}, errorf(ErrValidation, "account provider %q is not available", provider)
	}
	if code == "" {
		return domain.User{}, newError(ErrValidation, "authorization code is required")
	}

	// 1. Exchange the code, bounded
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultLinkTimeout
	}
	exchangeCtx, cancel := context.WithTimeout(ctx, timeout)
	profile, err := pp.Exchange(exchangeCtx, code)
	cancel()
	if err != nil {
		log.Warn("account link exchange failed",
			slog.String("provider", string(provider)),
			slog.Any("error", err),
		)
		return domain.User{}, newError(ErrValidation, "could not verify the external account")
	}
	if profile.ID == "" {
		return domain.User{}, newError(ErrValidation, "external account has no id")
	}

	// 2. The external account must not belong to someone else
	other, err := s.Store.Users().GetUserByLinkedAccount(ctx, provider, profile.ID)
	switch {
	case err == nil && other.ID != userID:
		return domain.User{}, ErrAccountLinked
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return domain.User{}, err
	}

	// 3. Record it
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	acct := linkedAccount(&u, provider)
	if acct == nil {
		return domain.User{}, errorf(ErrValidation, "unknown account provider %q", provider)
	}
	*acct = domain.LinkedAccount{
		ID:       profile.ID,
		Username: profile.Username,
		Verified: true,
	}
	u.UpdatedAt = time.Now()
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, conflict(notFound(err, ErrUserNotFound), ErrAccountLinked)
	}

	log.Info("account linked",
		slog.String("user_id", u.ID),
		slog.String("provider", string(provider)),
	)
	return u, nil
}

// Unlink detaches the provider's account. Unlinking nothing is not an error.
func (s *LinkService) Unlink(ctx context.Context, userID string, provider domain.LinkProvider) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	acct := linkedAccount(&u, provider)
	if acct == nil {
		return domain.User{}, errorf(ErrValidation, "unknown account provider %q", provider)
	}
	if !acct.Linked() {
		return u, nil
	}
	*acct = domain.LinkedAccount{}
	u.UpdatedAt = time.Now()
	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}

	slogx.FromContext(ctx).Info("account unlinked",
		slog.String("user_id", u.ID),
		slog.String("provider", string(provider)),
	)
	return u, nil
}
