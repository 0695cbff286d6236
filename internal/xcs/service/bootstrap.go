package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

var (
	ErrBootstrapAlready      = newError(ErrConflict, "system already bootstrapped")
	ErrBootstrapUnauthorized = newError(ErrUnauthorized, "invalid bootstrap token")
)

// BootstrapService creates the first staff account on an empty system.
type BootstrapService struct {
	Store store.Store
	Token string // pre-configured bootstrap token
}

// BootstrapRequest describes the first staff account.
type BootstrapRequest struct {
	Username    string
	DisplayName string
	Email       string
	Password    string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (domain.User, error) {
	l := slogx.FromContext(ctx)

	// 1. Only while there are no users
	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrBootstrapAlready
	}

	// 2. Validate provided token
	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	// 3. Validate the account
	username, err := NormalizeUsername(req.Username)
	if err != nil {
		return domain.User{}, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return domain.User{}, err
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = username
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		l.Error("failed to hash staff password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Create the staff user, re-checking emptiness inside the transaction
	now := time.Now()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  displayName,
		Email:        domain.Email{Address: email, Verified: true},
		PasswordHash: hash,
		Platform:     domain.Platform{Staff: true},
		Privacy:      domain.DefaultPrivacy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Users().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return ErrBootstrapAlready
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		l.Error("failed to create staff user", slog.Any("error", err))
		return domain.User{}, err
	}

	l.Info("successfully bootstrapped system", slog.String("user_id", user.ID))
	return user, nil
}
