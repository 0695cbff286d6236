package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

const (
	DisplayNameMax    = 32
	PasswordMinLength = 8
	PasswordMaxLength = 128
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,16}$`)

type UserService struct {
	Store store.Store

	// Verification mails a code after registration when set.
	Verification *VerificationService

	// InviteCredits is the number of platform invites a new user starts with.
	InviteCredits int
}

// RegisterRequest is a new account redeemed with a platform code.
type RegisterRequest struct {
	Code        string
	Username    string
	DisplayName string
	Email       string
	Password    string
}

// ProfileUpdate carries the optional fields of a profile edit.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
}

// PublicProfile is what any signed-in user can see of another user.
type PublicProfile struct {
	ID            string
	Username      string
	DisplayName   string
	AvatarURL     string
	Staff         bool
	Roblox        *domain.LinkedAccount
	Organizations []domain.Organization // nil when hidden
	CreatedAt     time.Time
}

// NormalizeUsername lower-cases and validates a username.
func NormalizeUsername(username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !usernamePattern.MatchString(username) {
		return "", newError(ErrValidation, "username must be 3-16 characters of a-z, 0-9 or _")
	}
	return username, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", newError(ErrValidation, "invalid email address")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < PasswordMinLength || len(password) > PasswordMaxLength {
		return errorf(ErrValidation, "password must be between %d and %d characters", PasswordMinLength, PasswordMaxLength)
	}
	return nil
}

// checkAvailable reports a clash on username or email before a write.
func checkAvailable(ctx context.Context, st store.Store, username, email string) error {
	_, err := st.Users().GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return err
	}
	_, err = st.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, store.ErrNotFound):
		return err
	}
	return nil
}

// Register creates an account. The platform code is consumed in the same
// transaction as the user insert.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
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
	if err := validateLength("display name", displayName, 1, DisplayNameMax); err != nil {
		return domain.User{}, err
	}

	// 2. Resolve the platform code
	inv, err := lookupCode(ctx, s.Store, req.Code, domain.InvitationPlatform)
	if err != nil {
		log.Warn("registration with unknown platform code")
		return domain.User{}, err
	}
	if err := checkAvailable(ctx, s.Store, username, email); err != nil {
		return domain.User{}, err
	}

	// 3. Hash the password
	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Consume the code and create the user atomically
	now := time.Now()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  displayName,
		Email:        domain.Email{Address: email},
		PasswordHash: hash,
		Platform:     domain.Platform{Invites: s.InviteCredits},
		Privacy:      domain.DefaultPrivacy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := consumeCode(ctx, tx, inv); err != nil {
			return err
		}
		return conflict(tx.Users().CreateUser(ctx, user), ErrUsernameTaken)
	})
	if err != nil {
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("invitation_id", inv.ID),
	)

	// 5. Verification mail is best effort
	if s.Verification != nil {
		if err := s.Verification.SendVerification(ctx, user.ID); err != nil {
			log.Warn("failed to send verification email",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
	}
	return user, nil
}

// GetMe returns the caller's own account.
func (s *UserService) GetMe(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (domain.User, error) {
	u, err := s.GetMe(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if upd.DisplayName != nil {
		if err := validateLength("display name", *upd.DisplayName, 1, DisplayNameMax); err != nil {
			return domain.User{}, err
		}
		u.DisplayName = strings.TrimSpace(*upd.DisplayName)
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = strings.TrimSpace(*upd.AvatarURL)
	}
	u.UpdatedAt = time.Now()

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	return u, nil
}

func (s *UserService) UpdatePrivacy(ctx context.Context, userID string, p domain.Privacy) (domain.User, error) {
	u, err := s.GetMe(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	u.Privacy = p
	u.UpdatedAt = time.Now()

	if err := s.Store.Users().UpdateUser(ctx, u); err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	return u, nil
}

// GetPublicProfile looks a user up by username and hides what their privacy
// settings hide.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (PublicProfile, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return PublicProfile{}, notFound(err, ErrUserNotFound)
	}

	p := PublicProfile{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Staff:       u.Platform.Staff,
		CreatedAt:   u.CreatedAt,
	}
	if u.Roblox.Linked() && u.Roblox.Verified {
		roblox := u.Roblox
		p.Roblox = &roblox
	}
	if u.Privacy.OrganizationsVisible {
		orgs, err := s.Store.Organizations().ListOrganizationsForUser(ctx, u.ID)
		if err != nil {
			return PublicProfile{}, err
		}
		p.Organizations = orgs
	}
	return p, nil
}
