package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/mail"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

const (
	VerificationCodeLength = 6
	DefaultVerificationTTL = 15 * time.Minute
)

var ErrEmailAlreadyVerified = newError(ErrConflict, "email address already verified")

// VerificationService mails one-time codes that confirm a user's email.
type VerificationService struct {
	Store  store.Store
	Mailer mail.Dispatcher
	TTL    time.Duration
}

// codeHash scopes a short numeric code to its user so codes of different
// users never share a fingerprint.
func codeHash(userID, code string) string {
	return cryptox.FingerprintToken(userID + ":" + code)
}

// SendVerification replaces any outstanding code and mails a fresh one.
func (s *VerificationService) SendVerification(ctx context.Context, userID string) error {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if u.Email.Verified {
		return ErrEmailAlreadyVerified
	}

	code, err := cryptox.GenerateDigits(VerificationCodeLength)
	if err != nil {
		log.Error("failed to generate verification code", slog.Any("error", err))
		return err
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultVerificationTTL
	}
	now := time.Now()
	vc := domain.VerificationCode{
		ID:        idx.New().String(),
		UserID:    u.ID,
		Kind:      domain.VerificationEmail,
		CodeHash:  codeHash(u.ID, code),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.VerificationCodes().DeleteVerificationCodesForUser(ctx, u.ID, domain.VerificationEmail); err != nil {
			return err
		}
		return tx.VerificationCodes().CreateVerificationCode(ctx, vc)
	})
	if err != nil {
		log.Error("failed to store verification code", slog.Any("error", err))
		return err
	}

	if s.Mailer == nil {
		log.Warn("no mailer configured, verification code not sent", slog.String("user_id", u.ID))
		return nil
	}
	return s.Mailer.Send(ctx, mail.Message{
		To:       u.Email.Address,
		Template: mail.TemplateVerifyEmail,
		Data: map[string]string{
			"username": u.Username,
			"code":     code,
			"expires":  ttl.String(),
		},
	})
}

// VerifyEmail consumes the caller's code and marks their email verified.
func (s *VerificationService) VerifyEmail(ctx context.Context, userID, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeNotFound
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		vc, err := tx.VerificationCodes().GetVerificationCodeByHash(ctx, codeHash(userID, code))
		if err != nil {
			return notFound(err, ErrCodeNotFound)
		}
		if vc.UserID != userID || vc.Kind != domain.VerificationEmail || !time.Now().Before(vc.ExpiresAt) {
			return ErrCodeNotFound
		}

		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		u.Email.Verified = true
		u.UpdatedAt = time.Now()
		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			return err
		}
		return tx.VerificationCodes().DeleteVerificationCodesForUser(ctx, userID, domain.VerificationEmail)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("email verified", slog.String("user_id", userID))
	return nil
}
