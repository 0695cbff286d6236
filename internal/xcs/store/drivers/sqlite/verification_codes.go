package sqlite

import (
	"context"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type verificationCodesRepo struct {
	db dbtx
}

func (r *verificationCodesRepo) CreateVerificationCode(ctx context.Context, c domain.VerificationCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO verification_codes (id, user_id, kind, code_hash, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, string(c.Kind), c.CodeHash, toMillis(c.ExpiresAt), toMillis(c.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *verificationCodesRepo) GetVerificationCodeByHash(ctx context.Context, hash string) (domain.VerificationCode, error) {
	var (
		c                    domain.VerificationCode
		kind                 string
		expiresAt, createdAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, kind, code_hash, expires_at, created_at
		FROM verification_codes WHERE code_hash = ?`, hash,
	).Scan(&c.ID, &c.UserID, &kind, &c.CodeHash, &expiresAt, &createdAt)
	if err != nil {
		return domain.VerificationCode{}, mapNotFound(err)
	}
	c.Kind = domain.VerificationKind(kind)
	c.ExpiresAt = fromMillis(expiresAt)
	c.CreatedAt = fromMillis(createdAt)
	return c, nil
}

func (r *verificationCodesRepo) DeleteVerificationCode(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM verification_codes WHERE id = ?`, id))
}

func (r *verificationCodesRepo) DeleteVerificationCodesForUser(
	ctx context.Context,
	userID string,
	kind domain.VerificationKind,
) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM verification_codes WHERE user_id = ? AND kind = ?`, userID, string(kind))
	return err
}

func (r *verificationCodesRepo) DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM verification_codes WHERE expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
