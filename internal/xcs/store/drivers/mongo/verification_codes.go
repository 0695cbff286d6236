package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type verificationCodesRepo struct{ repo }

func (r *verificationCodesRepo) CreateVerificationCode(ctx context.Context, c domain.VerificationCode) error {
	_, err := r.coll(colVerificationCodes).InsertOne(r.ctx(ctx), verificationCodeDoc{
		ID:        c.ID,
		UserID:    c.UserID,
		Kind:      string(c.Kind),
		CodeHash:  c.CodeHash,
		ExpiresAt: c.ExpiresAt,
		CreatedAt: c.CreatedAt,
	})
	return mapDuplicate(err)
}

func (r *verificationCodesRepo) GetVerificationCodeByHash(ctx context.Context, hash string) (domain.VerificationCode, error) {
	var d verificationCodeDoc
	if err := r.coll(colVerificationCodes).FindOne(r.ctx(ctx), bson.M{"codeHash": hash}).Decode(&d); err != nil {
		return domain.VerificationCode{}, mapNotFound(err)
	}
	return domain.VerificationCode{
		ID:        d.ID,
		UserID:    d.UserID,
		Kind:      domain.VerificationKind(d.Kind),
		CodeHash:  d.CodeHash,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}, nil
}

func (r *verificationCodesRepo) DeleteVerificationCode(ctx context.Context, id string) error {
	return requireDeleted(r.coll(colVerificationCodes).DeleteOne(r.ctx(ctx), bson.M{"_id": id}))
}

func (r *verificationCodesRepo) DeleteVerificationCodesForUser(
	ctx context.Context,
	userID string,
	kind domain.VerificationKind,
) error {
	_, err := r.coll(colVerificationCodes).DeleteMany(r.ctx(ctx),
		bson.M{"userId": userID, "type": string(kind)})
	return err
}

func (r *verificationCodesRepo) DeleteExpiredVerificationCodes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll(colVerificationCodes).DeleteMany(r.ctx(ctx), bson.M{"expiresAt": bson.M{"$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
