package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

type invitationsRepo struct{ repo }

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.coll(colInvitations).InsertOne(r.ctx(ctx), toInvitationDoc(inv))
	return mapDuplicate(err)
}

func (r *invitationsRepo) findOne(ctx context.Context, filter bson.M) (domain.Invitation, error) {
	var d invitationDoc
	if err := r.coll(colInvitations).FindOne(r.ctx(ctx), filter).Decode(&d); err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return d.domain(), nil
}

func (r *invitationsRepo) GetInvitation(ctx context.Context, id string) (domain.Invitation, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *invitationsRepo) GetInvitationByCodeHash(ctx context.Context, hash string) (domain.Invitation, error) {
	return r.findOne(ctx, bson.M{"codeHash": hash})
}

func (r *invitationsRepo) IncrementInvitationUses(ctx context.Context, id string) (domain.Invitation, error) {
	var d invitationDoc
	err := r.coll(colInvitations).FindOneAndUpdate(r.ctx(ctx),
		bson.M{"_id": id, "$expr": bson.M{"$lt": bson.A{"$uses", "$maxUses"}}},
		bson.M{"$inc": bson.M{"uses": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if err == nil {
		return d.domain(), nil
	}

	err = mapNotFound(err)
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, err
	}
	if _, err := r.GetInvitation(ctx, id); err != nil {
		return domain.Invitation{}, err
	}
	return domain.Invitation{}, store.ErrConditionFailed
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, orgID string) ([]domain.Invitation, error) {
	cur, err := r.coll(colInvitations).Find(r.ctx(ctx),
		bson.M{"organizationId": orgID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.ctx(ctx), cur, invitationDoc.domain)
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	return requireDeleted(r.coll(colInvitations).DeleteOne(r.ctx(ctx), bson.M{"_id": id}))
}

func (r *invitationsRepo) DeleteInvitationsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.coll(colInvitations).DeleteMany(r.ctx(ctx), bson.M{"organizationId": orgID})
	return err
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll(colInvitations).DeleteMany(r.ctx(ctx),
		bson.M{"expiresAt": bson.M{"$ne": nil, "$lte": now}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
