package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

type usersRepo struct{ repo }

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.coll(colUsers).InsertOne(r.ctx(ctx), toUserDoc(u))
	return mapDuplicate(err)
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var d userDoc
	if err := r.coll(colUsers).FindOne(r.ctx(ctx), filter).Decode(&d); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return d.domain(), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"usernameKey": domain.NormalizeName(username)})
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email.key": domain.NormalizeName(email)})
}

func (r *usersRepo) GetUserByLinkedAccount(
	ctx context.Context,
	provider domain.LinkProvider,
	externalID string,
) (domain.User, error) {
	var field string
	switch provider {
	case domain.LinkRoblox:
		field = "roblox.id"
	case domain.LinkDiscord:
		field = "discord.id"
	default:
		return domain.User{}, fmt.Errorf("mongo: unknown link provider %q", provider)
	}
	if externalID == "" {
		return domain.User{}, store.ErrNotFound
	}
	return r.findOne(ctx, bson.M{field: externalID})
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now()
	}
	d := toUserDoc(u)
	return requireMatched(r.coll(colUsers).UpdateOne(r.ctx(ctx),
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{
			"username":     d.Username,
			"usernameKey":  d.UsernameKey,
			"displayName":  d.DisplayName,
			"avatar":       d.AvatarURL,
			"email":        d.Email,
			"passwordHash": d.PasswordHash,
			"roblox":       d.Roblox,
			"discord":      d.Discord,
			"platform":     d.Platform,
			"privacy":      d.Privacy,
			"updatedAt":    d.UpdatedAt,
		}},
	))
}

func (r *usersRepo) DecrementInvites(ctx context.Context, userID string) error {
	res, err := r.coll(colUsers).UpdateOne(r.ctx(ctx),
		bson.M{"_id": userID, "platform.invites": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"platform.invites": -1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrConditionFailed
	}
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	n, err := r.coll(colUsers).CountDocuments(r.ctx(ctx), bson.M{}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
