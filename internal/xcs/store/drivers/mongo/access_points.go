package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type accessPointsRepo struct{ repo }

func (r *accessPointsRepo) CreateAccessPoint(ctx context.Context, ap domain.AccessPoint) error {
	_, err := r.coll(colAccessPoints).InsertOne(r.ctx(ctx), toAccessPointDoc(ap))
	return mapDuplicate(err)
}

func (r *accessPointsRepo) GetAccessPoint(ctx context.Context, id string) (domain.AccessPoint, error) {
	var d accessPointDoc
	if err := r.coll(colAccessPoints).FindOne(r.ctx(ctx), bson.M{"_id": id}).Decode(&d); err != nil {
		return domain.AccessPoint{}, mapNotFound(err)
	}
	return d.domain(), nil
}

func (r *accessPointsRepo) ListAccessPointsByLocation(ctx context.Context, locationID string) ([]domain.AccessPoint, error) {
	return r.list(ctx, bson.M{"locationId": locationID})
}

func (r *accessPointsRepo) ListAccessPointsByOrganization(ctx context.Context, orgID string) ([]domain.AccessPoint, error) {
	return r.list(ctx, bson.M{"organizationId": orgID})
}

func (r *accessPointsRepo) list(ctx context.Context, filter bson.M) ([]domain.AccessPoint, error) {
	cur, err := r.coll(colAccessPoints).Find(r.ctx(ctx), filter, options.Find().SetSort(byName))
	if err != nil {
		return nil, err
	}
	return decodeAll(r.ctx(ctx), cur, accessPointDoc.domain)
}

func (r *accessPointsRepo) UpdateAccessPoint(ctx context.Context, ap domain.AccessPoint) error {
	if ap.UpdatedAt.IsZero() {
		ap.UpdatedAt = time.Now()
	}
	d := toAccessPointDoc(ap)
	return requireMatched(r.coll(colAccessPoints).UpdateOne(r.ctx(ctx),
		bson.M{"_id": ap.ID},
		bson.M{"$set": bson.M{
			"name":        d.Name,
			"nameKey":     d.NameKey,
			"description": d.Description,
			"tags":        d.Tags,
			"config":      d.Config,
			"updatedAt":   d.UpdatedAt,
		}},
	))
}

func (r *accessPointsRepo) DeleteAccessPoint(ctx context.Context, id string) error {
	return requireDeleted(r.coll(colAccessPoints).DeleteOne(r.ctx(ctx), bson.M{"_id": id}))
}

func (r *accessPointsRepo) DeleteAccessPointsByLocation(ctx context.Context, locationID string) error {
	_, err := r.coll(colAccessPoints).DeleteMany(r.ctx(ctx), bson.M{"locationId": locationID})
	return err
}

func (r *accessPointsRepo) DeleteAccessPointsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.coll(colAccessPoints).DeleteMany(r.ctx(ctx), bson.M{"organizationId": orgID})
	return err
}

func (r *accessPointsRepo) PullAlwaysAllowedGroup(ctx context.Context, orgID, groupID string) error {
	_, err := r.coll(colAccessPoints).UpdateMany(r.ctx(ctx),
		bson.M{"organizationId": orgID, "config.alwaysAllowed.groups": groupID},
		bson.M{
			"$pull": bson.M{"config.alwaysAllowed.groups": groupID},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}

func (r *accessPointsRepo) PullAlwaysAllowedUsers(ctx context.Context, orgID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.coll(colAccessPoints).UpdateMany(r.ctx(ctx),
		bson.M{"organizationId": orgID, "config.alwaysAllowed.users": bson.M{"$in": ids}},
		bson.M{
			"$pull": bson.M{"config.alwaysAllowed.users": bson.M{"$in": ids}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	return err
}
