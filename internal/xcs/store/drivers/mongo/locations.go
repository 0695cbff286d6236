package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type locationsRepo struct{ repo }

// byName is the listing order shared by locations and access points.
var byName = bson.D{{Key: "nameKey", Value: 1}, {Key: "_id", Value: 1}}

func (r *locationsRepo) CreateLocation(ctx context.Context, l domain.Location) error {
	_, err := r.coll(colLocations).InsertOne(r.ctx(ctx), toLocationDoc(l))
	return mapDuplicate(err)
}

func (r *locationsRepo) GetLocation(ctx context.Context, id string) (domain.Location, error) {
	var d locationDoc
	if err := r.coll(colLocations).FindOne(r.ctx(ctx), bson.M{"_id": id}).Decode(&d); err != nil {
		return domain.Location{}, mapNotFound(err)
	}
	return d.domain(), nil
}

func (r *locationsRepo) ListLocations(ctx context.Context, orgID string) ([]domain.Location, error) {
	cur, err := r.coll(colLocations).Find(r.ctx(ctx),
		bson.M{"organizationId": orgID}, options.Find().SetSort(byName))
	if err != nil {
		return nil, err
	}
	return decodeAll(r.ctx(ctx), cur, locationDoc.domain)
}

func (r *locationsRepo) UpdateLocation(ctx context.Context, l domain.Location) error {
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = time.Now()
	}
	d := toLocationDoc(l)
	return requireMatched(r.coll(colLocations).UpdateOne(r.ctx(ctx),
		bson.M{"_id": l.ID},
		bson.M{"$set": bson.M{
			"name":        d.Name,
			"nameKey":     d.NameKey,
			"description": d.Description,
			"enabled":     d.Enabled,
			"tags":        d.Tags,
			"roblox":      d.Roblox,
			"updatedAt":   d.UpdatedAt,
		}},
	))
}

func (r *locationsRepo) DeleteLocation(ctx context.Context, id string) error {
	return requireDeleted(r.coll(colLocations).DeleteOne(r.ctx(ctx), bson.M{"_id": id}))
}

func (r *locationsRepo) DeleteLocationsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.coll(colLocations).DeleteMany(r.ctx(ctx), bson.M{"organizationId": orgID})
	return err
}
