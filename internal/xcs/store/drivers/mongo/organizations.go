package mongo

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

type organizationsRepo struct{ repo }

// withoutLogs keeps the log array out of aggregate reads.
var withoutLogs = bson.M{"logs": 0}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	for k := range o.Members {
		if _, err := fieldKey(k); err != nil {
			return err
		}
	}
	_, err := r.coll(colOrganizations).InsertOne(r.ctx(ctx), toOrganizationDoc(o))
	return mapDuplicate(err)
}

func (r *organizationsRepo) findOne(ctx context.Context, filter bson.M) (domain.Organization, error) {
	var d organizationDoc
	err := r.coll(colOrganizations).
		FindOne(r.ctx(ctx), filter, options.FindOne().SetProjection(withoutLogs)).
		Decode(&d)
	if err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	return d.domain()
}

func (r *organizationsRepo) GetOrganization(ctx context.Context, id string) (domain.Organization, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *organizationsRepo) GetOrganizationByName(ctx context.Context, name string) (domain.Organization, error) {
	return r.findOne(ctx, bson.M{"nameKey": domain.NormalizeName(name)})
}

func (r *organizationsRepo) ListOrganizationsForUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	key, err := fieldKey(userID)
	if err != nil {
		return nil, err
	}
	cur, err := r.coll(colOrganizations).Find(r.ctx(ctx),
		bson.M{
			"members." + key + ".joined":       true,
			"members." + key + ".subject.type": string(domain.MemberUser),
		},
		options.Find().SetProjection(withoutLogs).SetSort(bson.D{{Key: "nameKey", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(r.ctx(ctx))

	var orgs []domain.Organization
	for cur.Next(r.ctx(ctx)) {
		var d organizationDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		o, err := d.domain()
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, cur.Err()
}

func (r *organizationsRepo) UpdateOrganization(ctx context.Context, o domain.Organization) error {
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = time.Now()
	}
	return requireMatched(r.coll(colOrganizations).UpdateOne(r.ctx(ctx),
		bson.M{"_id": o.ID},
		bson.M{"$set": bson.M{
			"name":        o.Name,
			"nameKey":     domain.NormalizeName(o.Name),
			"description": o.Description,
			"avatar":      o.AvatarURL,
			"updatedAt":   o.UpdatedAt,
		}},
	))
}

func (r *organizationsRepo) DeleteOrganization(ctx context.Context, id string) error {
	return requireDeleted(r.coll(colOrganizations).DeleteOne(r.ctx(ctx), bson.M{"_id": id}))
}

// setEntry writes one map entry of the organization document.
func (r *organizationsRepo) setEntry(ctx context.Context, orgID, field, key string, v any) error {
	k, err := fieldKey(key)
	if err != nil {
		return err
	}
	return requireMatched(r.coll(colOrganizations).UpdateOne(r.ctx(ctx),
		bson.M{"_id": orgID},
		bson.M{"$set": bson.M{field + "." + k: v}},
	))
}

// replaceEntry overwrites one map entry, reporting ErrNotFound when it is
// absent.
func (r *organizationsRepo) replaceEntry(ctx context.Context, orgID, field, key string, v any) error {
	k, err := fieldKey(key)
	if err != nil {
		return err
	}
	path := field + "." + k
	return requireMatched(r.coll(colOrganizations).UpdateOne(r.ctx(ctx),
		bson.M{"_id": orgID, path: bson.M{"$exists": true}},
		bson.M{"$set": bson.M{path: v}},
	))
}

// unsetEntry removes one map entry, reporting ErrNotFound when it is absent.
func (r *organizationsRepo) unsetEntry(ctx context.Context, orgID, field, key string) error {
	k, err := fieldKey(key)
	if err != nil {
		return err
	}
	path := field + "." + k
	return requireMatched(r.coll(colOrganizations).UpdateOne(r.ctx(ctx),
		bson.M{"_id": orgID, path: bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{path: ""}},
	))
}

/* --- members --- */

func (r *organizationsRepo) PutMember(ctx context.Context, orgID string, m domain.Member) error {
	if m.Subject == nil {
		return domain.ErrInvalidSubject
	}
	return r.setEntry(ctx, orgID, "members", m.Key, toMemberDoc(m))
}

func (r *organizationsRepo) UpdateMember(ctx context.Context, orgID string, m domain.Member) error {
	if m.Subject == nil {
		return domain.ErrInvalidSubject
	}
	return r.replaceEntry(ctx, orgID, "members", m.Key, toMemberDoc(m))
}

func (r *organizationsRepo) DeleteMember(ctx context.Context, orgID, key string) error {
	return r.unsetEntry(ctx, orgID, "members", key)
}

/* --- access groups --- */

func (r *organizationsRepo) PutAccessGroup(ctx context.Context, orgID string, g domain.AccessGroup) error {
	// Names are unique per organization; map entries cannot carry an index.
	o, err := r.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}
	if other, ok := o.AccessGroupByName(g.Name); ok && other.ID != g.ID {
		return store.ErrAlreadyExists
	}
	return r.setEntry(ctx, orgID, "accessGroups", g.ID, toAccessGroupDoc(g))
}

func (r *organizationsRepo) DeleteAccessGroup(ctx context.Context, orgID, groupID string) error {
	return r.unsetEntry(ctx, orgID, "accessGroups", groupID)
}

func (r *organizationsRepo) RemoveAccessGroupFromMembers(ctx context.Context, orgID, groupID string) error {
	o, err := r.GetOrganization(ctx, orgID)
	if err != nil {
		return err
	}

	pull := bson.M{}
	for key, m := range o.Members {
		if slices.Contains(m.AccessGroups, groupID) {
			pull["members."+key+".accessGroups"] = groupID
		}
	}
	if len(pull) == 0 {
		return nil
	}
	_, err = r.coll(colOrganizations).UpdateOne(r.ctx(ctx), bson.M{"_id": orgID}, bson.M{"$pull": pull})
	return err
}

/* --- api keys --- */

func (r *organizationsRepo) PutAPIKey(ctx context.Context, orgID string, k domain.APIKey) error {
	key, err := fieldKey(k.ID)
	if err != nil {
		return err
	}
	path := "apiKeys." + key
	res, err := r.coll(colOrganizations).UpdateOne(r.ctx(ctx),
		bson.M{"_id": orgID, path: bson.M{"$exists": false}},
		bson.M{"$set": bson.M{path: apiKeyDoc(k)}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if _, err := r.GetOrganization(ctx, orgID); err != nil {
		return err
	}
	return store.ErrAlreadyExists
}

func (r *organizationsRepo) DeleteAPIKey(ctx context.Context, orgID, keyID string) error {
	return r.unsetEntry(ctx, orgID, "apiKeys", keyID)
}

func (r *organizationsRepo) GetOrganizationByAPIKey(
	ctx context.Context,
	keyID string,
) (domain.Organization, domain.APIKey, error) {
	key, err := fieldKey(keyID)
	if err != nil {
		return domain.Organization{}, domain.APIKey{}, store.ErrNotFound
	}
	o, err := r.findOne(ctx, bson.M{"apiKeys." + key: bson.M{"$exists": true}})
	if err != nil {
		return domain.Organization{}, domain.APIKey{}, err
	}
	return o, o.APIKeys[keyID], nil
}

/* --- logs --- */

func (r *organizationsRepo) AppendLog(ctx context.Context, e domain.LogEntry) error {
	return requireMatched(r.coll(colOrganizations).UpdateOne(r.ctx(ctx),
		bson.M{"_id": e.OrganizationID},
		bson.M{"$push": bson.M{"logs": logDoc{
			ID:          e.ID,
			Type:        string(e.Type),
			PerformerID: e.PerformerID,
			Data:        e.Data,
			CreatedAt:   e.CreatedAt,
		}}},
	))
}

func (r *organizationsRepo) ListLogs(ctx context.Context, orgID string, limit int) ([]domain.LogEntry, error) {
	projection := bson.M{"logs": 1}
	if limit > 0 {
		projection = bson.M{"logs": bson.M{"$slice": -limit}}
	}

	var d struct {
		Logs []logDoc `bson:"logs"`
	}
	err := r.coll(colOrganizations).
		FindOne(r.ctx(ctx), bson.M{"_id": orgID}, options.FindOne().SetProjection(projection)).
		Decode(&d)
	if err != nil {
		return nil, mapNotFound(err)
	}

	out := make([]domain.LogEntry, 0, len(d.Logs))
	for i := len(d.Logs) - 1; i >= 0; i-- {
		l := d.Logs[i]
		out = append(out, domain.LogEntry{
			ID:             l.ID,
			OrganizationID: orgID,
			Type:           domain.LogType(l.Type),
			PerformerID:    l.PerformerID,
			Data:           l.Data,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out, nil
}
