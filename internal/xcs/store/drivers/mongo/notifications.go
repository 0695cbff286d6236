package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type notificationsRepo struct{ repo }

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.coll(colNotifications).InsertOne(r.ctx(ctx), toNotificationDoc(n))
	return mapDuplicate(err)
}

func (r *notificationsRepo) GetNotification(ctx context.Context, id string) (domain.Notification, error) {
	var d notificationDoc
	if err := r.coll(colNotifications).FindOne(r.ctx(ctx), bson.M{"_id": id}).Decode(&d); err != nil {
		return domain.Notification{}, mapNotFound(err)
	}
	return d.domain(), nil
}

func (r *notificationsRepo) ListNotifications(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	cur, err := r.coll(colNotifications).Find(r.ctx(ctx),
		bson.M{"recipient": recipientID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.ctx(ctx), cur, notificationDoc.domain)
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id string) error {
	return requireMatched(r.coll(colNotifications).UpdateOne(r.ctx(ctx),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"read": true, "updatedAt": time.Now()}},
	))
}

func (r *notificationsRepo) DeleteNotification(ctx context.Context, id string) error {
	return requireDeleted(r.coll(colNotifications).DeleteOne(r.ctx(ctx), bson.M{"_id": id}))
}

func (r *notificationsRepo) DeleteNotificationsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.coll(colNotifications).DeleteMany(r.ctx(ctx), bson.M{"organizationId": orgID})
	return err
}

func (r *notificationsRepo) DeleteNotificationsForMember(ctx context.Context, orgID, memberKey string) error {
	_, err := r.coll(colNotifications).DeleteMany(r.ctx(ctx),
		bson.M{"organizationId": orgID, "memberKey": memberKey})
	return err
}
