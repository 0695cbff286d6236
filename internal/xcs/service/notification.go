package service

import (
	"context"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

type NotificationService struct {
	Store store.Store
}

// ListNotifications returns the user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.Store.Notifications().ListNotifications(ctx, userID)
}

// MarkRead flags a notification as read. Only its recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	n, err := s.Store.Notifications().GetNotification(ctx, notificationID)
	if err != nil {
		return notFound(err, ErrNotificationNotFound)
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}
	if n.Read {
		return nil
	}
	return notFound(s.Store.Notifications().MarkNotificationRead(ctx, n.ID), ErrNotificationNotFound)
}
