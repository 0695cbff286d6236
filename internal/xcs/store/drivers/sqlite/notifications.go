package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type notificationsRepo struct {
	db dbtx
}

const notificationColumns = `id, recipient_id, sender_id, type, read, organization_id, member_key,
	created_at, updated_at`

func scanNotification(row scanner) (domain.Notification, error) {
	var (
		n                    domain.Notification
		typ                  string
		orgID                sql.NullString
		createdAt, updatedAt int64
	)
	err := row.Scan(&n.ID, &n.RecipientID, &n.SenderID, &typ, &n.Read, &orgID, &n.MemberKey,
		&createdAt, &updatedAt)
	if err != nil {
		return domain.Notification{}, mapNotFound(err)
	}
	n.Type = domain.NotificationType(typ)
	n.OrganizationID = mapNullString(orgID)
	n.CreatedAt = fromMillis(createdAt)
	n.UpdatedAt = fromMillis(updatedAt)
	return n, nil
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, recipient_id, sender_id, type, read, organization_id, member_key,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.RecipientID, n.SenderID, string(n.Type), boolInt(n.Read), mapStringNull(n.OrganizationID),
		n.MemberKey, toMillis(n.CreatedAt), toMillis(n.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) GetNotification(ctx context.Context, id string) (domain.Notification, error) {
	return scanNotification(r.db.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id))
}

func (r *notificationsRepo) ListNotifications(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE recipient_id = ? ORDER BY id DESC`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) MarkNotificationRead(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`UPDATE notifications SET read = 1, updated_at = ? WHERE id = ?`, toMillis(time.Now()), id))
}

func (r *notificationsRepo) DeleteNotification(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id))
}

func (r *notificationsRepo) DeleteNotificationsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE organization_id = ?`, orgID)
	return err
}

func (r *notificationsRepo) DeleteNotificationsForMember(ctx context.Context, orgID, memberKey string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE organization_id = ? AND member_key = ?`, orgID, memberKey)
	return err
}
