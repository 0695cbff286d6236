package sqlite

import (
	"context"
	"slices"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type accessPointsRepo struct {
	db dbtx
}

const accessPointColumns = `id, organization_id, location_id, name, description, tags,
	active, armed, unlock_time, always_users, always_groups, always_cards,
	webhook_url, webhook_granted, webhook_denied, scan_data, created_at, updated_at`

func scanAccessPoint(row scanner) (domain.AccessPoint, error) {
	var (
		ap                         domain.AccessPoint
		tags, users, groups, cards string
		scanData                   string
		createdAt, updatedAt       int64
	)
	cfg := &ap.Config
	err := row.Scan(&ap.ID, &ap.OrganizationID, &ap.LocationID, &ap.Name, &ap.Description, &tags,
		&cfg.Active, &cfg.Armed, &cfg.UnlockTime, &users, &groups, &cards,
		&cfg.Webhook.URL, &cfg.Webhook.EventGranted, &cfg.Webhook.EventDenied, &scanData,
		&createdAt, &updatedAt)
	if err != nil {
		return domain.AccessPoint{}, mapNotFound(err)
	}

	if ap.Tags, err = decodeStrings(tags); err != nil {
		return domain.AccessPoint{}, err
	}
	if cfg.AlwaysAllowed.Users, err = decodeStrings(users); err != nil {
		return domain.AccessPoint{}, err
	}
	if cfg.AlwaysAllowed.Groups, err = decodeStrings(groups); err != nil {
		return domain.AccessPoint{}, err
	}
	if cfg.AlwaysAllowed.Cards, err = decodeStrings(cards); err != nil {
		return domain.AccessPoint{}, err
	}
	if cfg.ScanData, err = decodeObject(scanData); err != nil {
		return domain.AccessPoint{}, err
	}
	ap.CreatedAt = fromMillis(createdAt)
	ap.UpdatedAt = fromMillis(updatedAt)
	return ap, nil
}

// accessPointJSON holds the encoded JSON columns of an access point.
type accessPointJSON struct {
	tags, users, groups, cards, scanData string
}

func encodeAccessPoint(ap domain.AccessPoint) (accessPointJSON, error) {
	var (
		out accessPointJSON
		err error
	)
	if out.tags, err = encodeJSON(ap.Tags); err != nil {
		return out, err
	}
	if out.users, err = encodeJSON(ap.Config.AlwaysAllowed.Users); err != nil {
		return out, err
	}
	if out.groups, err = encodeJSON(ap.Config.AlwaysAllowed.Groups); err != nil {
		return out, err
	}
	if out.cards, err = encodeJSON(ap.Config.AlwaysAllowed.Cards); err != nil {
		return out, err
	}
	if out.scanData, err = encodeJSON(ap.Config.ScanData); err != nil {
		return out, err
	}
	return out, nil
}

func (r *accessPointsRepo) CreateAccessPoint(ctx context.Context, ap domain.AccessPoint) error {
	enc, err := encodeAccessPoint(ap)
	if err != nil {
		return err
	}
	cfg := ap.Config
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO access_points (id, organization_id, location_id, name, description, tags,
			active, armed, unlock_time, always_users, always_groups, always_cards,
			webhook_url, webhook_granted, webhook_denied, scan_data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ap.ID, ap.OrganizationID, ap.LocationID, ap.Name, ap.Description, enc.tags,
		boolInt(cfg.Active), boolInt(cfg.Armed), cfg.UnlockTime, enc.users, enc.groups, enc.cards,
		cfg.Webhook.URL, boolInt(cfg.Webhook.EventGranted), boolInt(cfg.Webhook.EventDenied), enc.scanData,
		toMillis(ap.CreatedAt), toMillis(ap.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *accessPointsRepo) GetAccessPoint(ctx context.Context, id string) (domain.AccessPoint, error) {
	return scanAccessPoint(r.db.QueryRowContext(ctx,
		`SELECT `+accessPointColumns+` FROM access_points WHERE id = ?`, id))
}

func (r *accessPointsRepo) ListAccessPointsByLocation(ctx context.Context, locationID string) ([]domain.AccessPoint, error) {
	return r.list(ctx, `WHERE location_id = ?`, locationID)
}

func (r *accessPointsRepo) ListAccessPointsByOrganization(ctx context.Context, orgID string) ([]domain.AccessPoint, error) {
	return r.list(ctx, `WHERE organization_id = ?`, orgID)
}

func (r *accessPointsRepo) list(ctx context.Context, where string, args ...any) ([]domain.AccessPoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accessPointColumns+` FROM access_points `+where+` ORDER BY lower(name), id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AccessPoint
	for rows.Next() {
		ap, err := scanAccessPoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ap)
	}
	return out, rows.Err()
}

func (r *accessPointsRepo) UpdateAccessPoint(ctx context.Context, ap domain.AccessPoint) error {
	if ap.UpdatedAt.IsZero() {
		ap.UpdatedAt = time.Now()
	}
	enc, err := encodeAccessPoint(ap)
	if err != nil {
		return err
	}
	cfg := ap.Config
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE access_points SET name = ?, description = ?, tags = ?,
			active = ?, armed = ?, unlock_time = ?, always_users = ?, always_groups = ?, always_cards = ?,
			webhook_url = ?, webhook_granted = ?, webhook_denied = ?, scan_data = ?, updated_at = ?
		WHERE id = ?`,
		ap.Name, ap.Description, enc.tags,
		boolInt(cfg.Active), boolInt(cfg.Armed), cfg.UnlockTime, enc.users, enc.groups, enc.cards,
		cfg.Webhook.URL, boolInt(cfg.Webhook.EventGranted), boolInt(cfg.Webhook.EventDenied), enc.scanData,
		toMillis(ap.UpdatedAt), ap.ID,
	))
}

func (r *accessPointsRepo) DeleteAccessPoint(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM access_points WHERE id = ?`, id))
}

func (r *accessPointsRepo) DeleteAccessPointsByLocation(ctx context.Context, locationID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM access_points WHERE location_id = ?`, locationID)
	return err
}

func (r *accessPointsRepo) DeleteAccessPointsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM access_points WHERE organization_id = ?`, orgID)
	return err
}

func (r *accessPointsRepo) PullAlwaysAllowedGroup(ctx context.Context, orgID, groupID string) error {
	return r.rewriteAlwaysAllowed(ctx, orgID, func(a domain.AlwaysAllowed) domain.AlwaysAllowed {
		return a.WithoutGroup(groupID)
	})
}

func (r *accessPointsRepo) PullAlwaysAllowedUsers(ctx context.Context, orgID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.rewriteAlwaysAllowed(ctx, orgID, func(a domain.AlwaysAllowed) domain.AlwaysAllowed {
		return a.WithoutUsers(ids...)
	})
}

// rewriteAlwaysAllowed applies fn to every access point of the organization
// and writes back the ones that changed. Callers run it inside a transaction
// when atomicity with other writes matters.
func (r *accessPointsRepo) rewriteAlwaysAllowed(
	ctx context.Context,
	orgID string,
	fn func(domain.AlwaysAllowed) domain.AlwaysAllowed,
) error {
	aps, err := r.ListAccessPointsByOrganization(ctx, orgID)
	if err != nil {
		return err
	}

	now := toMillis(time.Now())
	for _, ap := range aps {
		before := ap.Config.AlwaysAllowed
		after := fn(before)
		if slices.Equal(before.Users, after.Users) && slices.Equal(before.Groups, after.Groups) {
			continue
		}

		users, err := encodeJSON(after.Users)
		if err != nil {
			return err
		}
		groups, err := encodeJSON(after.Groups)
		if err != nil {
			return err
		}
		if _, err := r.db.ExecContext(ctx,
			`UPDATE access_points SET always_users = ?, always_groups = ?, updated_at = ? WHERE id = ?`,
			users, groups, now, ap.ID,
		); err != nil {
			return err
		}
	}
	return nil
}
