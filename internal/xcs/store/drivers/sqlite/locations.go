package sqlite

import (
	"context"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
)

type locationsRepo struct {
	db dbtx
}

const locationColumns = `id, organization_id, name, description, enabled, tags,
	roblox_place_id, roblox_universe_id, created_at, updated_at`

func scanLocation(row scanner) (domain.Location, error) {
	var (
		l                    domain.Location
		tags                 string
		createdAt, updatedAt int64
	)
	err := row.Scan(&l.ID, &l.OrganizationID, &l.Name, &l.Description, &l.Enabled, &tags,
		&l.Roblox.PlaceID, &l.Roblox.UniverseID, &createdAt, &updatedAt)
	if err != nil {
		return domain.Location{}, mapNotFound(err)
	}
	if l.Tags, err = decodeStrings(tags); err != nil {
		return domain.Location{}, err
	}
	l.CreatedAt = fromMillis(createdAt)
	l.UpdatedAt = fromMillis(updatedAt)
	return l, nil
}

func (r *locationsRepo) CreateLocation(ctx context.Context, l domain.Location) error {
	tags, err := encodeJSON(l.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO locations (id, organization_id, name, description, enabled, tags,
			roblox_place_id, roblox_universe_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.OrganizationID, l.Name, l.Description, boolInt(l.Enabled), tags,
		l.Roblox.PlaceID, l.Roblox.UniverseID, toMillis(l.CreatedAt), toMillis(l.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *locationsRepo) GetLocation(ctx context.Context, id string) (domain.Location, error) {
	return scanLocation(r.db.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = ?`, id))
}

func (r *locationsRepo) ListLocations(ctx context.Context, orgID string) ([]domain.Location, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE organization_id = ? ORDER BY lower(name), id`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *locationsRepo) UpdateLocation(ctx context.Context, l domain.Location) error {
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = time.Now()
	}
	tags, err := encodeJSON(l.Tags)
	if err != nil {
		return err
	}
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE locations SET name = ?, description = ?, enabled = ?, tags = ?,
			roblox_place_id = ?, roblox_universe_id = ?, updated_at = ?
		WHERE id = ?`,
		l.Name, l.Description, boolInt(l.Enabled), tags,
		l.Roblox.PlaceID, l.Roblox.UniverseID, toMillis(l.UpdatedAt), l.ID,
	))
}

func (r *locationsRepo) DeleteLocation(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = ?`, id))
}

func (r *locationsRepo) DeleteLocationsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE organization_id = ?`, orgID)
	return err
}
