package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

type invitationsRepo struct {
	db dbtx
}

const invitationColumns = `id, kind, code_hash, organization_id, role, access_groups,
	max_uses, uses, creator_id, sponsor_id, expires_at, created_at`

func scanInvitation(row scanner) (domain.Invitation, error) {
	var (
		inv       domain.Invitation
		kind      string
		orgID     sql.NullString
		role      int
		groups    string
		expiresAt sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&inv.ID, &kind, &inv.CodeHash, &orgID, &role, &groups,
		&inv.MaxUses, &inv.Uses, &inv.CreatorID, &inv.SponsorID, &expiresAt, &createdAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	if inv.AccessGroups, err = decodeStrings(groups); err != nil {
		return domain.Invitation{}, err
	}
	inv.Kind = domain.InvitationKind(kind)
	inv.OrganizationID = mapNullString(orgID)
	inv.Role = domain.Role(role)
	inv.ExpiresAt = mapNullTimePtr(expiresAt)
	inv.CreatedAt = fromMillis(createdAt)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	groups, err := encodeJSON(inv.AccessGroups)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO invitations (id, kind, code_hash, organization_id, role, access_groups,
			max_uses, uses, creator_id, sponsor_id, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, string(inv.Kind), inv.CodeHash, mapStringNull(inv.OrganizationID), int(inv.Role), groups,
		inv.MaxUses, inv.Uses, inv.CreatorID, inv.SponsorID, mapOptionalTime(inv.ExpiresAt), toMillis(inv.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitation(ctx context.Context, id string) (domain.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id))
}

func (r *invitationsRepo) GetInvitationByCodeHash(ctx context.Context, hash string) (domain.Invitation, error) {
	return scanInvitation(r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE code_hash = ?`, hash))
}

func (r *invitationsRepo) IncrementInvitationUses(ctx context.Context, id string) (domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx, `
		UPDATE invitations SET uses = uses + 1
		WHERE id = ? AND uses < max_uses
		RETURNING `+invitationColumns, id))
	if errors.Is(err, store.ErrNotFound) {
		// Either the row is gone or the guard failed; tell them apart.
		if _, getErr := r.GetInvitation(ctx, id); getErr != nil {
			return domain.Invitation{}, getErr
		}
		return domain.Invitation{}, store.ErrConditionFailed
	}
	return inv, err
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, orgID string) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE organization_id = ? ORDER BY id DESC`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = ?`, id))
}

func (r *invitationsRepo) DeleteInvitationsByOrganization(ctx context.Context, orgID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE organization_id = ?`, orgID)
	return err
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE expires_at IS NOT NULL AND expires_at <= ?`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
