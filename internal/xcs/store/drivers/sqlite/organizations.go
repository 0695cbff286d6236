package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

type organizationsRepo struct {
	db dbtx
}

const organizationColumns = `id, name, description, avatar_url, owner_id, created_at, updated_at`

func scanOrganization(row scanner) (domain.Organization, error) {
	var (
		o                    domain.Organization
		createdAt, updatedAt int64
	)
	if err := row.Scan(&o.ID, &o.Name, &o.Description, &o.AvatarURL, &o.OwnerID, &createdAt, &updatedAt); err != nil {
		return domain.Organization{}, mapNotFound(err)
	}
	o.CreatedAt = fromMillis(createdAt)
	o.UpdatedAt = fromMillis(updatedAt)
	return o, nil
}

func (r *organizationsRepo) CreateOrganization(ctx context.Context, o domain.Organization) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO organizations (id, name, name_key, description, avatar_url, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, domain.NormalizeName(o.Name), o.Description, o.AvatarURL, o.OwnerID,
		toMillis(o.CreatedAt), toMillis(o.UpdatedAt),
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, m := range o.Members {
		if err := r.PutMember(ctx, o.ID, m); err != nil {
			return err
		}
	}
	for _, g := range o.AccessGroups {
		if err := r.PutAccessGroup(ctx, o.ID, g); err != nil {
			return err
		}
	}
	for _, k := range o.APIKeys {
		if err := r.PutAPIKey(ctx, o.ID, k); err != nil {
			return err
		}
	}
	return nil
}

func (r *organizationsRepo) GetOrganization(ctx context.Context, id string) (domain.Organization, error) {
	o, err := scanOrganization(r.db.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE id = ?`, id))
	if err != nil {
		return domain.Organization{}, err
	}
	return r.load(ctx, o)
}

func (r *organizationsRepo) GetOrganizationByName(ctx context.Context, name string) (domain.Organization, error) {
	o, err := scanOrganization(r.db.QueryRowContext(ctx,
		`SELECT `+organizationColumns+` FROM organizations WHERE name_key = ?`, domain.NormalizeName(name)))
	if err != nil {
		return domain.Organization{}, err
	}
	return r.load(ctx, o)
}

func (r *organizationsRepo) ListOrganizationsForUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.name, o.description, o.avatar_url, o.owner_id, o.created_at, o.updated_at
		FROM organizations o
		JOIN organization_members m ON m.organization_id = o.id
		WHERE m.member_key = ? AND m.kind = ? AND m.joined = 1
		ORDER BY o.name_key`, userID, string(domain.MemberUser))
	if err != nil {
		return nil, err
	}

	var orgs []domain.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		orgs = append(orgs, o)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Aggregates are loaded after the cursor is closed; a transaction only
	// carries one connection.
	for i := range orgs {
		if orgs[i], err = r.load(ctx, orgs[i]); err != nil {
			return nil, err
		}
	}
	return orgs, nil
}

func (r *organizationsRepo) UpdateOrganization(ctx context.Context, o domain.Organization) error {
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE organizations SET name = ?, name_key = ?, description = ?, avatar_url = ?, updated_at = ?
		WHERE id = ?`,
		o.Name, domain.NormalizeName(o.Name), o.Description, o.AvatarURL, toMillis(o.UpdatedAt), o.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res, nil)
}

func (r *organizationsRepo) DeleteOrganization(ctx context.Context, id string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = ?`, id))
}

// load fills the member, access group and API key maps of o.
func (r *organizationsRepo) load(ctx context.Context, o domain.Organization) (domain.Organization, error) {
	var err error
	if o.Members, err = r.members(ctx, o.ID); err != nil {
		return domain.Organization{}, err
	}
	if o.AccessGroups, err = r.accessGroups(ctx, o.ID); err != nil {
		return domain.Organization{}, err
	}
	if o.APIKeys, err = r.apiKeys(ctx, o.ID); err != nil {
		return domain.Organization{}, err
	}
	return o, nil
}

/* --- members --- */

func (r *organizationsRepo) PutMember(ctx context.Context, orgID string, m domain.Member) error {
	if m.Subject == nil {
		return domain.ErrInvalidSubject
	}
	subject, err := json.Marshal(domain.EncodeSubject(m.Subject))
	if err != nil {
		return err
	}
	groups, err := encodeJSON(m.AccessGroups)
	if err != nil {
		return err
	}
	scanData, err := encodeJSON(m.ScanData)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO organization_members (organization_id, member_key, kind, subject, role,
			access_groups, scan_data, joined, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (organization_id, member_key) DO UPDATE SET
			kind = excluded.kind,
			subject = excluded.subject,
			role = excluded.role,
			access_groups = excluded.access_groups,
			scan_data = excluded.scan_data,
			joined = excluded.joined,
			updated_at = excluded.updated_at`,
		orgID, m.Key, string(m.Kind()), string(subject), int(m.Role),
		groups, scanData, boolInt(m.Joined), toMillis(m.CreatedAt), toMillis(m.UpdatedAt),
	)
	return err
}

func (r *organizationsRepo) UpdateMember(ctx context.Context, orgID string, m domain.Member) error {
	if m.Subject == nil {
		return domain.ErrInvalidSubject
	}
	subject, err := json.Marshal(domain.EncodeSubject(m.Subject))
	if err != nil {
		return err
	}
	groups, err := encodeJSON(m.AccessGroups)
	if err != nil {
		return err
	}
	scanData, err := encodeJSON(m.ScanData)
	if err != nil {
		return err
	}

	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE organization_members
		SET kind = ?, subject = ?, role = ?, access_groups = ?, scan_data = ?, joined = ?, updated_at = ?
		WHERE organization_id = ? AND member_key = ?`,
		string(m.Kind()), string(subject), int(m.Role), groups, scanData,
		boolInt(m.Joined), toMillis(m.UpdatedAt), orgID, m.Key,
	))
}

func (r *organizationsRepo) DeleteMember(ctx context.Context, orgID, key string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM organization_members WHERE organization_id = ? AND member_key = ?`, orgID, key))
}

func (r *organizationsRepo) members(ctx context.Context, orgID string) (map[string]domain.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT member_key, subject, role, access_groups, scan_data, joined, created_at, updated_at
		FROM organization_members WHERE organization_id = ?`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.Member)
	for rows.Next() {
		var (
			m                     domain.Member
			subject, groups, data string
			role                  int
			createdAt, updatedAt  int64
		)
		if err := rows.Scan(&m.Key, &subject, &role, &groups, &data, &m.Joined, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		var rec domain.SubjectRecord
		if err := json.Unmarshal([]byte(subject), &rec); err != nil {
			return nil, fmt.Errorf("sqlite: member %s subject: %w", m.Key, err)
		}
		if m.Subject, err = domain.DecodeSubject(rec); err != nil {
			return nil, fmt.Errorf("sqlite: member %s: %w", m.Key, err)
		}
		if m.AccessGroups, err = decodeStrings(groups); err != nil {
			return nil, err
		}
		if m.ScanData, err = decodeObject(data); err != nil {
			return nil, err
		}
		m.Role = domain.Role(role)
		m.CreatedAt = fromMillis(createdAt)
		m.UpdatedAt = fromMillis(updatedAt)
		out[m.Key] = m
	}
	return out, rows.Err()
}

/* --- access groups --- */

func (r *organizationsRepo) PutAccessGroup(ctx context.Context, orgID string, g domain.AccessGroup) error {
	scanData, err := encodeJSON(g.ScanData)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO access_groups (id, organization_id, name, name_key, description, type, location_id,
			scan_data, active, open_to_everyone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			name_key = excluded.name_key,
			description = excluded.description,
			type = excluded.type,
			location_id = excluded.location_id,
			scan_data = excluded.scan_data,
			active = excluded.active,
			open_to_everyone = excluded.open_to_everyone`,
		g.ID, orgID, g.Name, domain.NormalizeName(g.Name), g.Description, string(g.Type), g.LocationID,
		scanData, boolInt(g.Config.Active), boolInt(g.Config.OpenToEveryone),
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) DeleteAccessGroup(ctx context.Context, orgID, groupID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM access_groups WHERE organization_id = ? AND id = ?`, orgID, groupID))
}

func (r *organizationsRepo) RemoveAccessGroupFromMembers(ctx context.Context, orgID, groupID string) error {
	members, err := r.members(ctx, orgID)
	if err != nil {
		return err
	}

	for key, m := range members {
		if !slices.Contains(m.AccessGroups, groupID) {
			continue
		}
		groups, err := encodeJSON(slices.DeleteFunc(m.AccessGroups, func(g string) bool { return g == groupID }))
		if err != nil {
			return err
		}
		if _, err := r.db.ExecContext(ctx, `
			UPDATE organization_members SET access_groups = ?, updated_at = ?
			WHERE organization_id = ? AND member_key = ?`,
			groups, toMillis(time.Now()), orgID, key,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *organizationsRepo) accessGroups(ctx context.Context, orgID string) (map[string]domain.AccessGroup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, type, location_id, scan_data, active, open_to_everyone
		FROM access_groups WHERE organization_id = ?`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.AccessGroup)
	for rows.Next() {
		var (
			g        domain.AccessGroup
			typ      string
			scanData string
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &typ, &g.LocationID, &scanData,
			&g.Config.Active, &g.Config.OpenToEveryone); err != nil {
			return nil, err
		}
		g.Type = domain.AccessGroupType(typ)
		if g.ScanData, err = decodeObject(scanData); err != nil {
			return nil, err
		}
		out[g.ID] = g
	}
	return out, rows.Err()
}

/* --- api keys --- */

func (r *organizationsRepo) PutAPIKey(ctx context.Context, orgID string, k domain.APIKey) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO api_keys (id, organization_id, name, fingerprint, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		k.ID, orgID, k.Name, k.Fingerprint, k.CreatedBy, toMillis(k.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *organizationsRepo) DeleteAPIKey(ctx context.Context, orgID, keyID string) error {
	return requireAffected(r.db.ExecContext(ctx,
		`DELETE FROM api_keys WHERE organization_id = ? AND id = ?`, orgID, keyID))
}

func (r *organizationsRepo) GetOrganizationByAPIKey(
	ctx context.Context,
	keyID string,
) (domain.Organization, domain.APIKey, error) {
	var orgID string
	if err := r.db.QueryRowContext(ctx,
		`SELECT organization_id FROM api_keys WHERE id = ?`, keyID).Scan(&orgID); err != nil {
		return domain.Organization{}, domain.APIKey{}, mapNotFound(err)
	}

	o, err := r.GetOrganization(ctx, orgID)
	if err != nil {
		return domain.Organization{}, domain.APIKey{}, err
	}
	k, ok := o.APIKeys[keyID]
	if !ok {
		return domain.Organization{}, domain.APIKey{}, store.ErrNotFound
	}
	return o, k, nil
}

func (r *organizationsRepo) apiKeys(ctx context.Context, orgID string) (map[string]domain.APIKey, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, fingerprint, created_by, created_at
		FROM api_keys WHERE organization_id = ?`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.APIKey)
	for rows.Next() {
		var (
			k         domain.APIKey
			createdAt int64
		)
		if err := rows.Scan(&k.ID, &k.Name, &k.Fingerprint, &k.CreatedBy, &createdAt); err != nil {
			return nil, err
		}
		k.CreatedAt = fromMillis(createdAt)
		out[k.ID] = k
	}
	return out, rows.Err()
}

/* --- logs --- */

func (r *organizationsRepo) AppendLog(ctx context.Context, e domain.LogEntry) error {
	data, err := encodeJSON(e.Data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO organization_logs (id, organization_id, type, performer_id, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.OrganizationID, string(e.Type), e.PerformerID, data, toMillis(e.CreatedAt),
	)
	return err
}

func (r *organizationsRepo) ListLogs(ctx context.Context, orgID string, limit int) ([]domain.LogEntry, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, organization_id, type, performer_id, data, created_at
		FROM organization_logs WHERE organization_id = ?
		ORDER BY id DESC LIMIT ?`, orgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LogEntry
	for rows.Next() {
		var (
			e         domain.LogEntry
			typ, data string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.OrganizationID, &typ, &e.PerformerID, &data, &createdAt); err != nil {
			return nil, err
		}
		e.Type = domain.LogType(typ)
		if e.Data, err = decodeObject(data); err != nil {
			return nil, err
		}
		e.CreatedAt = fromMillis(createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}
