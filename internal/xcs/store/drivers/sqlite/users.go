package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, display_name, avatar_url, email, email_verified, password_hash,
	roblox_id, roblox_username, roblox_verified, discord_id, discord_username, discord_verified,
	staff, membership_tier, invites, organizations_visible, link_scans_visible, created_at, updated_at`

func scanUser(row scanner) (domain.User, error) {
	var (
		u                         domain.User
		emailVerified, robloxVer  bool
		discordVer, staff         bool
		orgsVisible, scansVisible bool
		createdAt, updatedAt      int64
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.Email.Address, &emailVerified, &u.PasswordHash,
		&u.Roblox.ID, &u.Roblox.Username, &robloxVer, &u.Discord.ID, &u.Discord.Username, &discordVer,
		&staff, &u.Platform.MembershipTier, &u.Platform.Invites, &orgsVisible, &scansVisible, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Email.Verified = emailVerified
	u.Roblox.Verified = robloxVer
	u.Discord.Verified = discordVer
	u.Platform.Staff = staff
	u.Privacy = domain.Privacy{OrganizationsVisible: orgsVisible, LinkScansVisible: scansVisible}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, username_key, display_name, avatar_url, email, email_key,
			email_verified, password_hash, roblox_id, roblox_username, roblox_verified,
			discord_id, discord_username, discord_verified, staff, membership_tier, invites,
			organizations_visible, link_scans_visible, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, domain.NormalizeName(u.Username), u.DisplayName, u.AvatarURL,
		u.Email.Address, strings.ToLower(u.Email.Address), boolInt(u.Email.Verified), u.PasswordHash,
		u.Roblox.ID, u.Roblox.Username, boolInt(u.Roblox.Verified),
		u.Discord.ID, u.Discord.Username, boolInt(u.Discord.Verified),
		boolInt(u.Platform.Staff), u.Platform.MembershipTier, u.Platform.Invites,
		boolInt(u.Privacy.OrganizationsVisible), boolInt(u.Privacy.LinkScansVisible),
		toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username_key = ?`, domain.NormalizeName(username)))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_key = ?`, strings.ToLower(strings.TrimSpace(email))))
}

func (r *usersRepo) GetUserByLinkedAccount(
	ctx context.Context,
	provider domain.LinkProvider,
	externalID string,
) (domain.User, error) {
	var column string
	switch provider {
	case domain.LinkRoblox:
		column = "roblox_id"
	case domain.LinkDiscord:
		column = "discord_id"
	default:
		return domain.User{}, fmt.Errorf("sqlite: unknown link provider %q", provider)
	}
	if externalID == "" {
		return domain.User{}, store.ErrNotFound
	}
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, externalID))
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			username = ?, username_key = ?, display_name = ?, avatar_url = ?,
			email = ?, email_key = ?, email_verified = ?, password_hash = ?,
			roblox_id = ?, roblox_username = ?, roblox_verified = ?,
			discord_id = ?, discord_username = ?, discord_verified = ?,
			staff = ?, membership_tier = ?, invites = ?,
			organizations_visible = ?, link_scans_visible = ?, updated_at = ?
		WHERE id = ?`,
		u.Username, domain.NormalizeName(u.Username), u.DisplayName, u.AvatarURL,
		u.Email.Address, strings.ToLower(u.Email.Address), boolInt(u.Email.Verified), u.PasswordHash,
		u.Roblox.ID, u.Roblox.Username, boolInt(u.Roblox.Verified),
		u.Discord.ID, u.Discord.Username, boolInt(u.Discord.Verified),
		boolInt(u.Platform.Staff), u.Platform.MembershipTier, u.Platform.Invites,
		boolInt(u.Privacy.OrganizationsVisible), boolInt(u.Privacy.LinkScansVisible),
		toMillis(u.UpdatedAt), u.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res, nil)
}

func (r *usersRepo) DecrementInvites(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET invites = invites - 1, updated_at = ? WHERE id = ? AND invites > 0`,
		toMillis(time.Now()), userID)
	if err := requireAffected(res, err); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrConditionFailed
		}
		return err
	}
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
