package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// MaxInviteUses caps how many times a single code can be redeemed.
const MaxInviteUses = 1000

// InviteService manages shareable invitation codes. Organization codes add
// the redeemer as an active member; platform codes gate registration.
type InviteService struct {
	Store  store.Store
	Policy policy.Policy
}

// InviteCodeRequest describes a new organization code. A zero ExpiresIn
// never expires.
type InviteCodeRequest struct {
	Role         domain.Role
	MaxUses      int
	ExpiresIn    time.Duration
	AccessGroups []string
}

// InvitePreview is what an unauthenticated visitor learns from a code.
type InvitePreview struct {
	OrganizationID   string
	OrganizationName string
	AvatarURL        string
	Role             domain.Role
	ExpiresAt        *time.Time
}

// CreateInviteCode mints an organization code. The plaintext is returned
// once; only its fingerprint is stored.
func (s *InviteService) CreateInviteCode(
	ctx context.Context,
	orgID, actorID string,
	req InviteCodeRequest,
) (string, domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Actor must be able to invite at the requested role
	o, actor, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.CreateInvitation)
	if err != nil {
		return "", domain.Invitation{}, err
	}
	if !req.Role.Valid() {
		return "", domain.Invitation{}, newError(ErrValidation, "invalid role")
	}
	if err := authorize(s.Policy, actor, req.Role, policy.GrantRole); err != nil {
		return "", domain.Invitation{}, err
	}

	// 2. Validate limits and groups
	if req.MaxUses == 0 {
		req.MaxUses = 1
	}
	if req.MaxUses < 1 || req.MaxUses > MaxInviteUses {
		return "", domain.Invitation{}, errorf(ErrValidation, "max uses must be between 1 and %d", MaxInviteUses)
	}
	if req.ExpiresIn < 0 {
		return "", domain.Invitation{}, newError(ErrValidation, "expiry must be in the future")
	}
	if err := validateGroups(o, req.AccessGroups); err != nil {
		return "", domain.Invitation{}, err
	}

	// 3. Generate the code
	code, err := cryptox.GenerateCode(cryptox.DefaultCodeLength)
	if err != nil {
		log.Error("failed to generate invite code", slog.Any("error", err))
		return "", domain.Invitation{}, err
	}

	now := time.Now()
	inv := domain.Invitation{
		ID:             idx.New().String(),
		Kind:           domain.InvitationOrganization,
		CodeHash:       cryptox.FingerprintToken(code),
		OrganizationID: orgID,
		Role:           req.Role,
		AccessGroups:   req.AccessGroups,
		MaxUses:        req.MaxUses,
		CreatorID:      actorID,
		CreatedAt:      now,
	}
	if req.ExpiresIn > 0 {
		exp := now.Add(req.ExpiresIn)
		inv.ExpiresAt = &exp
	}

	// 4. Store it
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			return err
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogInviteCodeCreated, map[string]any{
			"invitation": inv.ID,
			"role":       int(inv.Role),
			"maxUses":    inv.MaxUses,
		})
	})
	if err != nil {
		log.Error("failed to store invite code", slog.Any("error", err))
		return "", domain.Invitation{}, err
	}

	log.Info("invite code created",
		slog.String("organization_id", orgID),
		slog.String("invitation_id", inv.ID),
		slog.Int("max_uses", inv.MaxUses),
	)
	return code, inv, nil
}

// ListInviteCodes returns the organization's outstanding codes.
func (s *InviteService) ListInviteCodes(ctx context.Context, orgID, actorID string) ([]domain.Invitation, error) {
	if _, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.CreateInvitation); err != nil {
		return nil, err
	}
	return s.Store.Invitations().ListInvitations(ctx, orgID)
}

func (s *InviteService) RevokeInviteCode(ctx context.Context, orgID, actorID, invitationID string) error {
	if _, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.CreateInvitation); err != nil {
		return err
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err := tx.Invitations().GetInvitation(ctx, invitationID)
		if err != nil {
			return notFound(err, ErrInvitationNotFound)
		}
		if inv.OrganizationID != orgID {
			return ErrInvitationNotFound
		}
		if err := tx.Invitations().DeleteInvitation(ctx, inv.ID); err != nil {
			return notFound(err, ErrInvitationNotFound)
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogInviteCodeRevoked, map[string]any{"invitation": inv.ID})
	})
}

// lookupCode resolves a presented code of the given kind. Expired codes
// are reported as missing.
func lookupCode(ctx context.Context, st store.Store, code string, kind domain.InvitationKind) (domain.Invitation, error) {
	code = cryptox.NormalizeCode(code)
	if code == "" {
		return domain.Invitation{}, ErrInvitationNotFound
	}
	inv, err := st.Invitations().GetInvitationByCodeHash(ctx, cryptox.FingerprintToken(code))
	if err != nil {
		return domain.Invitation{}, notFound(err, ErrInvitationNotFound)
	}
	if inv.Kind != kind || inv.Expired(time.Now()) {
		return domain.Invitation{}, ErrInvitationNotFound
	}
	return inv, nil
}

// consumeCode takes one use of inv inside tx and deletes the code once it
// is spent.
func consumeCode(ctx context.Context, tx store.Store, inv domain.Invitation) (domain.Invitation, error) {
	updated, err := tx.Invitations().IncrementInvitationUses(ctx, inv.ID)
	switch {
	case errors.Is(err, store.ErrConditionFailed):
		return domain.Invitation{}, ErrInvitationExhausted
	case err != nil:
		return domain.Invitation{}, notFound(err, ErrInvitationNotFound)
	}
	if updated.Exhausted() {
		if err := tx.Invitations().DeleteInvitation(ctx, updated.ID); err != nil {
			return domain.Invitation{}, err
		}
	}
	return updated, nil
}

// PreviewInviteCode describes the organization behind a code without
// redeeming it.
func (s *InviteService) PreviewInviteCode(ctx context.Context, code string) (InvitePreview, error) {
	inv, err := lookupCode(ctx, s.Store, code, domain.InvitationOrganization)
	if err != nil {
		return InvitePreview{}, err
	}
	o, err := loadOrganization(ctx, s.Store, inv.OrganizationID)
	if err != nil {
		return InvitePreview{}, err
	}
	return InvitePreview{
		OrganizationID:   o.ID,
		OrganizationName: o.Name,
		AvatarURL:        o.AvatarURL,
		Role:             inv.Role,
		ExpiresAt:        inv.ExpiresAt,
	}, nil
}

// RedeemInviteCode adds userID to the code's organization as an active
// member. A pending invitation for the same user is superseded.
func (s *InviteService) RedeemInviteCode(ctx context.Context, code, userID string) (domain.Organization, error) {
	log := slogx.FromContext(ctx)

	// 1. Resolve the code
	inv, err := lookupCode(ctx, s.Store, code, domain.InvitationOrganization)
	if err != nil {
		log.Warn("invite code redemption with unknown code", slog.String("user_id", userID))
		return domain.Organization{}, err
	}

	// 2. Consume a use and insert the member atomically
	var org domain.Organization
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		o, err := loadOrganization(ctx, tx, inv.OrganizationID)
		if err != nil {
			return err
		}
		existing, exists := o.Members[userID]
		if exists && existing.Joined {
			return ErrAlreadyMember
		}

		if _, err := consumeCode(ctx, tx, inv); err != nil {
			return err
		}

		// Groups deleted since the code was minted are dropped.
		groups := slices.DeleteFunc(slices.Clone(inv.AccessGroups), func(id string) bool {
			_, ok := o.AccessGroups[id]
			return !ok
		})

		now := time.Now()
		m := domain.Member{
			Key:          userID,
			Subject:      domain.UserSubject{UserID: userID},
			Role:         inv.Role,
			AccessGroups: groups,
			Joined:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if exists {
			m.CreatedAt = existing.CreatedAt
		}
		if err := tx.Organizations().PutMember(ctx, o.ID, m); err != nil {
			return err
		}
		if err := tx.Notifications().DeleteNotificationsForMember(ctx, o.ID, userID); err != nil {
			return err
		}

		o.Members[m.Key] = m
		org = o
		return appendLog(ctx, tx, o.ID, userID, domain.LogMemberJoined, map[string]any{
			"member":     userID,
			"invitation": inv.ID,
		})
	})
	if err != nil {
		return domain.Organization{}, err
	}

	log.Info("invite code redeemed",
		slog.String("organization_id", org.ID),
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", userID),
	)
	return org, nil
}

// CreatePlatformInvite mints a registration code sponsored by userID.
// Regular users spend one invite credit per code and may only mint
// single-use codes; staff are unlimited.
func (s *InviteService) CreatePlatformInvite(ctx context.Context, userID string, maxUses int) (string, domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	sponsor, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return "", domain.Invitation{}, notFound(err, ErrUserNotFound)
	}
	if maxUses == 0 {
		maxUses = 1
	}
	if maxUses < 1 || maxUses > MaxInviteUses || (!sponsor.Platform.Staff && maxUses != 1) {
		return "", domain.Invitation{}, newError(ErrValidation, "invalid max uses")
	}

	code, err := cryptox.GenerateCode(cryptox.DefaultCodeLength)
	if err != nil {
		log.Error("failed to generate platform code", slog.Any("error", err))
		return "", domain.Invitation{}, err
	}
	inv := domain.Invitation{
		ID:        idx.New().String(),
		Kind:      domain.InvitationPlatform,
		CodeHash:  cryptox.FingerprintToken(code),
		MaxUses:   maxUses,
		CreatorID: userID,
		SponsorID: userID,
		CreatedAt: time.Now(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if !sponsor.Platform.Staff {
			if err := tx.Users().DecrementInvites(ctx, userID); err != nil {
				if errors.Is(err, store.ErrConditionFailed) {
					return ErrNoInviteCredits
				}
				return err
			}
		}
		return tx.Invitations().CreateInvitation(ctx, inv)
	})
	if err != nil {
		if !errors.Is(err, ErrNoInviteCredits) {
			log.Error("failed to create platform invite", slog.Any("error", err))
		}
		return "", domain.Invitation{}, err
	}

	log.Info("platform invite created",
		slog.String("invitation_id", inv.ID),
		slog.String("sponsor_id", userID),
	)
	return code, inv, nil
}
