package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

type OrganizationService struct {
	Store  store.Store
	Policy policy.Policy
}

// OrganizationUpdate carries the optional fields of an edit.
type OrganizationUpdate struct {
	Name        *string
	Description *string
	AvatarURL   *string
}

// CreateOrganization creates an organization owned by userID.
func (s *OrganizationService) CreateOrganization(
	ctx context.Context,
	userID, name, description string,
) (domain.Organization, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input
	name = strings.TrimSpace(name)
	if err := validateLength("name", name, OrganizationNameMin, OrganizationNameMax); err != nil {
		return domain.Organization{}, err
	}
	if err := validateLength("description", description, 0, DescriptionMax); err != nil {
		return domain.Organization{}, err
	}

	// 2. The creator becomes the only owner
	now := time.Now()
	org := domain.Organization{
		ID:          idx.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		OwnerID:     userID,
		Members: map[string]domain.Member{
			userID: {
				Key:       userID,
				Subject:   domain.UserSubject{UserID: userID},
				Role:      domain.RoleOwner,
				Joined:    true,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		AccessGroups: map[string]domain.AccessGroup{},
		APIKeys:      map[string]domain.APIKey{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 3. Store it with its first log entry
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().CreateOrganization(ctx, org); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrOrganizationNameTaken
			}
			return err
		}
		return appendLog(ctx, tx, org.ID, userID, domain.LogOrganizationCreated, map[string]any{"name": name})
	})
	if err != nil {
		if !errors.Is(err, ErrOrganizationNameTaken) {
			log.Error("failed to create organization", slog.Any("error", err))
		}
		return domain.Organization{}, err
	}

	log.Info("organization created",
		slog.String("organization_id", org.ID),
		slog.String("owner_id", userID),
	)
	return org, nil
}

// GetOrganization returns the organization and the caller's membership.
func (s *OrganizationService) GetOrganization(
	ctx context.Context,
	userID, orgID string,
) (domain.Organization, domain.Member, error) {
	return actingMember(ctx, s.Store, orgID, userID)
}

// ListOrganizations returns every organization userID is an active member of.
func (s *OrganizationService) ListOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	return s.Store.Organizations().ListOrganizationsForUser(ctx, userID)
}

func (s *OrganizationService) UpdateOrganization(
	ctx context.Context,
	userID, orgID string,
	upd OrganizationUpdate,
) (domain.Organization, error) {
	o, _, err := guard(ctx, s.Store, s.Policy, orgID, userID, policy.EditOrganization)
	if err != nil {
		return domain.Organization{}, err
	}

	changes := map[string]any{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if err := validateLength("name", name, OrganizationNameMin, OrganizationNameMax); err != nil {
			return domain.Organization{}, err
		}
		o.Name = name
		changes["name"] = name
	}
	if upd.Description != nil {
		if err := validateLength("description", *upd.Description, 0, DescriptionMax); err != nil {
			return domain.Organization{}, err
		}
		o.Description = strings.TrimSpace(*upd.Description)
		changes["description"] = o.Description
	}
	if upd.AvatarURL != nil {
		o.AvatarURL = strings.TrimSpace(*upd.AvatarURL)
		changes["avatar"] = o.AvatarURL
	}
	o.UpdatedAt = time.Now()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().UpdateOrganization(ctx, o); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrOrganizationNameTaken
			}
			return notFound(err, ErrOrganizationNotFound)
		}
		return appendLog(ctx, tx, o.ID, userID, domain.LogOrganizationUpdated, changes)
	})
	if err != nil {
		return domain.Organization{}, err
	}
	return o, nil
}

// DeleteOrganization removes the organization and everything scoped to it.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, userID, orgID string) error {
	log := slogx.FromContext(ctx)

	if _, _, err := guard(ctx, s.Store, s.Policy, orgID, userID, policy.DeleteOrganization); err != nil {
		return err
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessPoints().DeleteAccessPointsByOrganization(ctx, orgID); err != nil {
			return err
		}
		if err := tx.Locations().DeleteLocationsByOrganization(ctx, orgID); err != nil {
			return err
		}
		if err := tx.Invitations().DeleteInvitationsByOrganization(ctx, orgID); err != nil {
			return err
		}
		if err := tx.Notifications().DeleteNotificationsByOrganization(ctx, orgID); err != nil {
			return err
		}
		return notFound(tx.Organizations().DeleteOrganization(ctx, orgID), ErrOrganizationNotFound)
	})
	if err != nil {
		log.Error("failed to delete organization",
			slog.String("organization_id", orgID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("organization deleted", slog.String("organization_id", orgID))
	return nil
}

// ListLogs returns the newest log entries first.
func (s *OrganizationService) ListLogs(
	ctx context.Context,
	userID, orgID string,
	limit int,
) ([]domain.LogEntry, error) {
	if _, _, err := guard(ctx, s.Store, s.Policy, orgID, userID, policy.ViewLogs); err != nil {
		return nil, err
	}
	return s.Store.Organizations().ListLogs(ctx, orgID, limit)
}
