package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

type AccessGroupService struct {
	Store  store.Store
	Policy policy.Policy
}

// AccessGroupInput is the full set of writable access group fields.
type AccessGroupInput struct {
	Name        string
	Description string
	Type        domain.AccessGroupType
	LocationID  string
	ScanData    map[string]any
	Config      domain.AccessGroupConfig
}

func (s *AccessGroupService) validate(
	ctx context.Context,
	o domain.Organization,
	selfID string,
	in AccessGroupInput,
) error {
	if err := validateLength("name", in.Name, 1, GroupNameMax); err != nil {
		return err
	}
	if err := validateLength("description", in.Description, 0, GroupDescriptionMax); err != nil {
		return err
	}
	if !in.Type.Valid() {
		return newError(ErrValidation, "invalid access group type")
	}
	if in.Type == domain.AccessGroupLocation {
		l, err := s.Store.Locations().GetLocation(ctx, in.LocationID)
		if err != nil {
			return notFound(err, ErrLocationNotFound)
		}
		if l.OrganizationID != o.ID {
			return ErrLocationNotFound
		}
	}
	if g, ok := o.AccessGroupByName(in.Name); ok && g.ID != selfID {
		return ErrAccessGroupNameTaken
	}
	return nil
}

func (in AccessGroupInput) group(id string) domain.AccessGroup {
	g := domain.AccessGroup{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		ScanData:    in.ScanData,
		Config:      in.Config,
	}
	if in.Type == domain.AccessGroupLocation {
		g.LocationID = in.LocationID
	}
	return g
}

func (s *AccessGroupService) CreateAccessGroup(
	ctx context.Context,
	orgID, actorID string,
	in AccessGroupInput,
) (domain.AccessGroup, error) {
	o, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.CreateAccessGroup)
	if err != nil {
		return domain.AccessGroup{}, err
	}
	if err := s.validate(ctx, o, "", in); err != nil {
		return domain.AccessGroup{}, err
	}

	g := in.group(idx.New().String())
	if err := s.put(ctx, orgID, actorID, g, domain.LogAccessGroupCreated); err != nil {
		return domain.AccessGroup{}, err
	}

	slogx.FromContext(ctx).Info("access group created",
		slog.String("organization_id", orgID),
		slog.String("access_group_id", g.ID),
	)
	return g, nil
}

func (s *AccessGroupService) UpdateAccessGroup(
	ctx context.Context,
	orgID, actorID, groupID string,
	in AccessGroupInput,
) (domain.AccessGroup, error) {
	o, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.EditAccessGroup)
	if err != nil {
		return domain.AccessGroup{}, err
	}
	if _, ok := o.AccessGroups[groupID]; !ok {
		return domain.AccessGroup{}, ErrAccessGroupNotFound
	}
	if err := s.validate(ctx, o, groupID, in); err != nil {
		return domain.AccessGroup{}, err
	}

	g := in.group(groupID)
	if err := s.put(ctx, orgID, actorID, g, domain.LogAccessGroupUpdated); err != nil {
		return domain.AccessGroup{}, err
	}
	return g, nil
}

func (s *AccessGroupService) put(
	ctx context.Context,
	orgID, actorID string,
	g domain.AccessGroup,
	logType domain.LogType,
) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().PutAccessGroup(ctx, orgID, g); err != nil {
			return conflict(err, ErrAccessGroupNameTaken)
		}
		return appendLog(ctx, tx, orgID, actorID, logType, map[string]any{
			"accessGroup": g.ID,
			"name":        g.Name,
		})
	})
}

// DeleteAccessGroup removes the group and every reference to it from
// members and access points.
func (s *AccessGroupService) DeleteAccessGroup(ctx context.Context, orgID, actorID, groupID string) error {
	log := slogx.FromContext(ctx)

	o, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.DeleteAccessGroup)
	if err != nil {
		return err
	}
	g, ok := o.AccessGroups[groupID]
	if !ok {
		return ErrAccessGroupNotFound
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().RemoveAccessGroupFromMembers(ctx, orgID, groupID); err != nil {
			return err
		}
		if err := tx.AccessPoints().PullAlwaysAllowedGroup(ctx, orgID, groupID); err != nil {
			return err
		}
		if err := tx.Organizations().DeleteAccessGroup(ctx, orgID, groupID); err != nil {
			return notFound(err, ErrAccessGroupNotFound)
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogAccessGroupDeleted, map[string]any{
			"accessGroup": groupID,
			"name":        g.Name,
		})
	})
	if err != nil {
		log.Error("failed to delete access group",
			slog.String("access_group_id", groupID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("access group deleted",
		slog.String("organization_id", orgID),
		slog.String("access_group_id", groupID),
	)
	return nil
}

// ListAccessGroups returns the organization's groups ordered by name.
func (s *AccessGroupService) ListAccessGroups(ctx context.Context, orgID, actorID string) ([]domain.AccessGroup, error) {
	o, _, err := actingMember(ctx, s.Store, orgID, actorID)
	if err != nil {
		return nil, err
	}
	groups := make([]domain.AccessGroup, 0, len(o.AccessGroups))
	for _, g := range o.AccessGroups {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b domain.AccessGroup) int {
		if c := strings.Compare(domain.NormalizeName(a.Name), domain.NormalizeName(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return groups, nil
}
