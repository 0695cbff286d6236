package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

type LocationService struct {
	Store  store.Store
	Policy policy.Policy
}

// LocationInput is the writable part of a location. A zero Roblox leaves
// the binding untouched.
type LocationInput struct {
	Name        string
	Description string
	Enabled     bool
	Tags        []string
	Roblox      domain.RobloxPlace
}

func (in LocationInput) validate() error {
	if err := validateLength("name", in.Name, 1, ResourceNameMax); err != nil {
		return err
	}
	if err := validateLength("description", in.Description, 0, DescriptionMax); err != nil {
		return err
	}
	if in.Roblox.PlaceID < 0 || in.Roblox.UniverseID < 0 {
		return newError(ErrValidation, "invalid Roblox place")
	}
	return nil
}

// loadLocation fetches a location and the caller's membership in its
// organization.
func loadLocation(
	ctx context.Context,
	st store.Store,
	locationID, userID string,
) (domain.Location, domain.Organization, domain.Member, error) {
	l, err := st.Locations().GetLocation(ctx, locationID)
	if err != nil {
		return domain.Location{}, domain.Organization{}, domain.Member{}, notFound(err, ErrLocationNotFound)
	}
	o, m, err := actingMember(ctx, st, l.OrganizationID, userID)
	if err != nil {
		return domain.Location{}, domain.Organization{}, domain.Member{}, err
	}
	return l, o, m, nil
}

func (s *LocationService) CreateLocation(
	ctx context.Context,
	orgID, actorID string,
	in LocationInput,
) (domain.Location, error) {
	if _, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.CreateLocation); err != nil {
		return domain.Location{}, err
	}
	if err := in.validate(); err != nil {
		return domain.Location{}, err
	}

	now := time.Now()
	l := domain.Location{
		ID:             idx.New().String(),
		OrganizationID: orgID,
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Enabled:        in.Enabled,
		Tags:           in.Tags,
		Roblox:         in.Roblox,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Locations().CreateLocation(ctx, l); err != nil {
			return err
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogLocationCreated, map[string]any{
			"location": l.ID,
			"name":     l.Name,
		})
	})
	if err != nil {
		return domain.Location{}, err
	}

	slogx.FromContext(ctx).Info("location created",
		slog.String("organization_id", orgID),
		slog.String("location_id", l.ID),
	)
	return l, nil
}

func (s *LocationService) GetLocation(ctx context.Context, actorID, locationID string) (domain.Location, error) {
	l, _, _, err := loadLocation(ctx, s.Store, locationID, actorID)
	return l, err
}

func (s *LocationService) ListLocations(ctx context.Context, orgID, actorID string) ([]domain.Location, error) {
	if _, _, err := actingMember(ctx, s.Store, orgID, actorID); err != nil {
		return nil, err
	}
	return s.Store.Locations().ListLocations(ctx, orgID)
}

// UpdateLocation rewrites the location. A Roblox binding, once set, can not
// be changed.
func (s *LocationService) UpdateLocation(
	ctx context.Context,
	actorID, locationID string,
	in LocationInput,
) (domain.Location, error) {
	l, o, actor, err := loadLocation(ctx, s.Store, locationID, actorID)
	if err != nil {
		return domain.Location{}, err
	}
	if err := authorize(s.Policy, actor, domain.RoleGuest, policy.EditLocation); err != nil {
		return domain.Location{}, err
	}
	if err := in.validate(); err != nil {
		return domain.Location{}, err
	}

	if in.Roblox.Bound() {
		if l.Roblox.Bound() && in.Roblox != l.Roblox {
			return domain.Location{}, ErrRobloxPlaceBound
		}
		l.Roblox = in.Roblox
	}
	l.Name = strings.TrimSpace(in.Name)
	l.Description = strings.TrimSpace(in.Description)
	l.Enabled = in.Enabled
	l.Tags = in.Tags
	l.UpdatedAt = time.Now()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Locations().UpdateLocation(ctx, l); err != nil {
			return notFound(err, ErrLocationNotFound)
		}
		return appendLog(ctx, tx, o.ID, actorID, domain.LogLocationUpdated, map[string]any{
			"location": l.ID,
			"name":     l.Name,
			"enabled":  l.Enabled,
		})
	})
	if err != nil {
		return domain.Location{}, err
	}
	return l, nil
}

// DeleteLocation removes the location, its access points and the access
// groups scoped to it.
func (s *LocationService) DeleteLocation(ctx context.Context, actorID, locationID string) error {
	log := slogx.FromContext(ctx)

	l, o, actor, err := loadLocation(ctx, s.Store, locationID, actorID)
	if err != nil {
		return err
	}
	if err := authorize(s.Policy, actor, domain.RoleGuest, policy.DeleteLocation); err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessPoints().DeleteAccessPointsByLocation(ctx, l.ID); err != nil {
			return err
		}
		for _, g := range o.AccessGroups {
			if g.Type != domain.AccessGroupLocation || g.LocationID != l.ID {
				continue
			}
			if err := tx.Organizations().RemoveAccessGroupFromMembers(ctx, o.ID, g.ID); err != nil {
				return err
			}
			if err := tx.AccessPoints().PullAlwaysAllowedGroup(ctx, o.ID, g.ID); err != nil {
				return err
			}
			if err := tx.Organizations().DeleteAccessGroup(ctx, o.ID, g.ID); err != nil {
				return err
			}
		}
		if err := tx.Locations().DeleteLocation(ctx, l.ID); err != nil {
			return notFound(err, ErrLocationNotFound)
		}
		return appendLog(ctx, tx, o.ID, actorID, domain.LogLocationDeleted, map[string]any{
			"location": l.ID,
			"name":     l.Name,
		})
	})
	if err != nil {
		log.Error("failed to delete location",
			slog.String("location_id", locationID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("location deleted",
		slog.String("organization_id", o.ID),
		slog.String("location_id", l.ID),
	)
	return nil
}
