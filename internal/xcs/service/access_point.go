package service

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

type AccessPointService struct {
	Store  store.Store
	Policy policy.Policy
}

type AccessPointInput struct {
	Name        string
	Description string
	Tags        []string
	Config      domain.AccessPointConfig
}

func (in *AccessPointInput) normalize(o domain.Organization, locationID string) error {
	if err := validateLength("name", in.Name, 1, ResourceNameMax); err != nil {
		return err
	}
	if err := validateLength("description", in.Description, 0, DescriptionMax); err != nil {
		return err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	c := &in.Config
	if c.UnlockTime < 0 || c.UnlockTime > domain.MaxUnlockTime {
		return errorf(ErrValidation, "unlock time must be between 0 and %d seconds", domain.MaxUnlockTime)
	}
	if err := validateBindableGroups(o, locationID, compact(c.AlwaysAllowed.Groups)); err != nil {
		return err
	}
	if c.Webhook.URL != "" {
		u, err := url.Parse(c.Webhook.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return newError(ErrValidation, "webhook url must be an absolute http(s) url")
		}
	}
	c.AlwaysAllowed.Users = compact(c.AlwaysAllowed.Users)
	c.AlwaysAllowed.Groups = compact(c.AlwaysAllowed.Groups)
	c.AlwaysAllowed.Cards = compact(c.AlwaysAllowed.Cards)
	return nil
}

// compact trims, drops empty entries and removes duplicates, keeping order.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func loadAccessPoint(
	ctx context.Context,
	st store.Store,
	apID, userID string,
) (domain.AccessPoint, domain.Organization, domain.Member, error) {
	ap, err := st.AccessPoints().GetAccessPoint(ctx, apID)
	if err != nil {
		return domain.AccessPoint{}, domain.Organization{}, domain.Member{}, notFound(err, ErrAccessPointNotFound)
	}
	o, m, err := actingMember(ctx, st, ap.OrganizationID, userID)
	if err != nil {
		return domain.AccessPoint{}, domain.Organization{}, domain.Member{}, err
	}
	return ap, o, m, nil
}

func (s *AccessPointService) CreateAccessPoint(
	ctx context.Context,
	actorID, locationID string,
	in AccessPointInput,
) (domain.AccessPoint, error) {
	l, o, actor, err := loadLocation(ctx, s.Store, locationID, actorID)
	if err != nil {
		return domain.AccessPoint{}, err
	}
	if err := authorize(s.Policy, actor, domain.RoleGuest, policy.CreateAccessPoint); err != nil {
		return domain.AccessPoint{}, err
	}
	if err := in.normalize(o, l.ID); err != nil {
		return domain.AccessPoint{}, err
	}

	now := time.Now()
	ap := domain.AccessPoint{
		ID:             idx.New().String(),
		OrganizationID: o.ID,
		LocationID:     l.ID,
		Name:           in.Name,
		Description:    in.Description,
		Tags:           in.Tags,
		Config:         in.Config,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessPoints().CreateAccessPoint(ctx, ap); err != nil {
			return err
		}
		return appendLog(ctx, tx, o.ID, actorID, domain.LogAccessPointCreated, map[string]any{
			"accessPoint": ap.ID,
			"location":    l.ID,
			"name":        ap.Name,
		})
	})
	if err != nil {
		return domain.AccessPoint{}, err
	}

	slogx.FromContext(ctx).Info("access point created",
		slog.String("organization_id", o.ID),
		slog.String("access_point_id", ap.ID),
	)
	return ap, nil
}

func (s *AccessPointService) GetAccessPoint(ctx context.Context, actorID, apID string) (domain.AccessPoint, error) {
	ap, _, _, err := loadAccessPoint(ctx, s.Store, apID, actorID)
	return ap, err
}

func (s *AccessPointService) ListAccessPoints(ctx context.Context, actorID, locationID string) ([]domain.AccessPoint, error) {
	if _, _, _, err := loadLocation(ctx, s.Store, locationID, actorID); err != nil {
		return nil, err
	}
	return s.Store.AccessPoints().ListAccessPointsByLocation(ctx, locationID)
}

func (s *AccessPointService) UpdateAccessPoint(
	ctx context.Context,
	actorID, apID string,
	in AccessPointInput,
) (domain.AccessPoint, error) {
	ap, o, actor, err := loadAccessPoint(ctx, s.Store, apID, actorID)
	if err != nil {
		return domain.AccessPoint{}, err
	}
	if err := authorize(s.Policy, actor, domain.RoleGuest, policy.EditAccessPoint); err != nil {
		return domain.AccessPoint{}, err
	}
	if err := in.normalize(o, ap.LocationID); err != nil {
		return domain.AccessPoint{}, err
	}

	ap.Name = in.Name
	ap.Description = in.Description
	ap.Tags = in.Tags
	ap.Config = in.Config
	ap.UpdatedAt = time.Now()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessPoints().UpdateAccessPoint(ctx, ap); err != nil {
			return notFound(err, ErrAccessPointNotFound)
		}
		return appendLog(ctx, tx, o.ID, actorID, domain.LogAccessPointUpdated, map[string]any{
			"accessPoint": ap.ID,
			"name":        ap.Name,
			"active":      ap.Config.Active,
			"armed":       ap.Config.Armed,
		})
	})
	if err != nil {
		return domain.AccessPoint{}, err
	}
	return ap, nil
}

func (s *AccessPointService) DeleteAccessPoint(ctx context.Context, actorID, apID string) error {
	ap, o, actor, err := loadAccessPoint(ctx, s.Store, apID, actorID)
	if err != nil {
		return err
	}
	if err := authorize(s.Policy, actor, domain.RoleGuest, policy.DeleteAccessPoint); err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.AccessPoints().DeleteAccessPoint(ctx, ap.ID); err != nil {
			return notFound(err, ErrAccessPointNotFound)
		}
		return appendLog(ctx, tx, o.ID, actorID, domain.LogAccessPointDeleted, map[string]any{
			"accessPoint": ap.ID,
			"name":        ap.Name,
		})
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("access point deleted",
		slog.String("organization_id", o.ID),
		slog.String("access_point_id", ap.ID),
	)
	return nil
}
