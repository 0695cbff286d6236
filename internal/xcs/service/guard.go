package service

import (
	"context"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/idx"
)

// Field limits.
const (
	OrganizationNameMin = 3
	OrganizationNameMax = 32
	DescriptionMax      = 256
	GroupNameMax        = 32
	GroupDescriptionMax = 128
	ResourceNameMax     = 32
)

func policyOf(p policy.Policy) policy.Policy {
	if p == nil {
		return policy.Default
	}
	return p
}

func loadOrganization(ctx context.Context, st store.Store, orgID string) (domain.Organization, error) {
	o, err := st.Organizations().GetOrganization(ctx, orgID)
	if err != nil {
		return domain.Organization{}, notFound(err, ErrOrganizationNotFound)
	}
	return o, nil
}

// actingMember loads the organization together with the caller's active
// membership.
func actingMember(
	ctx context.Context,
	st store.Store,
	orgID, userID string,
) (domain.Organization, domain.Member, error) {
	o, err := loadOrganization(ctx, st, orgID)
	if err != nil {
		return domain.Organization{}, domain.Member{}, err
	}
	m, ok := o.ActiveMember(userID)
	if !ok {
		return domain.Organization{}, domain.Member{}, ErrNotAMember
	}
	return o, m, nil
}

// authorize asks the policy and picks the most specific refusal.
func authorize(p policy.Policy, actor domain.Member, target domain.Role, action policy.Action) error {
	if policyOf(p).CanPerform(actor.Role, target, action) {
		return nil
	}
	switch action {
	case policy.GrantRole:
		if target == domain.RoleOwner {
			return ErrOwnerRoleNotGranted
		}
		if target >= actor.Role {
			return ErrEqualOrHigherRole
		}
	case policy.ManageMembers:
		if target >= actor.Role {
			return ErrEqualOrHigherRole
		}
	}
	return ErrInsufficientRole
}

// guard combines actingMember and authorize for actions without a target.
func guard(
	ctx context.Context,
	st store.Store,
	p policy.Policy,
	orgID, userID string,
	action policy.Action,
) (domain.Organization, domain.Member, error) {
	o, actor, err := actingMember(ctx, st, orgID, userID)
	if err != nil {
		return domain.Organization{}, domain.Member{}, err
	}
	if err := authorize(p, actor, domain.RoleGuest, action); err != nil {
		return domain.Organization{}, domain.Member{}, err
	}
	return o, actor, nil
}

func appendLog(
	ctx context.Context,
	tx store.Store,
	orgID, performer string,
	typ domain.LogType,
	data map[string]any,
) error {
	return tx.Organizations().AppendLog(ctx, domain.LogEntry{
		ID:             idx.New().String(),
		OrganizationID: orgID,
		Type:           typ,
		PerformerID:    performer,
		Data:           data,
		CreatedAt:      time.Now(),
	})
}

func validateLength(field, s string, min, max int) error {
	if !domain.LenBetween(s, min, max) {
		if min == 0 {
			return errorf(ErrValidation, "%s must be at most %d characters", field, max)
		}
		return errorf(ErrValidation, "%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

// validateGroups checks every id names an access group of o.
func validateGroups(o domain.Organization, ids []string) error {
	for _, id := range ids {
		if _, ok := o.AccessGroups[id]; !ok {
			return errorf(ErrValidation, "access group %q does not exist", id)
		}
	}
	return nil
}

// validateBindableGroups is validateGroups for an access point in
// locationID: location groups of other locations are refused.
func validateBindableGroups(o domain.Organization, locationID string, ids []string) error {
	if err := validateGroups(o, ids); err != nil {
		return err
	}
	for _, id := range ids {
		if g := o.AccessGroups[id]; !g.BindableAt(locationID) {
			return errorf(ErrValidation, "access group %q is scoped to another location", id)
		}
	}
	return nil
}
