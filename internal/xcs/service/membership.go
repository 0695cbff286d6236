package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/mail"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// MembershipService drives the member lifecycle: Invited (joined=false) to
// Active (joined=true) to Removed (entry deleted). Direct adds skip Invited.
type MembershipService struct {
	Store  store.Store
	Policy policy.Policy

	// Mailer is optional. Invitation emails are best effort.
	Mailer mail.Dispatcher
}

// MemberUpdate carries the optional fields of a member edit.
type MemberUpdate struct {
	Role         *domain.Role
	AccessGroups *[]string
	ScanData     map[string]any
}

// CreateInvitation adds recipient (a user id or username) as an invited
// member and notifies them.
func (s *MembershipService) CreateInvitation(
	ctx context.Context,
	orgID, actorID, recipient string,
	role domain.Role,
	accessGroups []string,
) (domain.Member, error) {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return domain.Member{}, newError(ErrValidation, "invalid role")
	}

	// 1. Check the actor, resolve the recipient and write the invited member
	// with its notification
	var (
		o      domain.Organization
		user   domain.User
		member domain.Member
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		org, actor, err := guard(ctx, tx, s.Policy, orgID, actorID, policy.CreateInvitation)
		if err != nil {
			return err
		}
		o = org
		if err := authorize(s.Policy, actor, role, policy.GrantRole); err != nil {
			return err
		}
		if err := validateGroups(o, accessGroups); err != nil {
			return err
		}
		user, err = resolveUser(ctx, tx, recipient)
		if err != nil {
			return err
		}
		if _, exists := o.Members[user.ID]; exists {
			return ErrAlreadyMember
		}

		now := time.Now()
		member = domain.Member{
			Key:          user.ID,
			Subject:      domain.UserSubject{UserID: user.ID},
			Role:         role,
			AccessGroups: accessGroups,
			Joined:       false,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Organizations().PutMember(ctx, orgID, member); err != nil {
			return err
		}
		err = tx.Notifications().CreateNotification(ctx, domain.Notification{
			ID:             idx.New().String(),
			RecipientID:    user.ID,
			SenderID:       actorID,
			Type:           domain.NotificationOrganizationInvitation,
			OrganizationID: orgID,
			MemberKey:      member.Key,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return err
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogMemberInvited, map[string]any{
			"member": member.Key,
			"role":   int(role),
		})
	})
	if err != nil {
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			log.Error("failed to create invitation", slog.Any("error", err))
		}
		return domain.Member{}, err
	}

	log.Info("member invited",
		slog.String("organization_id", orgID),
		slog.String("member_key", member.Key),
	)

	// 2. Tell the recipient, best effort
	s.mailInvitation(ctx, o, actorID, user, role)
	return member, nil
}

func resolveUser(ctx context.Context, st store.Store, ref string) (domain.User, error) {
	ref = strings.TrimSpace(ref)
	var (
		u   domain.User
		err error
	)
	if idx.Valid(ref) {
		u, err = st.Users().GetUserByID(ctx, ref)
	} else {
		u, err = st.Users().GetUserByUsername(ctx, ref)
	}
	if err != nil {
		return domain.User{}, notFound(err, ErrUserNotFound)
	}
	return u, nil
}

func (s *MembershipService) mailInvitation(
	ctx context.Context,
	o domain.Organization,
	senderID string,
	to domain.User,
	role domain.Role,
) {
	if s.Mailer == nil || to.Email.Address == "" {
		return
	}
	sender := senderID
	if u, err := s.Store.Users().GetUserByID(ctx, senderID); err == nil {
		sender = u.Username
	}
	err := s.Mailer.Send(ctx, mail.Message{
		To:       to.Email.Address,
		Template: mail.TemplateOrganizationInvitation,
		Data: map[string]string{
			"username":     to.Username,
			"sender":       sender,
			"organization": o.Name,
			"role":         role.String(),
		},
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("failed to send invitation email",
			slog.String("user_id", to.ID),
			slog.Any("error", err),
		)
	}
}

// invitationFor loads an invitation notification addressed to userID.
func (s *MembershipService) invitationFor(
	ctx context.Context,
	tx store.Store,
	notificationID, userID string,
) (domain.Notification, error) {
	n, err := tx.Notifications().GetNotification(ctx, notificationID)
	if err != nil {
		return domain.Notification{}, notFound(err, ErrNotificationNotFound)
	}
	if n.Type != domain.NotificationOrganizationInvitation {
		return domain.Notification{}, ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return domain.Notification{}, ErrNotRecipient
	}
	return n, nil
}

// AcceptInvitation moves the recipient's member entry from Invited to
// Active and consumes the notification.
func (s *MembershipService) AcceptInvitation(
	ctx context.Context,
	notificationID, userID string,
) (domain.Organization, error) {
	var org domain.Organization
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := s.invitationFor(ctx, tx, notificationID, userID)
		if err != nil {
			return err
		}
		o, err := loadOrganization(ctx, tx, n.OrganizationID)
		if err != nil {
			return err
		}
		m, ok := o.Members[n.MemberKey]
		if !ok {
			return ErrMemberNotFound
		}
		if m.Joined {
			return ErrAlreadyJoined
		}

		m.Joined = true
		m.UpdatedAt = time.Now()
		if err := tx.Organizations().UpdateMember(ctx, o.ID, m); err != nil {
			return notFound(err, ErrMemberNotFound)
		}
		if err := tx.Notifications().DeleteNotification(ctx, n.ID); err != nil {
			return err
		}
		o.Members[m.Key] = m
		org = o
		return appendLog(ctx, tx, o.ID, userID, domain.LogMemberJoined, map[string]any{"member": m.Key})
	})
	if err != nil {
		return domain.Organization{}, err
	}

	slogx.FromContext(ctx).Info("invitation accepted",
		slog.String("organization_id", org.ID),
		slog.String("user_id", userID),
	)
	return org, nil
}

// RejectInvitation removes both the member entry and the notification.
func (s *MembershipService) RejectInvitation(ctx context.Context, notificationID, userID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := s.invitationFor(ctx, tx, notificationID, userID)
		if err != nil {
			return err
		}

		o, err := loadOrganization(ctx, tx, n.OrganizationID)
		switch {
		case errors.Is(err, ErrOrganizationNotFound):
			// Organization is gone; the notification is all that is left.
			return tx.Notifications().DeleteNotification(ctx, n.ID)
		case err != nil:
			return err
		}

		m, ok := o.Members[n.MemberKey]
		if !ok {
			if err := tx.Notifications().DeleteNotification(ctx, n.ID); err != nil {
				return err
			}
			return appendLog(ctx, tx, o.ID, userID, domain.LogMemberRejected, map[string]any{"member": n.MemberKey})
		}
		if m.Role == domain.RoleOwner || m.Key == o.OwnerID {
			return ErrOwnerNotRemovable
		}
		if m.Joined {
			return ErrAlreadyJoined
		}
		// Drops the notification too, along with any allow-list entry made
		// while the invitation was pending.
		return removeMember(ctx, tx, o, m, userID, domain.LogMemberRejected)
	})
}

// Leave removes the caller from the organization. The owner cannot leave.
func (s *MembershipService) Leave(ctx context.Context, orgID, userID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		o, m, err := actingMember(ctx, tx, orgID, userID)
		if err != nil {
			return err
		}
		if m.Role == domain.RoleOwner || o.OwnerID == userID {
			return ErrOwnerCannotLeave
		}
		return removeMember(ctx, tx, o, m, userID, domain.LogMemberLeft)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("member left",
		slog.String("organization_id", orgID),
		slog.String("user_id", userID),
	)
	return nil
}

// Remove deletes another member. The owner cannot be removed and the actor
// must outrank the target.
func (s *MembershipService) Remove(ctx context.Context, orgID, actorID, key string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		o, actor, err := actingMember(ctx, tx, orgID, actorID)
		if err != nil {
			return err
		}
		target, ok := o.Members[key]
		if !ok {
			return ErrMemberNotFound
		}
		if target.Role == domain.RoleOwner || key == o.OwnerID {
			return ErrOwnerNotRemovable
		}
		if err := authorize(s.Policy, actor, target.Role, policy.ManageMembers); err != nil {
			return err
		}
		return removeMember(ctx, tx, o, target, actorID, domain.LogMemberRemoved)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("member removed",
		slog.String("organization_id", orgID),
		slog.String("member_key", key),
		slog.String("actor_id", actorID),
	)
	return nil
}

// removeMember deletes m within tx and pulls every id it was allowed under
// from the organization's access points, together with its pending
// invitations.
func removeMember(
	ctx context.Context,
	tx store.Tx,
	o domain.Organization,
	m domain.Member,
	performer string,
	logType domain.LogType,
) error {
	ids := []string{m.Key}
	if sub, ok := m.Subject.(domain.UserSubject); ok {
		u, err := tx.Users().GetUserByID(ctx, sub.UserID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if u.Roblox.Linked() {
			ids = append(ids, u.Roblox.ID)
		}
	}

	if err := tx.Organizations().DeleteMember(ctx, o.ID, m.Key); err != nil {
		return notFound(err, ErrMemberNotFound)
	}
	if err := tx.AccessPoints().PullAlwaysAllowedUsers(ctx, o.ID, ids...); err != nil {
		return err
	}
	if err := tx.Notifications().DeleteNotificationsForMember(ctx, o.ID, m.Key); err != nil {
		return err
	}
	return appendLog(ctx, tx, o.ID, performer, logType, map[string]any{"member": m.Key})
}

// UpdateMember edits role, access groups or scan data. The actor must
// outrank the member both before and after a role change. Both memberships
// are read in the same transaction as the write.
func (s *MembershipService) UpdateMember(
	ctx context.Context,
	orgID, actorID, key string,
	upd MemberUpdate,
) (domain.Member, error) {
	if upd.Role != nil && !upd.Role.Valid() {
		return domain.Member{}, newError(ErrValidation, "invalid role")
	}

	var target domain.Member
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		o, actor, err := actingMember(ctx, tx, orgID, actorID)
		if err != nil {
			return err
		}
		var ok bool
		target, ok = o.Members[key]
		if !ok {
			return ErrMemberNotFound
		}
		if err := authorize(s.Policy, actor, target.Role, policy.ManageMembers); err != nil {
			return err
		}

		changes := map[string]any{"member": key}
		if upd.Role != nil && *upd.Role != target.Role {
			if err := authorize(s.Policy, actor, *upd.Role, policy.GrantRole); err != nil {
				return err
			}
			target.Role = *upd.Role
			changes["role"] = int(target.Role)
		}
		if upd.AccessGroups != nil {
			if err := validateGroups(o, *upd.AccessGroups); err != nil {
				return err
			}
			target.AccessGroups = slices.Clone(*upd.AccessGroups)
			changes["accessGroups"] = target.AccessGroups
		}
		if upd.ScanData != nil {
			target.ScanData = upd.ScanData
		}
		target.UpdatedAt = time.Now()

		if err := tx.Organizations().UpdateMember(ctx, orgID, target); err != nil {
			return notFound(err, ErrMemberNotFound)
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogMemberUpdated, changes)
	})
	if err != nil {
		return domain.Member{}, err
	}
	return target, nil
}

// AddRobloxMember directly adds a Roblox account as an active guest.
func (s *MembershipService) AddRobloxMember(
	ctx context.Context,
	orgID, actorID string,
	robloxUserID int64,
	username string,
) (domain.Member, error) {
	if robloxUserID <= 0 {
		return domain.Member{}, newError(ErrValidation, "invalid Roblox user id")
	}
	return s.addMember(ctx, orgID, actorID, domain.RobloxMemberKey(robloxUserID),
		domain.RobloxSubject{UserID: robloxUserID, Username: strings.TrimSpace(username)})
}

// AddRobloxGroupMember admits members of a Roblox group, optionally limited
// to some rolesets.
func (s *MembershipService) AddRobloxGroupMember(
	ctx context.Context,
	orgID, actorID string,
	groupID int64,
	groupName string,
	rolesets []int64,
) (domain.Member, error) {
	if groupID <= 0 {
		return domain.Member{}, newError(ErrValidation, "invalid Roblox group id")
	}
	return s.addMember(ctx, orgID, actorID, uuid.NewString(),
		domain.RobloxGroupSubject{GroupID: groupID, GroupName: strings.TrimSpace(groupName), Rolesets: rolesets})
}

// AddCardMember registers a set of card numbers as a member.
func (s *MembershipService) AddCardMember(
	ctx context.Context,
	orgID, actorID, name string,
	numbers []string,
) (domain.Member, error) {
	cleaned := make([]string, 0, len(numbers))
	for _, n := range numbers {
		if n = strings.TrimSpace(n); n != "" && !slices.Contains(cleaned, n) {
			cleaned = append(cleaned, n)
		}
	}
	if len(cleaned) == 0 {
		return domain.Member{}, newError(ErrValidation, "at least one card number is required")
	}
	if err := validateLength("name", name, 1, ResourceNameMax); err != nil {
		return domain.Member{}, err
	}
	return s.addMember(ctx, orgID, actorID, uuid.NewString(),
		domain.CardSubject{Name: strings.TrimSpace(name), Numbers: cleaned})
}

func (s *MembershipService) addMember(
	ctx context.Context,
	orgID, actorID, key string,
	subject domain.Subject,
) (domain.Member, error) {
	now := time.Now()
	m := domain.Member{
		Key:       key,
		Subject:   subject,
		Role:      domain.RoleGuest,
		Joined:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		o, _, err := guard(ctx, tx, s.Policy, orgID, actorID, policy.ManageMembers)
		if err != nil {
			return err
		}
		if duplicateSubject(o, key, subject) {
			return ErrAlreadyMember
		}

		if err := tx.Organizations().PutMember(ctx, orgID, m); err != nil {
			return err
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogMemberAdded, map[string]any{
			"member": key,
			"type":   string(subject.Kind()),
		})
	})
	if err != nil {
		return domain.Member{}, err
	}
	return m, nil
}

// duplicateSubject reports whether o already has a member for subject.
func duplicateSubject(o domain.Organization, key string, subject domain.Subject) bool {
	if _, ok := o.Members[key]; ok {
		return true
	}
	for _, m := range o.Members {
		switch want := subject.(type) {
		case domain.RobloxGroupSubject:
			if have, ok := m.Subject.(domain.RobloxGroupSubject); ok && have.GroupID == want.GroupID {
				return true
			}
		case domain.CardSubject:
			if have, ok := m.Subject.(domain.CardSubject); ok {
				for _, n := range want.Numbers {
					if slices.Contains(have.Numbers, n) {
						return true
					}
				}
			}
		}
	}
	return false
}

// ListMembers returns the organization's members, highest role first.
func (s *MembershipService) ListMembers(ctx context.Context, orgID, actorID string) ([]domain.Member, error) {
	o, _, err := actingMember(ctx, s.Store, orgID, actorID)
	if err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(o.Members))
	for _, m := range o.Members {
		members = append(members, m)
	}
	slices.SortFunc(members, func(a, b domain.Member) int {
		if a.Role != b.Role {
			return int(b.Role) - int(a.Role)
		}
		return strings.Compare(a.Key, b.Key)
	})
	return members, nil
}
