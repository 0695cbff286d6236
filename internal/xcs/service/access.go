package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/metricsx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// DefaultWebhookTimeout bounds a single webhook delivery.
const DefaultWebhookTimeout = 5 * time.Second

// AccessService evaluates who may pass an access point.
type AccessService struct {
	Store store.Store

	// HTTPClient delivers access point webhooks, http.DefaultClient when
	// nil. Each delivery is bounded by WebhookTimeout.
	HTTPClient     *http.Client
	WebhookTimeout time.Duration

	inflight sync.WaitGroup
}

// IsAuthorized evaluates id at the access point.
func (s *AccessService) IsAuthorized(ctx context.Context, id domain.ScanIdentity, apID string) (domain.Decision, error) {
	ap, err := s.Store.AccessPoints().GetAccessPoint(ctx, apID)
	if err != nil {
		return domain.Decision{}, notFound(err, ErrAccessPointNotFound)
	}
	return s.decide(ctx, ap, id)
}

func (s *AccessService) decide(ctx context.Context, ap domain.AccessPoint, id domain.ScanIdentity) (domain.Decision, error) {
	// 1. The door itself must be usable
	loc, err := s.Store.Locations().GetLocation(ctx, ap.LocationID)
	if err != nil {
		return domain.Decision{}, notFound(err, ErrLocationNotFound)
	}
	if !loc.Enabled {
		return domain.Decision{Reason: domain.ReasonLocationDisabled}, nil
	}
	if !ap.Config.Active {
		return domain.Decision{Reason: domain.ReasonAccessPointInactive}, nil
	}
	o, err := loadOrganization(ctx, s.Store, ap.OrganizationID)
	if err != nil {
		return domain.Decision{}, err
	}

	// 2. Everything the identity is known as
	ids, err := s.linkedIDs(ctx, id)
	if err != nil {
		return domain.Decision{}, err
	}

	// 3. Explicit allow lists
	for _, u := range ap.Config.AlwaysAllowed.Users {
		if slices.Contains(ids, u) {
			return domain.Decision{
				Granted:   true,
				Reason:    domain.ReasonAlwaysAllowedUser,
				MemberKey: u,
				ScanData:  ap.Config.ScanData,
			}, nil
		}
	}
	if id.CardNumber != "" && slices.Contains(ap.Config.AlwaysAllowed.Cards, id.CardNumber) {
		return domain.Decision{
			Granted:  true,
			Reason:   domain.ReasonAlwaysAllowedCard,
			ScanData: ap.Config.ScanData,
		}, nil
	}

	// 4. Active groups bound to the access point and valid at its location
	bound := make(map[string]domain.AccessGroup)
	for _, gid := range ap.Config.AlwaysAllowed.Groups {
		g, ok := o.AccessGroups[gid]
		if !ok || !g.Config.Active || !g.BindableAt(ap.LocationID) {
			continue
		}
		if g.Config.OpenToEveryone && !id.Empty() {
			return domain.Decision{
				Granted:       true,
				Reason:        domain.ReasonOpenToEveryone,
				AccessGroupID: g.ID,
				ScanData:      mergeScanData(ap.Config.ScanData, g.ScanData),
			}, nil
		}
		bound[gid] = g
	}

	// 5. Active members holding a bound group
	keys := slices.Sorted(maps.Keys(o.Members))
	for _, key := range keys {
		m := o.Members[key]
		if !m.Joined || !subjectMatches(m, ids, id) {
			continue
		}
		if g, ok := m.InAnyGroup(bound); ok {
			return domain.Decision{
				Granted:       true,
				Reason:        domain.ReasonAccessGroup,
				MemberKey:     m.Key,
				AccessGroupID: g.ID,
				ScanData:      mergeScanData(ap.Config.ScanData, g.ScanData, m.ScanData),
			}, nil
		}
	}

	return domain.Decision{Reason: domain.ReasonNoMatch}, nil
}

// linkedIDs expands the identity with accounts linked to it. Only verified
// Roblox links count.
func (s *AccessService) linkedIDs(ctx context.Context, id domain.ScanIdentity) ([]string, error) {
	var ids []string
	add := func(v string) {
		if v != "" && !slices.Contains(ids, v) {
			ids = append(ids, v)
		}
	}

	if id.UserID != "" {
		add(id.UserID)
		u, err := s.Store.Users().GetUserByID(ctx, id.UserID)
		switch {
		case err == nil:
			if u.Roblox.Linked() && u.Roblox.Verified {
				add(u.Roblox.ID)
			}
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
	}
	if id.RobloxUserID != 0 {
		robloxID := domain.RobloxMemberKey(id.RobloxUserID)
		add(robloxID)
		u, err := s.Store.Users().GetUserByLinkedAccount(ctx, domain.LinkRoblox, robloxID)
		switch {
		case err == nil:
			if u.Roblox.Verified {
				add(u.ID)
			}
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
	}
	return ids, nil
}

func subjectMatches(m domain.Member, ids []string, id domain.ScanIdentity) bool {
	switch sub := m.Subject.(type) {
	case domain.UserSubject:
		return slices.Contains(ids, sub.UserID)
	case domain.RobloxSubject:
		return slices.Contains(ids, domain.RobloxMemberKey(sub.UserID))
	case domain.RobloxGroupSubject:
		roleset, ok := id.RobloxGroups[sub.GroupID]
		return ok && sub.AdmitsRoleset(roleset)
	case domain.CardSubject:
		return id.CardNumber != "" && slices.Contains(sub.Numbers, id.CardNumber)
	}
	return false
}

// mergeScanData layers scan data, later layers winning.
func mergeScanData(layers ...map[string]any) map[string]any {
	var out map[string]any
	for _, l := range layers {
		if len(l) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]any, len(l))
		}
		maps.Copy(out, l)
	}
	return out
}

// Scan is a device presenting identity at an access point of the API key's
// organization. The decision is logged, counted and pushed to the access
// point's webhook.
func (s *AccessService) Scan(
	ctx context.Context,
	apiKey, apID string,
	id domain.ScanIdentity,
) (domain.Decision, error) {
	// 1. Authenticate the device
	o, key, err := authenticateAPIKey(ctx, s.Store, apiKey)
	if err != nil {
		return domain.Decision{}, err
	}
	ctx = slogx.WithDevice(ctx, o.ID, key.ID)
	log := slogx.FromContext(ctx)
	if id.Empty() {
		return domain.Decision{}, newError(ErrValidation, "no identity presented")
	}

	// 2. The access point must belong to the key's organization
	ap, err := s.Store.AccessPoints().GetAccessPoint(ctx, apID)
	if err != nil {
		return domain.Decision{}, notFound(err, ErrAccessPointNotFound)
	}
	if ap.OrganizationID != o.ID {
		return domain.Decision{}, ErrAccessPointNotFound
	}

	// 3. Evaluate
	d, err := s.decide(ctx, ap, id)
	if err != nil {
		log.Error("failed to evaluate scan", slog.String("access_point_id", apID), slog.Any("error", err))
		return domain.Decision{}, err
	}
	result := "denied"
	if d.Granted {
		result = "granted"
	}
	metricsx.ScanDecisions.WithLabelValues(result, string(d.Reason)).Inc()

	// 4. Record it
	err = appendLog(ctx, s.Store, o.ID, key.ID, domain.LogScan, map[string]any{
		"accessPoint": ap.ID,
		"granted":     d.Granted,
		"reason":      string(d.Reason),
		"member":      d.MemberKey,
	})
	if err != nil {
		log.Error("failed to log scan", slog.Any("error", err))
	}

	log.Info("scan evaluated",
		slog.String("access_point_id", ap.ID),
		slog.String("result", result),
		slog.String("reason", string(d.Reason)),
	)

	// 5. Notify the webhook without holding up the device
	hook := ap.Config.Webhook
	if hook.URL != "" && ((d.Granted && hook.EventGranted) || (!d.Granted && hook.EventDenied)) {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.deliverWebhook(context.WithoutCancel(ctx), ap, id, d)
		}()
	}
	return d, nil
}

// Wait blocks until in-flight webhook deliveries finish.
func (s *AccessService) Wait() {
	s.inflight.Wait()
}

type webhookPayload struct {
	Event          string         `json:"event"`
	OrganizationID string         `json:"organizationId"`
	LocationID     string         `json:"locationId"`
	AccessPointID  string         `json:"accessPointId"`
	Granted        bool           `json:"granted"`
	Reason         string         `json:"reason"`
	MemberKey      string         `json:"memberKey,omitempty"`
	UserID         string         `json:"userId,omitempty"`
	RobloxUserID   string         `json:"robloxUserId,omitempty"`
	CardNumber     string         `json:"cardNumber,omitempty"`
	ScanData       map[string]any `json:"scanData,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

func (s *AccessService) deliverWebhook(ctx context.Context, ap domain.AccessPoint, id domain.ScanIdentity, d domain.Decision) {
	log := slogx.FromContext(ctx)

	timeout := s.WebhookTimeout
	if timeout <= 0 {
		timeout = DefaultWebhookTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload := webhookPayload{
		Event:          "access_denied",
		OrganizationID: ap.OrganizationID,
		LocationID:     ap.LocationID,
		AccessPointID:  ap.ID,
		Granted:        d.Granted,
		Reason:         string(d.Reason),
		MemberKey:      d.MemberKey,
		UserID:         id.UserID,
		CardNumber:     id.CardNumber,
		ScanData:       d.ScanData,
		Timestamp:      time.Now().UTC(),
	}
	if d.Granted {
		payload.Event = "access_granted"
	}
	if id.RobloxUserID != 0 {
		payload.RobloxUserID = strconv.FormatInt(id.RobloxUserID, 10)
	}

	err := s.post(ctx, ap.Config.Webhook.URL, payload)
	outcome := "delivered"
	if err != nil {
		outcome = "failed"
		log.Warn("webhook delivery failed",
			slog.String("access_point_id", ap.ID),
			slog.Any("error", err),
		)
	}
	metricsx.WebhookDeliveries.WithLabelValues(outcome).Inc()
}

func (s *AccessService) post(ctx context.Context, url string, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "xcs-webhook/1")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
