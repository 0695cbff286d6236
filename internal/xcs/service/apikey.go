package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// APIKeyService manages the organization credentials used by devices.
type APIKeyService struct {
	Store  store.Store
	Policy policy.Policy
}

// CreateAPIKey mints a key. The plaintext is only ever returned here.
func (s *APIKeyService) CreateAPIKey(
	ctx context.Context,
	orgID, actorID, name string,
) (string, domain.APIKey, error) {
	log := slogx.FromContext(ctx)

	if _, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.ManageAPIKeys); err != nil {
		return "", domain.APIKey{}, err
	}
	if err := validateLength("name", name, 1, ResourceNameMax); err != nil {
		return "", domain.APIKey{}, err
	}

	k := domain.APIKey{
		ID:        idx.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedBy: actorID,
		CreatedAt: time.Now(),
	}
	key, fingerprint, err := cryptox.GenerateAPIKey(k.ID)
	if err != nil {
		log.Error("failed to generate api key", slog.Any("error", err))
		return "", domain.APIKey{}, err
	}
	k.Fingerprint = fingerprint

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().PutAPIKey(ctx, orgID, k); err != nil {
			return err
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogAPIKeyCreated, map[string]any{
			"apiKey": k.ID,
			"name":   k.Name,
		})
	})
	if err != nil {
		log.Error("failed to store api key", slog.Any("error", err))
		return "", domain.APIKey{}, err
	}

	log.Info("api key created",
		slog.String("organization_id", orgID),
		slog.String("api_key_id", k.ID),
	)
	return key, k, nil
}

// ListAPIKeys returns the organization's keys, oldest first.
func (s *APIKeyService) ListAPIKeys(ctx context.Context, orgID, actorID string) ([]domain.APIKey, error) {
	o, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.ManageAPIKeys)
	if err != nil {
		return nil, err
	}
	keys := make([]domain.APIKey, 0, len(o.APIKeys))
	for _, k := range o.APIKeys {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b domain.APIKey) int {
		return strings.Compare(a.ID, b.ID)
	})
	return keys, nil
}

func (s *APIKeyService) RevokeAPIKey(ctx context.Context, orgID, actorID, keyID string) error {
	o, _, err := guard(ctx, s.Store, s.Policy, orgID, actorID, policy.ManageAPIKeys)
	if err != nil {
		return err
	}
	k, ok := o.APIKeys[keyID]
	if !ok {
		return ErrAPIKeyNotFound
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organizations().DeleteAPIKey(ctx, orgID, keyID); err != nil {
			return notFound(err, ErrAPIKeyNotFound)
		}
		return appendLog(ctx, tx, orgID, actorID, domain.LogAPIKeyRevoked, map[string]any{
			"apiKey": k.ID,
			"name":   k.Name,
		})
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("api key revoked",
		slog.String("organization_id", orgID),
		slog.String("api_key_id", keyID),
	)
	return nil
}

// Authenticate resolves a presented key to its organization.
func (s *APIKeyService) Authenticate(ctx context.Context, key string) (domain.Organization, domain.APIKey, error) {
	return authenticateAPIKey(ctx, s.Store, key)
}

func authenticateAPIKey(ctx context.Context, st store.Store, key string) (domain.Organization, domain.APIKey, error) {
	id, ok := cryptox.ParseAPIKey(key)
	if !ok {
		return domain.Organization{}, domain.APIKey{}, ErrInvalidAPIKey
	}
	o, k, err := st.Organizations().GetOrganizationByAPIKey(ctx, id)
	if err != nil {
		return domain.Organization{}, domain.APIKey{}, notFound(err, ErrInvalidAPIKey)
	}
	if !cryptox.EqualFingerprint(k.Fingerprint, cryptox.FingerprintToken(key)) {
		slogx.FromContext(ctx).Warn("api key secret mismatch", slog.String("api_key_id", id))
		return domain.Organization{}, domain.APIKey{}, ErrInvalidAPIKey
	}
	return o, k, nil
}
