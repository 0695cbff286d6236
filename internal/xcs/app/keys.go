package app

import (
	"fmt"
	"log/slog"

	"github.com/ppongpeauk/xcs/pkg/jwtx"
)

// InitSessionKeys generates the Ed25519 keys that sign session tokens.
//
// Keys live only in memory. Every session becomes invalid when the service
// restarts and clients must sign in again.
//
// By default 3 keys are generated and one is picked at random per token.
// Use XCS_NUM_KEYS to customize.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	logger.Info("initializing session signing keys", "num_keys", cfg.NumKeys)

	keyManager, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		NumKeys:  cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("generated session signing keys",
		"num_keys", keyManager.NumSigners(),
		"issuer", cfg.Issuer,
	)
	logger.Warn("sessions issued before this start are no longer valid")

	return keyManager, nil
}
