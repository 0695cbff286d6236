package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// NewSigningKey returns a fresh Ed25519 key for session signing. Keys live
// only in memory, so no encoding is done here.
func NewSigningKey() (ed25519.PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: generate signing key: %w", err)
	}
	return key, nil
}
