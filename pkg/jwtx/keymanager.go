package jwtx

import (
	"fmt"
	"math/rand/v2"

	"github.com/ppongpeauk/xcs/pkg/cryptox"
)

// KeyManager owns the in-memory session signing keys. Keys are generated at
// startup and never persisted, so every session is invalidated on restart.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signers []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string

	// NumKeys defaults to 3 and is capped at 10.
	NumKeys int
}

// NewEphemeralKeyManager generates NumKeys Ed25519 keys and wires a verifier
// over all of them.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	numKeys := opts.NumKeys
	if numKeys <= 0 {
		numKeys = 3
	}
	if numKeys > 10 {
		numKeys = 10
	}

	keyset := NewKeySet()
	signers := make([]Signer, 0, numKeys)
	for i := 0; i < numKeys; i++ {
		kid, err := cryptox.GenerateToken(cryptox.TokenSize128)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key ID: %w", err)
		}

		key, err := cryptox.NewSigningKey()
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to generate key %d: %w", i+1, err)
		}

		signer, err := NewSignerEdDSA("xcs-"+kid, key)
		if err != nil {
			return nil, fmt.Errorf("jwtx: failed to load key %d: %w", i+1, err)
		}
		if err := keyset.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: failed to add key %d to keyset: %w", i+1, err)
		}
		signers = append(signers, signer)
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// GetSigner returns a randomly selected signing key.
func (km *KeyManager) GetSigner() Signer {
	if len(km.signers) == 1 {
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners returns the number of signing keys.
func (km *KeyManager) NumSigners() int { return len(km.signers) }

// IsReady reports whether keys are loaded.
func (km *KeyManager) IsReady() bool { return km.KeySet.IsReady() }
