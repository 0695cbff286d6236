package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/jwtx"
)

const testIssuer = "xcs-test"

func newSigner(t *testing.T, kid string) *jwtx.EdDSASigner {
	t.Helper()
	key, err := cryptox.NewSigningKey()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(kid, key)
	require.NoError(t, err)
	return signer
}

func TestSignAndVerify(t *testing.T) {
	signer := newSigner(t, "k1")

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	claims := jwtx.NewSessionClaims("user-1", "alice", "Alice", true, 5*time.Minute, testIssuer, []string{"xcs"}, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := jwtx.NewVerifierEdDSA(keys, testIssuer, []string{"xcs"}).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.Equal(t, "Alice", got.DisplayName)
	require.True(t, got.Staff)
	require.NotEmpty(t, got.ID)
}

func TestVerifyRejects(t *testing.T) {
	signer := newSigner(t, "k1")
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	now := time.Now().UTC()

	tests := []struct {
		name     string
		claims   jwtx.Claims
		signer   jwtx.Signer
		issuer   string
		audience []string
	}{
		{
			name:   "wrong issuer",
			claims: jwtx.NewSessionClaims("u", "u", "", false, time.Minute, "other", nil, now),
			signer: signer,
			issuer: testIssuer,
		},
		{
			name:     "wrong audience",
			claims:   jwtx.NewSessionClaims("u", "u", "", false, time.Minute, testIssuer, []string{"a"}, now),
			signer:   signer,
			issuer:   testIssuer,
			audience: []string{"b"},
		},
		{
			name:   "expired",
			claims: jwtx.NewSessionClaims("u", "u", "", false, time.Minute, testIssuer, nil, now.Add(-time.Hour)),
			signer: signer,
			issuer: testIssuer,
		},
		{
			name:   "unknown key",
			claims: jwtx.NewSessionClaims("u", "u", "", false, time.Minute, testIssuer, nil, now),
			signer: newSigner(t, "k2"),
			issuer: testIssuer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.signer.Sign(tt.claims)
			require.NoError(t, err)

			_, err = jwtx.NewVerifierEdDSA(keys, tt.issuer, tt.audience).Verify(token)
			require.Error(t, err)
		})
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(newSigner(t, "k1")))

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtx.Claims{})
	tok.Header["kid"] = "k1"
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = jwtx.NewVerifierEdDSA(keys, "", nil).Verify(signed)
	require.Error(t, err)
}

func TestKeySetPublishesJWKS(t *testing.T) {
	keys := jwtx.NewKeySet()
	require.False(t, keys.IsReady())

	require.NoError(t, keys.AddSigner(newSigner(t, "k1")))
	require.True(t, keys.IsReady())

	jwks := keys.PublicJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
	require.Equal(t, "Ed25519", jwks.Keys[0].Crv)
	require.Equal(t, "EdDSA", jwks.Keys[0].Alg)

	_, err := keys.Get("missing")
	require.ErrorIs(t, err, jwtx.ErrNoKey)

	require.Error(t, keys.AddJWK(jwtx.JWK{Kty: "RSA"}))
}

func TestEphemeralKeyManager(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, NumKeys: 20})
	require.NoError(t, err)
	require.Equal(t, 10, km.NumSigners())
	require.True(t, km.IsReady())

	signer := km.GetSigner()
	require.True(t, strings.HasPrefix(signer.KID(), "xcs-"))

	token, err := signer.Sign(jwtx.NewSessionClaims("u", "u", "", false, time.Minute, testIssuer, nil, time.Now().UTC()))
	require.NoError(t, err)

	claims, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "u", claims.Subject)
}
