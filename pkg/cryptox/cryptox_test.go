package cryptox

import (
	"crypto/ed25519"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple", "password123"},
		{"symbols", "P@ssw0rd!#$%^&*()"},
		{"long", strings.Repeat("a", 100)},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
			require.Len(t, strings.Split(hash, "$"), 6)

			require.NoError(t, VerifyPassword(tt.password, hash))
			require.ErrorIs(t, VerifyPassword(tt.password+"x", hash), ErrPasswordMismatch)
		})
	}
}

func TestHashPasswordUsesUniqueSalts(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456",
		"$argon2id$v=19$invalid$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	} {
		err := VerifyPassword("pw", hash)
		require.Error(t, err, hash)
		require.NotErrorIs(t, err, ErrPasswordMismatch, hash)
	}
}

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	b, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.Len(t, a, 43)

	_, err = GenerateToken(0)
	require.Error(t, err)
}

func TestFingerprintToken(t *testing.T) {
	require.Equal(t, FingerprintToken("a"), FingerprintToken("a"))
	require.NotEqual(t, FingerprintToken("a"), FingerprintToken("b"))
	require.Len(t, FingerprintToken("a"), 43)
	require.True(t, EqualFingerprint(FingerprintToken("a"), FingerprintToken("a")))
	require.False(t, EqualFingerprint(FingerprintToken("a"), FingerprintToken("b")))
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(0)
	require.NoError(t, err)
	require.Len(t, code, DefaultCodeLength)
	for _, r := range code {
		require.Contains(t, CodeAlphabet, string(r))
	}

	digits, err := GenerateDigits(6)
	require.NoError(t, err)
	require.Len(t, digits, 6)
	for _, r := range digits {
		require.Contains(t, DigitAlphabet, string(r))
	}
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "ABC123", NormalizeCode(" abc-123 "))
	require.Equal(t, "ABCD", NormalizeCode("ab cd"))
}

func TestAPIKeyRoundTrip(t *testing.T) {
	key, fp, err := GenerateAPIKey("01HZX")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "xcs_01HZX_"))
	require.Equal(t, FingerprintToken(key), fp)

	id, ok := ParseAPIKey(key)
	require.True(t, ok)
	require.Equal(t, "01HZX", id)

	for _, bad := range []string{"", "xcs", "xcs_", "xcs__secret", "abc_01HZX_secret", "xcs_01HZX_"} {
		_, ok := ParseAPIKey(bad)
		require.False(t, ok, bad)
	}
}

func TestNewSigningKey(t *testing.T) {
	a, err := NewSigningKey()
	require.NoError(t, err)
	require.Len(t, a, ed25519.PrivateKeySize)

	b, err := NewSigningKey()
	require.NoError(t, err)
	require.False(t, a.Equal(b))

	msg := []byte("scan")
	require.True(t, ed25519.Verify(a.Public().(ed25519.PublicKey), msg, ed25519.Sign(a, msg)))
}
