package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Token size constants (in bytes before encoding).
const (
	TokenSize128 = 16
	TokenSize256 = 32
)

// Alphabets for human-facing codes. CodeAlphabet drops 0/O and 1/I so codes
// survive being read aloud or typed from a screenshot.
const (
	CodeAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	DigitAlphabet = "0123456789"

	DefaultCodeLength = 10
)

// APIKeyPrefix prefixes every organization API key.
const APIKeyPrefix = "xcs"

// GenerateToken creates a random base64url token of size bytes.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken returns the SHA-256 base64url fingerprint stored in place
// of a secret so it can be looked up without keeping the plaintext.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// GenerateCode returns a shareable invitation code drawn from CodeAlphabet.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}
	return gonanoid.Generate(CodeAlphabet, length)
}

// GenerateDigits returns a numeric one-time code, used for email verification.
func GenerateDigits(length int) (string, error) {
	return gonanoid.Generate(DigitAlphabet, length)
}

// NormalizeCode folds user input onto the stored code form: trimmed, upper
// case, with separators removed.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, "-", "")
	code = strings.ReplaceAll(code, " ", "")
	return strings.ToUpper(code)
}

// GenerateAPIKey mints a key of the form xcs_<id>_<secret> and returns it
// together with its fingerprint.
func GenerateAPIKey(id string) (key, fingerprint string, err error) {
	secret, err := GenerateToken(TokenSize256)
	if err != nil {
		return "", "", err
	}
	key = APIKeyPrefix + "_" + id + "_" + secret
	return key, FingerprintToken(key), nil
}

// ParseAPIKey splits a presented key into its id. The secret may itself
// contain underscores.
func ParseAPIKey(key string) (id string, ok bool) {
	parts := strings.SplitN(key, "_", 3)
	if len(parts) != 3 || parts[0] != APIKeyPrefix || parts[1] == "" || parts[2] == "" {
		return "", false
	}
	return parts[1], true
}

// EqualFingerprint compares two fingerprints in constant time.
func EqualFingerprint(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
