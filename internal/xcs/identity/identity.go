// Package identity resolves bearer credentials into the calling user's id.
package identity

import (
	"context"
	"log/slog"

	"github.com/ppongpeauk/xcs/pkg/idx"
	"github.com/ppongpeauk/xcs/pkg/jwtx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// JWTResolver accepts session tokens minted by the session service.
type JWTResolver struct {
	Verifier jwtx.Verifier
}

// Resolve verifies the token and returns its subject. The subject must be a
// well formed user id.
func (r *JWTResolver) Resolve(ctx context.Context, bearer string) (string, bool) {
	if r == nil || r.Verifier == nil || bearer == "" {
		return "", false
	}

	claims, err := r.Verifier.Verify(bearer)
	if err != nil {
		slogx.FromContext(ctx).Debug("session token rejected", slog.String("error", err.Error()))
		return "", false
	}

	if !idx.Valid(claims.Subject) {
		slogx.FromContext(ctx).Warn("session token has malformed subject", slog.String("sub", claims.Subject))
		return "", false
	}

	return claims.Subject, true
}
