package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// IdentityResolver maps a bearer credential to a user id. Implementations
// never fail loudly; an unusable token is simply ok=false.
type IdentityResolver interface {
	Resolve(ctx context.Context, bearer string) (userID string, ok bool)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) < 7 || !strings.EqualFold(authz[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[7:])
}

// AuthnMiddleware rejects requests without a resolvable bearer token and
// stores the user id in the request context.
func AuthnMiddleware(res IdentityResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := BearerToken(r)
			if raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			userID, ok := res.Resolve(ctx, raw)
			if !ok {
				slogx.FromContext(ctx).Warn("bearer token rejected")
				writeBearerError(w, "invalid or expired token")
				return
			}

			ctx = slogx.With(WithUserID(ctx, userID), slog.String("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// APIKeyHeader carries organization API keys for device endpoints.
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware requires an API key header. Validation against the store
// happens in the service that consumes it.
func APIKeyMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
			if key == "" {
				WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"error":             "unauthorized",
					"error_description": "missing API key",
				})
				return
			}
			ctx := context.WithValue(r.Context(), CtxKeyAPIKey, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthorized",
		"error_description": desc,
	})
}
