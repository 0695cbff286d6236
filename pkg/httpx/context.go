package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyAPIKey ctxKey = "api_key"
)

// UserIDFromContext returns the authenticated user id set by AuthnMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}

// APIKeyFromContext returns the raw API key set by APIKeyMiddleware.
func APIKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(CtxKeyAPIKey).(string)
	return key, ok && key != ""
}

// WithUserID is used by tests and by AuthnMiddleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}
