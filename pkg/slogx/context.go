package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the request logger, or slog.Default when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// With adds attributes to the logger carried by ctx.
func With(ctx context.Context, args ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(args...))
}

// WithDevice scopes the logger to an authenticated device: the organization
// its API key belongs to and the key id. The secret is never logged.
func WithDevice(ctx context.Context, orgID, apiKeyID string) context.Context {
	return With(ctx,
		slog.String("organization_id", orgID),
		slog.String("api_key_id", apiKeyID),
	)
}
