package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// writeError maps a service error onto its HTTP status. Uncategorized
// errors are logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	desc := err.Error()
	if errors.As(err, &svcErr) {
		desc = svcErr.Msg
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		xcssdk.NewAPIError(http.StatusBadRequest, xcssdk.ErrorCodeInvalidRequest, desc).WriteError(w)
	case errors.Is(err, service.ErrUnauthorized):
		xcssdk.NewAPIError(http.StatusUnauthorized, xcssdk.ErrorCodeUnauthorized, desc).WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		xcssdk.NewAPIError(http.StatusForbidden, xcssdk.ErrorCodeForbidden, desc).WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		xcssdk.NewAPIError(http.StatusNotFound, xcssdk.ErrorCodeNotFound, desc).WriteError(w)
	case errors.Is(err, service.ErrConflict):
		xcssdk.NewAPIError(http.StatusConflict, xcssdk.ErrorCodeConflict, desc).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		xcssdk.ErrServerError.WriteError(w)
	}
}

// writeBadRequest reports a malformed body or parameter.
func writeBadRequest(w http.ResponseWriter, err error) {
	xcssdk.NewAPIError(http.StatusBadRequest, xcssdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
}

// userID returns the authenticated caller. AuthnMiddleware guarantees it is
// set on every route that calls this.
func userID(r *http.Request) string {
	id, _ := httpx.UserIDFromContext(r.Context())
	return id
}
