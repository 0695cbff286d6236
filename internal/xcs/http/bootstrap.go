package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the system
//	@Description	Creates the first staff account. Only available when a bootstrap token is configured and only while no users exist.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token for authorization"
//	@Param			request				body		xcssdk.BootstrapRequest		true	"First staff account"
//	@Success		201					{object}	xcssdk.BootstrapResponse	"user_id of the staff account"
//	@Failure		400					{object}	xcssdk.ErrorResponse		"Invalid request body or validation failed"
//	@Failure		401					{object}	xcssdk.ErrorResponse		"Missing or invalid bootstrap token"
//	@Failure		404					{object}	xcssdk.ErrorResponse		"Bootstrap not enabled (no token configured)"
//	@Failure		409					{object}	xcssdk.ErrorResponse		"System already bootstrapped"
//	@Failure		500					{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		xcssdk.NewAPIError(http.StatusNotFound, xcssdk.ErrorCodeNotFound, "bootstrap endpoint is not enabled").WriteError(w)
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		xcssdk.NewAPIError(http.StatusUnauthorized, xcssdk.ErrorCodeUnauthorized,
			"bootstrap token is required in X-Bootstrap-Token header").WriteError(w)
		return
	}

	// 3. Parse request body and validate
	var req xcssdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if errs := req.Validate(); errs != nil {
		xcssdk.NewValidationError(errs).WriteError(w)
		return
	}

	// 4. Perform bootstrap
	u, err := h.BootstrapService.Bootstrap(r.Context(), token, service.BootstrapRequest{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, xcssdk.BootstrapResponse{UserID: u.ID})
}
