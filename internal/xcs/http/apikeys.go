package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// APIKeyHandler manages organization device credentials.
type APIKeyHandler struct {
	APIKeyService *service.APIKeyService
}

// HandleCreate handles POST /api/v1/organizations/{orgID}/api-keys
//
//	@Summary		Create API key
//	@Description	Creates a device credential. The key is only returned once. Owner only.
//	@Tags			API Keys
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string						true	"Organization ID"
//	@Param			request	body		xcssdk.CreateAPIKeyRequest	true	"Key name"
//	@Success		201		{object}	xcssdk.CreateAPIKeyResponse	"key and api_key"
//	@Failure		400		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/api-keys [post].
func (h *APIKeyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.CreateAPIKeyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	key, k, err := h.APIKeyService.CreateAPIKey(r.Context(), r.PathValue("orgID"), userID(r), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Key is only returned once at creation time
	httpx.WriteJSON(w, http.StatusCreated, xcssdk.CreateAPIKeyResponse{
		Key:    key,
		APIKey: toAPIKey(k),
	})
}

// HandleList handles GET /api/v1/organizations/{orgID}/api-keys
//
//	@Summary		List API keys
//	@Tags			API Keys
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string					true	"Organization ID"
//	@Success		200		{array}		xcssdk.APIKey			"Keys"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/api-keys [get].
func (h *APIKeyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	keys, err := h.APIKeyService.ListAPIKeys(r.Context(), r.PathValue("orgID"), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.APIKey, 0, len(keys))
	for _, k := range keys {
		out = append(out, toAPIKey(k))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRevoke handles DELETE /api/v1/organizations/{orgID}/api-keys/{keyID}
//
//	@Summary		Revoke API key
//	@Tags			API Keys
//	@Security		BearerAuth
//	@Param			orgID	path	string	true	"Organization ID"
//	@Param			keyID	path	string	true	"API key ID"
//	@Success		204		"Revoked"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/api-keys/{keyID} [delete].
func (h *APIKeyHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.APIKeyService.RevokeAPIKey(r.Context(), r.PathValue("orgID"), userID(r), r.PathValue("keyID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
