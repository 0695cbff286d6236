package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// DeviceHandler serves API-key authenticated hardware and game servers.
type DeviceHandler struct {
	AccessService     *service.AccessService
	LegacySyncService *service.LegacySyncService
}

func apiKey(r *http.Request) string {
	key, _ := httpx.APIKeyFromContext(r.Context())
	return key
}

// HandleScan handles POST /api/v1/access-points/{apID}/scan
//
//	@Summary		Scan
//	@Description	Evaluates an identity presented at an access point. A denial is a 200 with granted=false.
//	@Tags			Devices
//	@Accept			json
//	@Produce		json
//	@Security		APIKeyAuth
//	@Param			apID	path		string					true	"Access point ID"
//	@Param			request	body		xcssdk.ScanRequest		true	"Presented identity"
//	@Success		200		{object}	xcssdk.ScanResponse		"The decision"
//	@Failure		400		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	xcssdk.ErrorResponse	"Invalid API key"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"Unknown access point"
//	@Router			/api/v1/access-points/{apID}/scan [post].
func (h *DeviceHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.ScanRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	d, err := h.AccessService.Scan(r.Context(), apiKey(r), r.PathValue("apID"), fromScanRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toScanResponse(d))
}

// HandleLegacySync handles GET /api/v1/axesys/sync/{locationID}
//
//	@Summary		Axesys sync
//	@Description	Returns the legacy door document for every access point of a location, keyed by access point id.
//	@Tags			Devices
//	@Produce		json
//	@Security		APIKeyAuth
//	@Param			locationID	path		string						true	"Location ID"
//	@Success		200			{object}	xcssdk.LegacySyncResponse	"Doors"
//	@Failure		401			{object}	xcssdk.ErrorResponse		"Invalid API key"
//	@Failure		404			{object}	xcssdk.ErrorResponse		"Unknown location"
//	@Router			/api/v1/axesys/sync/{locationID} [get].
func (h *DeviceHandler) HandleLegacySync(w http.ResponseWriter, r *http.Request) {
	docs, err := h.LegacySyncService.Sync(r.Context(), apiKey(r), r.PathValue("locationID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLegacy(docs))
}
