package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// LocationHandler handles locations and the access points inside them.
type LocationHandler struct {
	LocationService    *service.LocationService
	AccessPointService *service.AccessPointService
}

// HandleList handles GET /api/v1/organizations/{orgID}/locations
//
//	@Summary		List locations
//	@Tags			Locations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string					true	"Organization ID"
//	@Success		200		{array}		xcssdk.Location			"Locations"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/locations [get].
func (h *LocationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	locs, err := h.LocationService.ListLocations(r.Context(), r.PathValue("orgID"), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.Location, 0, len(locs))
	for _, l := range locs {
		out = append(out, toLocation(l))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/v1/organizations/{orgID}/locations
//
//	@Summary		Create location
//	@Tags			Locations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string					true	"Organization ID"
//	@Param			request	body		xcssdk.LocationRequest	true	"Location"
//	@Success		201		{object}	xcssdk.Location			"The location"
//	@Failure		400		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/locations [post].
func (h *LocationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.LocationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	l, err := h.LocationService.CreateLocation(r.Context(), r.PathValue("orgID"), userID(r), fromLocationRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toLocation(l))
}

// HandleGet handles GET /api/v1/locations/{locationID}
//
//	@Summary		Get location
//	@Tags			Locations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			locationID	path		string					true	"Location ID"
//	@Success		200			{object}	xcssdk.Location			"The location"
//	@Failure		403			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/locations/{locationID} [get].
func (h *LocationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	l, err := h.LocationService.GetLocation(r.Context(), userID(r), r.PathValue("locationID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLocation(l))
}

// HandleUpdate handles PUT /api/v1/locations/{locationID}
//
//	@Summary		Replace location
//	@Description	Omitted Roblox ids keep the current binding; a bound location cannot move to another place.
//	@Tags			Locations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			locationID	path		string					true	"Location ID"
//	@Param			request		body		xcssdk.LocationRequest	true	"Location"
//	@Success		200			{object}	xcssdk.Location			"The location"
//	@Failure		400			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		409			{object}	xcssdk.ErrorResponse	"Already bound to another place"
//	@Router			/api/v1/locations/{locationID} [put].
func (h *LocationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.LocationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	l, err := h.LocationService.UpdateLocation(r.Context(), userID(r), r.PathValue("locationID"), fromLocationRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toLocation(l))
}

// HandleDelete handles DELETE /api/v1/locations/{locationID}
//
//	@Summary		Delete location
//	@Description	Deletes the location, its access points and its location access groups.
//	@Tags			Locations
//	@Security		BearerAuth
//	@Param			locationID	path	string	true	"Location ID"
//	@Success		204			"Deleted"
//	@Failure		403			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/locations/{locationID} [delete].
func (h *LocationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.LocationService.DeleteLocation(r.Context(), userID(r), r.PathValue("locationID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListAccessPoints handles GET /api/v1/locations/{locationID}/access-points
//
//	@Summary		List access points
//	@Tags			Access Points
//	@Produce		json
//	@Security		BearerAuth
//	@Param			locationID	path		string					true	"Location ID"
//	@Success		200			{array}		xcssdk.AccessPoint		"Access points"
//	@Failure		403			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/locations/{locationID}/access-points [get].
func (h *LocationHandler) HandleListAccessPoints(w http.ResponseWriter, r *http.Request) {
	aps, err := h.AccessPointService.ListAccessPoints(r.Context(), userID(r), r.PathValue("locationID"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.AccessPoint, 0, len(aps))
	for _, ap := range aps {
		out = append(out, toAccessPoint(ap))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreateAccessPoint handles POST /api/v1/locations/{locationID}/access-points
//
//	@Summary		Create access point
//	@Tags			Access Points
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			locationID	path		string						true	"Location ID"
//	@Param			request		body		xcssdk.AccessPointRequest	true	"Access point"
//	@Success		201			{object}	xcssdk.AccessPoint			"The access point"
//	@Failure		400			{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		403			{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/locations/{locationID}/access-points [post].
func (h *LocationHandler) HandleCreateAccessPoint(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.AccessPointRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	ap, err := h.AccessPointService.CreateAccessPoint(r.Context(), userID(r), r.PathValue("locationID"), fromAccessPointRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAccessPoint(ap))
}

// HandleGetAccessPoint handles GET /api/v1/access-points/{apID}
//
//	@Summary		Get access point
//	@Tags			Access Points
//	@Produce		json
//	@Security		BearerAuth
//	@Param			apID	path		string					true	"Access point ID"
//	@Success		200		{object}	xcssdk.AccessPoint		"The access point"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/access-points/{apID} [get].
func (h *LocationHandler) HandleGetAccessPoint(w http.ResponseWriter, r *http.Request) {
	ap, err := h.AccessPointService.GetAccessPoint(r.Context(), userID(r), r.PathValue("apID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccessPoint(ap))
}

// HandleUpdateAccessPoint handles PUT /api/v1/access-points/{apID}
//
//	@Summary		Replace access point
//	@Tags			Access Points
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			apID	path		string						true	"Access point ID"
//	@Param			request	body		xcssdk.AccessPointRequest	true	"Access point"
//	@Success		200		{object}	xcssdk.AccessPoint			"The access point"
//	@Failure		400		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/access-points/{apID} [put].
func (h *LocationHandler) HandleUpdateAccessPoint(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.AccessPointRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	ap, err := h.AccessPointService.UpdateAccessPoint(r.Context(), userID(r), r.PathValue("apID"), fromAccessPointRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccessPoint(ap))
}

// HandleDeleteAccessPoint handles DELETE /api/v1/access-points/{apID}
//
//	@Summary		Delete access point
//	@Tags			Access Points
//	@Security		BearerAuth
//	@Param			apID	path	string	true	"Access point ID"
//	@Success		204		"Deleted"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/access-points/{apID} [delete].
func (h *LocationHandler) HandleDeleteAccessPoint(w http.ResponseWriter, r *http.Request) {
	if err := h.AccessPointService.DeleteAccessPoint(r.Context(), userID(r), r.PathValue("apID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
