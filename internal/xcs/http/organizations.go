package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// DefaultLogLimit and MaxLogLimit bound GET .../logs.
const (
	DefaultLogLimit = 50
	MaxLogLimit     = 500
)

// OrganizationHandler handles organization CRUD and the audit log.
type OrganizationHandler struct {
	OrganizationService *service.OrganizationService
}

// HandleCreate handles POST /api/v1/organizations
//
//	@Summary		Create organization
//	@Description	Creates an organization owned by the caller.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		xcssdk.CreateOrganizationRequest	true	"Organization"
//	@Success		201		{object}	xcssdk.Organization					"The organization"
//	@Failure		400		{object}	xcssdk.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	xcssdk.ErrorResponse				"Name taken"
//	@Router			/api/v1/organizations [post].
func (h *OrganizationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.CreateOrganizationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	o, err := h.OrganizationService.CreateOrganization(r.Context(), userID(r), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toOrganizationFor(o, userID(r)))
}

// HandleList handles GET /api/v1/organizations
//
//	@Summary		List organizations
//	@Description	Returns the organizations the caller is an active member of.
//	@Tags			Organizations
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		xcssdk.Organization		"Organizations"
//	@Failure		401	{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations [get].
func (h *OrganizationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.OrganizationService.ListOrganizations(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.Organization, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toOrganizationFor(o, userID(r)))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/v1/organizations/{orgID}
//
//	@Summary		Get organization
//	@Tags			Organizations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string					true	"Organization ID"
//	@Success		200		{object}	xcssdk.Organization		"The organization"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"Not a member"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID} [get].
func (h *OrganizationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	o, m, err := h.OrganizationService.GetOrganization(r.Context(), userID(r), r.PathValue("orgID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrganization(o, m.Role))
}

// HandleUpdate handles PATCH /api/v1/organizations/{orgID}
//
//	@Summary		Update organization
//	@Description	Changes name, description or avatar. Managers and above.
//	@Tags			Organizations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string								true	"Organization ID"
//	@Param			request	body		xcssdk.UpdateOrganizationRequest	true	"Fields to change"
//	@Success		200		{object}	xcssdk.Organization					"The organization"
//	@Failure		400		{object}	xcssdk.ErrorResponse				"error, error_description"
//	@Failure		403		{object}	xcssdk.ErrorResponse				"error, error_description"
//	@Failure		409		{object}	xcssdk.ErrorResponse				"Name taken"
//	@Router			/api/v1/organizations/{orgID} [patch].
func (h *OrganizationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.UpdateOrganizationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	o, err := h.OrganizationService.UpdateOrganization(r.Context(), userID(r), r.PathValue("orgID"), service.OrganizationUpdate{
		Name:        req.Name,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrganizationFor(o, userID(r)))
}

// HandleDelete handles DELETE /api/v1/organizations/{orgID}
//
//	@Summary		Delete organization
//	@Description	Deletes the organization with its locations, access points and invitations. Owner only.
//	@Tags			Organizations
//	@Security		BearerAuth
//	@Param			orgID	path	string	true	"Organization ID"
//	@Success		204		"Deleted"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID} [delete].
func (h *OrganizationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.OrganizationService.DeleteOrganization(r.Context(), userID(r), r.PathValue("orgID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLogs handles GET /api/v1/organizations/{orgID}/logs
//
//	@Summary		Organization log
//	@Description	Returns audit log entries, newest first.
//	@Tags			Organizations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string					true	"Organization ID"
//	@Param			limit	query		int						false	"Maximum entries (default 50, max 500)"
//	@Success		200		{array}		xcssdk.LogEntry			"Entries"
//	@Failure		400		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/logs [get].
func (h *OrganizationHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	limit := DefaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeBadRequest(w, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(n, MaxLogLimit)
	}

	entries, err := h.OrganizationService.ListLogs(r.Context(), userID(r), r.PathValue("orgID"), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.LogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLogEntry(e))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
