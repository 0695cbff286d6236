package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

type AccessGroupHandler struct {
	AccessGroupService *service.AccessGroupService
}

// HandleList handles GET /api/v1/organizations/{orgID}/access-groups
//
//	@Summary		List access groups
//	@Tags			Access Groups
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string					true	"Organization ID"
//	@Success		200		{array}		xcssdk.AccessGroup		"Access groups"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/access-groups [get].
func (h *AccessGroupHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.AccessGroupService.ListAccessGroups(r.Context(), r.PathValue("orgID"), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.AccessGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, toAccessGroup(g))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /api/v1/organizations/{orgID}/access-groups
//
//	@Summary		Create access group
//	@Description	Creates an organization-wide group, or a location group when type is "location".
//	@Tags			Access Groups
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string						true	"Organization ID"
//	@Param			request	body		xcssdk.AccessGroupRequest	true	"Access group"
//	@Success		201		{object}	xcssdk.AccessGroup			"The access group"
//	@Failure		400		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	xcssdk.ErrorResponse		"Name taken"
//	@Router			/api/v1/organizations/{orgID}/access-groups [post].
func (h *AccessGroupHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.AccessGroupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	g, err := h.AccessGroupService.CreateAccessGroup(r.Context(), r.PathValue("orgID"), userID(r), fromAccessGroupRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAccessGroup(g))
}

// HandleUpdate handles PUT /api/v1/organizations/{orgID}/access-groups/{groupID}
//
//	@Summary		Replace access group
//	@Tags			Access Groups
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string						true	"Organization ID"
//	@Param			groupID	path		string						true	"Access group ID"
//	@Param			request	body		xcssdk.AccessGroupRequest	true	"Access group"
//	@Success		200		{object}	xcssdk.AccessGroup			"The access group"
//	@Failure		400		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/access-groups/{groupID} [put].
func (h *AccessGroupHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.AccessGroupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	g, err := h.AccessGroupService.UpdateAccessGroup(r.Context(), r.PathValue("orgID"), userID(r),
		r.PathValue("groupID"), fromAccessGroupRequest(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAccessGroup(g))
}

// HandleDelete handles DELETE /api/v1/organizations/{orgID}/access-groups/{groupID}
//
//	@Summary		Delete access group
//	@Description	Also removes the group from every member and access point.
//	@Tags			Access Groups
//	@Security		BearerAuth
//	@Param			orgID	path	string	true	"Organization ID"
//	@Param			groupID	path	string	true	"Access group ID"
//	@Success		204		"Deleted"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/access-groups/{groupID} [delete].
func (h *AccessGroupHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.AccessGroupService.DeleteAccessGroup(r.Context(), r.PathValue("orgID"), userID(r), r.PathValue("groupID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
