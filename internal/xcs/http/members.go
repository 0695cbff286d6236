package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// MemberHandler handles the member lifecycle of an organization.
type MemberHandler struct {
	MembershipService *service.MembershipService
}

// HandleList handles GET /api/v1/organizations/{orgID}/members
//
//	@Summary		List members
//	@Description	Returns every member entry, invited and active.
//	@Tags			Members
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string					true	"Organization ID"
//	@Success		200		{array}		xcssdk.Member			"Members"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/members [get].
func (h *MemberHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.MembershipService.ListMembers(r.Context(), r.PathValue("orgID"), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toMember(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleInvite handles POST /api/v1/organizations/{orgID}/members/invitations
//
//	@Summary		Invite user
//	@Description	Adds a platform user as an invited member and notifies them. The role must be below the caller's.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string						true	"Organization ID"
//	@Param			request	body		xcssdk.InviteMemberRequest	true	"Recipient id or username"
//	@Success		201		{object}	xcssdk.Member				"The invited member"
//	@Failure		400		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse		"Unknown user"
//	@Failure		409		{object}	xcssdk.ErrorResponse		"Already a member"
//	@Router			/api/v1/organizations/{orgID}/members/invitations [post].
func (h *MemberHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.InviteMemberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m, err := h.MembershipService.CreateInvitation(r.Context(), r.PathValue("orgID"), userID(r),
		req.Recipient, domain.Role(req.Role), req.AccessGroups)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMember(m))
}

// HandleAddRoblox handles POST /api/v1/organizations/{orgID}/members/roblox
//
//	@Summary		Add Roblox user
//	@Description	Adds a Roblox account as an active guest member.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string							true	"Organization ID"
//	@Param			request	body		xcssdk.AddRobloxMemberRequest	true	"Roblox user"
//	@Success		201		{object}	xcssdk.Member					"The member"
//	@Failure		400		{object}	xcssdk.ErrorResponse			"error, error_description"
//	@Failure		409		{object}	xcssdk.ErrorResponse			"Already a member"
//	@Router			/api/v1/organizations/{orgID}/members/roblox [post].
func (h *MemberHandler) HandleAddRoblox(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.AddRobloxMemberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m, err := h.MembershipService.AddRobloxMember(r.Context(), r.PathValue("orgID"), userID(r), req.RobloxUserID, req.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMember(m))
}

// HandleAddRobloxGroup handles POST /api/v1/organizations/{orgID}/members/roblox-groups
//
//	@Summary		Add Roblox group
//	@Description	Admits members of a Roblox group, optionally limited to some rolesets.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string								true	"Organization ID"
//	@Param			request	body		xcssdk.AddRobloxGroupMemberRequest	true	"Roblox group"
//	@Success		201		{object}	xcssdk.Member						"The member"
//	@Failure		400		{object}	xcssdk.ErrorResponse				"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/members/roblox-groups [post].
func (h *MemberHandler) HandleAddRobloxGroup(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.AddRobloxGroupMemberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m, err := h.MembershipService.AddRobloxGroupMember(r.Context(), r.PathValue("orgID"), userID(r),
		req.GroupID, req.GroupName, req.Rolesets)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMember(m))
}

// HandleAddCard handles POST /api/v1/organizations/{orgID}/members/cards
//
//	@Summary		Add card member
//	@Description	Registers a set of physical card numbers as a member.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string						true	"Organization ID"
//	@Param			request	body		xcssdk.AddCardMemberRequest	true	"Cards"
//	@Success		201		{object}	xcssdk.Member				"The member"
//	@Failure		400		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/members/cards [post].
func (h *MemberHandler) HandleAddCard(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.AddCardMemberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	m, err := h.MembershipService.AddCardMember(r.Context(), r.PathValue("orgID"), userID(r), req.Name, req.Numbers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toMember(m))
}

// HandleUpdate handles PATCH /api/v1/organizations/{orgID}/members/{key}
//
//	@Summary		Update member
//	@Description	Changes role, access groups or scan data. The member and the new role must be below the caller's role.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string						true	"Organization ID"
//	@Param			key		path		string						true	"Member key"
//	@Param			request	body		xcssdk.UpdateMemberRequest	true	"Fields to change"
//	@Success		200		{object}	xcssdk.Member				"The member"
//	@Failure		400		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/members/{key} [patch].
func (h *MemberHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.UpdateMemberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	upd := service.MemberUpdate{AccessGroups: req.AccessGroups, ScanData: req.ScanData}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		upd.Role = &role
	}

	m, err := h.MembershipService.UpdateMember(r.Context(), r.PathValue("orgID"), userID(r), r.PathValue("key"), upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toMember(m))
}

// HandleRemove handles DELETE /api/v1/organizations/{orgID}/members/{key}
//
//	@Summary		Remove member
//	@Tags			Members
//	@Security		BearerAuth
//	@Param			orgID	path	string	true	"Organization ID"
//	@Param			key		path	string	true	"Member key"
//	@Success		204		"Removed"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/members/{key} [delete].
func (h *MemberHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	if err := h.MembershipService.Remove(r.Context(), r.PathValue("orgID"), userID(r), r.PathValue("key")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLeave handles POST /api/v1/organizations/{orgID}/leave
//
//	@Summary		Leave organization
//	@Description	Removes the caller's own membership. The owner cannot leave.
//	@Tags			Members
//	@Security		BearerAuth
//	@Param			orgID	path	string	true	"Organization ID"
//	@Success		204		"Left"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/leave [post].
func (h *MemberHandler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	if err := h.MembershipService.Leave(r.Context(), r.PathValue("orgID"), userID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
