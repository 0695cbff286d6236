package http

import (
	"net/http"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// InviteHandler handles organization invite codes.
type InviteHandler struct {
	InviteService *service.InviteService
}

// HandleCreate handles POST /api/v1/organizations/{orgID}/invite-codes
//
//	@Summary		Create invite code
//	@Description	Mints a shareable code that adds the redeemer as an active member. The plaintext is only returned once.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string							true	"Organization ID"
//	@Param			request	body		xcssdk.CreateInviteCodeRequest	true	"Invite request"
//	@Success		201		{object}	xcssdk.CreateInviteCodeResponse	"code, invite_code"
//	@Failure		400		{object}	xcssdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	xcssdk.ErrorResponse			"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/invite-codes [post].
func (h *InviteHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.CreateInviteCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	code, inv, err := h.InviteService.CreateInviteCode(r.Context(), r.PathValue("orgID"), userID(r), service.InviteCodeRequest{
		Role:         domain.Role(req.Role),
		MaxUses:      req.MaxUses,
		ExpiresIn:    time.Duration(req.ExpiresIn) * time.Second,
		AccessGroups: req.AccessGroups,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, xcssdk.CreateInviteCodeResponse{
		Code:       code,
		InviteCode: toInviteCode(inv),
	})
}

// HandleList handles GET /api/v1/organizations/{orgID}/invite-codes
//
//	@Summary		List invite codes
//	@Tags			Invitations
//	@Produce		json
//	@Security		BearerAuth
//	@Param			orgID	path		string					true	"Organization ID"
//	@Success		200		{array}		xcssdk.InviteCode		"Outstanding codes"
//	@Failure		403		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/invite-codes [get].
func (h *InviteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	invs, err := h.InviteService.ListInviteCodes(r.Context(), r.PathValue("orgID"), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.InviteCode, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInviteCode(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRevoke handles DELETE /api/v1/organizations/{orgID}/invite-codes/{inviteID}
//
//	@Summary		Revoke invite code
//	@Tags			Invitations
//	@Security		BearerAuth
//	@Param			orgID		path	string	true	"Organization ID"
//	@Param			inviteID	path	string	true	"Invite code ID"
//	@Success		204			"Revoked"
//	@Failure		403			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/organizations/{orgID}/invite-codes/{inviteID} [delete].
func (h *InviteHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.InviteService.RevokeInviteCode(r.Context(), r.PathValue("orgID"), userID(r), r.PathValue("inviteID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandlePreview handles GET /api/v1/invites/{code}
//
//	@Summary		Preview invite code
//	@Description	Shows which organization and role a code grants, without redeeming it.
//	@Tags			Invitations
//	@Produce		json
//	@Param			code	path		string					true	"Invite code"
//	@Success		200		{object}	xcssdk.InvitePreview	"Preview"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"Unknown or expired code"
//	@Router			/api/v1/invites/{code} [get].
func (h *InviteHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	p, err := h.InviteService.PreviewInviteCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, xcssdk.InvitePreview{
		OrganizationID:   p.OrganizationID,
		OrganizationName: p.OrganizationName,
		AvatarURL:        p.AvatarURL,
		Role:             int(p.Role),
		ExpiresAt:        p.ExpiresAt,
	})
}

// HandleRedeem handles POST /api/v1/invites/redeem
//
//	@Summary		Redeem invite code
//	@Description	Joins the organization as an active member.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		xcssdk.RedeemInviteRequest	true	"Invite code"
//	@Success		200		{object}	xcssdk.Organization			"The joined organization"
//	@Failure		404		{object}	xcssdk.ErrorResponse		"Unknown or expired code"
//	@Failure		409		{object}	xcssdk.ErrorResponse		"Already a member or code exhausted"
//	@Router			/api/v1/invites/redeem [post].
func (h *InviteHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.RedeemInviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	o, err := h.InviteService.RedeemInviteCode(r.Context(), req.Code, userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrganizationFor(o, userID(r)))
}
