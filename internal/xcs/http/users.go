package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/domain"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	UserService         *service.UserService
	VerificationService *service.VerificationService
	LinkService         *service.LinkService
	InviteService       *service.InviteService
}

// HandleMe handles GET /api/v1/me
//
//	@Summary		Current user
//	@Description	Returns the signed-in user's account.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	xcssdk.User				"The account"
//	@Failure		401	{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/me [get].
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetMe(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleUpdateProfile handles PATCH /api/v1/me
//
//	@Summary		Update profile
//	@Description	Changes the display name and/or avatar. Omitted fields are unchanged.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		xcssdk.UpdateProfileRequest	true	"Profile fields"
//	@Success		200		{object}	xcssdk.User					"The account"
//	@Failure		400		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Router			/api/v1/me [patch].
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	u, err := h.UserService.UpdateProfile(r.Context(), userID(r), service.ProfileUpdate{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleUpdatePrivacy handles PUT /api/v1/me/privacy
//
//	@Summary		Update privacy
//	@Description	Replaces the privacy settings.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		xcssdk.Privacy			true	"Privacy settings"
//	@Success		200		{object}	xcssdk.User				"The account"
//	@Failure		400		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/me/privacy [put].
func (h *UserHandler) HandleUpdatePrivacy(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.Privacy
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	u, err := h.UserService.UpdatePrivacy(r.Context(), userID(r), domain.Privacy(req))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandlePublicProfile handles GET /api/v1/users/{username}
//
//	@Summary		Public profile
//	@Description	Returns another user's public profile. Organizations are omitted when the user hides them.
//	@Tags			Users
//	@Produce		json
//	@Param			username	path		string					true	"Username"
//	@Success		200			{object}	xcssdk.PublicProfile	"The profile"
//	@Failure		404			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/users/{username} [get].
func (h *UserHandler) HandlePublicProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.UserService.GetPublicProfile(r.Context(), r.PathValue("username"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPublicProfile(p))
}

// HandleResendVerification handles POST /api/v1/me/email/resend
//
//	@Summary		Resend verification email
//	@Description	Emails a fresh verification code, replacing any earlier one.
//	@Tags			Users
//	@Security		BearerAuth
//	@Success		204	"Sent"
//	@Failure		401	{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	xcssdk.ErrorResponse	"Email already verified"
//	@Router			/api/v1/me/email/resend [post].
func (h *UserHandler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	if err := h.VerificationService.SendVerification(r.Context(), userID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleVerifyEmail handles POST /api/v1/me/email/verify
//
//	@Summary		Verify email
//	@Description	Confirms the email address with the mailed code.
//	@Tags			Users
//	@Accept			json
//	@Security		BearerAuth
//	@Param			request	body	xcssdk.VerifyEmailRequest	true	"Verification code"
//	@Success		204		"Verified"
//	@Failure		400		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"Unknown or expired code"
//	@Router			/api/v1/me/email/verify [post].
func (h *UserHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.VerifyEmailRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if err := h.VerificationService.VerifyEmail(r.Context(), userID(r), req.Code); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLink handles POST /api/v1/me/links/{provider}
//
//	@Summary		Link external account
//	@Description	Completes an OAuth exchange with roblox or discord and links the account.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			provider	path		string						true	"roblox or discord"
//	@Param			request		body		xcssdk.LinkAccountRequest	true	"OAuth authorization code"
//	@Success		200			{object}	xcssdk.User					"The account"
//	@Failure		400			{object}	xcssdk.ErrorResponse		"error, error_description"
//	@Failure		409			{object}	xcssdk.ErrorResponse		"Linked to another user"
//	@Router			/api/v1/me/links/{provider} [post].
func (h *UserHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.LinkAccountRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	provider := domain.LinkProvider(r.PathValue("provider"))
	u, err := h.LinkService.LinkAccount(r.Context(), userID(r), provider, req.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleUnlink handles DELETE /api/v1/me/links/{provider}
//
//	@Summary		Unlink external account
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			provider	path		string					true	"roblox or discord"
//	@Success		200			{object}	xcssdk.User				"The account"
//	@Failure		400			{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/me/links/{provider} [delete].
func (h *UserHandler) HandleUnlink(w http.ResponseWriter, r *http.Request) {
	provider := domain.LinkProvider(r.PathValue("provider"))
	u, err := h.LinkService.Unlink(r.Context(), userID(r), provider)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandlePlatformInvite handles POST /api/v1/me/invites
//
//	@Summary		Create registration code
//	@Description	Mints a platform invitation code. Uses one invite credit unless the caller is staff.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		xcssdk.PlatformInviteRequest	false	"max_uses (staff only)"
//	@Success		201		{object}	xcssdk.CreateInviteCodeResponse	"The code, shown once"
//	@Failure		403		{object}	xcssdk.ErrorResponse			"No invitations left"
//	@Router			/api/v1/me/invites [post].
func (h *UserHandler) HandlePlatformInvite(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.PlatformInviteRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(w, r, &req); err != nil {
			writeBadRequest(w, err)
			return
		}
	}

	code, inv, err := h.InviteService.CreatePlatformInvite(r.Context(), userID(r), req.MaxUses)
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
