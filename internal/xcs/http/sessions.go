package http

import (
	"net/http"
	"time"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// SessionHandler handles sign-up and sign-in.
type SessionHandler struct {
	SessionService *service.SessionService
	UserService    *service.UserService
}

// HandleLogin handles POST /api/v1/login
//
//	@Summary		Sign in
//	@Description	Exchanges a username or email address and password for a session token.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		xcssdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	xcssdk.TokenResponse	"access_token, expires_in, user"
//	@Failure		400		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	s, err := h.SessionService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, xcssdk.TokenResponse{
		AccessToken: s.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(s.ExpiresAt).Seconds()),
		User:        toUser(s.User),
	})
}

// HandleRegister handles POST /api/v1/register
//
//	@Summary		Register
//	@Description	Creates an account with a platform invitation code and emails a verification code.
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		xcssdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	xcssdk.User				"The new account"
//	@Failure		400		{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	xcssdk.ErrorResponse	"Unknown or expired invitation code"
//	@Failure		409		{object}	xcssdk.ErrorResponse	"Username or email taken"
//	@Router			/api/v1/register [post].
func (h *SessionHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req xcssdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	if errs := req.Validate(); errs != nil {
		xcssdk.NewValidationError(errs).WriteError(w)
		return
	}

	u, err := h.UserService.Register(r.Context(), service.RegisterRequest{
		Code:        req.Code,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(u))
}
