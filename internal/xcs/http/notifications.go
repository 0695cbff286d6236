package http

import (
	"net/http"

	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/pkg/httpx"
	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

// NotificationHandler lists notifications and answers invitations.
type NotificationHandler struct {
	NotificationService *service.NotificationService
	MembershipService   *service.MembershipService
}

// HandleList handles GET /api/v1/notifications
//
//	@Summary		List notifications
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		xcssdk.Notification		"Notifications, newest first"
//	@Failure		401	{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/notifications [get].
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	notes, err := h.NotificationService.ListNotifications(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]xcssdk.Notification, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNotification(n))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRead handles POST /api/v1/notifications/{id}/read
//
//	@Summary		Mark notification read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Notification ID"
//	@Success		204	"Marked"
//	@Failure		403	{object}	xcssdk.ErrorResponse	"Addressed to someone else"
//	@Failure		404	{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/notifications/{id}/read [post].
func (h *NotificationHandler) HandleRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationService.MarkRead(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAccept handles POST /api/v1/notifications/{id}/accept
//
//	@Summary		Accept invitation
//	@Description	Joins the organization the invitation is for.
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Notification ID"
//	@Success		200	{object}	xcssdk.Organization		"The joined organization"
//	@Failure		403	{object}	xcssdk.ErrorResponse	"Addressed to someone else"
//	@Failure		404	{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	xcssdk.ErrorResponse	"Already accepted"
//	@Router			/api/v1/notifications/{id}/accept [post].
func (h *NotificationHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	o, err := h.MembershipService.AcceptInvitation(r.Context(), r.PathValue("id"), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toOrganizationFor(o, userID(r)))
}

// HandleReject handles POST /api/v1/notifications/{id}/reject
//
//	@Summary		Reject invitation
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Notification ID"
//	@Success		204	"Rejected"
//	@Failure		403	{object}	xcssdk.ErrorResponse	"Addressed to someone else"
//	@Failure		404	{object}	xcssdk.ErrorResponse	"error, error_description"
//	@Router			/api/v1/notifications/{id}/reject [post].
func (h *NotificationHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	if err := h.MembershipService.RejectInvitation(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
