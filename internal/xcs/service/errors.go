package service

import (
	"errors"
	"fmt"

	"github.com/ppongpeauk/xcs/internal/xcs/store"
)

// Error categories. Every error returned by a service either wraps one of
// these or is an internal failure.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not_found")
	ErrValidation   = errors.New("invalid_request")
	ErrConflict     = errors.New("conflict")
)

// Error is a categorized service error. Error() is safe to show to clients.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

var (
	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid username or password")
	ErrInvalidAPIKey      = newError(ErrUnauthorized, "invalid API key")

	ErrNotAMember          = newError(ErrForbidden, "you are not a member of this organization")
	ErrInsufficientRole    = newError(ErrForbidden, "your role does not allow this action")
	ErrEqualOrHigherRole   = newError(ErrForbidden, "cannot manage a member with an equal or higher role")
	ErrOwnerRoleNotGranted = newError(ErrForbidden, "the owner role cannot be granted")
	ErrOwnerCannotLeave    = newError(ErrForbidden, "the organization owner cannot leave")
	ErrOwnerNotRemovable   = newError(ErrForbidden, "the organization owner cannot be removed")
	ErrNotRecipient        = newError(ErrForbidden, "this invitation is addressed to someone else")
	ErrNoInviteCredits     = newError(ErrForbidden, "you have no invitations left")

	ErrOrganizationNotFound = newError(ErrNotFound, "organization not found")
	ErrMemberNotFound       = newError(ErrNotFound, "member not found")
	ErrUserNotFound         = newError(ErrNotFound, "user not found")
	ErrLocationNotFound     = newError(ErrNotFound, "location not found")
	ErrAccessPointNotFound  = newError(ErrNotFound, "access point not found")
	ErrAccessGroupNotFound  = newError(ErrNotFound, "access group not found")
	ErrInvitationNotFound   = newError(ErrNotFound, "invitation not found or expired")
	ErrNotificationNotFound = newError(ErrNotFound, "notification not found")
	ErrAPIKeyNotFound       = newError(ErrNotFound, "API key not found")
	ErrCodeNotFound         = newError(ErrNotFound, "verification code not found or expired")

	ErrOrganizationNameTaken = newError(ErrConflict, "an organization with this name already exists")
	ErrAccessGroupNameTaken  = newError(ErrConflict, "an access group with this name already exists")
	ErrAlreadyMember         = newError(ErrConflict, "already a member of this organization")
	ErrAlreadyJoined         = newError(ErrConflict, "invitation already accepted")
	ErrInvitationExhausted   = newError(ErrConflict, "invitation has reached its maximum uses")
	ErrUsernameTaken         = newError(ErrConflict, "username already taken")
	ErrEmailTaken            = newError(ErrConflict, "email already in use")
	ErrAccountLinked         = newError(ErrConflict, "this account is already linked to another user")
	ErrRobloxPlaceBound      = newError(ErrConflict, "the location is already bound to a Roblox place")
)

// notFound translates store.ErrNotFound into a categorized error.
func notFound(err error, as *Error) error {
	if errors.Is(err, store.ErrNotFound) {
		return as
	}
	return err
}

// conflict translates store.ErrAlreadyExists into a categorized error.
func conflict(err error, as *Error) error {
	if errors.Is(err, store.ErrAlreadyExists) {
		return as
	}
	return err
}
