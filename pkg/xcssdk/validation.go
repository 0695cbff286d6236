package xcssdk

import (
	"net/mail"
	"regexp"
	"strings"
)

const (
	requiredReason     = "required"
	usernameCharsRule  = "must be 3-16 characters of a-z, 0-9 or _"
	passwordLengthRule = "must be 8-128 characters"
)

var reUsername = regexp.MustCompile(`^[a-z0-9_]{3,16}$`)

// Validate checks the bootstrap request fields before they are sent.
// Returns a map of field names to error messages, or nil if all fields are valid.
func (b BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateAccount(errs, b.Username, b.DisplayName, b.Email, b.Password)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the registration fields. The invitation code itself is
// only checked by the server.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.Code) == "" {
		errs["code"] = requiredReason
	}
	validateAccount(errs, r.Username, r.DisplayName, r.Email, r.Password)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateAccount(errs map[string]string, username, displayName, email, password string) {
	username = strings.ToLower(strings.TrimSpace(username))
	switch {
	case username == "":
		errs["username"] = requiredReason
	case !reUsername.MatchString(username):
		errs["username"] = usernameCharsRule
	}

	if len(strings.TrimSpace(displayName)) > 32 {
		errs["display_name"] = "too long (max 32)"
	}

	email = strings.TrimSpace(email)
	if email == "" {
		errs["email"] = requiredReason
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs["email"] = "must be a plain email address"
	}

	switch {
	case password == "":
		errs["password"] = requiredReason
	case len(password) < 8 || len(password) > 128:
		errs["password"] = passwordLengthRule
	}
}
