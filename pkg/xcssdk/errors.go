package xcssdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ppongpeauk/xcs/pkg/httpx"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeForbidden      = "forbidden"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeConflict       = "conflict"
	ErrorCodeRateLimited    = "rate_limited"
	ErrorCodeServerError    = "server_error"
)

// APIError is an error returned by the XCS API. The server writes it and
// the SDK returns it from failed calls.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is one of the ErrorCode constants
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details is set for field validation failures
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as a JSON error body.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
		Details:          e.Details,
	})
}

// NewAPIError creates an APIError with a custom description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// NewValidationError reports per-field problems found by a Validate method.
func NewValidationError(details map[string]string) *APIError {
	return &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "validation failed for some fields",
		Details:     details,
	}
}

var (
	// ErrInvalidRequest is returned when the body or a parameter is malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidToken is returned when the bearer token is missing or invalid.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrInvalidAPIKey is returned when the X-API-Key header is missing or invalid.
	ErrInvalidAPIKey = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "the api key is missing or invalid",
	}

	ErrMethodNotAllowed = &APIError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeInvalidRequest,
		Description: "method not allowed",
	}

	// ErrServerError hides internal failures from callers.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unknown error occurred",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
// Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
			Details:     errResp.Details,
		}
	}

	// Rate limiter and mux errors are plain text.
	code := ErrorCodeServerError
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		code = ErrorCodeRateLimited
	case http.StatusNotFound:
		code = ErrorCodeNotFound
	case http.StatusUnauthorized:
		code = ErrorCodeUnauthorized
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        code,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
