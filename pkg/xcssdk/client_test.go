package xcssdk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/pkg/httpx"
)

func TestErrorResponses(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/users/{username}", func(w http.ResponseWriter, r *http.Request) {
		NewAPIError(http.StatusNotFound, ErrorCodeNotFound, "user not found").WriteError(w)
	})
	mux.HandleFunc("POST /api/v1/register", func(w http.ResponseWriter, r *http.Request) {
		NewValidationError(map[string]string{"email": "required"}).WriteError(w)
	})
	mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewSDKClient(srv.URL)
	ctx := context.Background()

	t.Run("json error body", func(t *testing.T) {
		_, err := c.GetPublicProfile(ctx, "nobody")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		require.Equal(t, ErrorCodeNotFound, apiErr.Code)
		require.Equal(t, "user not found", apiErr.Description)
		require.EqualError(t, err, "not_found: user not found")
	})

	t.Run("validation details", func(t *testing.T) {
		_, err := c.Register(ctx, RegisterRequest{Code: "X"})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, ErrorCodeInvalidRequest, apiErr.Code)
		require.Equal(t, map[string]string{"email": "required"}, apiErr.Details)
	})

	t.Run("plain text error", func(t *testing.T) {
		_, err := c.Login(ctx, "alice", "pw")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		require.Equal(t, ErrorCodeRateLimited, apiErr.Code)
	})
}

func TestDeviceSendsAPIKey(t *testing.T) {
	t.Parallel()

	var gotKey string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/access-points/{apID}/scan", func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		var req ScanRequest
		require.NoError(t, httpx.DecodeJSON(w, r, &req))
		httpx.WriteJSON(w, http.StatusOK, ScanResponse{
			Granted:   req.CardNumber == "C-1",
			Reason:    "access-group",
			MemberKey: "card:" + r.PathValue("apID"),
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	d := NewSDKClient(srv.URL).NewDevice("xcs_key_secret")
	resp, err := d.Scan(context.Background(), "ap1", ScanRequest{CardNumber: "C-1"})
	require.NoError(t, err)
	require.True(t, resp.Granted)
	require.Equal(t, "card:ap1", resp.MemberKey)
	require.Equal(t, "xcs_key_secret", gotKey)
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()

	c := NewSDKClient("http://127.0.0.1:0")
	s := newSession(c, &TokenResponse{AccessToken: "token", ExpiresIn: -10})
	_, err := s.GetMe(context.Background())
	require.ErrorIs(t, err, ErrSessionExpired)
}
