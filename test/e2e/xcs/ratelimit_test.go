package xcs_test

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/pkg/xcssdk"
)

func requireRateLimited(t *testing.T, err error) {
	t.Helper()

	var apiErr *xcssdk.APIError
	require.True(t, errors.As(err, &apiErr), "want *APIError, got: %v", err)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Equal(t, xcssdk.ErrorCodeRateLimited, apiErr.Code)
}

// TestRateLimitLogin verifies the login endpoint allows 5 attempts a minute.
func TestRateLimitLogin(t *testing.T) {
	client := setupContainerWithDefaultRateLimits(t)
	ctx := t.Context()

	for i := range 5 {
		_, err := client.Login(ctx, "nobody", "wrong password")
		assertAPIError(t, err, http.StatusUnauthorized, "Attempt should fail on credentials, not rate limit")
		t.Logf("attempt %d rejected with 401", i+1)
	}

	_, err := client.Login(ctx, "nobody", "wrong password")
	requireRateLimited(t, err)
}

// TestRateLimitBootstrap verifies the one-time setup endpoint is strict.
func TestRateLimitBootstrap(t *testing.T) {
	client := setupContainerWithDefaultRateLimits(t)
	ctx := t.Context()

	req := xcssdk.BootstrapRequest{Username: staffUsername, Email: staffEmail, Password: staffPassword}
	for range 5 {
		_, err := client.Bootstrap(ctx, "wrong-token", req)
		assertAPIError(t, err, http.StatusUnauthorized, "Wrong token should be rejected")
	}

	_, err := client.Bootstrap(ctx, bootstrapToken, req)
	requireRateLimited(t, err)
}

// TestRateLimitHeaders verifies the retry hints on a limited response.
func TestRateLimitHeaders(t *testing.T) {
	client := setupContainerWithDefaultRateLimits(t)

	var resp *http.Response
	for range 6 {
		var err error
		resp, err = http.Post(client.BaseURL+"/api/v1/login", "application/json",
			strings.NewReader(`{"login":"nobody","password":"wrong password"}`))
		require.NoError(t, err)
		if resp.StatusCode == http.StatusTooManyRequests {
			break
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
	defer resp.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
	require.Equal(t, "5", resp.Header.Get("X-RateLimit-Limit"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), xcssdk.ErrorCodeRateLimited)
}
