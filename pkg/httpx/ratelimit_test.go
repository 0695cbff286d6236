package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/pkg/httpx"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"remote addr", nil, "192.168.1.1"},
		{"forwarded for", map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1"}, "203.0.113.1"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFrom("192.168.1.1:12345")
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.IPKeyExtractor(req))
		})
	}
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := requestFrom("10.0.0.1:1")
	req = req.WithContext(httpx.WithUserID(req.Context(), "u1"))

	key := httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)(req)
	require.Equal(t, "u1:10.0.0.1", key)

	anon := requestFrom("10.0.0.1:1")
	require.Equal(t, "10.0.0.1", httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)(anon))
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	h := httpx.RateLimitMiddleware(cfg, httpx.IPKeyExtractor)(okHandler)

	for i := range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.168.1.1:1"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	require.Contains(t, rec.Body.String(), "rate_limited")

	// other clients keep their own bucket
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.168.1.2:1"))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddlewareWithoutKey(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	h := httpx.RateLimitMiddleware(cfg, func(*http.Request) string { return "" })(okHandler)

	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("1.1.1.1:1"))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitProfilesOrdered(t *testing.T) {
	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	require.Equal(t, def, httpx.ParseRateLimitFromEnv("TEST", def))

	t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "120")
	t.Setenv("RATELIMIT_TEST_BURST", "-3")

	got := httpx.ParseRateLimitFromEnv("TEST", def)
	require.Equal(t, 50, got.RequestsPerWindow)
	require.Equal(t, 2*time.Minute, got.Window)
	require.Equal(t, 10, got.Burst)
}

func TestAPIKeyIDExtractor(t *testing.T) {
	var got string
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = httpx.APIKeyIDExtractor(r)
	}), httpx.APIKeyMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(httpx.APIKeyHeader, "xcs_01ABC_se_cret")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "01ABC", got)

	require.Empty(t, httpx.APIKeyIDExtractor(httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background())))
}
