package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ppongpeauk/xcs/pkg/httpx"
)

type staticResolver map[string]string

func (s staticResolver) Resolve(_ context.Context, bearer string) (string, bool) {
	id, ok := s[bearer]
	return id, ok
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	httpx.Chain(okHandler, mw("a"), mw("b"), mw("c")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	resolver := staticResolver{"good": "user-1"}

	var seen string
	h := httpx.AuthnMiddleware(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.UserIDFromContext(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		code   int
		user   string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, ""},
		{"valid token", "Bearer good", http.StatusOK, "user-1"},
		{"lowercase scheme", "bearer good", http.StatusOK, "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.code, rec.Code)
			require.Equal(t, tt.user, seen)
			if tt.code == http.StatusUnauthorized {
				require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Bearer"))
			}
		})
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	h := httpx.APIKeyMiddleware()(okHandler)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(httpx.APIKeyHeader, "xcs_a_b")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"valid", `{"name":"acme"}`, false},
		{"empty", ``, true},
		{"unknown field", `{"name":"acme","extra":1}`, true},
		{"trailing object", `{"name":"a"}{"name":"b"}`, true},
		{"malformed", `{"name":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst body
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))
			err := httpx.DecodeJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "acme", dst.Name)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]string{"id": "1"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"id":"1"}`, rec.Body.String())
}
