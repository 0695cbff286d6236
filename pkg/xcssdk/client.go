package xcssdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the XCS API. It provides the public
// operations and creates authenticated Sessions and Devices.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new XCS API client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetJWKS retrieves the key set used to sign session tokens.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}

// Bootstrap creates the first staff account. It only succeeds once.
func (c *SDKClient) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/bootstrap", req, map[string]string{
		"X-Bootstrap-Token": token,
	})
	if err != nil {
		return nil, err
	}

	var out BootstrapResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account using a platform invitation code.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/register", req, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON(resp, &u, http.StatusCreated); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for a session token.
func (c *SDKClient) Login(ctx context.Context, login, password string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/login", LoginRequest{Login: login, Password: password}, nil)
	if err != nil {
		return nil, err
	}

	var tok TokenResponse
	if err := decodeJSON(resp, &tok, http.StatusOK); err != nil {
		return nil, err
	}
	return &tok, nil
}

// AuthenticateWithPassword logs in and returns a Session.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, login, password string) (*Session, error) {
	tok, err := c.Login(ctx, login, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, tok), nil
}

// GetPublicProfile returns another user's public profile.
func (c *SDKClient) GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/users/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err
	}

	var p PublicProfile
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}

// PreviewInvite shows which organization a code would join.
func (c *SDKClient) PreviewInvite(ctx context.Context, code string) (*InvitePreview, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/invites/"+url.PathEscape(code), nil, nil)
	if err != nil {
		return nil, err
	}

	var p InvitePreview
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}
