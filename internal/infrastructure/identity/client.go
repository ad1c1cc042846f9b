// Package identity talks to a Keycloak-compatible identity provider: the OpenID
// token endpoints for end users and the admin REST API for user management.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/shared/config"
	"fleetdesk/internal/shared/logger"
)

const defaultTimeout = 10 * time.Second

// Client implements identity.Gateway.
type Client struct {
	baseURL       string
	realm         string
	clientID      string
	clientSecret  string
	protectedUser string
	timeout       time.Duration

	httpClient *http.Client
	openid     *oauth2.Config
	// admin carries the service account token of the client.
	admin  *http.Client
	logger logger.Interface
}

var _ identity.Gateway = (*Client)(nil)

func NewClient(cfg config.IdentityConfig, log logger.Interface) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := strings.TrimRight(cfg.URL, "/")
	realmURL := fmt.Sprintf("%s/realms/%s/protocol/openid-connect", base, url.PathEscape(cfg.Realm))

	httpClient := &http.Client{Timeout: timeout}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     realmURL + "/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	return &Client{
		baseURL:       base,
		realm:         cfg.Realm,
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		protectedUser: cfg.ProtectedUser,
		timeout:       timeout,
		httpClient:    httpClient,
		openid: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  realmURL + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"openid"},
		},
		admin:  cc.Client(tokenCtx),
		logger: log.Named("identity"),
	}
}

func (c *Client) openidURL(endpoint string) string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/%s", c.baseURL, url.PathEscape(c.realm), endpoint)
}

func (c *Client) adminURL(path string) string {
	return fmt.Sprintf("%s/admin/realms/%s/%s", c.baseURL, url.PathEscape(c.realm), strings.TrimLeft(path, "/"))
}

// defaultRole is the composite role every realm user carries.
func (c *Client) defaultRole() string {
	return "default-roles-" + strings.ToLower(c.realm)
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// adminDo sends an admin API request. body is JSON encoded when non-nil and the
// response decoded into out when out is non-nil.
func (c *Client) adminDo(ctx context.Context, method, path string, body, out any) (http.Header, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.adminURL(path), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.admin.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, statusError(resp.StatusCode, respBody)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	return resp.Header, nil
}

// postForm posts client-authenticated form data to an OpenID endpoint.
func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) (*http.Response, error) {
	form.Set("client_id", c.clientID)
	if c.clientSecret != "" {
		form.Set("client_secret", c.clientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.openidURL(endpoint), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	return resp, nil
}
