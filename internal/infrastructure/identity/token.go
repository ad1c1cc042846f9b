package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"fleetdesk/internal/domain/identity"
	apperrors "fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/utils/logutil"
)

func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

func toToken(t *oauth2.Token) *identity.Token {
	expiresIn := int(t.ExpiresIn)
	if expiresIn == 0 && !t.Expiry.IsZero() {
		expiresIn = int(time.Until(t.Expiry).Round(time.Second).Seconds())
	}
	return &identity.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresIn:    expiresIn,
		Expiry:       t.Expiry,
	}
}

// tokenError turns a grant failure into an invalid login when the provider
// answered, and into an unexpected error when it could not be reached.
func tokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		if retrieveErr.Response != nil && retrieveErr.Response.StatusCode >= http.StatusInternalServerError {
			return apperrors.NewUnexpectedError("identity provider failed to issue a token").WithCause(err)
		}
		detail := retrieveErr.ErrorDescription
		if detail == "" {
			detail = retrieveErr.ErrorCode
		}
		return apperrors.NewInvalidLoginError(detail)
	}
	return mapTransportError(err)
}

func (c *Client) IssueToken(ctx context.Context, username, password string) (*identity.Token, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	tok, err := c.openid.PasswordCredentialsToken(c.oauthContext(ctx), username, password)
	if err != nil {
		return nil, tokenError(err)
	}
	return toToken(tok), nil
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*identity.Token, error) {
	if refreshToken == "" {
		return nil, apperrors.NewInvalidLoginError("refresh token is required")
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	expired := &oauth2.Token{RefreshToken: refreshToken, Expiry: time.Now().Add(-time.Minute)}
	tok, err := c.openid.TokenSource(c.oauthContext(ctx), expired).Token()
	if err != nil {
		return nil, tokenError(err)
	}
	return toToken(tok), nil
}

type introspectionResponse struct {
	Active      bool   `json:"active"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"sub"`
	RealmAccess *struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

func (c *Client) Introspect(ctx context.Context, accessToken string) (*identity.Introspection, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.postForm(ctx, "token/introspect", url.Values{"token": {accessToken}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("introspection failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var ir introspectionResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return nil, fmt.Errorf("failed to decode introspection: %w", err)
	}

	out := &identity.Introspection{
		Active:   ir.Active,
		Username: ir.Username,
		Name:     ir.Name,
		Email:    ir.Email,
		Subject:  ir.Subject,
	}
	if ir.RealmAccess != nil {
		out.Roles = ir.RealmAccess.Roles
	}
	if !out.Active {
		c.logger.Debugw("token is not active", "token", logutil.TruncateForLog(accessToken, 8))
	}
	return out, nil
}

// Logout ends the provider session of refreshToken.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.postForm(ctx, "logout", url.Values{"refresh_token": {refreshToken}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return statusError(resp.StatusCode, body)
	}
	return nil
}
