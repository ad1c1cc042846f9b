package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/domain/identity"
	"fleetdesk/internal/infrastructure/cache"
	"fleetdesk/internal/shared/authorization"
	"fleetdesk/internal/shared/config"
	"fleetdesk/internal/shared/constants"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/utils"
)

// TokenVerifier is the part of the identity provider the gate needs.
type TokenVerifier interface {
	Introspect(ctx context.Context, accessToken string) (*identity.Introspection, error)
	Logout(ctx context.Context, refreshToken string) error
}

// SessionStore is the server-side session storage used by the UI.
type SessionStore interface {
	Get(ctx context.Context, id string) (*cache.Session, error)
	Destroy(ctx context.Context, id string) error
	AddFlash(ctx context.Context, id, level, message string) error
}

// Gate admits requests based on the introspected bearer token.
type Gate struct {
	verifier TokenVerifier
	sessions SessionStore
	roles    authorization.RoleChecker
	session  config.SessionConfig
	logger   logger.Interface
}

func NewGate(
	verifier TokenVerifier,
	sessions SessionStore,
	roles authorization.RoleChecker,
	session config.SessionConfig,
	logger logger.Interface,
) *Gate {
	return &Gate{
		verifier: verifier,
		sessions: sessions,
		roles:    roles,
		session:  session,
		logger:   logger,
	}
}

// TokenActive admits any caller whose token is active.
func (g *Gate) TokenActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := g.bearerToken(c)
		if err != nil {
			g.reject(c, err)
			return
		}

		info, err := g.introspect(c, token)
		if err != nil {
			g.reject(c, err)
			return
		}
		if !info.Active {
			g.reject(c, errors.NewTokenExpiredError())
			return
		}

		g.admit(c, token, info)
	}
}

// RoleRequired admits active tokens whose realm roles satisfy role.
// Inactive tokens are rejected the same way as a missing role.
func (g *Gate) RoleRequired(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := g.bearerToken(c)
		if err != nil {
			g.reject(c, err)
			return
		}

		info, err := g.introspect(c, token)
		if err != nil {
			g.reject(c, err)
			return
		}
		if !info.Active || !g.roles.Satisfies(info.Roles, role) {
			g.reject(c, errors.NewInsufficientRoleError(role))
			return
		}

		g.admit(c, token, info)
	}
}

// SessionRequired protects UI pages. Without an active session token the
// session is discarded and the browser is sent to the login page.
func (g *Gate) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sid := utils.GetSessionID(c, g.session)

		var sess *cache.Session
		if sid != "" {
			var err error
			if sess, err = g.sessions.Get(ctx, sid); err != nil {
				g.logger.Warnw("failed to load session", "error", err)
			}
		}
		if !sess.Authenticated() {
			g.expireSession(c, sid, sess)
			return
		}

		info, err := g.verifier.Introspect(ctx, sess.AccessToken)
		if err != nil {
			g.logger.Warnw("session token introspection failed", "error", err)
		}
		if err != nil || info == nil || !info.Active {
			g.expireSession(c, sid, sess)
			return
		}

		g.admit(c, sess.AccessToken, info)
	}
}

// bearerToken reads the Authorization header, falling back to the session.
func (g *Gate) bearerToken(c *gin.Context) (string, error) {
	if header := c.GetHeader(constants.HeaderAuthorization); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" || !strings.EqualFold(parts[0], "Bearer") {
			return "", errors.NewMalformedTokenError()
		}
		return parts[1], nil
	}

	sid := utils.GetSessionID(c, g.session)
	if sid != "" && g.sessions != nil {
		sess, err := g.sessions.Get(c.Request.Context(), sid)
		if err != nil {
			g.logger.Warnw("failed to load session", "error", err)
		}
		if sess.Authenticated() {
			return sess.AccessToken, nil
		}
	}

	return "", errors.NewMissingTokenError()
}

func (g *Gate) introspect(c *gin.Context, token string) (*identity.Introspection, error) {
	info, err := g.verifier.Introspect(c.Request.Context(), token)
	if err != nil {
		return nil, errors.NewIntrospectionError(err)
	}
	if info == nil {
		return &identity.Introspection{}, nil
	}
	return info, nil
}

func (g *Gate) admit(c *gin.Context, token string, info *identity.Introspection) {
	authorization.SetPrincipal(c, authorization.Principal{
		Username: info.Username,
		FullName: info.Name,
		Roles:    info.Roles,
	})
	c.Set(authorization.ContextKeyToken, token)
	c.Next()
}

func (g *Gate) reject(c *gin.Context, err error) {
	if errors.ShouldLogAuthError(err) {
		g.logger.Errorw("authorization gate failed",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err,
		)
	}
	_ = c.Error(err)
	utils.AbortWithError(c, err)
}

func (g *Gate) expireSession(c *gin.Context, sid string, sess *cache.Session) {
	ctx := c.Request.Context()

	if sess != nil && sess.RefreshToken != "" {
		if err := g.verifier.Logout(ctx, sess.RefreshToken); err != nil {
			g.logger.Warnw("failed to revoke refresh token", "error", err)
		}
	}
	if sid != "" {
		if err := g.sessions.Destroy(ctx, sid); err != nil {
			g.logger.Warnw("failed to destroy session", "error", err)
		}
	}

	newID := cache.NewSessionID()
	if err := g.sessions.AddFlash(ctx, newID, constants.FlashWarning, constants.ErrMsgSessionExpired); err != nil {
		g.logger.Warnw("failed to store flash message", "error", err)
	} else {
		utils.SetSessionCookie(c, g.session, newID)
	}

	c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	c.Abort()
}
