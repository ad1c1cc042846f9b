package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/shared/config"
)

// SetSessionCookie stores the opaque session id as an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, cfg config.SessionConfig, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		cfg.CookieName,
		sessionID,
		int(cfg.MaxAge/time.Second),
		"/",
		"",
		cfg.Secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cfg config.SessionConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
}

// GetSessionID returns the session id carried by the request, or "".
func GetSessionID(c *gin.Context, cfg config.SessionConfig) string {
	id, err := c.Cookie(cfg.CookieName)
	if err != nil {
		return ""
	}
	return id
}
