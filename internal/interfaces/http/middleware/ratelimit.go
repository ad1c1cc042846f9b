package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"fleetdesk/internal/infrastructure/ratelimit"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/utils"
)

// RateLimit enforces sliding-window limits shared through Redis. When the
// limiter is unavailable requests are let through.
type RateLimit struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
}

func NewRateLimit(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimit {
	return &RateLimit{limiter: limiter, logger: logger}
}

// PerClient limits requests per client IP.
func (rl *RateLimit) PerClient(limits ratelimit.Limits) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.allow(c, "ip:"+c.ClientIP(), limits) {
			c.Next()
			return
		}
		utils.AbortWithError(c, errors.NewRateLimitError("rate limit exceeded, please try again later"))
	}
}

// PerLogin limits login attempts per submitted username (per IP when the form
// has none). onReject renders the refusal.
func (rl *RateLimit) PerLogin(limits ratelimit.Limits, onReject gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "login:ip:" + c.ClientIP()
		if username := strings.ToLower(strings.TrimSpace(c.PostForm("username"))); username != "" {
			key = "login:user:" + username
		}

		if rl.allow(c, key, limits) {
			c.Next()
			return
		}
		rl.logger.Warnw("login rate limit exceeded", "key", key, "client_ip", c.ClientIP())
		onReject(c)
		c.Abort()
	}
}

func (rl *RateLimit) allow(c *gin.Context, key string, limits ratelimit.Limits) bool {
	allowed, err := rl.limiter.Allow(c.Request.Context(), key, limits)
	if err != nil {
		rl.logger.Warnw("rate limiter unavailable", "key", key, "error", err)
		return true
	}
	return allowed
}
