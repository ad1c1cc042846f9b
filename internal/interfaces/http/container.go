package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fleetdesk/internal/infrastructure/cache"
	"fleetdesk/internal/infrastructure/config"
	"fleetdesk/internal/infrastructure/health"
	infraIdentity "fleetdesk/internal/infrastructure/identity"
	"fleetdesk/internal/infrastructure/permission"
	"fleetdesk/internal/infrastructure/ratelimit"
	pagetemplate "fleetdesk/internal/infrastructure/template"
	"fleetdesk/internal/interfaces/http/middleware"
	"fleetdesk/internal/shared/db"
	"fleetdesk/internal/shared/logger"
)

// Container holds the infrastructure components, application services and
// handlers, wired in a fixed order. Shutdown releases what it opened.
type Container struct {
	// Core infrastructure
	engine    *gin.Engine
	db        *gorm.DB
	cfg       *config.Config
	log       logger.Interface
	redis     *redis.Client
	startedAt time.Time

	repos *repositories
	svcs  *services
	hdlrs *allHandlers

	txManager *db.TransactionManager
	identity  *infraIdentity.Client
	enforcer  *permission.Enforcer
	sessions  *cache.SessionStore
	limiter   ratelimit.RateLimiter
	pages     *pagetemplate.PageRenderer
	health    *health.Checker

	// Middlewares
	gate      *middleware.Gate
	wrapper   *middleware.Wrapper
	rateLimit *middleware.RateLimit
}

// NewContainer wires everything behind the HTTP server. startedAt feeds the
// uptime shown on the dashboard.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface, startedAt time.Time) (*Container, error) {
	c := &Container{
		engine:    gin.New(),
		db:        gdb,
		cfg:       cfg,
		log:       log,
		startedAt: startedAt,
	}

	// Section 1: Infrastructure - Redis, IDP client, casbin, repositories
	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}

	// Section 2: Application services
	c.initServices()

	// Section 3: Middlewares and handlers
	c.initHandlers()

	return c, nil
}

// Engine returns the gin engine routes are registered on.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown closes the Redis client. The database is owned by the caller.
func (c *Container) Shutdown() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
	}
	c.redis = nil
}
