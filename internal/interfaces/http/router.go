package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fleetdesk/internal/infrastructure/ratelimit"
	"fleetdesk/internal/interfaces/http/middleware"
	"fleetdesk/internal/interfaces/http/routes"
	"fleetdesk/internal/shared/constants"

	_ "fleetdesk/docs"
)

// Router registers middleware and routes on the container's engine.
type Router struct {
	c *Container
}

func NewRouter(c *Container) *Router {
	return &Router{c: c}
}

// SetupRoutes configures all HTTP routes. Middleware order:
// RequestID, Recovery, Logger, CORS, security headers, then per group
// rate limit, gate and wrapper.
func (r *Router) SetupRoutes() {
	c := r.c
	engine := c.engine

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.RequestLogger(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	var apiLimit, loginLimit gin.HandlerFunc
	if rl := c.cfg.RateLimit; rl.Enabled {
		apiLimit = c.rateLimit.PerClient(ratelimit.Limits{RequestsPerMinute: rl.RequestsPerMinute})
		loginLimit = c.rateLimit.PerLogin(
			ratelimit.Limits{RequestsPerMinute: rl.LoginPerMinute, RequestsPerHour: rl.LoginPerHour},
			c.hdlrs.webHandler.LoginRateLimited,
		)
	}

	routes.SetupAPIRoutes(engine.Group(constants.APIPrefix), &routes.APIRouteConfig{
		ComputerHandler: c.hdlrs.computerHandler,
		EntryHandler:    c.hdlrs.entryHandler,
		OperatorHandler: c.hdlrs.operatorHandler,
		TicketHandler:   c.hdlrs.ticketHandler,
		UserHandler:     c.hdlrs.userHandler,
		HealthHandler:   c.hdlrs.healthHandler,
		Gate:            c.gate,
		Wrapper:         c.wrapper,
		RateLimit:       apiLimit,
	})

	routes.SetupWebRoutes(engine, &routes.WebRouteConfig{
		WebHandler: c.hdlrs.webHandler,
		Gate:       c.gate,
		LoginLimit: loginLimit,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.c.engine
}
