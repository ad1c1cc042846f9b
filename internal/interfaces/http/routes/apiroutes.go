package routes

import (
	"github.com/gin-gonic/gin"

	computerHandler "fleetdesk/internal/interfaces/http/handlers/computer"
	entryHandler "fleetdesk/internal/interfaces/http/handlers/entry"
	healthHandler "fleetdesk/internal/interfaces/http/handlers/health"
	operatorHandler "fleetdesk/internal/interfaces/http/handlers/operator"
	ticketHandler "fleetdesk/internal/interfaces/http/handlers/ticket"
	userHandler "fleetdesk/internal/interfaces/http/handlers/user"
	"fleetdesk/internal/interfaces/http/middleware"
	"fleetdesk/internal/shared/authorization"
)

type APIRouteConfig struct {
	ComputerHandler *computerHandler.Handler
	EntryHandler    *entryHandler.Handler
	OperatorHandler *operatorHandler.Handler
	TicketHandler   *ticketHandler.Handler
	UserHandler     *userHandler.Handler
	HealthHandler   *healthHandler.Handler
	Gate            *middleware.Gate
	Wrapper         *middleware.Wrapper
	// RateLimit may be nil when API rate limiting is disabled.
	RateLimit gin.HandlerFunc
}

// SetupAPIRoutes registers the JSON API. The gate always runs before the
// wrapper opens a transaction.
func SetupAPIRoutes(api *gin.RouterGroup, config *APIRouteConfig) {
	if config.RateLimit != nil {
		api.Use(config.RateLimit)
	}

	setupHealthRoutes(api, config)
	setupUserRoutes(api, config)
	setupComputerRoutes(api, config)
	setupEntryRoutes(api, config)
	setupOperatorRoutes(api, config)
	setupTicketRoutes(api, config)
}

func setupHealthRoutes(api *gin.RouterGroup, config *APIRouteConfig) {
	api.GET("/health", config.Wrapper.Respond(config.HealthHandler.Check))
}

func setupUserRoutes(api *gin.RouterGroup, config *APIRouteConfig) {
	h := config.UserHandler
	w := config.Wrapper

	users := api.Group("/users")
	{
		// Token endpoints are public
		users.POST("/token", w.Respond(h.IssueToken))
		users.PUT("/token", w.Respond(h.RefreshToken))
	}

	admin := users.Group("", config.Gate.RoleRequired(authorization.RoleAdmin))
	{
		admin.GET("", w.Respond(h.List))
		admin.POST("", w.Respond(h.Create))
		admin.GET("/roles", w.Respond(h.Roles))

		admin.GET("/:id", w.Respond(h.Get))
		admin.PATCH("/:id", w.Respond(h.Update))
		admin.DELETE("/:id", w.Respond(h.Delete))

		admin.POST("/:id/roles", w.Respond(h.AssignRoles))
		admin.PATCH("/:id/roles", w.Respond(h.ReplaceRoles))
		admin.POST("/:id/roles/:role", w.Respond(h.AssignRole))
		admin.DELETE("/:id/roles/:role", w.Respond(h.UnassignRole))
	}
}

func setupComputerRoutes(api *gin.RouterGroup, config *APIRouteConfig) {
	h := config.ComputerHandler
	w := config.Wrapper

	computers := api.Group("/computers", config.Gate.TokenActive())
	{
		// Specific paths first
		computers.GET("/count", w.Transactional(h.Count))
		computers.GET("/generic/count", w.Transactional(h.CountSearch))
		computers.GET("/generic", w.Transactional(h.Search))
		computers.GET("/classes", w.Transactional(h.Classes))
		computers.GET("/label/:label", w.Transactional(h.GetByLabel))

		computers.GET("", w.Transactional(h.List))
		computers.POST("", w.Transactional(h.Create))

		computers.GET("/:host_name", w.Transactional(h.GetByHostName))
		computers.PATCH("/:label", w.Transactional(h.Update))
		computers.DELETE("/:label", w.Transactional(h.Delete))
	}
}

func setupEntryRoutes(api *gin.RouterGroup, config *APIRouteConfig) {
	h := config.EntryHandler
	w := config.Wrapper
	gate := config.Gate

	entries := api.Group("/entries")
	{
		entries.GET("", gate.TokenActive(), w.Transactional(h.List))
		entries.POST("", gate.TokenActive(), w.Transactional(h.Create))
		entries.GET("/jobs", gate.TokenActive(), w.Transactional(h.ListJobs))
		entries.GET("/jobs/count", gate.TokenActive(), w.Transactional(h.CountJobs))
		entries.GET("/policy/:id", gate.TokenActive(), w.Transactional(h.GetPolicy))
		entries.GET("/traffic", gate.TokenActive(), w.Transactional(h.Traffic))

		entries.PATCH("/:id", gate.RoleRequired(authorization.RoleGPolicy), w.Transactional(h.Sign))
		entries.DELETE("/:id", gate.RoleRequired(authorization.RoleAdmin), w.Transactional(h.Delete))
	}
}

func setupOperatorRoutes(api *gin.RouterGroup, config *APIRouteConfig) {
	h := config.OperatorHandler
	w := config.Wrapper

	operators := api.Group("/operators", config.Gate.TokenActive())
	{
		operators.GET("", w.Transactional(h.List))
		operators.POST("", w.Transactional(h.Create))
		operators.GET("/:id", w.Transactional(h.Get))
		operators.PATCH("/:id", w.Transactional(h.Update))
		operators.DELETE("/:id", w.Transactional(h.Delete))
	}
}

func setupTicketRoutes(api *gin.RouterGroup, config *APIRouteConfig) {
	h := config.TicketHandler
	w := config.Wrapper

	tickets := api.Group("/tickets", config.Gate.TokenActive())
	{
		tickets.GET("", w.Transactional(h.List))
		tickets.POST("", w.Transactional(h.Create))
		tickets.GET("/:id", w.Transactional(h.Get))
		tickets.PATCH("/:id", w.Transactional(h.Update))
		tickets.DELETE("/:id", w.Transactional(h.Delete))
	}
}
