package routes

import (
	"github.com/gin-gonic/gin"

	"fleetdesk/internal/interfaces/http/handlers/web"
	"fleetdesk/internal/interfaces/http/middleware"
)

type WebRouteConfig struct {
	WebHandler *web.Handler
	Gate       *middleware.Gate
	// LoginLimit throttles POST /login; nil disables it.
	LoginLimit gin.HandlerFunc
}

// SetupWebRoutes registers the server-rendered pages.
func SetupWebRoutes(engine *gin.Engine, config *WebRouteConfig) {
	h := config.WebHandler

	engine.GET("/login", h.LoginPage)
	if config.LoginLimit != nil {
		engine.POST("/login", config.LoginLimit, h.Login)
	} else {
		engine.POST("/login", h.Login)
	}
	engine.POST("/logout", h.Logout)
	engine.GET("/403", h.Forbidden)

	pages := engine.Group("", config.Gate.SessionRequired())
	{
		pages.GET("/", h.Home)

		pages.GET("/computers", h.Computers)
		pages.GET("/computers/new", h.NewComputer)
		pages.GET("/computers/edit/:label", h.EditComputer)
		pages.GET("/computers/:label", h.Computer)

		pages.GET("/jobs", h.Jobs)

		pages.GET("/tickets", h.Tickets)
		pages.GET("/tickets/new", h.NewTicket)
		pages.POST("/tickets/new", h.CreateTicket)
		pages.GET("/tickets/:id", h.Ticket)

		pages.GET("/operators", h.Operators)
	}
}
