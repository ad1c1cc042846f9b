package http

import (
	computerHandler "fleetdesk/internal/interfaces/http/handlers/computer"
	entryHandler "fleetdesk/internal/interfaces/http/handlers/entry"
	healthHandler "fleetdesk/internal/interfaces/http/handlers/health"
	operatorHandler "fleetdesk/internal/interfaces/http/handlers/operator"
	ticketHandler "fleetdesk/internal/interfaces/http/handlers/ticket"
	userHandler "fleetdesk/internal/interfaces/http/handlers/user"
	"fleetdesk/internal/interfaces/http/handlers/web"
	"fleetdesk/internal/interfaces/http/middleware"
)

type allHandlers struct {
	computerHandler *computerHandler.Handler
	entryHandler    *entryHandler.Handler
	operatorHandler *operatorHandler.Handler
	ticketHandler   *ticketHandler.Handler
	userHandler     *userHandler.Handler
	healthHandler   *healthHandler.Handler
	webHandler      *web.Handler
}

// ============================================================
// Section 3: Middlewares and handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	svcs := c.svcs

	c.gate = middleware.NewGate(c.identity, c.sessions, c.enforcer, c.cfg.Session, log.Named("gate"))
	c.wrapper = middleware.NewWrapper(c.txManager, log.Named("wrapper"))
	c.rateLimit = middleware.NewRateLimit(c.limiter, log.Named("ratelimit"))

	c.hdlrs = &allHandlers{
		computerHandler: computerHandler.NewHandler(svcs.computerService),
		entryHandler:    entryHandler.NewHandler(svcs.entryService),
		operatorHandler: operatorHandler.NewHandler(svcs.operatorService),
		ticketHandler:   ticketHandler.NewHandler(svcs.ticketService),
		userHandler:     userHandler.NewHandler(svcs.userService),
		healthHandler:   healthHandler.NewHandler(c.health),
		webHandler: web.NewHandler(web.Deps{
			Renderer:  c.pages,
			Sessions:  c.sessions,
			Users:     svcs.userService,
			Computers: svcs.computerService,
			Entries:   svcs.entryService,
			Tickets:   svcs.ticketService,
			Operators: svcs.operatorService,
			Session:   c.cfg.Session,
			StartedAt: c.startedAt,
			Logger:    log.Named("web"),
		}),
	}
}
