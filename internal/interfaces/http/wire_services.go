package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	computerApp "fleetdesk/internal/application/computer"
	entryApp "fleetdesk/internal/application/entry"
	operatorApp "fleetdesk/internal/application/operator"
	ticketApp "fleetdesk/internal/application/ticket"
	userApp "fleetdesk/internal/application/user"
	"fleetdesk/internal/infrastructure/cache"
	"fleetdesk/internal/infrastructure/config"
	"fleetdesk/internal/infrastructure/email"
	"fleetdesk/internal/infrastructure/health"
	infraIdentity "fleetdesk/internal/infrastructure/identity"
	"fleetdesk/internal/infrastructure/permission"
	"fleetdesk/internal/infrastructure/ratelimit"
	pagetemplate "fleetdesk/internal/infrastructure/template"
	"fleetdesk/internal/shared/db"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/services/markdown"
)

type services struct {
	computerService *computerApp.Service
	entryService    *entryApp.Service
	operatorService *operatorApp.Service
	ticketService   *ticketApp.Service
	userService     *userApp.Service
}

// ============================================================
// Section 1: Infrastructure - Redis, IDP client, casbin, repositories
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	redisClient, err := initRedis(cfg, log)
	if err != nil {
		return err
	}
	c.redis = redisClient

	c.identity = infraIdentity.NewClient(cfg.Identity, log.Named("identity"))

	enforcer, err := permission.NewEnforcer(c.db, log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to initialize role enforcer: %w", err)
	}
	if err := enforcer.Seed(); err != nil {
		return fmt.Errorf("failed to seed role policy: %w", err)
	}
	c.enforcer = enforcer

	c.repos = newRepositories(c.db)
	c.txManager = db.NewTransactionManager(c.db)
	c.sessions = cache.NewSessionStore(c.redis, cfg.Session.MaxAge)
	c.limiter = ratelimit.NewRedisRateLimiter(c.redis)

	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	c.health = health.NewChecker(cfg.Health, cfg.Identity.URL, sqlDB)

	c.pages = pagetemplate.NewPageRenderer(cfg.Server.TemplatesDir, log.Named("pages"))
	if err := c.pages.Load(); err != nil {
		return fmt.Errorf("failed to load page templates: %w", err)
	}

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: Application services
// ============================================================

func (c *Container) initServices() {
	log := c.log
	repos := c.repos

	var notifier ticketApp.Notifier
	if c.cfg.Email.Enabled() {
		notifier = email.NewSMTPNotifier(email.NewSMTPConfig(c.cfg.Email, c.cfg.Server.BaseURL))
		log.Infow("ticket notifications enabled", "recipients", len(c.cfg.Email.TicketNotify))
	}

	c.svcs = &services{
		computerService: computerApp.NewService(repos.computerRepo, repos.entryRepo, repos.operatorRepo, log.Named("computer")),
		entryService:    entryApp.NewService(repos.entryRepo, repos.computerRepo, log.Named("entry")),
		operatorService: operatorApp.NewService(repos.operatorRepo, log.Named("operator")),
		ticketService:   ticketApp.NewService(repos.ticketRepo, notifier, markdown.NewRenderer(), log.Named("ticket")),
		userService:     userApp.NewService(c.identity, log.Named("user")),
	}
}
