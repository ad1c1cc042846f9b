// Package health probes the services fleetdesk depends on.
package health

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"fleetdesk/internal/shared/config"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the outcome of one probe; Time is in milliseconds rounded to 0.1.
type Status struct {
	Active bool    `json:"active"`
	Time   float64 `json:"time"`
}

type Report struct {
	Keycloak Status `json:"keycloak"`
	PgAdmin  Status `json:"pgadmin"`
	Postgres Status `json:"postgres"`
}

type Checker struct {
	httpClient  *http.Client
	identityURL string
	pgadminURL  string
	db          Pinger
	timeout     time.Duration
}

func NewChecker(cfg config.HealthConfig, identityURL string, db Pinger) *Checker {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Checker{
		httpClient:  &http.Client{Timeout: timeout},
		identityURL: strings.TrimRight(identityURL, "/"),
		pgadminURL:  cfg.PgAdminURL,
		db:          db,
		timeout:     timeout,
	}
}

// Check runs every probe in turn. Probe failures are reported, never returned.
func (c *Checker) Check(ctx context.Context) Report {
	return Report{
		// The identity provider answers its health path with 200, or 404 when
		// the health endpoints are disabled; either means it is serving.
		Keycloak: c.measure(ctx, func(ctx context.Context) bool {
			return c.probeHTTP(ctx, c.identityURL+"/health", http.StatusOK, http.StatusNotFound)
		}),
		PgAdmin: c.measure(ctx, func(ctx context.Context) bool {
			return c.probeHTTP(ctx, c.pgadminURL, http.StatusOK)
		}),
		Postgres: c.measure(ctx, func(ctx context.Context) bool {
			return c.db != nil && c.db.PingContext(ctx) == nil
		}),
	}
}

func (c *Checker) measure(ctx context.Context, probe func(context.Context) bool) Status {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	active := probe(ctx)
	return Status{Active: active, Time: roundMillis(time.Since(start))}
}

func (c *Checker) probeHTTP(ctx context.Context, url string, accepted ...int) bool {
	if url == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	for _, code := range accepted {
		if resp.StatusCode == code {
			return true
		}
	}
	return false
}

func roundMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*10) / 10
}
