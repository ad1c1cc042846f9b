package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host" yaml:"host"`
	Port           int      `mapstructure:"port" yaml:"port"`
	Mode           string   `mapstructure:"mode" yaml:"mode"`
	BaseURL        string   `mapstructure:"base_url" yaml:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	// TemplatesDir optionally overrides the embedded page templates.
	TemplatesDir string `mapstructure:"templates_dir" yaml:"templates_dir"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" yaml:"driver"`
	Host            string `mapstructure:"host" yaml:"host"`
	Port            int    `mapstructure:"port" yaml:"port"`
	Username        string `mapstructure:"username" yaml:"username"`
	Password        string `mapstructure:"password" yaml:"password"`
	Database        string `mapstructure:"database" yaml:"database"`
	SSLMode         string `mapstructure:"sslmode" yaml:"sslmode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// GetDSN builds the driver specific connection string.
// For sqlite, Database is the file path (or ":memory:").
func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	case "sqlite":
		return d.Database
	default:
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`
}

// IdentityConfig describes the Keycloak-compatible identity provider.
type IdentityConfig struct {
	URL          string        `mapstructure:"url" yaml:"url"`
	Realm        string        `mapstructure:"realm" yaml:"realm"`
	ClientID     string        `mapstructure:"client_id" yaml:"client_id"`
	ClientSecret string        `mapstructure:"client_secret" yaml:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// ProtectedUser is never modified through the admin API.
	ProtectedUser string `mapstructure:"protected_user" yaml:"protected_user"`
}

type SessionConfig struct {
	CookieName string        `mapstructure:"cookie_name" yaml:"cookie_name"`
	Secure     bool          `mapstructure:"secure" yaml:"secure"`
	MaxAge     time.Duration `mapstructure:"max_age" yaml:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled" yaml:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	LoginPerMinute    int  `mapstructure:"login_per_minute" yaml:"login_per_minute"`
	LoginPerHour      int  `mapstructure:"login_per_hour" yaml:"login_per_hour"`
}

type HealthConfig struct {
	PgAdminURL string        `mapstructure:"pgadmin_url" yaml:"pgadmin_url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type EmailConfig struct {
	SMTPHost     string   `mapstructure:"smtp_host" yaml:"smtp_host"`
	SMTPPort     int      `mapstructure:"smtp_port" yaml:"smtp_port"`
	SMTPUser     string   `mapstructure:"smtp_user" yaml:"smtp_user"`
	SMTPPassword string   `mapstructure:"smtp_password" yaml:"smtp_password"`
	FromAddress  string   `mapstructure:"from_address" yaml:"from_address"`
	FromName     string   `mapstructure:"from_name" yaml:"from_name"`
	TicketNotify []string `mapstructure:"ticket_notify" yaml:"ticket_notify"`
}

// Enabled reports whether ticket notifications should be sent.
func (e *EmailConfig) Enabled() bool {
	return e.SMTPHost != "" && len(e.TicketNotify) > 0
}

type RedisConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
