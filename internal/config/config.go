package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "dev-secret-change-me"

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	SMTP         SMTPConfig
	Notification NotificationConfig
	Dashboard    DashboardConfig
	Bootstrap    BootstrapConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	CORSOrigin            string
	PublicURL             string
	LogoURL               string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret          string
	TokenTTL           time.Duration
	BcryptCost         int
	ProtectAdminRoutes bool
	MinPasswordLength  int
}

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Password string
	FromName string
}

// NotificationConfig controls the welcome email queue.
type NotificationConfig struct {
	QueueDriver        string
	QueueSize          int
	Workers            int
	SendTimeoutSeconds int
}

// DashboardConfig controls dashboard aggregates.
type DashboardConfig struct {
	StatsCacheTTLSeconds int
}

// BootstrapConfig seeds the first administrator when no staff exists.
type BootstrapConfig struct {
	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string
	AdminPhone     string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	tokenTTL, err := ParseDuration(getEnv("AUTH_TOKEN_TTL", "7d"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	appName := getEnv("APP_NAME", "listing-admin")

	cfg := &Config{
		App: AppConfig{
			Name:                  appName,
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSOrigin:            getEnv("CORS_ORIGIN", "http://localhost:8080"),
			PublicURL:             getEnv("APP_URL", "http://localhost:8080"),
			LogoURL:               os.Getenv("LOGO_URL"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("AUTH_JWT_SECRET", DefaultJWTSecret),
			TokenTTL:           tokenTTL,
			BcryptCost:         getEnvAsInt("AUTH_BCRYPT_COST", 10),
			ProtectAdminRoutes: getEnvAsBool("AUTH_PROTECT_ADMIN_ROUTES", true),
			MinPasswordLength:  getEnvAsInt("AUTH_MIN_PASSWORD_LENGTH", 6),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			Secure:   getEnvAsBool("SMTP_SECURE", false),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			FromName: getEnv("SMTP_FROM_NAME", appName),
		},
		Notification: NotificationConfig{
			QueueDriver:        strings.ToLower(getEnv("NOTIFY_QUEUE_DRIVER", "memory")),
			QueueSize:          getEnvAsInt("NOTIFY_QUEUE_SIZE", 100),
			Workers:            getEnvAsInt("NOTIFY_WORKERS", 2),
			SendTimeoutSeconds: getEnvAsInt("NOTIFY_SEND_TIMEOUT_SECONDS", 30),
		},
		Dashboard: DashboardConfig{
			StatsCacheTTLSeconds: getEnvAsInt("DASHBOARD_STATS_CACHE_TTL_SECONDS", 30),
		},
		Bootstrap: BootstrapConfig{
			AdminEmail:     os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
			AdminPassword:  os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
			AdminFirstName: getEnv("BOOTSTRAP_ADMIN_FIRST_NAME", "Platform"),
			AdminLastName:  getEnv("BOOTSTRAP_ADMIN_LAST_NAME", "Admin"),
			AdminPhone:     os.Getenv("BOOTSTRAP_ADMIN_PHONE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot run safely.
func (c *Config) Validate() error {
	if c.App.IsProduction() && c.Auth.JWTSecret == DefaultJWTSecret {
		return errors.New("AUTH_JWT_SECRET must be set in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("AUTH_TOKEN_TTL must be positive")
	}
	switch c.Notification.QueueDriver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported NOTIFY_QUEUE_DRIVER %q", c.Notification.QueueDriver)
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether error details must be hidden from clients.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Configured reports whether SMTP credentials are present.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Password != ""
}

// Addr returns host:port for the SMTP server.
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SendTimeout bounds a single mail delivery.
func (n NotificationConfig) SendTimeout() time.Duration {
	if n.SendTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(n.SendTimeoutSeconds) * time.Second
}

// StatsCacheTTL returns the dashboard cache lifetime; zero disables caching.
func (d DashboardConfig) StatsCacheTTL() time.Duration {
	if d.StatsCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(d.StatsCacheTTLSeconds) * time.Second
}

// Enabled reports whether a bootstrap admin should be seeded.
func (b BootstrapConfig) Enabled() bool {
	return b.AdminEmail != "" && b.AdminPassword != ""
}

// ParseDuration extends time.ParseDuration with a "d" (day) suffix, e.g. "7d".
func ParseDuration(val string) (time.Duration, error) {
	val = strings.TrimSpace(val)
	if days, ok := strings.CutSuffix(val, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", val)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(val)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
