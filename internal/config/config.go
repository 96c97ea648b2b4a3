package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting read from the environment.
type Config struct {
	AppName string `envconfig:"APP_NAME" default:"Creamery POS v1.0"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	Port    string `envconfig:"PORT" default:"3000"`

	Database DatabaseConfig
	Redis    RedisConfig

	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	MenuCacheTTL        time.Duration `envconfig:"MENU_CACHE_TTL" default:"2m"`
	OrderStatusCacheTTL time.Duration `envconfig:"ORDER_STATUS_CACHE_TTL" default:"10s"`
	PublicRateLimit     string        `envconfig:"PUBLIC_RATE_LIMIT" default:"30-M"`
	PublicBaseURL       string        `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:5173"`
	InvoicePrefix       string        `envconfig:"INVOICE_PREFIX" default:"INV"`

	SeedAdminEmail    string `envconfig:"SEED_ADMIN_EMAIL" default:"owner@example.com"`
	SeedAdminPassword string `envconfig:"SEED_ADMIN_PASSWORD" default:"owner123"`
}

type DatabaseConfig struct {
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"creamery"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	LogLevel string `envconfig:"DB_LOG_LEVEL" default:"warn"`
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value DSN built from the DB_* settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.TimeZone,
	)
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Enabled reports whether a redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

const devJWTSecret = "dev-only-secret-change-me"

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required when APP_ENV=production")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
