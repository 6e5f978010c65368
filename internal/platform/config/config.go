package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

// Rate cache backends.
const (
	RateCacheMemory = "memory"
	RateCacheRedis  = "redis"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     string

	// Storage
	StorageBackend string
	DatabaseURL    string
	EnableDBCheck  bool
	SQLiteDBPath   string
	MigrationsPath string

	// External FX source
	FXAPIBaseURL         string
	FXAPITimeout         time.Duration
	RateCacheBackend     string
	RedisURL             string
	RateCacheFallbackTTL time.Duration

	// Chat webhook
	RequestTimeout        time.Duration
	WebhookAllowedSenders []string
	WebhookAuthToken      string
	WebhookPublicURL      string
	WebhookRateLimit      string
	DefaultLanguage       string

	// Admin API
	JWTSecret        string
	JWTIssuer        string
	AdminCORSOrigins []string
}

const insecureJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_BACKEND", StorageSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("SQLITE_DB_PATH", "data/chatledger.db")
	v.SetDefault("MIGRATIONS_PATH", "migrations/postgres")
	v.SetDefault("FX_API_BASE_URL", "https://api.frankfurter.app")
	v.SetDefault("FX_API_TIMEOUT", "5s")
	v.SetDefault("RATE_CACHE_BACKEND", RateCacheMemory)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RATE_CACHE_FALLBACK_TTL", "1h")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("WEBHOOK_ALLOWED_SENDERS", "")
	v.SetDefault("WEBHOOK_AUTH_TOKEN", "")
	v.SetDefault("WEBHOOK_PUBLIC_URL", "")
	v.SetDefault("WEBHOOK_RATE_LIMIT", "30-M")
	v.SetDefault("DEFAULT_LANGUAGE", "EN")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "chatledger")
	v.SetDefault("ADMIN_CORS_ORIGINS", "")

	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("PORT"),
		IsProduction:     v.GetBool("IS_PRODUCTION"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		StorageBackend:   strings.ToLower(v.GetString("STORAGE_BACKEND")),
		DatabaseURL:      v.GetString("PGSQL_URL"),
		EnableDBCheck:    v.GetBool("ENABLE_DB_CHECK"),
		SQLiteDBPath:     v.GetString("SQLITE_DB_PATH"),
		MigrationsPath:   v.GetString("MIGRATIONS_PATH"),
		FXAPIBaseURL:     v.GetString("FX_API_BASE_URL"),
		RateCacheBackend: strings.ToLower(v.GetString("RATE_CACHE_BACKEND")),
		RedisURL:         v.GetString("REDIS_URL"),
		WebhookAuthToken: v.GetString("WEBHOOK_AUTH_TOKEN"),
		WebhookPublicURL: strings.TrimRight(v.GetString("WEBHOOK_PUBLIC_URL"), "/"),
		WebhookRateLimit: v.GetString("WEBHOOK_RATE_LIMIT"),
		DefaultLanguage:  v.GetString("DEFAULT_LANGUAGE"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
	}

	var err error
	if cfg.FXAPITimeout, err = parseDuration(v, "FX_API_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RateCacheFallbackTTL, err = parseDuration(v, "RATE_CACHE_FALLBACK_TTL"); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = parseDuration(v, "REQUEST_TIMEOUT"); err != nil {
		return nil, err
	}

	cfg.WebhookAllowedSenders = splitList(v.GetString("WEBHOOK_ALLOWED_SENDERS"))
	cfg.AdminCORSOrigins = splitList(v.GetString("ADMIN_CORS_ORIGINS"))

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = insecureJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.WebhookAuthToken == "" {
		log.Println("Warning: WEBHOOK_AUTH_TOKEN not set. Webhook signatures will not be verified.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

// Validate rejects configurations the process cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("PGSQL_URL is required for the postgres backend"))
		}
	case StorageSQLite:
		if c.SQLiteDBPath == "" {
			errs = append(errs, errors.New("SQLITE_DB_PATH is required for the sqlite backend"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend))
	}

	switch c.RateCacheBackend {
	case RateCacheMemory:
	case RateCacheRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis rate cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown RATE_CACHE_BACKEND %q", c.RateCacheBackend))
	}

	if c.WebhookRateLimit != "" {
		if _, err := limiter.NewRateFromFormatted(c.WebhookRateLimit); err != nil {
			errs = append(errs, fmt.Errorf("invalid WEBHOOK_RATE_LIMIT %q: %w", c.WebhookRateLimit, err))
		}
	}
	if c.IsProduction && c.JWTSecret == insecureJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	return errors.Join(errs...)
}
