package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DBDriver string
	DBDSN    string
	RedisURL string

	AMQPURL         string
	AuditExchange   string
	AuditRoutingKey string

	OTLPEndpoint string
	StoreTimeout time.Duration
	StaticDir    string
}

// Load reads configuration from the environment, loading .env first when present.
// It panics when production is missing a real database.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:           getEnv("DB_DSN", "chatroom.db"),
		RedisURL:        os.Getenv("REDIS_URL"),
		AMQPURL:         os.Getenv("AMQP_URL"),
		AuditExchange:   getEnv("AUDIT_EXCHANGE", "chatroom.audit"),
		AuditRoutingKey: getEnv("AUDIT_ROUTING_KEY", "audit.chatroom"),
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		StoreTimeout:    getDuration("STORE_TIMEOUT", 5*time.Second),
		StaticDir:       os.Getenv("STATIC_DIR"),
	}

	if cfg.Env == "production" {
		if cfg.DBDriver != "postgres" {
			panic("DB_DRIVER=postgres is required in production")
		}
		if os.Getenv("DB_DSN") == "" {
			panic("DB_DSN is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
