package config

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultHost binds all interfaces
	DefaultHost = "0.0.0.0"
	// DefaultPort is the port the service has always listened on
	DefaultPort = "3000"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server struct {
		Host            string
		Port            string
		Env             string
		ShutdownTimeout time.Duration
	}

	// Security configuration
	Security struct {
		RateLimit      float64
		RateLimitBurst int
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}

	// Observability configuration
	Observability struct {
		ServiceName       string
		TracingEnabled    bool
		HealthCheckPeriod time.Duration
	}

	// Seed controls whether the demo record is inserted at startup
	Seed struct {
		Enabled bool
	}
}

// Load reads configuration from the environment, loading a .env file first
// when one is present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Server.Host = getEnvString("HOST", DefaultHost)
	cfg.Server.Port = getEnvString("PORT", DefaultPort)
	cfg.Server.Env = getEnvString("APP_ENV", "development")
	cfg.Server.ShutdownTimeout = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)

	// A zero rate or burst disables the limiter
	cfg.Security.RateLimit = getEnvFloat("RATE_LIMIT", 50)
	cfg.Security.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 100)

	cfg.Logging.Level = getEnvString("LOG_LEVEL", "info")
	cfg.Logging.Format = getEnvString("LOG_FORMAT", "json")

	cfg.Observability.ServiceName = getEnvString("SERVICE_NAME", "character-service")
	cfg.Observability.TracingEnabled = getEnvBool("TRACING_ENABLED", false)
	cfg.Observability.HealthCheckPeriod = getEnvDuration("HEALTH_CHECK_PERIOD", 30*time.Second)

	cfg.Seed.Enabled = getEnvBool("SEED_ENABLED", true)

	return cfg
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, c.Server.Port)
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
