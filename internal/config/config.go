package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"todo_reminder/internal/logger"

	"github.com/joho/godotenv"
)

// Store drivers understood by repository.Open.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	AppPort     string
	AppVersion  string
	DatabaseURL string
	StoreDriver string
	MongoDB     string

	LogLevel string
	LogJSON  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	// TrustedProxies may set X-Forwarded-For. Empty trusts none, so the
	// client IP is always the peer address.
	TrustedProxies []string
}

// Load reads the server configuration from env (and .env if present).
// A missing DATABASE_URL is fatal unless the memory store is selected.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// FromEnv builds the server configuration from the current environment.
func FromEnv() (*Config, error) {
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))

	if driver == "" {
		driver = StoreDriver(dbURL)
	}
	switch driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite, DriverMongo:
		if dbURL == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
	case "":
		if dbURL == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
		return nil, errors.New("cannot infer store driver from DATABASE_URL; set STORE_DRIVER")
	default:
		return nil, errors.New("unknown STORE_DRIVER: " + driver)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "dev"
	}

	mongoDB := os.Getenv("MONGO_DATABASE")
	if mongoDB == "" {
		mongoDB = "todo_reminder"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:       port,
		AppVersion:    version,
		DatabaseURL:   dbURL,
		StoreDriver:   driver,
		MongoDB:       mongoDB,
		LogLevel:      logLevel,
		LogJSON:       os.Getenv("LOG_JSON") == "true",
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		APIRateLimit:  envInt("API_RATE_LIMIT", 120),
		APIRateWindow: envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),

		TrustedProxies: envList("TRUSTED_PROXIES"),
	}, nil
}

// StoreDriver infers the store driver from a connection string.
// It returns "" when the scheme is not recognised.
func StoreDriver(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case dsn == "":
		return ""
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return DriverMongo
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		return DriverSQLite
	case lower == "memory" || lower == "memory://":
		return DriverMemory
	}
	return ""
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

// envList splits a comma-separated variable, dropping blanks.
func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
