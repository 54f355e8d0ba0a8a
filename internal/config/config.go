package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Snapshot backend identifiers.
const (
	SnapshotBackendFile     = "file"
	SnapshotBackendRedis    = "redis"
	SnapshotBackendPostgres = "postgres"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Snapshot SnapshotConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	Ingest   IngestConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SnapshotConfig selects the snapshot store backend.
type SnapshotConfig struct {
	Backend  string
	FilePath string
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

// UpstreamConfig points at the external ticketing API.
type UpstreamConfig struct {
	BaseURL        string
	AppToken       string
	UserToken      string
	PageSize       int
	TimeoutSeconds int
}

// IngestConfig tunes the polling worker.
type IngestConfig struct {
	IntervalSeconds    int
	MaxAttempts        int
	BackoffBaseSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "desk-metrics"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Snapshot: SnapshotConfig{
			Backend:  getEnv("SNAPSHOT_BACKEND", SnapshotBackendFile),
			FilePath: getEnv("SNAPSHOT_FILE_PATH", "data/snapshot.json"),
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
		Upstream: UpstreamConfig{
			BaseURL:        getEnv("UPSTREAM_BASE_URL", ""),
			AppToken:       os.Getenv("UPSTREAM_APP_TOKEN"),
			UserToken:      os.Getenv("UPSTREAM_USER_TOKEN"),
			PageSize:       getEnvAsInt("UPSTREAM_PAGE_SIZE", 100),
			TimeoutSeconds: getEnvAsInt("UPSTREAM_HTTP_TIMEOUT_SECONDS", 15),
		},
		Ingest: IngestConfig{
			IntervalSeconds:    getEnvAsInt("INGEST_INTERVAL_SECONDS", 300),
			MaxAttempts:        getEnvAsInt("INGEST_MAX_ATTEMPTS", 4),
			BackoffBaseSeconds: getEnvAsInt("INGEST_BACKOFF_BASE_SECONDS", 1),
		},
	}

	switch cfg.Snapshot.Backend {
	case SnapshotBackendFile, SnapshotBackendRedis, SnapshotBackendPostgres:
	default:
		return nil, fmt.Errorf("invalid SNAPSHOT_BACKEND: %q", cfg.Snapshot.Backend)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Interval returns the polling cadence.
func (i IngestConfig) Interval() time.Duration {
	return time.Duration(i.IntervalSeconds) * time.Second
}

// BackoffBase returns the first retry delay; later attempts double it.
func (i IngestConfig) BackoffBase() time.Duration {
	return time.Duration(i.BackoffBaseSeconds) * time.Second
}

// Timeout returns the upstream HTTP client timeout.
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
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
