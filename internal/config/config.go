package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/voetbalpool/voetbalpool/internal/platform/logging"
	"github.com/voetbalpool/voetbalpool/internal/platform/resilience"
)

// Config stores runtime configuration for the pool updater.
type Config struct {
	PoolFile     string
	SnapshotPath string

	ArchiveEnabled bool
	ArchiveDBPath  string

	FetchDelay      time.Duration
	FetchTimeout    time.Duration
	FetchMaxRetries int
	FetchUserAgent  string
	FeedCircuit     resilience.CircuitBreakerConfig

	CacheEnabled bool
	CacheTTL     time.Duration

	StatsAPIEnabled    bool
	StatsAPIBaseURL    string
	StatsAPIToken      string
	StatsAPITimeout    time.Duration
	StatsAPIMaxRetries int
	StatsAPICircuit    resilience.CircuitBreakerConfig

	RunInterval time.Duration
	LogLevel    logging.Level
}

func Load() (Config, error) {
	fetchDelay, err := time.ParseDuration(getEnv("FETCH_DELAY", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_DELAY: %w", err)
	}
	if fetchDelay < 0 {
		return Config{}, fmt.Errorf("FETCH_DELAY must be >= 0")
	}

	fetchTimeout, err := time.ParseDuration(getEnv("FETCH_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_TIMEOUT: %w", err)
	}
	if fetchTimeout <= 0 {
		return Config{}, fmt.Errorf("FETCH_TIMEOUT must be > 0")
	}

	fetchMaxRetries, err := getEnvAsInt("FETCH_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FETCH_MAX_RETRIES: %w", err)
	}
	if fetchMaxRetries < 0 {
		return Config{}, fmt.Errorf("FETCH_MAX_RETRIES must be >= 0")
	}

	feedCircuit, err := loadCircuit("FEED")
	if err != nil {
		return Config{}, err
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	archiveEnabled, err := strconv.ParseBool(getEnv("ARCHIVE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ARCHIVE_ENABLED: %w", err)
	}
	archiveDBPath := strings.TrimSpace(getEnv("ARCHIVE_DB_PATH", "history.db"))
	if archiveEnabled && archiveDBPath == "" {
		return Config{}, fmt.Errorf("ARCHIVE_DB_PATH is required when ARCHIVE_ENABLED=true")
	}

	statsAPIEnabled, err := strconv.ParseBool(getEnv("STATSAPI_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_ENABLED: %w", err)
	}
	statsAPIToken := strings.TrimSpace(getEnv("STATSAPI_TOKEN", ""))
	if statsAPIEnabled && statsAPIToken == "" {
		return Config{}, fmt.Errorf("STATSAPI_TOKEN is required when STATSAPI_ENABLED=true")
	}
	statsAPITimeout, err := time.ParseDuration(getEnv("STATSAPI_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_TIMEOUT: %w", err)
	}
	if statsAPITimeout <= 0 {
		return Config{}, fmt.Errorf("STATSAPI_TIMEOUT must be > 0")
	}
	statsAPIMaxRetries, err := getEnvAsInt("STATSAPI_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATSAPI_MAX_RETRIES: %w", err)
	}
	if statsAPIMaxRetries < 0 {
		return Config{}, fmt.Errorf("STATSAPI_MAX_RETRIES must be >= 0")
	}
	statsAPICircuit, err := loadCircuit("STATSAPI")
	if err != nil {
		return Config{}, err
	}

	runInterval, err := time.ParseDuration(getEnv("RUN_INTERVAL", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse RUN_INTERVAL: %w", err)
	}
	if runInterval < 0 {
		return Config{}, fmt.Errorf("RUN_INTERVAL must be >= 0")
	}

	return Config{
		PoolFile:           getEnv("POOL_FILE", "pool.json"),
		SnapshotPath:       getEnv("SNAPSHOT_PATH", "snapshot.json"),
		ArchiveEnabled:     archiveEnabled,
		ArchiveDBPath:      archiveDBPath,
		FetchDelay:         fetchDelay,
		FetchTimeout:       fetchTimeout,
		FetchMaxRetries:    fetchMaxRetries,
		FetchUserAgent:     strings.TrimSpace(getEnv("FETCH_USER_AGENT", "")),
		FeedCircuit:        feedCircuit,
		CacheEnabled:       cacheEnabled,
		CacheTTL:           cacheTTL,
		StatsAPIEnabled:    statsAPIEnabled,
		StatsAPIBaseURL:    strings.TrimSpace(getEnv("STATSAPI_BASE_URL", "https://api.example.com/v1/football")),
		StatsAPIToken:      statsAPIToken,
		StatsAPITimeout:    statsAPITimeout,
		StatsAPIMaxRetries: statsAPIMaxRetries,
		StatsAPICircuit:    statsAPICircuit,
		RunInterval:        runInterval,
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}, nil
}

func loadCircuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	defaults := resilience.DefaultCircuitBreakerConfig()

	enabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", strconv.FormatBool(defaults.Enabled)))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}
	failureCount, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", defaults.FailureThreshold)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	openTimeout, err := time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", defaults.OpenTimeout.String()))
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if openTimeout <= 0 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	}
	halfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", defaults.HalfOpenMaxReq)
	if err != nil {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return resilience.CircuitBreakerConfig{}, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return resilience.CircuitBreakerConfig{
		Enabled:          enabled,
		FailureThreshold: failureCount,
		OpenTimeout:      openTimeout,
		HalfOpenMaxReq:   halfOpenMaxReq,
	}, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
