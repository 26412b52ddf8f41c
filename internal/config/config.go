package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment       string
	AppName           string
	Port              string
	LogLevel          slog.Level
	SourceBaseURL     string
	SQLitePath        string
	CacheEnabled      bool
	CacheTTLMinutes   int
	YAMLProvidersPath string
	FetchTimeoutSecs  int
	FetchRetries      int
	ResolverWorkers   int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:       getEnv("APP_ENV", "development"),
		AppName:           getEnv("APP_NAME", "anime-stream-api"),
		Port:              getEnv("APP_PORT", "8080"),
		SourceBaseURL:     getEnv("SOURCE_BASE_URL", "https://www3.animeflv.net"),
		SQLitePath:        getEnv("SQLITE_PATH", "./data/cache.sqlite"),
		CacheEnabled:      getEnvAsBool("CACHE_ENABLED", true),
		CacheTTLMinutes:   getEnvAsInt("CACHE_TTL_MINUTES", 60),
		YAMLProvidersPath: getEnv("YAML_PROVIDERS_PATH", "./configs/providers"),
		FetchTimeoutSecs:  getEnvAsInt("FETCH_TIMEOUT_SECONDS", 12),
		FetchRetries:      getEnvAsInt("FETCH_RETRIES", 3),
		ResolverWorkers:   getEnvAsInt("RESOLVER_WORKERS", 4),
	}

	if cfg.CacheTTLMinutes <= 0 {
		cfg.CacheTTLMinutes = 60
	}
	if cfg.FetchTimeoutSecs <= 0 {
		cfg.FetchTimeoutSecs = 12
	}
	if cfg.FetchRetries < 0 {
		cfg.FetchRetries = 0
	}
	if cfg.ResolverWorkers <= 0 {
		cfg.ResolverWorkers = 4
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "INFO"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q, expected DEBUG|INFO|WARN|ERROR", raw)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
