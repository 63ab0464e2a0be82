package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/ferrarinobrakes/oddsboard/internal/constants"
)

type Config struct {
	ServerPort string
	LogLevel   string

	OddsAPIBaseURL string
	OddsAPIKey     string

	LogoAPIBaseURL string

	DBPath    string
	RedisAddr string // empty disables the logo cache

	PageSize        int
	RefreshInterval time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		OddsAPIBaseURL:  getEnv("ODDS_API_BASE_URL", "https://api.oddsfeed.dev"),
		OddsAPIKey:      getEnv("ODDS_API_KEY", ""),
		LogoAPIBaseURL:  getEnv("LOGO_API_BASE_URL", "https://badges.oddsfeed.dev"),
		DBPath:          getEnv("DB_PATH", "oddsboard.db"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		PageSize:        getEnvInt("PAGE_SIZE", constants.PageSize),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", constants.RefreshInterval),
	}

	if cfg.OddsAPIKey == "" {
		return nil, fmt.Errorf("ODDS_API_KEY is required")
	}
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("odds_api_base_url", cfg.OddsAPIBaseURL).
		Str("db_path", cfg.DBPath).
		Str("redis_addr", cfg.RedisAddr).
		Int("page_size", cfg.PageSize).
		Dur("refresh_interval", cfg.RefreshInterval).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
