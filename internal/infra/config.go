package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	LedgerDBPath     string
	IQAirAPIKey      string
	ClimatiqAPIKey   string
	OpenAQAPIKey     string
	GeoIPDBPath      string
	CORSOrigins      []string
	DefaultCity      string
	DefaultCountry   string
	ForecastDays     int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		LedgerDBPath:     getEnv("LEDGER_DB_PATH", "ecoquest-ledger.db"),
		IQAirAPIKey:      os.Getenv("IQAIR_API_KEY"),
		ClimatiqAPIKey:   os.Getenv("CLIMATIQ_API_KEY"),
		OpenAQAPIKey:     os.Getenv("OPENAQ_API_KEY"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		CORSOrigins:      splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		DefaultCity:      getEnv("DEFAULT_CITY", "Mumbai"),
		DefaultCountry:   getEnv("DEFAULT_COUNTRY", "India"),
		ForecastDays:     getEnvInt("FORECAST_DAYS", 5),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.IQAirAPIKey == "" {
		return nil, fmt.Errorf("IQAIR_API_KEY is required")
	}
	if cfg.ClimatiqAPIKey == "" {
		return nil, fmt.Errorf("CLIMATIQ_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
