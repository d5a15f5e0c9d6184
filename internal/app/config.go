package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "3000"
	defaultSessionTTL     = 720 * time.Hour
	defaultCountryCode    = "+91"
	defaultConnectRetries = 5
	accessTokenTTL        = 24 * time.Hour
)

// Config is the process configuration shared by the api, worker and
// consumer binaries.
type Config struct {
	AppEnv string
	Port   string

	DBURL       string
	RedisAddr   string
	SessionTTL  time.Duration
	KafkaBroker string

	JWTSecret          string
	DefaultCountryCode string
}

func ConfigFromEnv() (Config, error) {
	cfg := Config{
		AppEnv:             envOr("APP_ENV", "development"),
		Port:               envOr("PORT", defaultPort),
		DBURL:              strings.TrimSpace(os.Getenv("DB_URL")),
		RedisAddr:          strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		SessionTTL:         defaultSessionTTL,
		KafkaBroker:        strings.TrimSpace(os.Getenv("KAFKA_BROKER")),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		DefaultCountryCode: envOr("PHONE_DEFAULT_COUNTRY_CODE", defaultCountryCode),
	}

	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer, got %q", raw)
		}
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
