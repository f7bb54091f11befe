package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config описывает настройки запуска приложения. Все значения читаются
// из переменных окружения с префиксом STOREFRONT_.
type Config struct {
	HTTPAddr     string
	MetricsAddr  string
	PostgresDSN  string
	KafkaBrokers string
	JWTSecret    string
	TokenTTL     time.Duration
	CORSOrigins  []string
	Seed         bool
}

// DefaultConfig возвращает базовые адреса и настройки.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
		JWTSecret:   "dev-secret-change-me",
		TokenTTL:    24 * time.Hour,
		Seed:        true,
	}
}

// LoadConfig собирает конфигурацию из окружения поверх значений по умолчанию.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STOREFRONT_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STOREFRONT_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("STOREFRONT_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("STOREFRONT_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	if v := os.Getenv("STOREFRONT_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("STOREFRONT_TOKEN_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil && ttl > 0 {
			cfg.TokenTTL = ttl
		}
	}
	if v := os.Getenv("STOREFRONT_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("STOREFRONT_SEED"); v != "" {
		if seed, err := strconv.ParseBool(v); err == nil {
			cfg.Seed = seed
		}
	}

	return cfg
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
