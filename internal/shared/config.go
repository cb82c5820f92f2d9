package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	LiteAPIBase   string
	LiteAPIKey    string
	SupplierRPS   int
	RetryBase     time.Duration
	WebhookSecret string

	CacheBackend string // memory | redis
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	SweepEvery   time.Duration

	SearchTTL       time.Duration
	AvailabilityTTL time.Duration
	HotelDetailsTTL time.Duration
	StaticTTL       time.Duration

	WarmWorkers  int
	WarmPageSize int
}

func Load() Config {
	// Local dev convenience; a missing .env is not an error.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	secs := func(k string, def int) time.Duration {
		return time.Duration(atoi(k, def)) * time.Second
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		LiteAPIBase:   env("LITEAPI_BASE_URL", "https://api.liteapi.travel/v3.0"),
		LiteAPIKey:    env("LITEAPI_API_KEY", ""),
		SupplierRPS:   atoi("SUPPLIER_RPS", 5),
		RetryBase:     secs("RETRY_BASE_SECONDS", 1),
		WebhookSecret: env("WEBHOOK_SECRET", ""),

		CacheBackend: env("CACHE_BACKEND", "memory"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		SweepEvery:   secs("CACHE_SWEEP_SECONDS", 300),

		SearchTTL:       secs("SEARCH_TTL_SECONDS", 300),
		AvailabilityTTL: secs("AVAILABILITY_TTL_SECONDS", 120),
		HotelDetailsTTL: secs("HOTEL_DETAILS_TTL_SECONDS", 1800),
		StaticTTL:       secs("STATIC_TTL_SECONDS", 3600),

		WarmWorkers:  atoi("WARM_WORKERS", 8),
		WarmPageSize: atoi("WARM_PAGE_SIZE", 100),
	}
	if c.LiteAPIKey == "" {
		log.Warn().Msg("LITEAPI_API_KEY is empty, supplier calls will fail with CONFIG_ERROR")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
