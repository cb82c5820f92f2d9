package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	server "github.com/0x-m1cro/mv-travel/internal/adapters/http_server"
	"github.com/0x-m1cro/mv-travel/internal/adapters/liteapi"
	"github.com/0x-m1cro/mv-travel/internal/adapters/memcache"
	"github.com/0x-m1cro/mv-travel/internal/adapters/observability"
	redisad "github.com/0x-m1cro/mv-travel/internal/adapters/redis"
	"github.com/0x-m1cro/mv-travel/internal/app"
	"github.com/0x-m1cro/mv-travel/internal/domain"
	"github.com/0x-m1cro/mv-travel/internal/shared"
)

func main() {
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx := context.Background()

	// cache backend
	var cache domain.Cache
	switch cfg.CacheBackend {
	case "redis":
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		cache = rc
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
	default:
		mc := memcache.New()
		mc.StartSweeper(ctx, cfg.SweepEvery)
		cache = mc
		log.Info().Msg("using in-memory cache")
	}

	// deps
	supplier := liteapi.New(cfg.LiteAPIBase, cfg.LiteAPIKey, liteapi.Options{
		RPS:       cfg.SupplierRPS,
		RetryBase: cfg.RetryBase,
	})
	ttl := app.TTLPolicy{
		Search:       cfg.SearchTTL,
		Availability: cfg.AvailabilityTTL,
		HotelDetails: cfg.HotelDetailsTTL,
		Static:       cfg.StaticTTL,
	}
	search := app.NewSearchService(supplier, cache, ttl)
	booking := app.NewBookingService(supplier)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Search:  search,
		Booking: booking,
		Webhook: server.NewWebhookHandler(cfg.WebhookSecret, cfg.AppEnv),
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
