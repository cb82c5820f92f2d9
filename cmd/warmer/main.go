// The warmer pre-populates the shared cache with the Maldives hotel listing,
// per-hotel static details and the city reference list, so the first user
// request after a deploy never pays the full supplier round trip. Only useful
// against the redis backend: an in-process map dies with this process.
package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/0x-m1cro/mv-travel/internal/adapters/liteapi"
	"github.com/0x-m1cro/mv-travel/internal/adapters/observability"
	redisad "github.com/0x-m1cro/mv-travel/internal/adapters/redis"
	"github.com/0x-m1cro/mv-travel/internal/app"
	"github.com/0x-m1cro/mv-travel/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.CacheBackend != "redis" {
		log.Fatal().Msg("warmer requires CACHE_BACKEND=redis, nothing to warm otherwise")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	supplier := liteapi.New(cfg.LiteAPIBase, cfg.LiteAPIKey, liteapi.Options{
		RPS:       cfg.SupplierRPS,
		RetryBase: cfg.RetryBase,
	})
	search := app.NewSearchService(supplier, cache, app.TTLPolicy{
		Search:       cfg.SearchTTL,
		Availability: cfg.AvailabilityTTL,
		HotelDetails: cfg.HotelDetailsTTL,
		Static:       cfg.StaticTTL,
	})

	log.Info().
		Str("base", cfg.LiteAPIBase).
		Int("workers", cfg.WarmWorkers).
		Msg("warmer starting")

	if _, err := search.GetCities(ctx); err != nil {
		log.Warn().Err(err).Msg("city warm failed")
	}

	page, err := search.GetMaldivesHotels(ctx, app.SearchQuery{Limit: cfg.WarmPageSize})
	if err != nil {
		log.Fatal().Err(err).Msg("listing warm failed")
	}
	log.Info().Int("hotels", len(page.Hotels)).Msg("listing warmed")

	sem := semaphore.NewWeighted(int64(cfg.WarmWorkers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	warmed, failed := 0, 0

	for _, h := range page.Hotels {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}
		wg.Add(1)
		go func(hotelID string) {
			defer wg.Done()
			defer sem.Release(1)

			if _, err := search.GetHotelDetails(ctx, hotelID); err != nil {
				log.Warn().Str("id", hotelID).Err(err).Msg("detail warm failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			warmed++
			mu.Unlock()
		}(h.ID)
	}

	wg.Wait()
	log.Info().Int("warmed", warmed).Int("failed", failed).Msg("warm completed")
}
