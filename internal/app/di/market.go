// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/feature/marketdata/usecase"
	"market_backend/internal/platform/cache"
	"market_backend/internal/platform/externalapi/twelvedata"
	platformhttp "market_backend/internal/platform/http"
	"market_backend/internal/shared/ratelimiter"
)

// twelveDataCreditsPerMinute はTwelve Data無料枠の1分あたりクレジット数です。
const twelveDataCreditsPerMinute = 8

// NewMarket creates a fully configured Twelve Data client with a rate
// limiter sized for the free tier.
func NewMarket() *twelvedata.Market {
	cfg := twelvedata.LoadConfig()
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(twelveDataCreditsPerMinute, time.Minute)
	return twelvedata.NewMarket(cfg, httpClient, limiter)
}

// NewMarketRepository layers the Redis hot cache and the durable candle
// store over the live Twelve Data client. rdbとstoreはどちらもnil可です。
func NewMarketRepository(rdb *redisv9.Client, store cache.CandleStore) usecase.MarketRepository {
	return cache.NewCachingMarketRepository(rdb, store, 5*time.Minute, NewMarket(), "candles")
}
