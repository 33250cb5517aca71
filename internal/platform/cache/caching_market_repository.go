// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
)

// CandleStore はローソク足の永続ストアを抽象化します。
// Goの慣例に従い、インターフェースは利用者（cache）側で定義します。
type CandleStore interface {
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
	Find(ctx context.Context, symbol, timeframe string, limit int) ([]entity.Candle, error)
	FindRange(ctx context.Context, symbol, timeframe string, start, end time.Time, limit int) ([]entity.Candle, error)
}

// CachingMarketRepository decorates a MarketRepository with a Redis hot
// cache and a durable candle store. Reads hit Redis first, then the live
// provider. Successful live fetches are written back to both layers; if the
// provider fails, stored candles are served as a degraded response. Both
// rdb and store may be nil and are skipped when absent.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	store     CandleStore
	ttl       time.Duration
	namespace string
}

// NewCachingMarketRepository decorates a MarketRepository with caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "candles".
func NewCachingMarketRepository(rdb *redis.Client, store CandleStore, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		store:     store,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetTimeSeries retrieves the latest candles, checking the hot cache first
// and falling back to the stored history when the provider is unavailable.
func (c *CachingMarketRepository) GetTimeSeries(ctx context.Context, symbol, timeframe string, outputsize int) ([]entity.Candle, error) {
	key := c.cacheKey(symbol, timeframe, outputsize)
	if out, ok := c.fromCache(ctx, key); ok {
		return out, nil
	}

	out, err := c.inner.GetTimeSeries(ctx, symbol, timeframe, outputsize)
	if err != nil {
		if stored, ok := c.fromStore(ctx, symbol, timeframe, outputsize, err); ok {
			return stored, nil
		}
		return nil, err
	}

	c.writeBack(ctx, key, out)
	return out, nil
}

// GetTimeSeriesRange retrieves candles for a time range with the same
// cache / provider / store layering as GetTimeSeries.
func (c *CachingMarketRepository) GetTimeSeriesRange(ctx context.Context, symbol, timeframe string, start, end time.Time, limit int) ([]entity.Candle, error) {
	key := c.rangeCacheKey(symbol, timeframe, start, end, limit)
	if out, ok := c.fromCache(ctx, key); ok {
		return out, nil
	}

	out, err := c.inner.GetTimeSeriesRange(ctx, symbol, timeframe, start, end, limit)
	if err != nil {
		if c.store != nil {
			stored, serr := c.store.FindRange(ctx, symbol, timeframe, start, end, limit)
			if serr == nil && len(stored) > 0 {
				slog.Warn("serving stored candles, provider unavailable",
					"symbol", symbol, "timeframe", timeframe, "error", err)
				return stored, nil
			}
		}
		return nil, err
	}

	c.writeBack(ctx, key, out)
	return out, nil
}

// fromCache reads and decodes a cached candle slice. Corrupted entries are
// deleted and treated as a miss.
func (c *CachingMarketRepository) fromCache(ctx context.Context, key string) ([]entity.Candle, bool) {
	if c.rdb == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return nil, false
	}

	var out []entity.Candle
	if err := json.Unmarshal(b, &out); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return out, true
}

// fromStore serves stored candles when the live provider failed.
func (c *CachingMarketRepository) fromStore(ctx context.Context, symbol, timeframe string, limit int, cause error) ([]entity.Candle, bool) {
	if c.store == nil {
		return nil, false
	}
	stored, err := c.store.Find(ctx, symbol, timeframe, limit)
	if err != nil || len(stored) == 0 {
		return nil, false
	}
	slog.Warn("serving stored candles, provider unavailable",
		"symbol", symbol, "timeframe", timeframe, "error", cause)
	return stored, true
}

// writeBack stores fetched candles in Redis and the durable store.
// Both writes are best effort and never fail the read path.
func (c *CachingMarketRepository) writeBack(ctx context.Context, key string, candles []entity.Candle) {
	if c.rdb != nil {
		if b, err := json.Marshal(candles); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}
	if c.store != nil && len(candles) > 0 {
		if err := c.store.UpsertBatch(ctx, candles); err != nil {
			slog.Warn("failed to persist candles", "error", err)
		}
	}
}

// cacheKey generates a cache key for a latest-candles query.
func (c *CachingMarketRepository) cacheKey(symbol, timeframe string, outputsize int) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		c.namespace,
		safe(symbol),
		safe(timeframe),
		outputsize,
	)
}

// rangeCacheKey generates a cache key for a range query.
func (c *CachingMarketRepository) rangeCacheKey(symbol, timeframe string, start, end time.Time, limit int) string {
	return fmt.Sprintf("%s:%s:%s:range:%d:%d:%d",
		c.namespace,
		safe(symbol),
		safe(timeframe),
		start.Unix(),
		end.Unix(),
		limit,
	)
}
