package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"market_backend/internal/feature/liquidity/domain/entity"
	"market_backend/internal/feature/liquidity/indicator"
	"market_backend/internal/feature/liquidity/usecase"
	mdentity "market_backend/internal/feature/marketdata/domain/entity"
)

// ErrUpstream は上流取得失敗を模したテスト用エラーです。
var ErrUpstream = errors.New("upstream unavailable")

// mockFetcher はCandleFetcherのテスト用実装です。
type mockFetcher struct {
	latest func(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error)
}

func (m *mockFetcher) Latest(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error) {
	return m.latest(ctx, symbol, timeframe, count)
}

// flatCandles は狭いレンジに張り付くローソク足列を生成します。
func flatCandles(n int) []mdentity.Candle {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	candles := make([]mdentity.Candle, n)
	for i := range candles {
		candles[i] = mdentity.Candle{
			Symbol:    "AAPL",
			Timeframe: "1h",
			Time:      base.Add(time.Duration(i) * time.Hour),
			Open:      100,
			High:      100.3,
			Low:       99.7,
			Close:     100,
			Volume:    1000,
		}
	}
	return candles
}

func TestAnalyze(t *testing.T) {
	t.Run("取得したローソク足でゾーンを検出する", func(t *testing.T) {
		fetcher := &mockFetcher{
			latest: func(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error) {
				return flatCandles(60), nil
			},
		}

		lu := usecase.NewLiquidityUsecase(fetcher, indicator.DefaultSettings())
		signal, err := lu.Analyze(context.Background(), "AAPL", "1h", 60)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if len(signal.Zones) != 1 {
			t.Fatalf("zones = %d, want 1", len(signal.Zones))
		}
		if signal.Zones[0].Status != entity.ZoneConfirmed {
			t.Errorf("zone status = %s, want %s", signal.Zones[0].Status, entity.ZoneConfirmed)
		}
	})

	t.Run("取得エラーをそのまま返す", func(t *testing.T) {
		fetcher := &mockFetcher{
			latest: func(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error) {
				return nil, ErrUpstream
			},
		}

		lu := usecase.NewLiquidityUsecase(fetcher, indicator.DefaultSettings())
		if _, err := lu.Analyze(context.Background(), "AAPL", "1h", 60); !errors.Is(err, ErrUpstream) {
			t.Fatalf("Analyze() error = %v, want ErrUpstream", err)
		}
	})
}
