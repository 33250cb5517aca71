package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mdentity "market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/trend/domain/entity"
	"market_backend/internal/feature/trend/usecase"
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

// risingCandles は単調に上昇するローソク足列を生成します。
func risingCandles(n int) []mdentity.Candle {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	candles := make([]mdentity.Candle, n)
	for i := range candles {
		price := 100 + float64(i)
		candles[i] = mdentity.Candle{
			Symbol:    "AAPL",
			Timeframe: "1h",
			Time:      base.Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price + 0.5,
			Low:       price - 0.5,
			Close:     price,
			Volume:    1000,
		}
	}
	return candles
}

func TestAnalyze(t *testing.T) {
	t.Run("取得したローソク足で解析結果を返す", func(t *testing.T) {
		var gotSymbol, gotTimeframe string
		var gotCount int
		fetcher := &mockFetcher{
			latest: func(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error) {
				gotSymbol, gotTimeframe, gotCount = symbol, timeframe, count
				return risingCandles(20), nil
			},
		}

		tu := usecase.NewTrendUsecase(fetcher)
		signal, err := tu.Analyze(context.Background(), "AAPL", "1h", 20, 3)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if gotSymbol != "AAPL" || gotTimeframe != "1h" || gotCount != 20 {
			t.Errorf("fetcher called with (%s, %s, %d), want (AAPL, 1h, 20)", gotSymbol, gotTimeframe, gotCount)
		}
		// 単調上昇にはスイングが存在しない
		if signal.Direction != entity.DirectionNeutral {
			t.Errorf("direction = %s, want %s", signal.Direction, entity.DirectionNeutral)
		}
		if len(signal.Swings) != 0 || len(signal.Breaks) != 0 {
			t.Errorf("signal = %+v, want no swings or breaks", signal)
		}
	})

	t.Run("取得エラーをそのまま返す", func(t *testing.T) {
		fetcher := &mockFetcher{
			latest: func(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error) {
				return nil, ErrUpstream
			},
		}

		tu := usecase.NewTrendUsecase(fetcher)
		if _, err := tu.Analyze(context.Background(), "AAPL", "1h", 20, 3); !errors.Is(err, ErrUpstream) {
			t.Fatalf("Analyze() error = %v, want ErrUpstream", err)
		}
	})
}
