// Package usecase はトレンド解析のビジネスロジックを実装します。
package usecase

import (
	"context"

	mdentity "market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/trend/domain/entity"
	"market_backend/internal/feature/trend/indicator"
)

// CandleFetcher はトレンド解析に必要なローソク足の取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleFetcher interface {
	Latest(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error)
}

// trendUsecase はトレンド解析のユースケースを定義します。
type trendUsecase struct {
	fetcher CandleFetcher
}

// NewTrendUsecase はtrendUsecaseの新しいインスタンスを生成します。
func NewTrendUsecase(fetcher CandleFetcher) *trendUsecase {
	return &trendUsecase{fetcher: fetcher}
}

// Analyze は指定銘柄のローソク足を取得し、スイング構造からトレンド方向と
// 構造ブレイクを検出します。lookbackが0以下の場合はエンジンのデフォルト値を
// 使用します。
func (tu *trendUsecase) Analyze(ctx context.Context, symbol, timeframe string, count, lookback int) (entity.TrendSignal, error) {
	candles, err := tu.fetcher.Latest(ctx, symbol, timeframe, count)
	if err != nil {
		return entity.TrendSignal{}, err
	}
	return indicator.Detect(candles, lookback)
}
