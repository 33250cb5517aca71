// Package usecase は流動性（アキュミュレーションゾーン）解析のビジネスロジックを実装します。
package usecase

import (
	"context"

	"market_backend/internal/feature/liquidity/domain/entity"
	"market_backend/internal/feature/liquidity/indicator"
	mdentity "market_backend/internal/feature/marketdata/domain/entity"
)

// CandleFetcher はゾーン解析に必要なローソク足の取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleFetcher interface {
	Latest(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error)
}

// liquidityUsecase はゾーン解析のユースケースを定義します。
// 設定は起動時に一度だけ検証済みのものを受け取ります。
type liquidityUsecase struct {
	fetcher  CandleFetcher
	settings indicator.Settings
}

// NewLiquidityUsecase はliquidityUsecaseの新しいインスタンスを生成します。
func NewLiquidityUsecase(fetcher CandleFetcher, settings indicator.Settings) *liquidityUsecase {
	return &liquidityUsecase{fetcher: fetcher, settings: settings}
}

// Analyze は指定銘柄のローソク足を取得し、アキュミュレーションゾーンを検出します。
func (lu *liquidityUsecase) Analyze(ctx context.Context, symbol, timeframe string, count int) (entity.LiquiditySignal, error) {
	candles, err := lu.fetcher.Latest(ctx, symbol, timeframe, count)
	if err != nil {
		return entity.LiquiditySignal{}, err
	}
	return indicator.Detect(candles, lu.settings)
}
