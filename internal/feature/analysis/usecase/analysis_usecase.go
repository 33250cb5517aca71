// Package usecase は単一のローソク足取得からトレンドと流動性をまとめて解析する
// ビジネスロジックを実装します。
package usecase

import (
	"context"

	liqentity "market_backend/internal/feature/liquidity/domain/entity"
	liqindicator "market_backend/internal/feature/liquidity/indicator"
	mdentity "market_backend/internal/feature/marketdata/domain/entity"
	trendentity "market_backend/internal/feature/trend/domain/entity"
	trendindicator "market_backend/internal/feature/trend/indicator"
)

// Analysis は1回の取得に対する全解析結果です。添字はCandlesを参照します。
type Analysis struct {
	Symbol    string
	Timeframe string
	Candles   []mdentity.Candle
	Trend     trendentity.TrendSignal
	Liquidity liqentity.LiquiditySignal
}

// CandleFetcher は解析に必要なローソク足の取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleFetcher interface {
	Latest(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error)
}

// analysisUsecase は複合解析のユースケースを定義します。
// 上流APIのクレジットを節約するため、取得は1回だけ行い両エンジンで共有します。
type analysisUsecase struct {
	fetcher  CandleFetcher
	settings liqindicator.Settings
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(fetcher CandleFetcher, settings liqindicator.Settings) *analysisUsecase {
	return &analysisUsecase{fetcher: fetcher, settings: settings}
}

// Analyze は指定銘柄のローソク足を1回取得し、トレンド解析とゾーン解析の
// 結果をローソク足とともに返します。
func (au *analysisUsecase) Analyze(ctx context.Context, symbol, timeframe string, count int) (Analysis, error) {
	candles, err := au.fetcher.Latest(ctx, symbol, timeframe, count)
	if err != nil {
		return Analysis{}, err
	}

	trend, err := trendindicator.Detect(candles, trendindicator.DefaultLookback)
	if err != nil {
		return Analysis{}, err
	}

	liquidity, err := liqindicator.Detect(candles, au.settings)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		Symbol:    symbol,
		Timeframe: timeframe,
		Candles:   candles,
		Trend:     trend,
		Liquidity: liquidity,
	}, nil
}
