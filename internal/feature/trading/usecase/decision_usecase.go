// Package usecase はトレンドとモメンタムから売買判断を導出するビジネスロジックを実装します。
package usecase

import (
	"context"

	mdentity "market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/trading/domain/entity"
	trendentity "market_backend/internal/feature/trend/domain/entity"
	"market_backend/internal/feature/trend/indicator"
)

const (
	// momentumWindow はモメンタム比較に使う直近・直前それぞれの足数です。
	momentumWindow = 10
	// momentumThreshold は平均終値の差をシグナルとみなす比率です（0.1%）。
	momentumThreshold = 0.001
)

// CandleFetcher は売買判断に必要なローソク足の取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleFetcher interface {
	Latest(ctx context.Context, symbol, timeframe string, count int) ([]mdentity.Candle, error)
}

// decisionUsecase は売買判断のユースケースを定義します。
type decisionUsecase struct {
	fetcher CandleFetcher
}

// NewDecisionUsecase はdecisionUsecaseの新しいインスタンスを生成します。
func NewDecisionUsecase(fetcher CandleFetcher) *decisionUsecase {
	return &decisionUsecase{fetcher: fetcher}
}

// MarketData はチャート描画用のローソク足と売買マーカーの組です。
type MarketData struct {
	Symbol    string
	Timeframe string
	Candles   []mdentity.Candle
	Decisions []entity.Decision
}

// Decide は指定銘柄のローソク足からトレンド方向に基づく売買マーカーを返します。
// トレンドがNEUTRALの場合は直近10本と直前10本の平均終値比較にフォールバック
// します。判断材料がない場合は空のスライスを返します。
func (du *decisionUsecase) Decide(ctx context.Context, symbol, timeframe string, count int) ([]entity.Decision, error) {
	candles, err := du.fetcher.Latest(ctx, symbol, timeframe, count)
	if err != nil {
		return nil, err
	}
	return decisionsFrom(candles)
}

// FetchMarketData はローソク足と売買マーカーを1回の上流取得で返します。
// マーカー用に再取得しないため、APIクレジットを節約できます。
func (du *decisionUsecase) FetchMarketData(ctx context.Context, symbol, timeframe string, count int) (MarketData, error) {
	candles, err := du.fetcher.Latest(ctx, symbol, timeframe, count)
	if err != nil {
		return MarketData{}, err
	}

	decisions, err := decisionsFrom(candles)
	if err != nil {
		return MarketData{}, err
	}

	return MarketData{
		Symbol:    symbol,
		Timeframe: timeframe,
		Candles:   candles,
		Decisions: decisions,
	}, nil
}

// decisionsFrom は取得済みのローソク足から売買マーカーを導出します。
func decisionsFrom(candles []mdentity.Candle) ([]entity.Decision, error) {
	signal, err := indicator.Detect(candles, indicator.DefaultLookback)
	if err != nil {
		return nil, err
	}

	last := candles[len(candles)-1]
	switch signal.Direction {
	case trendentity.DirectionBullish:
		return []entity.Decision{{
			Time:  last.Time,
			Type:  entity.DecisionBuy,
			Price: last.Close,
			Text:  "bullish structure break",
		}}, nil
	case trendentity.DirectionBearish:
		return []entity.Decision{{
			Time:  last.Time,
			Type:  entity.DecisionSell,
			Price: last.Close,
			Text:  "bearish structure break",
		}}, nil
	}

	return momentumDecision(candles), nil
}

// momentumDecision は直近10本と直前10本の平均終値を比較し、差が閾値を
// 超えた方向のマーカーを返します。足が20本未満、または差が閾値内の場合は
// nilを返します。
func momentumDecision(candles []mdentity.Candle) []entity.Decision {
	if len(candles) < 2*momentumWindow {
		return nil
	}

	recent := avgClose(candles[len(candles)-momentumWindow:])
	prior := avgClose(candles[len(candles)-2*momentumWindow : len(candles)-momentumWindow])
	if prior <= 0 {
		return nil
	}

	last := candles[len(candles)-1]
	switch {
	case recent > prior*(1+momentumThreshold):
		return []entity.Decision{{
			Time:  last.Time,
			Type:  entity.DecisionBuy,
			Price: last.Close,
			Text:  "momentum up",
		}}
	case recent < prior*(1-momentumThreshold):
		return []entity.Decision{{
			Time:  last.Time,
			Type:  entity.DecisionSell,
			Price: last.Close,
			Text:  "momentum down",
		}}
	}
	return nil
}

func avgClose(candles []mdentity.Candle) float64 {
	var sum float64
	for _, c := range candles {
		sum += c.Close
	}
	return sum / float64(len(candles))
}
