package api

import (
	liqentity "market_backend/internal/feature/liquidity/domain/entity"
	mdentity "market_backend/internal/feature/marketdata/domain/entity"
	tradingentity "market_backend/internal/feature/trading/domain/entity"
	trendentity "market_backend/internal/feature/trend/domain/entity"
)

// NewCandleResponses はローソク足エンティティをレスポンスDTOに変換します。
// 並び順（古い順）は維持されます。
func NewCandleResponses(candles []mdentity.Candle) []CandleResponse {
	out := make([]CandleResponse, 0, len(candles))
	for _, c := range candles {
		out = append(out, CandleResponse{
			Time:   c.Time.Unix(),
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: c.Volume,
		})
	}
	return out
}

// NewTrendResponse はトレンドシグナルをレスポンスDTOに変換します。
func NewTrendResponse(signal trendentity.TrendSignal) TrendResponse {
	swings := make([]SwingResponse, 0, len(signal.Swings))
	for _, s := range signal.Swings {
		swings = append(swings, newSwingResponse(s))
	}

	breaks := make([]StructureBreakResponse, 0, len(signal.Breaks))
	for _, b := range signal.Breaks {
		breaks = append(breaks, StructureBreakResponse{
			Direction:       string(b.Direction),
			BrokenSwing:     newSwingResponse(b.BrokenSwing),
			ConfirmingIndex: b.ConfirmingIndex,
		})
	}

	return TrendResponse{
		Direction: string(signal.Direction),
		Swings:    swings,
		Breaks:    breaks,
	}
}

func newSwingResponse(s trendentity.SwingPoint) SwingResponse {
	return SwingResponse{Index: s.Index, Price: s.Price, Kind: string(s.Kind)}
}

// NewLiquidityResponse は流動性シグナルをレスポンスDTOに変換します。
func NewLiquidityResponse(signal liqentity.LiquiditySignal) LiquidityResponse {
	zones := make([]ZoneResponse, 0, len(signal.Zones))
	for _, z := range signal.Zones {
		zones = append(zones, ZoneResponse{
			Start:    z.Start,
			End:      z.End,
			Low:      z.Low,
			High:     z.High,
			Touches:  z.Touches,
			Strength: z.Strength,
			Status:   string(z.Status),
		})
	}
	return LiquidityResponse{Zones: zones, TotalZones: len(zones)}
}

// NewDecisionResponses は売買判断エンティティをレスポンスDTOに変換します。
func NewDecisionResponses(decisions []tradingentity.Decision) []DecisionResponse {
	out := make([]DecisionResponse, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, DecisionResponse{
			Time:  d.Time.Unix(),
			Type:  string(d.Type),
			Price: d.Price,
			Text:  d.Text,
		})
	}
	return out
}
