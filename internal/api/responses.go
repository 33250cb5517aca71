// Package api は各フィーチャーのハンドラーが共有するレスポンスDTOを定義します。
package api

// ErrorResponse はエラーレスポンスのDTOです。
type ErrorResponse struct {
	Error string `json:"error"` // エラーメッセージ
}

// CandleResponse はロウソク足データのレスポンスDTOです。
// Timeはlightweight-charts互換のUNIX秒です。
type CandleResponse struct {
	Time   int64   `json:"time"`   // UNIX秒
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume int64   `json:"volume"` // 出来高
}

// TimeframeResponse はサポートする時間足一覧のレスポンスDTOです。
type TimeframeResponse struct {
	Timeframes []string `json:"timeframes"`
}

// SwingResponse はスイングポイントのレスポンスDTOです。
type SwingResponse struct {
	Index int     `json:"index"` // ローソク足列内の位置
	Price float64 `json:"price"` // スイング価格
	Kind  string  `json:"kind"`  // high / low
}

// StructureBreakResponse は構造ブレイクのレスポンスDTOです。
type StructureBreakResponse struct {
	Direction       string        `json:"direction"`        // BULLISH / BEARISH
	BrokenSwing     SwingResponse `json:"broken_swing"`     // 破られたスイング
	ConfirmingIndex int           `json:"confirming_index"` // ブレイクを確定した足の位置
}

// TrendResponse はトレンド解析結果のレスポンスDTOです。
type TrendResponse struct {
	Direction string                   `json:"direction"`
	Swings    []SwingResponse          `json:"swings"`
	Breaks    []StructureBreakResponse `json:"breaks"`
}

// ZoneResponse はアキュミュレーションゾーンのレスポンスDTOです。
type ZoneResponse struct {
	Start    int     `json:"start"`    // ゾーン開始位置
	End      int     `json:"end"`      // ゾーン終了位置
	Low      float64 `json:"low"`      // 下側境界
	High     float64 `json:"high"`     // 上側境界
	Touches  int     `json:"touches"`  // 境界タッチ数
	Strength float64 `json:"strength"` // 信頼度 [0, 1]
	Status   string  `json:"status"`   // confirmed / broken
}

// LiquidityResponse は流動性解析結果のレスポンスDTOです。
type LiquidityResponse struct {
	Zones      []ZoneResponse `json:"zones"`
	TotalZones int            `json:"total_zones"`
}

// DecisionResponse は売買判断マーカーのレスポンスDTOです。
type DecisionResponse struct {
	Time  int64   `json:"time"`  // マーカーを置く足のUNIX秒
	Type  string  `json:"type"`  // buy / sell
	Price float64 `json:"price"` // 判断時点の価格
	Text  string  `json:"text"`  // マーカーの注記
}

// MarketDataResponse はローソク足と売買マーカーをまとめたレスポンスDTOです。
type MarketDataResponse struct {
	Symbol    string             `json:"symbol"`
	Timeframe string             `json:"timeframe"`
	Candles   []CandleResponse   `json:"candles"`
	Decisions []DecisionResponse `json:"decisions"`
}

// AnalysisResponse はローソク足・トレンド・流動性をまとめたレスポンスDTOです。
type AnalysisResponse struct {
	Symbol    string            `json:"symbol"`
	Timeframe string            `json:"timeframe"`
	Candles   []CandleResponse  `json:"candles"`
	Trend     TrendResponse     `json:"trend"`
	Liquidity LiquidityResponse `json:"liquidity"`
}
