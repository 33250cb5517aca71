// Package router はHTTPルーティングを組み立てます。
package router

import (
	"time"

	analysishandler "market_backend/internal/feature/analysis/transport/handler"
	liquidityhandler "market_backend/internal/feature/liquidity/transport/handler"
	marketdatahandler "market_backend/internal/feature/marketdata/transport/handler"
	tradinghandler "market_backend/internal/feature/trading/transport/handler"
	trendhandler "market_backend/internal/feature/trend/transport/handler"
	platformhandler "market_backend/internal/platform/http/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers はルーターが公開する全ハンドラーをまとめます。
type Handlers struct {
	Candles    *marketdatahandler.CandleHandler
	Timeframe  *marketdatahandler.TimeframeHandler
	Trend      *trendhandler.TrendHandler
	Liquidity  *liquidityhandler.LiquidityHandler
	Decision   *tradinghandler.DecisionHandler
	MarketData *tradinghandler.MarketDataHandler
	Analysis   *analysishandler.AnalysisHandler
}

// NewRouter は全エンドポイントを配線したGinエンジンを生成します。
func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	// ローカルのチャートフロントエンドからの呼び出しを許可
	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	{
		api.GET("/candles", h.Candles.GetCandlesHandler)
		api.GET("/timeframes", h.Timeframe.GetTimeframesHandler)
		api.GET("/indicators/trend", h.Trend.GetTrendHandler)
		api.GET("/indicators/liquidity", h.Liquidity.GetLiquidityHandler)
		api.GET("/bot/decisions", h.Decision.GetDecisionsHandler)
		api.GET("/market-data", h.MarketData.GetMarketDataHandler)
		api.GET("/analysis", h.Analysis.GetAnalysisHandler)
	}

	return r
}
