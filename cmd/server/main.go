package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"market_backend/internal/app/di"
	"market_backend/internal/app/router"
	analysishandler "market_backend/internal/feature/analysis/transport/handler"
	analysisusecase "market_backend/internal/feature/analysis/usecase"
	liquidityhandler "market_backend/internal/feature/liquidity/transport/handler"
	liquidityusecase "market_backend/internal/feature/liquidity/usecase"
	marketdatahandler "market_backend/internal/feature/marketdata/transport/handler"
	marketdatausecase "market_backend/internal/feature/marketdata/usecase"
	tradinghandler "market_backend/internal/feature/trading/transport/handler"
	tradingusecase "market_backend/internal/feature/trading/usecase"
	trendhandler "market_backend/internal/feature/trend/transport/handler"
	trendusecase "market_backend/internal/feature/trend/usecase"
	"market_backend/internal/platform/cache"
	"market_backend/internal/platform/config"
	"market_backend/internal/platform/db"
	platformredis "market_backend/internal/platform/redis"
	"market_backend/internal/platform/sqlite"
)

func main() {
	// .envがあれば読み込む（本番では環境変数を直接設定する）
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// ゾーン検出設定は起動時に一度だけ検証する
	settings, err := config.LoadLiquiditySettings()
	if err != nil {
		log.Fatal("invalid liquidity settings: ", err)
	}

	// SQLiteストア（ローソク足の永続キャッシュ）
	var store cache.CandleStore
	if gormDB, err := db.Open(db.LoadConfig()); err != nil {
		log.Println("[WARN] Candle store unavailable. Running without persistence:", err)
	} else {
		store = sqlite.NewCandleStore(gormDB)
	}

	// Redis（ホットキャッシュ）
	var rdb *redisv9.Client
	if cfg := platformredis.LoadConfig(); cfg.Enabled() {
		if tmp, err := platformredis.NewClient(cfg); err != nil {
			log.Println("[WARN] Redis unavailable. Running without hot cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository（ライブ取得＋キャッシュ層）
	marketRepo := di.NewMarketRepository(rdb, store)

	// Usecase
	fetchUC := marketdatausecase.NewFetchUsecase(marketRepo)
	trendUC := trendusecase.NewTrendUsecase(fetchUC)
	liquidityUC := liquidityusecase.NewLiquidityUsecase(fetchUC, settings)
	decisionUC := tradingusecase.NewDecisionUsecase(fetchUC)
	analysisUC := analysisusecase.NewAnalysisUsecase(fetchUC, settings)

	// Handler
	handlers := router.Handlers{
		Candles:    marketdatahandler.NewCandleHandler(fetchUC),
		Timeframe:  marketdatahandler.NewTimeframeHandler(),
		Trend:      trendhandler.NewTrendHandler(trendUC),
		Liquidity:  liquidityhandler.NewLiquidityHandler(liquidityUC),
		Decision:   tradinghandler.NewDecisionHandler(decisionUC),
		MarketData: tradinghandler.NewMarketDataHandler(decisionUC),
		Analysis:   analysishandler.NewAnalysisHandler(analysisUC),
	}

	r := router.NewRouter(handlers)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
