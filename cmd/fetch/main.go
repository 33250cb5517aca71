package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"market_backend/internal/app/di"
	"market_backend/internal/feature/marketdata/domain/entity"
	marketdatausecase "market_backend/internal/feature/marketdata/usecase"
	"market_backend/internal/platform/cache"
	"market_backend/internal/platform/db"
	"market_backend/internal/platform/sqlite"
)

// ローソク足を手動取得してコンソールに表示するCLIです。
// 取得結果はSQLiteストアにも書き込まれ、サーバーのフォールバックに使えます。
func main() {
	symbol := flag.String("symbol", "", "ticker symbol (required, e.g. AAPL)")
	timeframe := flag.String("timeframe", marketdatausecase.DefaultTimeframe, "candle timeframe (e.g. 1min, 1h, 1day)")
	count := flag.Int("count", marketdatausecase.DefaultOutputSize, "number of recent candles to fetch")
	historical := flag.Bool("historical", false, "fetch a date range instead of the latest candles")
	start := flag.String("start", "", "range start (RFC3339 or YYYY-MM-DD, requires -historical)")
	end := flag.String("end", "", "range end (RFC3339 or YYYY-MM-DD, requires -historical)")
	limit := flag.Int("limit", 0, "max candles for a range fetch (0 = provider default)")
	flag.Parse()

	if *symbol == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found. Using environment variables.")
	}

	// 取得結果を永続化するためにストアを噛ませる（Redisは使わない）
	var store cache.CandleStore
	if gormDB, err := db.Open(db.LoadConfig()); err != nil {
		log.Println("[WARN] Candle store unavailable. Running without persistence:", err)
	} else {
		store = sqlite.NewCandleStore(gormDB)
	}

	fetchUC := marketdatausecase.NewFetchUsecase(di.NewMarketRepository(nil, store))
	ctx := context.Background()

	var candles []entity.Candle
	var err error
	if *historical {
		var startTime, endTime time.Time
		if startTime, err = parseTime(*start); err != nil {
			log.Fatal("invalid -start: ", err)
		}
		if endTime, err = parseTime(*end); err != nil {
			log.Fatal("invalid -end: ", err)
		}
		candles, err = fetchUC.Historical(ctx, *symbol, *timeframe, startTime, endTime, *limit)
	} else {
		candles, err = fetchUC.Latest(ctx, *symbol, *timeframe, *count)
	}
	if err != nil {
		log.Fatal(err)
	}

	printCandles(candles)
	fmt.Printf("%d candles (%s %s)\n", len(candles), *symbol, *timeframe)
}

// parseTime はRFC3339または日付のみの形式を受け付けます。空文字はゼロ値扱いです。
func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func printCandles(candles []entity.Candle) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tOPEN\tHIGH\tLOW\tCLOSE\tVOLUME")
	for _, c := range candles {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%d\n",
			c.Time.UTC().Format("2006-01-02 15:04:05"), c.Open, c.High, c.Low, c.Close, c.Volume)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}
}
