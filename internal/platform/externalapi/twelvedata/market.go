package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"market_backend/internal/feature/marketdata/domain"
	"market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/marketdata/usecase"
	"market_backend/internal/platform/externalapi/twelvedata/dto"
	"market_backend/internal/shared/ratelimiter"
)

// Market はTwelve Data外部APIからローソク足を取得するMarketRepository実装です。
// 取得前にレートリミッターで待機し、無料枠のクレジットを使い切らないようにします。
type Market struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// MarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*Market)(nil)

// NewMarket は指定された設定・HTTPクライアント・レートリミッターで
// Marketの新しいインスタンスを生成します。limiterはnilでも構いません。
func NewMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Market {
	return &Market{cfg: cfg, client: client, limiter: limiter}
}

// GetTimeSeries はTwelve Data APIから直近のローソク足を取得し、
// 古い順に並べたentity.Candleのスライスとして返します。
func (m *Market) GetTimeSeries(ctx context.Context, symbol, timeframe string, outputsize int) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", timeframe)
	q.Set("outputsize", strconv.Itoa(outputsize))
	return m.fetch(ctx, symbol, timeframe, q)
}

// GetTimeSeriesRange は指定期間のローソク足を取得します。
// start/endのゼロ値はその側の境界を指定しない扱いになります。
func (m *Market) GetTimeSeriesRange(ctx context.Context, symbol, timeframe string, start, end time.Time, limit int) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", timeframe)
	if !start.IsZero() {
		q.Set("start_date", start.UTC().Format("2006-01-02 15:04:05"))
	}
	if !end.IsZero() {
		q.Set("end_date", end.UTC().Format("2006-01-02 15:04:05"))
	}
	if limit > 0 {
		q.Set("outputsize", strconv.Itoa(limit))
	}
	return m.fetch(ctx, symbol, timeframe, q)
}

// fetch はtime_seriesエンドポイントを呼び出し、レスポンスをドメイン
// エンティティに変換します。上流の失敗はすべてErrProviderにラップされます。
func (m *Market) fetch(ctx context.Context, symbol, timeframe string, q url.Values) ([]entity.Candle, error) {
	if m.limiter != nil {
		m.limiter.WaitIfNeeded()
	}

	q.Set("apikey", m.cfg.APIKey)
	u := fmt.Sprintf("%s/time_series?%s", m.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: twelvedata http %d", domain.ErrProvider, res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrProvider, err)
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("%w: %s", domain.ErrProvider, body.Message)
	}

	candles := make([]entity.Candle, 0, len(body.Values))
	for _, v := range body.Values {
		c, err := parseValue(symbol, timeframe, v.Datetime, v.Open, v.High, v.Low, v.Close, v.Volume)
		if err != nil {
			return nil, err
		}
		candles = append(candles, c)
	}

	// Twelve Dataは新しい順で返すため、古い順に並べ替える
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time.Before(candles[j].Time) })

	return candles, nil
}

// parseValue は文字列フィールドのバリューを1本のローソク足に変換します。
func parseValue(symbol, timeframe, datetime, open, high, low, cl, volume string) (entity.Candle, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", datetime)
	if err != nil {
		tm, err = time.Parse("2006-01-02", datetime)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("%w: parse time %q: %v", domain.ErrProvider, datetime, err)
		}
	}
	o, err := strconv.ParseFloat(open, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("%w: parse open %q: %v", domain.ErrProvider, open, err)
	}
	h, err := strconv.ParseFloat(high, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("%w: parse high %q: %v", domain.ErrProvider, high, err)
	}
	l, err := strconv.ParseFloat(low, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("%w: parse low %q: %v", domain.ErrProvider, low, err)
	}
	c, err := strconv.ParseFloat(cl, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("%w: parse close %q: %v", domain.ErrProvider, cl, err)
	}
	vol, err := strconv.ParseInt(volume, 10, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("%w: parse volume %q: %v", domain.ErrProvider, volume, err)
	}

	return entity.Candle{
		Symbol:    symbol,
		Timeframe: timeframe,
		Time:      tm,
		Open:      o,
		High:      h,
		Low:       l,
		Close:     c,
		Volume:    vol,
	}, nil
}
