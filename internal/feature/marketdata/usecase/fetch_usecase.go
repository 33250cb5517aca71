// Package usecase はローソク足取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"market_backend/internal/feature/marketdata/domain"
	"market_backend/internal/feature/marketdata/domain/entity"
)

const (
	// DefaultTimeframe はローソク足クエリのデフォルト時間足です。
	DefaultTimeframe = "1min"
	// DefaultOutputSize はデフォルトのローソク足返却件数です。
	DefaultOutputSize = 200
	// MaxOutputSize はローソク足の最大返却件数です。
	MaxOutputSize = 5000
)

// MarketRepository は市場データ取得レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// GetTimeSeries fetches the most recent candles, oldest first.
	GetTimeSeries(ctx context.Context, symbol, timeframe string, outputsize int) ([]entity.Candle, error)
	// GetTimeSeriesRange fetches candles within [start, end], oldest first.
	// A zero start/end leaves that bound open; limit <= 0 means no limit.
	GetTimeSeriesRange(ctx context.Context, symbol, timeframe string, start, end time.Time, limit int) ([]entity.Candle, error)
}

// fetchUsecase はローソク足取得のユースケースを定義します。
type fetchUsecase struct {
	market MarketRepository
}

// NewFetchUsecase はfetchUsecaseの新しいインスタンスを生成します。
func NewFetchUsecase(market MarketRepository) *fetchUsecase {
	return &fetchUsecase{market: market}
}

// Latest は指定されたシンボルと時間足の直近ローソク足を取得します。
// 時間足が未対応の場合はErrUnsupportedTimeframeを返します。
func (fu *fetchUsecase) Latest(ctx context.Context, symbol, timeframe string, count int) ([]entity.Candle, error) {
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	if !entity.IsSupportedTimeframe(timeframe) {
		return nil, fmt.Errorf("%w: %q (valid: %v)", domain.ErrUnsupportedTimeframe, timeframe, entity.Timeframes)
	}
	if count <= 0 || count > MaxOutputSize {
		count = DefaultOutputSize
	}

	return fu.market.GetTimeSeries(ctx, symbol, timeframe, count)
}

// Historical は指定期間のローソク足を取得します。
func (fu *fetchUsecase) Historical(ctx context.Context, symbol, timeframe string, start, end time.Time, limit int) ([]entity.Candle, error) {
	if timeframe == "" {
		timeframe = DefaultTimeframe
	}
	if !entity.IsSupportedTimeframe(timeframe) {
		return nil, fmt.Errorf("%w: %q (valid: %v)", domain.ErrUnsupportedTimeframe, timeframe, entity.Timeframes)
	}
	if limit > MaxOutputSize {
		limit = MaxOutputSize
	}

	return fu.market.GetTimeSeriesRange(ctx, symbol, timeframe, start, end, limit)
}
