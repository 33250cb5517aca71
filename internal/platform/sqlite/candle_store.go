// Package sqlite はローソク足の永続ストアを提供します。上流プロバイダーが
// 落ちている間の縮退応答と、再取得せずに済む履歴の保存に使われます。
package sqlite

import (
	"context"
	"time"

	"market_backend/internal/feature/marketdata/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type candleStore struct {
	db *gorm.DB
}

// NewCandleStore は指定されたgorm接続でローソク足ストアを生成します。
func NewCandleStore(db *gorm.DB) *candleStore {
	return &candleStore{db: db}
}

// CandleModel はローソク足のテーブル定義です。
// (symbol, timeframe, time) の組で一意になります。
type CandleModel struct {
	ID        uint      `gorm:"primaryKey"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:candle_sym_tf_time,priority:1"`
	Timeframe string    `gorm:"size:16;not null;uniqueIndex:candle_sym_tf_time,priority:2"`
	Time      time.Time `gorm:"not null;uniqueIndex:candle_sym_tf_time,priority:3"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (CandleModel) TableName() string {
	return "candles"
}

func toModel(e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:    e.Symbol,
		Timeframe: e.Timeframe,
		Time:      e.Time,
		Open:      e.Open,
		High:      e.High,
		Low:       e.Low,
		Close:     e.Close,
		Volume:    e.Volume,
	}
}

func toEntity(m CandleModel) entity.Candle {
	return entity.Candle{
		Symbol:    m.Symbol,
		Timeframe: m.Timeframe,
		Time:      m.Time,
		Open:      m.Open,
		High:      m.High,
		Low:       m.Low,
		Close:     m.Close,
		Volume:    m.Volume,
	}
}

// UpsertBatch はローソク足を登録または更新します。
func (s *candleStore) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	ms := make([]CandleModel, 0, len(candles))
	for _, e := range candles {
		ms = append(ms, toModel(e))
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "timeframe"}, {Name: "time"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&ms).Error
}

// Find は指定銘柄・時間足の直近limit本を古い順で返します。
func (s *candleStore) Find(ctx context.Context, symbol, timeframe string, limit int) ([]entity.Candle, error) {
	var rows []CandleModel
	q := s.db.WithContext(ctx).
		Where("symbol = ? AND timeframe = ?", symbol, timeframe).
		Order("time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	// 直近limit本を取るために新しい順で読んでいるので、古い順に戻す
	out := make([]entity.Candle, len(rows))
	for i, m := range rows {
		out[len(rows)-1-i] = toEntity(m)
	}
	return out, nil
}

// FindRange は指定期間のローソク足を古い順で返します。
// start/endのゼロ値はその側の境界なしとして扱います。
func (s *candleStore) FindRange(ctx context.Context, symbol, timeframe string, start, end time.Time, limit int) ([]entity.Candle, error) {
	var rows []CandleModel
	q := s.db.WithContext(ctx).
		Where("symbol = ? AND timeframe = ?", symbol, timeframe).
		Order("time ASC")
	if !start.IsZero() {
		q = q.Where("time >= ?", start)
	}
	if !end.IsZero() {
		q = q.Where("time <= ?", end)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Candle, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
