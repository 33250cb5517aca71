// Package entity defines the domain models for the marketdata feature.
package entity

import "time"

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
// for a symbol at a specific timeframe. Candles are immutable value objects:
// once built by a provider or loaded from the store they are never mutated.
type Candle struct {
	Symbol    string    // Asset symbol (e.g., "BTC/USD", "AAPL")
	Timeframe string    // Candle timeframe (e.g., "1min", "1h", "1day")
	Time      time.Time // Timestamp for the start of this candle period
	Open      float64   // Opening price
	High      float64   // Highest price during this period
	Low       float64   // Lowest price during this period
	Close     float64   // Closing price
	Volume    int64     // Trading volume
}
