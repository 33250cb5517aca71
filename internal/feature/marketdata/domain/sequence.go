package domain

import (
	"fmt"

	"market_backend/internal/feature/marketdata/domain/entity"
)

// ValidateOrder checks the sequence invariant: strictly increasing
// timestamps, oldest candle first. Returns ErrSequenceOrder on the first
// violation.
func ValidateOrder(candles []entity.Candle) error {
	for i := 1; i < len(candles); i++ {
		if !candles[i].Time.After(candles[i-1].Time) {
			return fmt.Errorf("%w: index %d (%s) is not after index %d (%s)",
				ErrSequenceOrder,
				i, candles[i].Time.Format("2006-01-02 15:04:05"),
				i-1, candles[i-1].Time.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}
