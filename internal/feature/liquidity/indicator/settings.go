// Package indicator implements accumulation-zone detection over an ordered
// candle sequence: seeding, extension with sweep tolerance, break
// confirmation, merging and capping.
package indicator

import (
	"fmt"

	"market_backend/internal/feature/liquidity/domain"
)

// Settings holds every tunable threshold of the zone engine. It is built
// once at startup via NewSettings (or DefaultSettings) and shared read-only
// across invocations; the engine never mutates it.
//
// BreakInvalidPct and SweepTolerancePct are expressed as percent of the
// zone range: a close 20% of the range beyond a boundary has a penetration
// of 20.0.
type Settings struct {
	MinCandles          int     // minimum zone duration in candles (>= 1)
	MaxRangePercent     float64 // max (high-low)/avgClose*100 for a seed window (> 0)
	MinStrength         float64 // minimum strength to confirm a zone ([0, 1])
	MinBoundaryTouches  int     // minimum boundary interactions to confirm (>= 1)
	MaxZones            int     // maximum zones reported (>= 1)
	MinGapBetweenZones  int     // zones closer than this many candles merge (>= 0)
	SeedCandles         int     // seed window length (>= MinCandles)
	BreakInvalidPct     float64 // close penetration that counts toward a break (> 0)
	BreakConfirmCandles int     // consecutive breaking closes to invalidate (>= 1)
	SweepTolerancePct   float64 // penetration tolerated as a sweep (>= 0, < BreakInvalidPct)
}

// DefaultSettings returns the stock thresholds used when no overrides are
// configured.
func DefaultSettings() Settings {
	return Settings{
		MinCandles:          25,
		MaxRangePercent:     0.8,
		MinStrength:         0.55,
		MinBoundaryTouches:  3,
		MaxZones:            5,
		MinGapBetweenZones:  15,
		SeedCandles:         50,
		BreakInvalidPct:     20.0,
		BreakConfirmCandles: 2,
		SweepTolerancePct:   5.0,
	}
}

// NewSettings validates s and returns it unchanged, or
// ErrInvalidConfiguration describing the first violated bound.
func NewSettings(s Settings) (Settings, error) {
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every documented bound.
func (s Settings) Validate() error {
	switch {
	case s.MinCandles < 1:
		return fmt.Errorf("%w: MinCandles must be >= 1, got %d", domain.ErrInvalidConfiguration, s.MinCandles)
	case s.MaxRangePercent <= 0:
		return fmt.Errorf("%w: MaxRangePercent must be > 0, got %g", domain.ErrInvalidConfiguration, s.MaxRangePercent)
	case s.MinStrength < 0 || s.MinStrength > 1:
		return fmt.Errorf("%w: MinStrength must be in [0, 1], got %g", domain.ErrInvalidConfiguration, s.MinStrength)
	case s.MinBoundaryTouches < 1:
		return fmt.Errorf("%w: MinBoundaryTouches must be >= 1, got %d", domain.ErrInvalidConfiguration, s.MinBoundaryTouches)
	case s.MaxZones < 1:
		return fmt.Errorf("%w: MaxZones must be >= 1, got %d", domain.ErrInvalidConfiguration, s.MaxZones)
	case s.MinGapBetweenZones < 0:
		return fmt.Errorf("%w: MinGapBetweenZones must be >= 0, got %d", domain.ErrInvalidConfiguration, s.MinGapBetweenZones)
	case s.SeedCandles < s.MinCandles:
		return fmt.Errorf("%w: SeedCandles must be >= MinCandles (%d), got %d", domain.ErrInvalidConfiguration, s.MinCandles, s.SeedCandles)
	case s.BreakInvalidPct <= 0:
		return fmt.Errorf("%w: BreakInvalidPct must be > 0, got %g", domain.ErrInvalidConfiguration, s.BreakInvalidPct)
	case s.BreakConfirmCandles < 1:
		return fmt.Errorf("%w: BreakConfirmCandles must be >= 1, got %d", domain.ErrInvalidConfiguration, s.BreakConfirmCandles)
	case s.SweepTolerancePct < 0 || s.SweepTolerancePct >= s.BreakInvalidPct:
		return fmt.Errorf("%w: SweepTolerancePct must be >= 0 and < BreakInvalidPct (%g), got %g", domain.ErrInvalidConfiguration, s.BreakInvalidPct, s.SweepTolerancePct)
	}
	return nil
}
