// Package indicator implements swing-point and structure-break detection
// over an ordered candle sequence.
package indicator

import (
	"fmt"

	mddomain "market_backend/internal/feature/marketdata/domain"
	mdentity "market_backend/internal/feature/marketdata/domain/entity"
	"market_backend/internal/feature/trend/domain/entity"
)

// DefaultLookback はスイング確定に使うデフォルトの左右ローソク足本数です。
const DefaultLookback = 3

// Detect analyzes a chronologically ordered candle sequence and returns the
// swing points, structure breaks and resulting directional bias.
//
// A candle at position i is a swing high when its high is the maximum over
// the lookback candles on each side; ties are broken by the earliest index.
// The symmetric rule applies for swing lows. Walking the sequence, a close
// beyond the most recent unbroken swing of opposite polarity registers a
// StructureBreak and flips the bias. The bias stays NEUTRAL until the first
// break.
//
// The same input always yields the same signal.
func Detect(candles []mdentity.Candle, lookback int) (entity.TrendSignal, error) {
	if lookback < 1 {
		lookback = DefaultLookback
	}
	if minLen := 2*lookback + 1; len(candles) < minLen {
		return entity.TrendSignal{}, fmt.Errorf("%w: need at least %d candles for lookback %d, got %d",
			mddomain.ErrInsufficientData, minLen, lookback, len(candles))
	}
	if err := mddomain.ValidateOrder(candles); err != nil {
		return entity.TrendSignal{}, err
	}

	swings := detectSwings(candles, lookback)

	var (
		breaks    []entity.StructureBreak
		direction = entity.DirectionNeutral
		lastHigh  *entity.SwingPoint // most recent unbroken confirmed swing high
		lastLow   *entity.SwingPoint // most recent unbroken confirmed swing low
		next      int                // next swing awaiting confirmation
	)

	for i := range candles {
		// A swing at index s is only knowable once the right side of its
		// window has closed, i.e. from candle s+lookback onward.
		for next < len(swings) && swings[next].Index+lookback <= i {
			s := swings[next]
			if s.Kind == entity.SwingHigh {
				lastHigh = &s
			} else {
				lastLow = &s
			}
			next++
		}

		c := candles[i].Close
		switch {
		case direction != entity.DirectionBearish && lastLow != nil && c < lastLow.Price:
			breaks = append(breaks, entity.StructureBreak{
				Direction:       entity.DirectionBearish,
				BrokenSwing:     *lastLow,
				ConfirmingIndex: i,
			})
			direction = entity.DirectionBearish
			lastLow = nil
		case direction != entity.DirectionBullish && lastHigh != nil && c > lastHigh.Price:
			breaks = append(breaks, entity.StructureBreak{
				Direction:       entity.DirectionBullish,
				BrokenSwing:     *lastHigh,
				ConfirmingIndex: i,
			})
			direction = entity.DirectionBullish
			lastHigh = nil
		}
	}

	return entity.TrendSignal{Direction: direction, Swings: swings, Breaks: breaks}, nil
}

// detectSwings はシンメトリックなルックバック窓で確定したスイングを返します。
// 窓が両側に確保できない端のローソク足はスイングになりません。
func detectSwings(candles []mdentity.Candle, lookback int) []entity.SwingPoint {
	swings := make([]entity.SwingPoint, 0)

	for i := lookback; i < len(candles)-lookback; i++ {
		isHigh, isLow := true, true
		for j := i - lookback; j <= i+lookback; j++ {
			if j == i {
				continue
			}
			// Earlier candles win ties, so an equal high before i disqualifies i.
			if candles[j].High > candles[i].High || (j < i && candles[j].High == candles[i].High) {
				isHigh = false
			}
			if candles[j].Low < candles[i].Low || (j < i && candles[j].Low == candles[i].Low) {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh {
			swings = append(swings, entity.SwingPoint{Index: i, Price: candles[i].High, Kind: entity.SwingHigh})
		}
		if isLow {
			swings = append(swings, entity.SwingPoint{Index: i, Price: candles[i].Low, Kind: entity.SwingLow})
		}
	}

	return swings
}
