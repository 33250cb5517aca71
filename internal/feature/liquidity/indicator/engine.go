package indicator

import (
	"fmt"
	"math"
	"sort"

	"market_backend/internal/feature/liquidity/domain/entity"
	mddomain "market_backend/internal/feature/marketdata/domain"
	mdentity "market_backend/internal/feature/marketdata/domain/entity"
)

// touchEpsilonRatio is the boundary-touch threshold as a share of the zone
// range: a high within 15% of the range from the upper boundary (or a low
// within 15% of the lower one) counts as a touch.
const touchEpsilonRatio = 0.15

// Detect scans a chronologically ordered candle sequence for accumulation
// zones. Each candidate zone moves through FORMING -> CONFIRMED -> BROKEN;
// forming zones that never confirm are discarded and never reported.
// Confirmed and broken zones are merged when they overlap or sit closer
// than MinGapBetweenZones, then capped to MaxZones, weakest dropped first.
//
// The returned zones are ordered by Start and frozen: the engine keeps no
// state between calls and the same input always yields the same signal.
func Detect(candles []mdentity.Candle, s Settings) (entity.LiquiditySignal, error) {
	if err := s.Validate(); err != nil {
		return entity.LiquiditySignal{}, err
	}
	if len(candles) < s.SeedCandles {
		return entity.LiquiditySignal{}, fmt.Errorf("%w: need at least %d candles for seeding, got %d",
			mddomain.ErrInsufficientData, s.SeedCandles, len(candles))
	}
	if err := mddomain.ValidateOrder(candles); err != nil {
		return entity.LiquiditySignal{}, err
	}

	var zones []entity.AccumulationZone
	for i := 0; i+s.SeedCandles <= len(candles); {
		z, next, ok := buildZone(candles, i, s)
		if ok {
			zones = append(zones, z)
		}
		i = next
	}

	zones = mergeZones(zones, candles, s)
	zones = capZones(zones, s.MaxZones)

	return entity.LiquiditySignal{Zones: zones}, nil
}

// buildZone grows a candidate zone from the seed window starting at start.
// It returns the finished zone, the index where the next seed scan should
// resume, and whether the zone survived. A rejected seed or a discarded
// forming zone resumes the scan one candle after start; a surviving zone
// resumes right after its end.
func buildZone(candles []mdentity.Candle, start int, s Settings) (entity.AccumulationZone, int, bool) {
	seedEnd := start + s.SeedCandles // exclusive

	low, high := candles[start].Low, candles[start].High
	var sumClose float64
	for j := start; j < seedEnd; j++ {
		c := candles[j]
		if c.Low < low {
			low = c.Low
		}
		if c.High > high {
			high = c.High
		}
		sumClose += c.Close
	}

	avg := sumClose / float64(s.SeedCandles)
	if avg <= 0 {
		return entity.AccumulationZone{}, start + 1, false
	}
	rangePct := (high - low) / avg * 100
	if rangePct > s.MaxRangePercent {
		return entity.AccumulationZone{}, start + 1, false
	}

	rng := high - low
	eps := rng * touchEpsilonRatio

	z := entity.AccumulationZone{
		Start:  start,
		End:    seedEnd - 1,
		Low:    low,
		High:   high,
		Status: entity.ZoneForming,
	}
	for j := start; j < seedEnd; j++ {
		if touchesBoundary(candles[j], low, high, eps) {
			z.Touches++
		}
	}

	// refresh recomputes strength and promotes the zone to CONFIRMED once
	// duration, touches and strength all clear their minimums at once.
	refresh := func() {
		length := z.End - z.Start + 1
		z.Strength = strengthScore(length, z.Touches, rangePct, s)
		if z.Status == entity.ZoneForming &&
			length >= s.MinCandles &&
			z.Touches >= s.MinBoundaryTouches &&
			z.Strength >= s.MinStrength {
			z.Status = entity.ZoneConfirmed
		}
	}
	refresh()

	breakRun := 0
	for j := seedEnd; j < len(candles); j++ {
		c := candles[j]
		pen := closePenetrationPct(c.Close, low, high, rng)
		switch {
		case pen > s.BreakInvalidPct:
			breakRun++
			if breakRun >= s.BreakConfirmCandles {
				if z.Status == entity.ZoneConfirmed {
					z.Status = entity.ZoneBroken
					return z, z.End + 1, true
				}
				// A forming zone that breaks is discarded entirely.
				return entity.AccumulationZone{}, start + 1, false
			}
		case pen <= s.SweepTolerancePct:
			// Inside the range or a tolerated sweep: the zone keeps
			// running, boundaries never widen and grazes count as touches.
			z.End = j
			if touchesBoundary(c, low, high, eps) {
				z.Touches++
			}
			breakRun = 0
			refresh()
		default:
			// Between sweep tolerance and break depth: too deep for a
			// touch, not deep enough to invalidate. Duration still runs.
			z.End = j
			breakRun = 0
			refresh()
		}
	}

	if z.Status == entity.ZoneForming {
		return entity.AccumulationZone{}, start + 1, false
	}
	return z, z.End + 1, true
}

// closePenetrationPct は終値がゾーン境界を越えた深さをレンジ比（%）で返します。
// レンジ内の終値は0、レンジ幅ゼロのゾーンを越えた場合は+Infを返します。
func closePenetrationPct(close, low, high, rng float64) float64 {
	var depth float64
	switch {
	case close > high:
		depth = close - high
	case close < low:
		depth = low - close
	default:
		return 0
	}
	if rng == 0 {
		return math.Inf(1)
	}
	return depth / rng * 100
}

// touchesBoundary reports whether a candle grazes either boundary within
// the touch epsilon. Highs above the upper boundary (sweeps) still count.
func touchesBoundary(c mdentity.Candle, low, high, eps float64) bool {
	return high-c.High <= eps || c.Low-low <= eps
}

// strengthScore combines touch count, duration and range tightness into a
// [0, 1] confidence score. Touch and duration contributions saturate at
// three times their confirmation minimums; tighter ranges score higher.
func strengthScore(length, touches int, rangePct float64, s Settings) float64 {
	touchScore := math.Min(float64(touches)/float64(3*s.MinBoundaryTouches), 1)
	durationScore := math.Min(float64(length)/float64(3*s.MinCandles), 1)
	tightness := 1 - math.Min(rangePct/s.MaxRangePercent, 1)

	score := 0.4*touchScore + 0.3*durationScore + 0.3*tightness
	return math.Min(math.Max(score, 0), 1)
}

// mergeZones collapses zones whose index ranges overlap or whose gap is
// smaller than MinGapBetweenZones. The merged zone takes the union of the
// extremes, the summed touches, the later member's status and a strength
// recomputed over the merged span. Running merge on an already merged set
// changes nothing.
func mergeZones(zones []entity.AccumulationZone, candles []mdentity.Candle, s Settings) []entity.AccumulationZone {
	if len(zones) < 2 {
		return zones
	}
	sort.SliceStable(zones, func(i, j int) bool { return zones[i].Start < zones[j].Start })

	out := []entity.AccumulationZone{zones[0]}
	for _, z := range zones[1:] {
		last := &out[len(out)-1]
		gap := z.Start - last.End - 1
		if z.Start > last.End && gap >= s.MinGapBetweenZones {
			out = append(out, z)
			continue
		}

		if z.End > last.End {
			last.End = z.End
		}
		if z.Low < last.Low {
			last.Low = z.Low
		}
		if z.High > last.High {
			last.High = z.High
		}
		last.Touches += z.Touches
		last.Status = z.Status
		last.Strength = spanStrength(candles, *last, s)
	}
	return out
}

// spanStrength recomputes a zone's strength from its merged span.
func spanStrength(candles []mdentity.Candle, z entity.AccumulationZone, s Settings) float64 {
	var sumClose float64
	for j := z.Start; j <= z.End; j++ {
		sumClose += candles[j].Close
	}
	length := z.End - z.Start + 1
	avg := sumClose / float64(length)
	if avg <= 0 {
		return 0
	}
	rangePct := (z.High - z.Low) / avg * 100
	return strengthScore(length, z.Touches, rangePct, s)
}

// capZones keeps at most limit zones, dropping the weakest first. Among
// equal strengths the later zone is dropped first. Chronological order is
// preserved among the survivors.
func capZones(zones []entity.AccumulationZone, limit int) []entity.AccumulationZone {
	if len(zones) <= limit {
		return zones
	}

	ranked := make([]entity.AccumulationZone, len(zones))
	copy(ranked, zones)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Strength != ranked[j].Strength {
			return ranked[i].Strength > ranked[j].Strength
		}
		return ranked[i].Start < ranked[j].Start
	})

	ranked = ranked[:limit]
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Start < ranked[j].Start })
	return ranked
}
