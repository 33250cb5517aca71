// Package entity defines the domain models for the trend feature.
package entity

// SwingKind classifies a swing point as a local high or low.
type SwingKind string

const (
	SwingHigh SwingKind = "high"
	SwingLow  SwingKind = "low"
)

// Direction is the structural bias of the market.
type Direction string

const (
	DirectionNeutral Direction = "NEUTRAL"
	DirectionBullish Direction = "BULLISH"
	DirectionBearish Direction = "BEARISH"
)

// SwingPoint is a local price extremum confirmed by symmetric lookback.
// Index references a position in the analyzed candle sequence; candles are
// never copied into the signal.
type SwingPoint struct {
	Index int
	Price float64
	Kind  SwingKind
}

// StructureBreak records a close beyond a previously confirmed swing of the
// opposite polarity to the prevailing bias (a break of structure).
type StructureBreak struct {
	Direction       Direction
	BrokenSwing     SwingPoint
	ConfirmingIndex int // index of the candle whose close confirmed the break
}

// TrendSignal is the immutable result of one structure analysis.
// Swings and Breaks are ordered by index.
type TrendSignal struct {
	Direction Direction
	Swings    []SwingPoint
	Breaks    []StructureBreak
}
