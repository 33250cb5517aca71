// Package entity defines the domain models for the liquidity feature.
package entity

// ZoneStatus is the lifecycle state of a candidate accumulation zone.
// FORMING zones are internal to detection and never reported; emitted
// zones are either CONFIRMED or BROKEN.
type ZoneStatus string

const (
	ZoneForming   ZoneStatus = "forming"
	ZoneConfirmed ZoneStatus = "confirmed"
	ZoneBroken    ZoneStatus = "broken"
)

// AccumulationZone is a price range where trading consolidated within
// tight bounds. Start and End are indices into the analyzed candle
// sequence. Zones are mutable only during detection and frozen once
// emitted in a LiquiditySignal.
type AccumulationZone struct {
	Start    int
	End      int
	Low      float64
	High     float64
	Touches  int     // confirmed boundary interactions
	Strength float64 // normalized confidence score in [0, 1]
	Status   ZoneStatus
}

// LiquiditySignal is the immutable result of one zone analysis.
// Zones are ordered chronologically by Start.
type LiquiditySignal struct {
	Zones []AccumulationZone
}
