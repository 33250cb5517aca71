// Package domain defines domain-level errors and invariants shared by the
// marketdata feature and the indicator engines that consume its candles.
package domain

import "errors"

// Domain errors for market data operations.
// These errors represent business rule failures and are translated into
// HTTP statuses by the transport layer.
var (
	// ErrInsufficientData indicates that a candle sequence is shorter than
	// the minimum an analysis algorithm needs.
	ErrInsufficientData = errors.New("not enough candles for analysis")

	// ErrSequenceOrder indicates that candle timestamps are not strictly
	// increasing. Engines fail fast on unordered input.
	ErrSequenceOrder = errors.New("candle timestamps are not strictly increasing")

	// ErrUnsupportedTimeframe indicates a timeframe outside the supported set.
	ErrUnsupportedTimeframe = errors.New("timeframe is not supported")

	// ErrProvider indicates that the upstream market data provider failed to
	// deliver valid data.
	ErrProvider = errors.New("market data provider failure")
)
