// Package domain defines domain-level errors for the liquidity feature.
package domain

import "errors"

// ErrInvalidConfiguration indicates that indicator settings violate their
// documented bounds. Settings are validated at construction and again by
// the engine before any candle is read.
var ErrInvalidConfiguration = errors.New("invalid liquidity indicator configuration")
