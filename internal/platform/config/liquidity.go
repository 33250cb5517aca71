// Package config は環境変数からのアプリケーション設定読み込みを提供します。
package config

import (
	"fmt"
	"os"
	"strconv"

	"market_backend/internal/feature/liquidity/indicator"
)

// LoadLiquiditySettings はACCUMULATION_*環境変数からゾーン検出設定を組み立てます。
// 未設定の項目はデフォルト値のまま使われ、結果は検証済みの設定として返されます。
// 起動時に一度だけ呼び、不正な値はここで失敗させます。
func LoadLiquiditySettings() (indicator.Settings, error) {
	s := indicator.DefaultSettings()

	if err := overrideInt("ACCUMULATION_MIN_CANDLES", &s.MinCandles); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideFloat("ACCUMULATION_MAX_RANGE_PERCENT", &s.MaxRangePercent); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideFloat("ACCUMULATION_MIN_STRENGTH", &s.MinStrength); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideInt("ACCUMULATION_MIN_BOUNDARY_TOUCHES", &s.MinBoundaryTouches); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideInt("ACCUMULATION_MAX_ZONES", &s.MaxZones); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideInt("ACCUMULATION_MIN_GAP_BETWEEN_ZONES", &s.MinGapBetweenZones); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideInt("ACCUMULATION_SEED_CANDLES", &s.SeedCandles); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideFloat("ACCUMULATION_BREAK_INVALID_PCT", &s.BreakInvalidPct); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideInt("ACCUMULATION_BREAK_CONFIRM_CANDLES", &s.BreakConfirmCandles); err != nil {
		return indicator.Settings{}, err
	}
	if err := overrideFloat("ACCUMULATION_SWEEP_TOLERANCE_PCT", &s.SweepTolerancePct); err != nil {
		return indicator.Settings{}, err
	}

	return indicator.NewSettings(s)
}

func overrideInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func overrideFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	*dst = f
	return nil
}
