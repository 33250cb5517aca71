package config

import (
	"errors"
	"testing"

	"market_backend/internal/feature/liquidity/domain"
	"market_backend/internal/feature/liquidity/indicator"
)

func TestLoadLiquiditySettings_Defaults(t *testing.T) {
	got, err := LoadLiquiditySettings()
	if err != nil {
		t.Fatalf("LoadLiquiditySettings() error = %v", err)
	}
	if got != indicator.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults %+v", got, indicator.DefaultSettings())
	}
}

func TestLoadLiquiditySettings_Overrides(t *testing.T) {
	t.Setenv("ACCUMULATION_MIN_CANDLES", "10")
	t.Setenv("ACCUMULATION_MAX_RANGE_PERCENT", "1.5")
	t.Setenv("ACCUMULATION_MAX_ZONES", "3")

	got, err := LoadLiquiditySettings()
	if err != nil {
		t.Fatalf("LoadLiquiditySettings() error = %v", err)
	}
	if got.MinCandles != 10 || got.MaxRangePercent != 1.5 || got.MaxZones != 3 {
		t.Errorf("overrides not applied: %+v", got)
	}
	// 未設定の項目はデフォルトのまま
	if got.SeedCandles != indicator.DefaultSettings().SeedCandles {
		t.Errorf("SeedCandles = %d, want default", got.SeedCandles)
	}
}

func TestLoadLiquiditySettings_ParseError(t *testing.T) {
	t.Setenv("ACCUMULATION_MIN_CANDLES", "plenty")

	if _, err := LoadLiquiditySettings(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLiquiditySettings_InvalidCombination(t *testing.T) {
	// シード窓が最小ゾーン長より短い組み合わせは拒否される
	t.Setenv("ACCUMULATION_SEED_CANDLES", "10")

	_, err := LoadLiquiditySettings()
	if !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("error = %v, want ErrInvalidConfiguration", err)
	}
}
