package indicator_test

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"market_backend/internal/feature/liquidity/domain"
	"market_backend/internal/feature/liquidity/domain/entity"
	"market_backend/internal/feature/liquidity/indicator"
	mddomain "market_backend/internal/feature/marketdata/domain"
	mdentity "market_backend/internal/feature/marketdata/domain/entity"
)

// bar は (high, low, close) の組からテスト用ローソク足を組み立てるためのヘルパー型です。
type bar struct {
	high, low, close float64
}

// buildBars は1分刻みの昇順タイムスタンプでローソク足列を生成します。
func buildBars(bars []bar) []mdentity.Candle {
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	candles := make([]mdentity.Candle, len(bars))
	for i, b := range bars {
		candles[i] = mdentity.Candle{
			Symbol:    "AAPL",
			Timeframe: "1min",
			Time:      base.Add(time.Duration(i) * time.Minute),
			Open:      b.close,
			High:      b.high,
			Low:       b.low,
			Close:     b.close,
			Volume:    1000,
		}
	}
	return candles
}

// repeat は同一のバーをn回並べます。
func repeat(b bar, n int) []bar {
	bars := make([]bar, n)
	for i := range bars {
		bars[i] = b
	}
	return bars
}

// zoneSettings は短いフィクスチャで全経路を通せるよう縮めた設定です。
func zoneSettings() indicator.Settings {
	return indicator.Settings{
		MinCandles:          5,
		MaxRangePercent:     4.0,
		MinStrength:         0.5,
		MinBoundaryTouches:  2,
		MaxZones:            3,
		MinGapBetweenZones:  4,
		SeedCandles:         5,
		BreakInvalidPct:     20.0,
		BreakConfirmCandles: 2,
		SweepTolerancePct:   5.0,
	}
}

var (
	// band100 は 99〜101 のレンジに収まるフラットなバー。両境界にタッチします。
	band100 = bar{high: 101, low: 99, close: 100}
	// mid100 はレンジ中央に留まり、どちらの境界にもタッチしないバー。
	mid100 = bar{high: 100.5, low: 99.5, close: 100}
	// band103 は 102.8〜103.2 のレンジに収まるフラットなバー。
	band103 = bar{high: 103.2, low: 102.8, close: 103}
	// disrupt はどのシード窓も不成立にする大振れバー。
	disrupt = bar{high: 110, low: 90, close: 100}
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDetect_InvalidSettings(t *testing.T) {
	candles := buildBars(repeat(band100, 10))
	_, err := indicator.Detect(candles, indicator.Settings{})
	if !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Fatalf("Detect() error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestDetect_InsufficientData(t *testing.T) {
	candles := buildBars(repeat(band100, 3))
	_, err := indicator.Detect(candles, zoneSettings())
	if !errors.Is(err, mddomain.ErrInsufficientData) {
		t.Fatalf("Detect() error = %v, want ErrInsufficientData", err)
	}
}

func TestDetect_SequenceOrder(t *testing.T) {
	candles := buildBars(repeat(band100, 6))
	candles[3].Time = candles[2].Time

	_, err := indicator.Detect(candles, zoneSettings())
	if !errors.Is(err, mddomain.ErrSequenceOrder) {
		t.Fatalf("Detect() error = %v, want ErrSequenceOrder", err)
	}
}

// TestDetect_FlatRangeConfirms はデフォルト設定で、狭いレンジに張り付いた
// 60本のローソク足が単一のCONFIRMEDゾーンになることを確認します。
func TestDetect_FlatRangeConfirms(t *testing.T) {
	candles := buildBars(repeat(bar{high: 100.3, low: 99.7, close: 100}, 60))

	got, err := indicator.Detect(candles, indicator.DefaultSettings())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 1 {
		t.Fatalf("Detect() zones = %d, want 1", len(got.Zones))
	}

	z := got.Zones[0]
	if z.Start != 0 || z.End != 59 {
		t.Errorf("zone span = [%d, %d], want [0, 59]", z.Start, z.End)
	}
	if z.Low != 99.7 || z.High != 100.3 {
		t.Errorf("zone boundaries = [%v, %v], want [99.7, 100.3]", z.Low, z.High)
	}
	if z.Touches != 60 {
		t.Errorf("zone touches = %d, want 60", z.Touches)
	}
	if z.Status != entity.ZoneConfirmed {
		t.Errorf("zone status = %s, want %s", z.Status, entity.ZoneConfirmed)
	}
	// touches 60/9 で飽和、duration 60/75、rangePct 0.6/0.8。
	want := 0.4*1 + 0.3*(60.0/75.0) + 0.3*(1-0.6/0.8)
	if !almostEqual(z.Strength, want) {
		t.Errorf("zone strength = %v, want %v", z.Strength, want)
	}
}

// TestDetect_TrendingMarketYieldsNoZone は一方向に動き続ける相場では
// シード窓がレンジ条件を満たさず、ゾーンが一切出ないことを確認します。
func TestDetect_TrendingMarketYieldsNoZone(t *testing.T) {
	bars := make([]bar, 10)
	for i := range bars {
		base := 100 + 2*float64(i)
		bars[i] = bar{high: base + 0.2, low: base - 0.2, close: base}
	}

	got, err := indicator.Detect(buildBars(bars), zoneSettings())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 0 {
		t.Fatalf("Detect() zones = %+v, want none", got.Zones)
	}
}

// TestDetect_SweepDoesNotBreak は許容内のスイープがブレイク扱いにならず、
// ゾーンを延長しタッチとして数えられることを確認します。
func TestDetect_SweepDoesNotBreak(t *testing.T) {
	bars := repeat(band100, 5)
	// 終値101.1: レンジ2に対する貫通 0.1 = ちょうど5%で許容内。
	bars = append(bars, bar{high: 101.2, low: 100.9, close: 101.1})
	bars = append(bars, repeat(band100, 4)...)

	got, err := indicator.Detect(buildBars(bars), zoneSettings())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 1 {
		t.Fatalf("Detect() zones = %d, want 1", len(got.Zones))
	}

	z := got.Zones[0]
	if z.Start != 0 || z.End != 9 {
		t.Errorf("zone span = [%d, %d], want [0, 9]", z.Start, z.End)
	}
	if z.Low != 99 || z.High != 101 {
		t.Errorf("zone boundaries = [%v, %v], want [99, 101]", z.Low, z.High)
	}
	if z.Touches != 10 {
		t.Errorf("zone touches = %d, want 10", z.Touches)
	}
	if z.Status != entity.ZoneConfirmed {
		t.Errorf("zone status = %s, want %s", z.Status, entity.ZoneConfirmed)
	}
}

// TestDetect_UnsustainedBreakRecovers は深い貫通が1本だけでレンジ内に戻った
// 場合、ブレイク連続数がリセットされゾーンが生き残ることを確認します。
func TestDetect_UnsustainedBreakRecovers(t *testing.T) {
	bars := repeat(band100, 5)
	bars = append(bars, band103) // 貫通100%だが1本のみ
	bars = append(bars, repeat(band100, 4)...)

	got, err := indicator.Detect(buildBars(bars), zoneSettings())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 1 {
		t.Fatalf("Detect() zones = %d, want 1", len(got.Zones))
	}

	z := got.Zones[0]
	if z.End != 9 || z.Status != entity.ZoneConfirmed {
		t.Errorf("zone = %+v, want End 9 and status %s", z, entity.ZoneConfirmed)
	}
	if z.Touches != 9 {
		t.Errorf("zone touches = %d, want 9", z.Touches)
	}
}

// TestDetect_SustainedBreakMarksBroken は深い貫通がBreakConfirmCandles本
// 連続した時点で、確定済みゾーンがBROKENとして報告されることを確認します。
func TestDetect_SustainedBreakMarksBroken(t *testing.T) {
	bars := repeat(band100, 5)
	bars = append(bars, band103, band103)

	got, err := indicator.Detect(buildBars(bars), zoneSettings())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 1 {
		t.Fatalf("Detect() zones = %d, want 1", len(got.Zones))
	}

	z := got.Zones[0]
	want := entity.AccumulationZone{
		Start:    0,
		End:      4,
		Low:      99,
		High:     101,
		Touches:  5,
		Strength: z.Strength,
		Status:   entity.ZoneBroken,
	}
	if !reflect.DeepEqual(z, want) {
		t.Errorf("zone = %+v, want %+v", z, want)
	}
	wantStrength := 0.4*(5.0/6.0) + 0.3*(5.0/15.0) + 0.3*(1-2.0/4.0)
	if !almostEqual(z.Strength, wantStrength) {
		t.Errorf("zone strength = %v, want %v", z.Strength, wantStrength)
	}
}

// TestDetect_FormingZoneDiscarded はタッチ不足のまま終わった形成中ゾーンが
// 一切報告されないことを確認します。
func TestDetect_FormingZoneDiscarded(t *testing.T) {
	bars := []bar{band100}
	bars = append(bars, repeat(mid100, 4)...)

	got, err := indicator.Detect(buildBars(bars), zoneSettings())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 0 {
		t.Fatalf("Detect() zones = %+v, want none", got.Zones)
	}
}

// mergeFixture はブレイク済みゾーンの直後に新しいレンジが形成され、
// ギャップがMinGapBetweenZones未満になるローソク足列を返します。
func mergeFixture() []mdentity.Candle {
	bars := repeat(band100, 5)          // ゾーン1: index 0〜4
	bars = append(bars, band103, band103) // ゾーン1をブレイク、かつ次レンジの先頭
	bars = append(bars, repeat(band103, 3)...) // ゾーン2: index 5〜9
	return buildBars(bars)
}

// TestDetect_NearbyZonesMerge は隣接するゾーンが1つに統合され、境界が
// 両者の極値の合併、タッチが合算、強度が統合スパンで再計算されることを
// 確認します。
func TestDetect_NearbyZonesMerge(t *testing.T) {
	got, err := indicator.Detect(mergeFixture(), zoneSettings())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 1 {
		t.Fatalf("Detect() zones = %d, want 1", len(got.Zones))
	}

	z := got.Zones[0]
	if z.Start != 0 || z.End != 9 {
		t.Errorf("merged span = [%d, %d], want [0, 9]", z.Start, z.End)
	}
	if z.Low != 99 || z.High != 103.2 {
		t.Errorf("merged boundaries = [%v, %v], want [99, 103.2]", z.Low, z.High)
	}
	if z.Touches != 10 {
		t.Errorf("merged touches = %d, want 10", z.Touches)
	}
	if z.Status != entity.ZoneConfirmed {
		t.Errorf("merged status = %s, want %s", z.Status, entity.ZoneConfirmed)
	}
	// 統合スパンのrangePctはMaxRangePercentを超えるためタイト度は0。
	want := 0.4*1 + 0.3*(10.0/15.0) + 0.3*0
	if !almostEqual(z.Strength, want) {
		t.Errorf("merged strength = %v, want %v", z.Strength, want)
	}
}

// distantFixture はギャップがMinGapBetweenZones以上になるよう、間に
// 大振れバーを挟んだ2ゾーンのローソク足列を返します。
func distantFixture(second bar) []mdentity.Candle {
	bars := repeat(band100, 5)            // ゾーン1: index 0〜4
	bars = append(bars, band103, band103) // ゾーン1をブレイク
	bars = append(bars, disrupt, disrupt) // 中間のシード窓を全て不成立に
	bars = append(bars, repeat(second, 5)...) // ゾーン2: index 9〜13
	return buildBars(bars)
}

func TestDetect_DistantZonesStayApart(t *testing.T) {
	got, err := indicator.Detect(distantFixture(band103), zoneSettings())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 2 {
		t.Fatalf("Detect() zones = %d, want 2", len(got.Zones))
	}

	first, second := got.Zones[0], got.Zones[1]
	if first.Start != 0 || first.End != 4 || first.Status != entity.ZoneBroken {
		t.Errorf("first zone = %+v, want span [0, 4] status %s", first, entity.ZoneBroken)
	}
	if second.Start != 9 || second.End != 13 || second.Status != entity.ZoneConfirmed {
		t.Errorf("second zone = %+v, want span [9, 13] status %s", second, entity.ZoneConfirmed)
	}
	if second.Low != 102.8 || second.High != 103.2 {
		t.Errorf("second boundaries = [%v, %v], want [102.8, 103.2]", second.Low, second.High)
	}
}

// TestDetect_CapKeepsStrongest はMaxZones超過時に強度の低いゾーンから
// 落とされることを確認します。
func TestDetect_CapKeepsStrongest(t *testing.T) {
	s := zoneSettings()
	s.MaxZones = 1

	got, err := indicator.Detect(distantFixture(band103), s)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 1 {
		t.Fatalf("Detect() zones = %d, want 1", len(got.Zones))
	}
	// 103帯のゾーンはレンジがよりタイトで強度が高い。
	if got.Zones[0].Start != 9 {
		t.Errorf("surviving zone start = %d, want 9", got.Zones[0].Start)
	}
}

// TestDetect_CapTieDropsLater は強度が同値のとき、開始が遅いゾーンから
// 落とされることを確認します。
func TestDetect_CapTieDropsLater(t *testing.T) {
	s := zoneSettings()
	s.MaxZones = 1

	// 2つ目のゾーンも100帯にして、幾何を1つ目と完全に一致させる。
	got, err := indicator.Detect(distantFixture(band100), s)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(got.Zones) != 1 {
		t.Fatalf("Detect() zones = %d, want 1", len(got.Zones))
	}
	if got.Zones[0].Start != 0 {
		t.Errorf("surviving zone start = %d, want 0", got.Zones[0].Start)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	candles := mergeFixture()
	s := zoneSettings()

	first, err := indicator.Detect(candles, s)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	second, err := indicator.Detect(candles, s)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Detect() not deterministic: %+v vs %+v", first, second)
	}
}
