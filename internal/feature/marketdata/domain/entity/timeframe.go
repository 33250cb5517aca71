package entity

// Timeframes は対応しているローソク足の時間足一覧です。
// Twelve Data のインターバル表記と一致させています。
var Timeframes = []string{
	"1min", "5min", "15min", "30min", "45min",
	"1h", "2h", "4h", "8h",
	"1day", "1week", "1month",
}

// IsSupportedTimeframe reports whether tf is one of the supported timeframes.
func IsSupportedTimeframe(tf string) bool {
	for _, t := range Timeframes {
		if t == tf {
			return true
		}
	}
	return false
}
