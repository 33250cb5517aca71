// Package entity はトレーディング判断のドメインエンティティを定義します。
package entity

import "time"

// DecisionType は売買判断の種別を表します。
type DecisionType string

const (
	DecisionBuy  DecisionType = "buy"
	DecisionSell DecisionType = "sell"
)

// Decision はチャート上に置く売買判断マーカーです。
type Decision struct {
	Time  time.Time    // マーカーを置く足の時刻
	Type  DecisionType // buy / sell
	Price float64      // 判断時点の終値
	Text  string       // 判断根拠の注記
}
