package usecase

import "time"

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 注文番号の末尾4桁用の乱数源。テストで差し替える。
type RandomSource interface {
	IntN(n int) int
}
