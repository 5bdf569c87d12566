package repository

import "context"

// 名前付きカウンタの採番を約束。
// Nextは「読み取り→加算→返却」をストレージ側の1文で行うこと。
// 別々のread/writeに分けると同時作成で番号が衝突する。
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
