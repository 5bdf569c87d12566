package usecase

import "github.com/j99way99/my-inv-app/internal/domain/model"

// 在庫・販売数はカウンタを持たず、注文明細から毎回計算する。
// 二重管理にするとズレたときにどちらが正か分からなくなるため。

// CommittedQuantity は明細のうちitemIDに一致する行の数量を合計する。
func CommittedQuantity(rows []model.OrderItem, itemID string) int64 {
	var total int64
	for _, row := range rows {
		if row.ItemID == itemID {
			total += row.Quantity
		}
	}
	return total
}

// AvailableStock は名目在庫からコミット済み数量を引いた残りを返す。
// 売り越していてもマイナスにはしない（表示用に0で止める）。
func AvailableStock(stockQuantity int64, committed int64) int64 {
	rest := stockQuantity - committed
	if rest < 0 {
		return 0
	}
	return rest
}
