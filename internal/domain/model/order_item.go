package model

import "time"

// 注文明細。単価は注文時点のスナップショットを必ず保存し、
// 商品側の価格が変わっても再計算しない。
type OrderItem struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID string `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemID  string `gorm:"type:uuid;not null;index" json:"item_id"`

	Quantity          int64 `gorm:"not null" json:"quantity"`
	UnitPriceSnapshot int64 `gorm:"not null;column:unit_price_snapshot" json:"unit_price_snapshot"`

	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
