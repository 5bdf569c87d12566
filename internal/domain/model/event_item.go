package model

import "time"

// 催事への商品割り当て。item_idは弱参照で、読み取り時にIDで解決する。
// 商品が消されても行自体は残る。
type EventItem struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplyEventID string `gorm:"type:uuid;not null;index" json:"apply_event_id"`
	ItemID       string `gorm:"type:uuid;not null;index" json:"item_id"`

	//催事に出す数量（商品の総在庫とは別）
	Quantity int64 `gorm:"not null" json:"quantity"`

	//入力順の保持
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
