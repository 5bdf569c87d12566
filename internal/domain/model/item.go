package model

import "time"

// 商品。stock_quantityはオーナーが設定した名目在庫で、
// 注文が入っても自動では減らさない（販売数は注文履歴から都度計算する）。
type Item struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	//ITEM-000042 形式。採番は作成時に一度だけ。
	ItemNumber string `gorm:"type:varchar(20);uniqueIndex;not null" json:"item_number"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Category    string `gorm:"type:varchar(100);not null" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	StockQuantity int64 `gorm:"not null" json:"stock_quantity"`
	Price         int64 `gorm:"not null" json:"price"`

	OwnerID   string    `gorm:"type:uuid;not null;index" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
