package model

import "time"

// 催事（ポップアップ出店など）。商品の一部を数量付きで割り当てる。
type ApplyEvent struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	EventName string    `gorm:"type:varchar(255);not null" json:"event_name"`
	EventDate time.Time `gorm:"not null" json:"event_date"`

	OwnerID   string    `gorm:"type:uuid;not null;index" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
