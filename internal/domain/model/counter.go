package model

// 採番カウンタ。seqの更新は必ずストレージ側の単一文
// （INSERT ... ON CONFLICT ... RETURNING）で行う。
type Counter struct {
	Name string `gorm:"type:varchar(50);primaryKey" json:"name"`
	Seq  int64  `gorm:"not null" json:"seq"`
}
