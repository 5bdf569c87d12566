package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// payment_method = other のときだけ意味を持つ
type SubPaymentMethod string

const (
	SubPaymentMethodKakaopay SubPaymentMethod = "kakaopay"
	SubPaymentMethodNaverpay SubPaymentMethod = "naverpay"
)

// 注文。明細・単価・合計は作成時点のスナップショットで、
// 以後statusしか変更しない。
type Order struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	//ORD-YYYYMMDD-#### 形式
	OrderNumber string `gorm:"type:varchar(20);uniqueIndex;not null" json:"order_number"`

	//どの催事への注文か（弱参照）
	ApplyEventID string `gorm:"type:uuid;not null;index" json:"apply_event_id"`

	//クライアントが計算した合計。サーバー側では再検証しない。
	TotalAmount int64 `gorm:"not null" json:"total_amount"`

	PaymentMethod    PaymentMethod    `gorm:"type:varchar(20);not null" json:"payment_method"`
	SubPaymentMethod SubPaymentMethod `gorm:"type:varchar(20)" json:"sub_payment_method,omitempty"`

	Status    OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	OrderDate time.Time   `gorm:"not null;index" json:"order_date"`

	OwnerID   string    `gorm:"type:uuid;not null;index" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
