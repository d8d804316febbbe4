package models

import "time"

// PaymentStatus ödeme durumları.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment ödeme kaydı; ödeme ağ geçidi entegrasyonu kapsam dışıdır.
// Slot çekirdeği için tek ilgisi iptal edilen siparişte tamamlanmış ödemenin
// iade olarak işaretlenmesidir (best-effort yan etki).
type Payment struct {
	BaseModel
	OrderID uint `gorm:"not null;uniqueIndex" json:"order_id"`

	Amount float64       `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Method string        `gorm:"type:varchar(50)" json:"method"`

	PaidAt       *time.Time `json:"paid_at,omitempty"`
	RefundAmount float64    `gorm:"type:numeric(12,2);default:0" json:"refund_amount"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`

	Order Order `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
