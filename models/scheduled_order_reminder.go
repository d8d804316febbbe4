package models

import "time"

// ScheduledOrderReminder planlı sipariş için hatırlatma kaydı.
// Bildirim gönderimi dış işbirlikçinin işidir; burada yalnızca hangi
// hatırlatmaların ne zaman gönderileceği ve gönderilip gönderilmediği tutulur.
type ScheduledOrderReminder struct {
	BaseModel
	OrderID uint `gorm:"not null;uniqueIndex" json:"order_id"`

	// Teslimattan kaç saat önce (0 = 30 dakika). Kolon adları açıkça
	// sabitlenir; FindPendingBefore ham SQL'de bu adları kullanır.
	Reminder1Hours int `gorm:"column:reminder_1_hours;default:24" json:"reminder_1_hours"`
	Reminder2Hours int `gorm:"column:reminder_2_hours;default:2" json:"reminder_2_hours"`
	Reminder3Hours int `gorm:"column:reminder_3_hours;default:0" json:"reminder_3_hours"`

	Reminder1Sent bool `gorm:"column:reminder_1_sent;default:false" json:"reminder_1_sent"`
	Reminder2Sent bool `gorm:"column:reminder_2_sent;default:false" json:"reminder_2_sent"`
	Reminder3Sent bool `gorm:"column:reminder_3_sent;default:false" json:"reminder_3_sent"`

	Reminder1SentAt *time.Time `gorm:"column:reminder_1_sent_at" json:"reminder_1_sent_at,omitempty"`
	Reminder2SentAt *time.Time `gorm:"column:reminder_2_sent_at" json:"reminder_2_sent_at,omitempty"`
	Reminder3SentAt *time.Time `gorm:"column:reminder_3_sent_at" json:"reminder_3_sent_at,omitempty"`

	Order Order `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
