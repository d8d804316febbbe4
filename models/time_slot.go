package models

import (
	"fmt"
	"time"
)

// TimeSlot global teslimat zaman dilimi tanımıdır (örn. "4-5 PM").
// Admin tarafından yönetilir; geçmiş siparişler referans verdiği sürece
// silinmez, is_active=false ile pasifleştirilir.
type TimeSlot struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	StartTime    string `gorm:"type:varchar(5);not null" json:"start_time"` // "16:00" (saat:dakika)
	EndTime      string `gorm:"type:varchar(5);not null" json:"end_time"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
	// default tag'i bilinçli olarak yok: tag'li boolean'larda GORM sıfır
	// değeri INSERT'ten düşürür ve açıkça false yazmak imkansızlaşır.
	// Varsayılanı kod belirler.
	IsActive bool `gorm:"not null;index" json:"is_active"`
}

// ClockLayout saat alanlarının formatı.
const ClockLayout = "15:04"

// StartsAt dilimin belirtilen tarihteki başlangıç anını döndürür.
func (ts *TimeSlot) StartsAt(date time.Time) (time.Time, error) {
	clock, err := time.Parse(ClockLayout, ts.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("geçersiz başlangıç saati %q: %w", ts.StartTime, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC), nil
}
