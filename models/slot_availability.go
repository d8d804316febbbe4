package models

import "time"

// Rezervasyona kapalı slotlar için kullanıcıya dönen neden metinleri.
const (
	ReasonManuallyDisabled = "Slot disabled by restaurant"
	ReasonFullyBooked      = "Slot fully booked"
	ReasonUnavailable      = "Slot unavailable"
)

// SlotAvailability kapasite defteridir: (restaurant, time_slot, date) başına
// tek satır. Satır, ilgili tarih için ilk uygunluk kontrolünde config'den
// kopyalanan kapasiteyle tembel (lazy) olarak oluşturulur; sonradan yapılan
// config değişiklikleri mevcut satırları etkilemez. Satırlar hiçbir zaman
// silinmez (tarihsel kayıt).
//
// Değişmezler: 0 <= RemainingCapacity <= TotalCapacity,
// RemainingCapacity = TotalCapacity - BookedOrders, BookedOrders >= 0.
type SlotAvailability struct {
	BaseModel
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_slot_availability_triple" json:"restaurant_id"`
	TimeSlotID   uint      `gorm:"not null;uniqueIndex:idx_slot_availability_triple" json:"time_slot_id"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_slot_availability_triple" json:"date"`

	TotalCapacity     int `gorm:"not null" json:"total_capacity"`
	BookedOrders      int `gorm:"not null;default:0" json:"booked_orders"`
	RemainingCapacity int `gorm:"not null" json:"remaining_capacity"`

	// IsAvailable kapasiteden türetilir: RemainingCapacity 0'a düşünce false,
	// kapasite serbest bırakılınca tekrar true olur. IsManuallyDisabled ise
	// bağımsız admin müdahalesidir ve kapasiteden önceliklidir.
	// default tag'i yok: kapasitesi 0 olan seed satırı false ile
	// yazılabilmeli (bkz. TimeSlot.IsActive).
	IsAvailable        bool `gorm:"not null" json:"is_available"`
	IsManuallyDisabled bool `gorm:"not null" json:"is_manually_disabled"`

	// GORM İlişkileri
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TimeSlot   TimeSlot   `gorm:"foreignKey:TimeSlotID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Bookable slotun şu an rezerve edilebilir olup olmadığını söyler.
// Üç sinyalin (manuel kapatma, türetilmiş uygunluk, kalan kapasite) tek
// okunur birleşimi budur; yazılabilir durum yalnızca sayaçlar ve bayraktır.
func (a *SlotAvailability) Bookable() bool {
	return a.IsAvailable && !a.IsManuallyDisabled && a.RemainingCapacity > 0
}

// UnavailableReason rezervasyona kapalı slot için neden metni üretir.
// Rezerve edilebilir slot için boş string döner.
func (a *SlotAvailability) UnavailableReason() string {
	switch {
	case a.Bookable():
		return ""
	case a.IsManuallyDisabled:
		return ReasonManuallyDisabled
	case a.RemainingCapacity <= 0:
		return ReasonFullyBooked
	default:
		return ReasonUnavailable
	}
}

// DateOnly verilen anın takvim gününü UTC gece yarısına normalize eder.
// Defter satırlarının Date alanı her zaman bu normalize değerle yazılır
// ve sorgulanır.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
