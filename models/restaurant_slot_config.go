package models

import (
	"encoding/json"
	"strings"
)

// RestaurantSlotConfig bir restoranı bir zaman dilimine bağlar: kapasite
// tavanı, geçerli günler ve rezervasyon penceresi kuralları.
// (restaurant_id, time_slot_id) çifti tekildir.
type RestaurantSlotConfig struct {
	BaseModel
	RestaurantID uint `gorm:"not null;uniqueIndex:idx_restaurant_time_slot" json:"restaurant_id"`
	TimeSlotID   uint `gorm:"not null;uniqueIndex:idx_restaurant_time_slot" json:"time_slot_id"`

	// Kapasite: slot başına kabul edilen maksimum sipariş sayısı.
	MaxOrdersPerSlot int `gorm:"not null;default:20" json:"max_orders_per_slot"`

	// default tag'i yok: açıkça false yazılabilsin (bkz. TimeSlot.IsActive).
	IsEnabled bool `gorm:"not null;index" json:"is_enabled"`

	// DaysOfWeek JSON dizi olarak saklanır (örn. ["monday","friday"]);
	// null = her gün geçerli.
	DaysOfWeek *string `gorm:"type:varchar(255)" json:"days_of_week,omitempty"`

	// Rezervasyon penceresi: slot başlangıcına en az MinAdvanceHours saat
	// kala sipariş verilebilir; en fazla MaxAdvanceDays gün öncesinden.
	MinAdvanceHours int `gorm:"default:2" json:"min_advance_hours"`
	MaxAdvanceDays  int `gorm:"default:2" json:"max_advance_days"`

	SlotSurcharge float64 `gorm:"type:numeric(12,2);default:0" json:"slot_surcharge"`

	// GORM İlişkileri
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	TimeSlot   TimeSlot   `gorm:"foreignKey:TimeSlotID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"time_slot,omitempty"`
}

// DayNames saklanan JSON diziyi çözer. null ise (nil, nil) döner.
func (c *RestaurantSlotConfig) DayNames() ([]string, error) {
	if c.DaysOfWeek == nil || *c.DaysOfWeek == "" {
		return nil, nil
	}
	var days []string
	if err := json.Unmarshal([]byte(*c.DaysOfWeek), &days); err != nil {
		return nil, err
	}
	return days, nil
}

// SetDayNames gün listesini JSON olarak saklar. Boş liste null'a eşittir.
func (c *RestaurantSlotConfig) SetDayNames(days []string) error {
	if len(days) == 0 {
		c.DaysOfWeek = nil
		return nil
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return err
	}
	encoded := string(raw)
	c.DaysOfWeek = &encoded
	return nil
}

// AllowsDay verilen gün adının (büyük/küçük harf duyarsız) yapılandırmada
// geçerli olup olmadığını söyler. DaysOfWeek null ise her gün geçerlidir.
func (c *RestaurantSlotConfig) AllowsDay(weekday string) bool {
	days, err := c.DayNames()
	if err != nil || days == nil {
		return true
	}
	for _, d := range days {
		if strings.EqualFold(d, weekday) {
			return true
		}
	}
	return false
}
