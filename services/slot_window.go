package services

import (
	"strings"
	"time"

	"smartbite.app/models"
)

// canonicalWeekdays haftanın yedi kanonik gün adı (küçük harf).
var canonicalWeekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// canonicalDay gün adını büyük/küçük harf duyarsız eşleştirip kanonik halini
// döndürür. Eşleşme yoksa ikinci değer false olur.
func canonicalDay(name string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for _, day := range canonicalWeekdays {
		if day == trimmed {
			return day, true
		}
	}
	return "", false
}

// weekdayName tarihin gün adını küçük harfle döndürür ("monday" vb.).
func weekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// Aşağıdaki pencere kontrolleri (config, hedef tarih, şimdi) üçlüsünün saf
// fonksiyonlarıdır; yan etkileri yoktur ve kapasite yolundan bağımsız test edilir.

// dayAllowed config'in gün filtresine göre hedef tarihin geçerliliği.
func dayAllowed(config *models.RestaurantSlotConfig, date time.Time) bool {
	return config.AllowsDay(weekdayName(date))
}

// withinAdvanceDays hedef tarih bugünden en fazla MaxAdvanceDays gün sonra mı.
func withinAdvanceDays(config *models.RestaurantSlotConfig, date, now time.Time) bool {
	daysAhead := int(models.DateOnly(date).Sub(models.DateOnly(now)).Hours() / 24)
	return daysAhead <= config.MaxAdvanceDays
}

// meetsMinAdvance slot başlangıcına en az MinAdvanceHours saat var mı.
// Başlangıcı geçmiş slotlar da bu kontrole takılır.
func meetsMinAdvance(config *models.RestaurantSlotConfig, slot *models.TimeSlot, date, now time.Time) bool {
	slotStart, err := slot.StartsAt(date)
	if err != nil {
		return false
	}
	return slotStart.Sub(now).Hours() >= float64(config.MinAdvanceHours)
}

// slotOffered üç pencere kontrolünün birleşimi: başarısız olan slot sonuçta
// "uygun değil" olarak değil, hiç sunulmayarak elenir.
func slotOffered(config *models.RestaurantSlotConfig, slot *models.TimeSlot, date, now time.Time) bool {
	return dayAllowed(config, date) &&
		withinAdvanceDays(config, date, now) &&
		meetsMinAdvance(config, slot, date, now)
}
