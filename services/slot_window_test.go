package services

import (
	"testing"
	"time"

	"smartbite.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalDay(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"monday", "monday", true},
		{"MONDAY", "monday", true},
		{" Friday ", "friday", true},
		{"pazartesi", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := canonicalDay(tt.in)
		assert.Equal(t, tt.wantOK, ok, "girdi: %q", tt.in)
		assert.Equal(t, tt.want, got, "girdi: %q", tt.in)
	}
}

func TestDayAllowed(t *testing.T) {
	config := &models.RestaurantSlotConfig{}
	require.NoError(t, config.SetDayNames([]string{"monday", "friday"}))

	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)  // Pazartesi
	tuesday := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)  // Salı
	friday := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)   // Cuma

	assert.True(t, dayAllowed(config, monday))
	assert.False(t, dayAllowed(config, tuesday))
	assert.True(t, dayAllowed(config, friday))

	// Gün filtresi yoksa her gün geçerlidir.
	open := &models.RestaurantSlotConfig{}
	assert.True(t, dayAllowed(open, tuesday))
}

func TestWithinAdvanceDays(t *testing.T) {
	config := &models.RestaurantSlotConfig{MaxAdvanceDays: 2}
	now := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

	assert.True(t, withinAdvanceDays(config, now, now))                    // bugün
	assert.True(t, withinAdvanceDays(config, now.AddDate(0, 0, 2), now))   // sınırda
	assert.False(t, withinAdvanceDays(config, now.AddDate(0, 0, 3), now))  // pencere dışı
}

func TestMeetsMinAdvance(t *testing.T) {
	config := &models.RestaurantSlotConfig{MinAdvanceHours: 2}
	slot := &models.TimeSlot{Name: "4-5 PM", StartTime: "16:00", EndTime: "17:00"}
	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	// Slot 16:00'da başlıyor; 14:00 tam sınırdır.
	assert.True(t, meetsMinAdvance(config, slot, date, date.Add(13*time.Hour)))
	assert.True(t, meetsMinAdvance(config, slot, date, date.Add(14*time.Hour)))
	assert.False(t, meetsMinAdvance(config, slot, date, date.Add(15*time.Hour)))

	// Başlangıcı geçmiş slot sunulmaz.
	assert.False(t, meetsMinAdvance(config, slot, date, date.Add(17*time.Hour)))

	// Bozuk saat verisi güvenli tarafa düşer.
	broken := &models.TimeSlot{StartTime: "dörtte"}
	assert.False(t, meetsMinAdvance(config, broken, date, date))
}

func TestSlotOffered(t *testing.T) {
	config := &models.RestaurantSlotConfig{MinAdvanceHours: 2, MaxAdvanceDays: 2}
	require.NoError(t, config.SetDayNames([]string{"friday"}))
	slot := &models.TimeSlot{Name: "6-7 PM", StartTime: "18:00", EndTime: "19:00"}

	friday := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	now := friday.Add(10 * time.Hour) // Cuma 10:00

	assert.True(t, slotOffered(config, slot, friday, now))

	// Yanlış gün
	saturday := friday.AddDate(0, 0, 1)
	assert.False(t, slotOffered(config, slot, saturday, now))

	// Çok ileri tarih
	nextFriday := friday.AddDate(0, 0, 7)
	assert.False(t, slotOffered(config, slot, nextFriday, now))

	// Minimum ön süre dolmamış
	assert.False(t, slotOffered(config, slot, friday, friday.Add(17*time.Hour)))
}
