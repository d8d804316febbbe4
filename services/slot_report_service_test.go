package services

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetName(t *testing.T) {
	// Çok baytlı Türkçe karakterler, bayt bazlı kesimde bölünecek konumda.
	long := "Şükrü Usta Kebap Salonu " + strings.Repeat("ğ", 20)
	got := sheetName(long)
	assert.Equal(t, 31, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))

	short := "Lokanta"
	assert.Equal(t, short, sheetName(short))
}

func TestSlotReportService_UtilizationReport(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	row := seedAvailability(t, db, restaurant.ID, slot.ID, date, 10)
	require.NoError(t, db.Model(row).Updates(map[string]interface{}{
		"booked_orders": 4, "remaining_capacity": 6,
	}).Error)

	service := NewSlotReportService()
	ctx := context.Background()

	buf, err := service.UtilizationReport(ctx, restaurant.ID, date, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())

	// Aralık ters verilirse doğrulama hatası.
	_, err = service.UtilizationReport(ctx, restaurant.ID, date.AddDate(0, 0, 1), date)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.UtilizationReport(ctx, restaurant.ID+99, date, date)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}
