package services

import (
	"context"
	"testing"
	"time"

	"smartbite.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotConfigService_CreateConfig(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	service := NewSlotConfigService()
	ctx := context.Background()

	input := SlotConfigInput{
		MaxOrdersPerSlot: 15,
		DaysOfWeek:       []string{"Monday", "FRIDAY"},
		MinAdvanceHours:  2,
		MaxAdvanceDays:   2,
		SlotSurcharge:    5,
	}

	config, err := service.CreateConfig(ctx, restaurant.ID, slot.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 15, config.MaxOrdersPerSlot)
	assert.True(t, config.IsEnabled)

	// Gün adları kanonik (küçük harf) saklanır.
	days, err := config.DayNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"monday", "friday"}, days)

	// Aynı çift için ikinci yapılandırma çakışmadır.
	_, err = service.CreateConfig(ctx, restaurant.ID, slot.ID, input)
	assert.ErrorIs(t, err, ErrConfigAlreadyExists)
}

func TestSlotConfigService_CreateConfig_Validation(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	service := NewSlotConfigService()
	ctx := context.Background()

	valid := SlotConfigInput{MaxOrdersPerSlot: 10, MinAdvanceHours: 2, MaxAdvanceDays: 2}

	_, err := service.CreateConfig(ctx, 9999, slot.ID, valid)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)

	_, err = service.CreateConfig(ctx, restaurant.ID, 9999, valid)
	assert.ErrorIs(t, err, ErrTimeSlotNotFound)

	bad := valid
	bad.MaxOrdersPerSlot = 0
	_, err = service.CreateConfig(ctx, restaurant.ID, slot.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = valid
	bad.DaysOfWeek = []string{"monday", "lunes"}
	_, err = service.CreateConfig(ctx, restaurant.ID, slot.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidDayOfWeek)
	assert.Contains(t, err.Error(), "'lunes'")
}

func TestSlotConfigService_BulkCreateConfig(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot1 := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	slot2 := seedTimeSlot(t, db, "5-6 PM", "17:00", "18:00")
	slot3 := seedTimeSlot(t, db, "6-7 PM", "18:00", "19:00")
	service := NewSlotConfigService()
	ctx := context.Background()

	// slot1 zaten yapılandırılmış.
	seedConfig(t, db, restaurant.ID, slot1.ID, 20)

	input := SlotConfigInput{MaxOrdersPerSlot: 25, MinAdvanceHours: 2, MaxAdvanceDays: 2}
	ids := []uint{slot1.ID, slot2.ID, slot3.ID, 9999}

	result, err := service.BulkCreateConfig(ctx, restaurant.ID, ids, input)
	require.NoError(t, err)

	// Mevcut ve bilinmeyen dilimler atlanır, batch kısmen başarısız olmaz.
	assert.Equal(t, 2, result.CreatedCount)
	require.Len(t, result.Configs, 2)
	assert.Equal(t, slot2.ID, result.Configs[0].TimeSlotID)
	assert.Equal(t, slot3.ID, result.Configs[1].TimeSlotID)
}

func TestSlotConfigService_UpdateConfig(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	config := seedConfig(t, db, restaurant.ID, slot.ID, 20)
	service := NewSlotConfigService()
	ctx := context.Background()

	disabled := false
	capacity := 30
	updated, err := service.UpdateConfig(ctx, config.ID, SlotConfigUpdateInput{
		MaxOrdersPerSlot: &capacity,
		IsEnabled:        &disabled,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.MaxOrdersPerSlot)
	assert.False(t, updated.IsEnabled)

	// Verilmeyen alanlar dokunulmadan kalır.
	assert.Equal(t, 2, updated.MinAdvanceHours)

	// Gün filtresi boş listeyle kaldırılabilir.
	clear := []string{}
	updated, err = service.UpdateConfig(ctx, config.ID, SlotConfigUpdateInput{DaysOfWeek: &clear})
	require.NoError(t, err)
	assert.Nil(t, updated.DaysOfWeek)

	_, err = service.UpdateConfig(ctx, 9999, SlotConfigUpdateInput{MaxOrdersPerSlot: &capacity})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestSlotConfigService_ListConfigs(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot1 := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	slot2 := seedTimeSlot(t, db, "5-6 PM", "17:00", "18:00")
	seedConfig(t, db, restaurant.ID, slot1.ID, 20)
	seedConfig(t, db, restaurant.ID, slot2.ID, 20)
	service := NewSlotConfigService()

	configs, err := service.ListConfigs(context.Background(), restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, configs, 2)

	_, err = service.ListConfigs(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestSlotConfigService_CreateConfig_DisabledPersists(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	service := NewSlotConfigService()
	ctx := context.Background()

	disabled := false
	config, err := service.CreateConfig(ctx, restaurant.ID, slot.ID, SlotConfigInput{
		MaxOrdersPerSlot: 10,
		MaxAdvanceDays:   2,
		IsEnabled:        &disabled,
	})
	require.NoError(t, err)

	// Açıkça false verilen is_enabled DB'ye false olarak yazılmalı.
	var stored models.RestaurantSlotConfig
	require.NoError(t, db.First(&stored, config.ID).Error)
	assert.False(t, stored.IsEnabled)

	// Kapalı yapılandırmanın dilimi listelenmez.
	capacity := NewSlotCapacityService()
	daysOut, err := capacity.ListAvailability(ctx, restaurant.ID, time.Now().UTC(), 1)
	require.NoError(t, err)
	require.Len(t, daysOut, 1)
	assert.Empty(t, daysOut[0].Slots)
}
