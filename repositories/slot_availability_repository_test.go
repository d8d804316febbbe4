package repositories

import (
	"context"
	"sync"
	"testing"
	"time"

	"smartbite.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedLedgerRow(t *testing.T, db *gorm.DB, capacity int) *models.SlotAvailability {
	t.Helper()
	restaurant := models.Restaurant{Name: "Lokanta", IsActive: true}
	require.NoError(t, db.Create(&restaurant).Error)
	slot := models.TimeSlot{Name: "4-5 PM", StartTime: "16:00", EndTime: "17:00", IsActive: true}
	require.NoError(t, db.Create(&slot).Error)

	row := models.SlotAvailability{
		RestaurantID:      restaurant.ID,
		TimeSlotID:        slot.ID,
		Date:              models.DateOnly(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)),
		TotalCapacity:     capacity,
		RemainingCapacity: capacity,
		IsAvailable:       capacity > 0,
	}
	require.NoError(t, db.Create(&row).Error)
	return &row
}

func TestSlotAvailabilityRepository_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotAvailabilityRepositoryTx(db)
	ctx := context.Background()

	seed := &models.SlotAvailability{
		RestaurantID:      1,
		TimeSlotID:        1,
		Date:              time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC), // saat bileşeni atılmalı
		TotalCapacity:     10,
		RemainingCapacity: 10,
		IsAvailable:       true,
	}
	created, err := repo.GetOrCreate(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), models.DateOnly(created.Date))

	// İkinci çağrı mevcut satırı değiştirmeden döndürür.
	_, err = repo.ReserveUnit(ctx, 1, 1, seed.Date)
	require.NoError(t, err)

	seed2 := &models.SlotAvailability{
		RestaurantID: 1, TimeSlotID: 1, Date: seed.Date,
		TotalCapacity: 99, RemainingCapacity: 99, IsAvailable: true,
	}
	again, err := repo.GetOrCreate(ctx, seed2)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, 10, again.TotalCapacity)
	assert.Equal(t, 9, again.RemainingCapacity)
}

func TestSlotAvailabilityRepository_ReserveUnit_DerivesAvailability(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotAvailabilityRepositoryTx(db)
	ctx := context.Background()
	row := seedLedgerRow(t, db, 2)

	ok, err := repo.ReserveUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
	require.NoError(t, err)
	assert.True(t, ok)

	current, err := repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.True(t, current.IsAvailable) // 1 birim kaldı

	// Son birim: is_available aynı UPDATE içinde false'a düşer.
	ok, err = repo.ReserveUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
	require.NoError(t, err)
	assert.True(t, ok)

	current, err = repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.False(t, current.IsAvailable)
	assert.Equal(t, 0, current.RemainingCapacity)

	// Dolu satırda koşullu UPDATE hiçbir satırı etkilemez.
	ok, err = repo.ReserveUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlotAvailabilityRepository_ReserveUnit_Concurrent(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotAvailabilityRepositoryTx(db)
	row := seedLedgerRow(t, db, 3)

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.ReserveUnit(context.Background(), row.RestaurantID, row.TimeSlotID, row.Date)
			if err == nil {
				results <- ok
			}
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 3, wins)

	current, err := repo.FindByID(context.Background(), row.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, current.BookedOrders)
	assert.Equal(t, 0, current.RemainingCapacity)
	assert.False(t, current.IsAvailable)
}

func TestSlotAvailabilityRepository_ReleaseUnit_FloorAtZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotAvailabilityRepositoryTx(db)
	ctx := context.Background()
	row := seedLedgerRow(t, db, 1)

	// Rezervasyon yokken iade no-op.
	ok, err := repo.ReleaseUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.ReserveUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
	require.NoError(t, err)

	ok, err = repo.ReleaseUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
	require.NoError(t, err)
	assert.True(t, ok)

	current, err := repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.BookedOrders)
	assert.Equal(t, 1, current.RemainingCapacity)
	assert.True(t, current.IsAvailable)
}

func TestSlotAvailabilityRepository_ReserveUnit_ManuallyDisabled(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotAvailabilityRepositoryTx(db)
	ctx := context.Background()
	row := seedLedgerRow(t, db, 5)

	require.NoError(t, repo.UpdateManualDisable(ctx, row.ID, true))

	ok, err := repo.ReserveUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
	require.NoError(t, err)
	assert.False(t, ok)

	// Bayrak kalkınca sayaçlar olduğu gibi devam eder.
	require.NoError(t, repo.UpdateManualDisable(ctx, row.ID, false))
	ok, err = repo.ReserveUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSlotAvailabilityRepository_UpdateCapacity(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotAvailabilityRepositoryTx(db)
	ctx := context.Background()
	row := seedLedgerRow(t, db, 5)

	for i := 0; i < 4; i++ {
		ok, err := repo.ReserveUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Kapasite artınca kalan = toplam - rezervasyon.
	require.NoError(t, repo.UpdateCapacity(ctx, row.ID, 10))
	current, err := repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, current.RemainingCapacity)
	assert.True(t, current.IsAvailable)

	// Kapasite rezervasyonun altına inince kalan 0'a kilitlenir.
	require.NoError(t, repo.UpdateCapacity(ctx, row.ID, 2))
	current, err = repo.FindByID(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.TotalCapacity)
	assert.Equal(t, 4, current.BookedOrders)
	assert.Equal(t, 0, current.RemainingCapacity)
	assert.False(t, current.IsAvailable)

	assert.Error(t, repo.UpdateCapacity(ctx, row.ID, -1))
	assert.ErrorIs(t, repo.UpdateCapacity(ctx, 9999, 5), ErrNotFound)
}

func TestSlotAvailabilityRepository_ReleaseUnit_AfterCapacityClamp(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotAvailabilityRepositoryTx(db)
	ctx := context.Background()
	row := seedLedgerRow(t, db, 5)

	for i := 0; i < 5; i++ {
		ok, err := repo.ReserveUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
		require.NoError(t, err)
		require.True(t, ok)
	}

	// Admin toplamı rezervasyonların altına çeker.
	require.NoError(t, repo.UpdateCapacity(ctx, row.ID, 2))

	// İadeler kalan kapasiteyi toplamın üzerine taşımamalı.
	for i := 0; i < 5; i++ {
		released, err := repo.ReleaseUnit(ctx, row.RestaurantID, row.TimeSlotID, row.Date)
		require.NoError(t, err)
		require.True(t, released)

		var current models.SlotAvailability
		require.NoError(t, db.First(&current, row.ID).Error)
		assert.GreaterOrEqual(t, current.RemainingCapacity, 0)
		assert.LessOrEqual(t, current.RemainingCapacity, current.TotalCapacity)
	}

	var current models.SlotAvailability
	require.NoError(t, db.First(&current, row.ID).Error)
	assert.Equal(t, 0, current.BookedOrders)
	assert.Equal(t, 2, current.TotalCapacity)
	assert.Equal(t, 2, current.RemainingCapacity)
	assert.True(t, current.IsAvailable)
}

func TestSlotAvailabilityRepository_GetOrCreate_PersistsZeroCapacitySeed(t *testing.T) {
	db := newTestDB(t)
	repo := NewSlotAvailabilityRepositoryTx(db)
	ctx := context.Background()

	seed := &models.SlotAvailability{
		RestaurantID: 3, TimeSlotID: 3,
		Date:          time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		TotalCapacity: 0, RemainingCapacity: 0, IsAvailable: false,
	}
	created, err := repo.GetOrCreate(ctx, seed)
	require.NoError(t, err)

	// is_available=false kaydedilmeli; DB varsayılanı üzerine yazmamalı.
	var current models.SlotAvailability
	require.NoError(t, db.First(&current, created.ID).Error)
	assert.False(t, current.IsAvailable)

	ok, err := repo.ReserveUnit(ctx, 3, 3, seed.Date)
	require.NoError(t, err)
	assert.False(t, ok)
}
