package services

import (
	"testing"

	"smartbite.app/configs/configsdatabase"
	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	defer configslog.SyncLogger()
	m.Run()
}

// newTestDB her test için izole bir in-memory SQLite açar. Tek bağlantı
// kullanılır: bellek veritabanı bağlantıyla birlikte yaşar ve eşzamanlı
// goroutine'ler sürücü seviyesinde sıralanır.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.TimeSlot{},
		&models.RestaurantSlotConfig{},
		&models.SlotAvailability{},
		&models.Order{},
		&models.OrderItem{},
		&models.ScheduledOrderReminder{},
		&models.Payment{},
	))

	configsdatabase.SetDB(db)
	t.Cleanup(func() {
		configsdatabase.SetDB(nil)
		_ = sqlDB.Close()
	})
	return db
}

// seedRestaurant testler için aktif restoran kaydı oluşturur.
func seedRestaurant(t *testing.T, db *gorm.DB) *models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: "Test Lokantası", IsActive: true, DeliveryFee: 10}
	require.NoError(t, db.Create(&restaurant).Error)
	return &restaurant
}

// seedTimeSlot testler için aktif zaman dilimi oluşturur.
func seedTimeSlot(t *testing.T, db *gorm.DB, name, start, end string) *models.TimeSlot {
	t.Helper()
	slot := models.TimeSlot{Name: name, StartTime: start, EndTime: end, IsActive: true}
	require.NoError(t, db.Create(&slot).Error)
	return &slot
}

// seedConfig (restaurant, slot) çifti için etkin yapılandırma oluşturur.
func seedConfig(t *testing.T, db *gorm.DB, restaurantID, timeSlotID uint, capacity int) *models.RestaurantSlotConfig {
	t.Helper()
	config := models.RestaurantSlotConfig{
		RestaurantID:     restaurantID,
		TimeSlotID:       timeSlotID,
		MaxOrdersPerSlot: capacity,
		IsEnabled:        true,
		MinAdvanceHours:  2,
		MaxAdvanceDays:   2,
	}
	require.NoError(t, db.Create(&config).Error)
	return &config
}
