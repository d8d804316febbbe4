package repositories

import (
	"testing"

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

// newTestDB izole in-memory SQLite açar; tek bağlantı üzerinden çalışır.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

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
	return db
}
