package migrations

import (
	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateTimeSlotTables zaman dilimi kataloğunu, restoran yapılandırmalarını
// ve kapasite defterini birlikte migrate eder.
func MigrateTimeSlotTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating time_slots, restaurant_slot_configs & slot_availabilities tables...")
	err := db.AutoMigrate(&models.TimeSlot{}, &models.RestaurantSlotConfig{}, &models.SlotAvailability{})
	if err != nil {
		configslog.Log.Error("Failed to migrate time slot tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Time slot tables migrated successfully")
	return nil
}
