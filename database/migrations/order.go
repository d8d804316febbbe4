package migrations

import (
	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateOrdersTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating orders, order_items & scheduled_order_reminders tables...")
	err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.ScheduledOrderReminder{})
	if err != nil {
		configslog.Log.Error("Failed to migrate orders tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Orders tables migrated successfully")
	return nil
}
