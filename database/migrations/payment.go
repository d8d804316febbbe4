package migrations

import (
	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigratePaymentsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating payments table...")
	err := db.AutoMigrate(&models.Payment{})
	if err != nil {
		configslog.Log.Error("Failed to migrate payments table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Payments table migrated successfully")
	return nil
}
