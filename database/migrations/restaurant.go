package migrations

import (
	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateRestaurantsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating restaurants table...")
	err := db.AutoMigrate(&models.Restaurant{})
	if err != nil {
		configslog.Log.Error("Failed to migrate restaurants table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Restaurants table migrated successfully")
	return nil
}
