package seeders

import (
	"context"
	"errors"

	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultTimeSlots akşam teslimat pencereleri. Başlangıç saati benzersiz
// kabul edilir; mevcut dilimler güncellenmez.
var defaultTimeSlots = []models.TimeSlot{
	{Name: "4-5 PM", StartTime: "16:00", EndTime: "17:00", DisplayOrder: 1, IsActive: true},
	{Name: "5-6 PM", StartTime: "17:00", EndTime: "18:00", DisplayOrder: 2, IsActive: true},
	{Name: "6-7 PM", StartTime: "18:00", EndTime: "19:00", DisplayOrder: 3, IsActive: true},
	{Name: "7-8 PM", StartTime: "19:00", EndTime: "20:00", DisplayOrder: 4, IsActive: true},
	{Name: "8-9 PM", StartTime: "20:00", EndTime: "21:00", DisplayOrder: 5, IsActive: true},
}

// SeedTimeSlots varsayılan zaman dilimlerini idempotent olarak oluşturur.
func SeedTimeSlots(db *gorm.DB) error {
	systemUserID := uint(1)
	ctx := context.WithValue(context.Background(), models.ContextUserIDKey, systemUserID)

	configslog.SLog.Info("Zaman dilimi seed işlemi başlıyor...")

	for _, slotToSeed := range defaultTimeSlots {
		var existing models.TimeSlot
		result := db.Where("start_time = ?", slotToSeed.StartTime).First(&existing)

		if result.Error == nil {
			configslog.SLog.Debugf("Zaman dilimi '%s' zaten mevcut, oluşturma atlanıyor.", slotToSeed.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Zaman dilimi kontrol edilirken veritabanı hatası",
				zap.String("slot_name", slotToSeed.Name), zap.Error(result.Error))
			return result.Error
		}

		if err := db.WithContext(ctx).Create(&slotToSeed).Error; err != nil {
			configslog.Log.Error("Zaman dilimi oluşturulamadı",
				zap.String("slot_name", slotToSeed.Name), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Zaman dilimi '%s' oluşturuldu (ID: %d).", slotToSeed.Name, slotToSeed.ID)
	}

	configslog.SLog.Info("Zaman dilimi seed işlemi tamamlandı.")
	return nil
}
