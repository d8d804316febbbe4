package seeders

import (
	"errors"
	"os"

	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser sistem admin kullanıcısını oluşturur veya şifresini
// ortam değişkenlerinden günceller.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if email == "" || password == "" {
		configslog.SLog.Warn("SYSTEM_USER_EMAIL veya SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı seed edilmeyecek.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hashlenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		// Mevcut kullanıcının şifresi ve yetkisi güncel tutulur.
		return db.Model(&existing).Updates(map[string]interface{}{
			"password_hash": string(hash),
			"is_admin":      true,
		}).Error
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		Name:         "System",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %d).", user.ID)
	return nil
}
