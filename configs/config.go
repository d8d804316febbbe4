package configs

import (
	"os"

	"smartbite.app/configs/configsdatabase"
	"smartbite.app/configs/configslog"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// LoadConfig .env dosyasını yükler. Dosya yoksa ortam değişkenleriyle
// devam edilir (container ortamları için normal durum).
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}
}

// GetDB global veritabanı bağlantısını döndürür (configsdatabase'e delege eder).
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// GetListenAddr HTTP sunucusunun dinleyeceği adresi döndürür.
func GetListenAddr() string {
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}
