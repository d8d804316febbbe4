package configsdatabase

import (
	"fmt"
	"os"
	"time"

	"smartbite.app/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB ortam değişkenlerinden DSN oluşturup PostgreSQL bağlantısını açar.
// Uygulama başlarken bir kez çağrılmalıdır.
func InitDB() {
	dsn := buildDSN()

	logLevel := gormlogger.Warn
	if os.Getenv("APP_ENV") != "production" {
		logLevel = gormlogger.Info
	}

	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı açılamadı", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Fatal("sql.DB örneği alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	configslog.SLog.Info("Veritabanı bağlantısı başarıyla kuruldu.")
}

// GetDB global *gorm.DB örneğini döndürür.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB çağrıldı ancak veritabanı başlatılmamış (önce InitDB çağrılmalı)")
	}
	return db
}

// SetDB global DB örneğini değiştirir. Testlerde in-memory sqlite
// bağlamak için kullanılır.
func SetDB(d *gorm.DB) {
	db = d
}

// CloseDB bağlantı havuzunu kapatır. main'de defer ile çağrılmalı.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Bağlantı kapatılırken sql.DB alınamadı", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Veritabanı bağlantısı kapatılamadı", zap.Error(err))
	}
}

func buildDSN() string {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "smartbite")
	sslMode := getEnv("DB_SSLMODE", "disable")
	timeZone := getEnv("DB_TIMEZONE", "UTC")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		host, port, user, password, name, sslMode, timeZone)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
