package configslog

import (
	"os"

	"go.uber.org/zap"
)

// Log yapılandırılmış (structured) global logger.
// SLog ise printf tarzı kullanım için sugared versiyonu.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger global zap logger'ı başlatır. APP_ENV=production ise JSON
// formatında production config, aksi halde development config kullanılır.
func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		// Logger olmadan devam edemeyiz.
		panic("zap logger başlatılamadı: " + err.Error())
	}
	SLog = Log.Sugar()
}

// SyncLogger buffer'daki logları flush eder. main'de defer ile çağrılmalı.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
