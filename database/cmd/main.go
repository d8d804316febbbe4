package main

import (
	"flag"

	"smartbite.app/configs"
	"smartbite.app/configs/configsdatabase"
	"smartbite.app/configs/configslog"
	"smartbite.app/database"
)

// Şema ve başlangıç verisi aracı. Sunucudan bağımsız çalıştırılır:
//
//	go run ./database/cmd -migrate -seed
func main() {
	migrateFlag := flag.Bool("migrate", false, "Tablo migrasyonlarını sıralı çalıştır")
	seedFlag := flag.Bool("seed", false, "Varsayılan zaman dilimlerini ve sistem kullanıcısını ekle")
	flag.Parse()

	configs.LoadConfig()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	if !*migrateFlag && !*seedFlag {
		configslog.SLog.Warn("Yapılacak iş yok: -migrate ve/veya -seed bayrağı verin")
		return
	}

	database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag)
	configslog.SLog.Info("Veritabanı hazırlığı tamamlandı")
}
