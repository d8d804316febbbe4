package main

import (
	"os"
	"os/signal"
	"syscall"

	"smartbite.app/configs"
	"smartbite.app/configs/configsdatabase"
	"smartbite.app/configs/configslog"
	"smartbite.app/pkg/metrics"
	"smartbite.app/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configs.LoadConfig()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	metrics.Register()

	app := fiber.New(fiber.Config{
		AppName:      "SmartBite API",
		ErrorHandler: fiberErrorHandler,
	})

	routes.SetupRoutes(app)

	// Graceful shutdown: sinyal gelince dinleyici kapatılır, açık istekler tamamlanır.
	shutdownDone := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
		close(shutdownDone)
	}()

	addr := configs.GetListenAddr()
	configslog.SLog.Infof("Sunucu %s adresinde dinlemede...", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
	<-shutdownDone
	configslog.SLog.Info("Sunucu durduruldu.")
}

func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code == fiber.StatusInternalServerError {
		configslog.Log.Error("İşlenmemiş istek hatası", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(code).JSON(fiber.Map{"error": "beklenmeyen bir hata oluştu"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
