package routes

import (
	dashboardhandlers "smartbite.app/handlers/dashboard"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes admin uç noktalarını bağlar.
// TODO: Oturum altyapısı eklendiğinde bu grup admin middleware'i ile korunacak.
func registerDashboardRoutes(app *fiber.App) {
	timeSlotHandler := dashboardhandlers.NewTimeSlotHandler()
	configHandler := dashboardhandlers.NewSlotConfigHandler()
	availabilityHandler := dashboardhandlers.NewSlotAvailabilityHandler()
	reportHandler := dashboardhandlers.NewSlotReportHandler()

	dashboard := app.Group("/dashboard")

	// Zaman dilimi kataloğu
	timeSlots := dashboard.Group("/time-slots")
	timeSlots.Post("/", timeSlotHandler.CreateTimeSlot)
	timeSlots.Get("/", timeSlotHandler.ListTimeSlots)
	timeSlots.Get("/:id", timeSlotHandler.GetTimeSlot)
	timeSlots.Put("/:id", timeSlotHandler.UpdateTimeSlot)
	timeSlots.Delete("/:id", timeSlotHandler.DeleteTimeSlot)

	// Restoran slot yapılandırması
	dashboard.Get("/restaurants/:id/slot-configs", configHandler.ListConfigs)
	dashboard.Post("/restaurants/:id/slot-configs/bulk", configHandler.BulkCreateConfig)
	dashboard.Post("/restaurants/:id/slot-configs/:slotId", configHandler.CreateConfig)
	dashboard.Put("/slot-configs/:id", configHandler.UpdateConfig)

	// Defter satırı müdahaleleri
	dashboard.Put("/slot-availability/:id", availabilityHandler.UpdateAvailability)
	dashboard.Post("/slot-availability/:id/disable", availabilityHandler.DisableSlot)
	dashboard.Post("/slot-availability/:id/enable", availabilityHandler.EnableSlot)

	// Sipariş durum akışı
	dashboard.Put("/orders/:id/status", availabilityHandler.UpdateOrderStatus)

	// Hatırlatma kuyruğu
	dashboard.Get("/reminders/due", availabilityHandler.DueReminders)

	// Raporlar
	dashboard.Get("/restaurants/:id/slot-report", reportHandler.DownloadUtilizationReport)
}
