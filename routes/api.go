package routes

import (
	apihandlers "smartbite.app/handlers/api"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes public sipariş ve müsaitlik uç noktalarını bağlar.
func registerAPIRoutes(app *fiber.App) {
	availabilityHandler := apihandlers.NewAvailabilityHandler()
	orderHandler := apihandlers.NewScheduledOrderHandler()

	api := app.Group("/api")

	// Slot müsaitliği
	api.Get("/restaurants/:id/slot-availability", availabilityHandler.GetSlotAvailability)

	// Siparişler
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/upcoming", orderHandler.UpcomingOrders) // :id'den önce gelmeli
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Put("/:id/reschedule", orderHandler.RescheduleOrder)
	orders.Post("/:id/cancel-scheduled", orderHandler.CancelScheduledOrder)
}
