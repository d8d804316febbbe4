package handlers

import (
	"time"

	"smartbite.app/models"
	"smartbite.app/services"

	"github.com/gofiber/fiber/v2"
)

// SlotAvailabilityHandler defter satırlarına admin müdahaleleri.
type SlotAvailabilityHandler struct {
	capacityService services.ISlotCapacityService
	orderService    services.IScheduledOrderService
}

// NewSlotAvailabilityHandler yeni bir SlotAvailabilityHandler örneği oluşturur.
func NewSlotAvailabilityHandler() *SlotAvailabilityHandler {
	return &SlotAvailabilityHandler{
		capacityService: services.NewSlotCapacityService(),
		orderService:    services.NewScheduledOrderService(),
	}
}

// UpdateAvailability PUT /dashboard/slot-availability/:id
// Manuel kapatma bayrağını ve/veya toplam kapasiteyi günceller.
func (h *SlotAvailabilityHandler) UpdateAvailability(c *fiber.Ctx) error {
	availabilityID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var input struct {
		IsManuallyDisabled *bool `json:"is_manually_disabled,omitempty"`
		TotalCapacity      *int  `json:"total_capacity,omitempty"`
	}
	if err := c.BodyParser(&input); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}

	availability, err := h.capacityService.UpdateAvailability(c.UserContext(), availabilityID, input.IsManuallyDisabled, input.TotalCapacity)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(availability)
}

// DisableSlot POST /dashboard/slot-availability/:id/disable
func (h *SlotAvailabilityHandler) DisableSlot(c *fiber.Ctx) error {
	return h.setDisabled(c, true)
}

// EnableSlot POST /dashboard/slot-availability/:id/enable
func (h *SlotAvailabilityHandler) EnableSlot(c *fiber.Ctx) error {
	return h.setDisabled(c, false)
}

func (h *SlotAvailabilityHandler) setDisabled(c *fiber.Ctx, disabled bool) error {
	availabilityID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	availability, err := h.capacityService.SetManualDisable(c.UserContext(), availabilityID, disabled)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(availability)
}

// UpdateOrderStatus PUT /dashboard/orders/:id/status
// Admin durum akışı; iptal bu uçtan yapılamaz.
func (h *SlotAvailabilityHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var input struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil || input.Status == "" {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}

	order, err := h.orderService.UpdateStatus(c.UserContext(), orderID, input.Status)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// DueReminders GET /dashboard/reminders/due
// Bildirim gönderen işbirlikçinin çektiği, hatırlatması yaklaşan siparişler.
func (h *SlotAvailabilityHandler) DueReminders(c *fiber.Ctx) error {
	within := time.Duration(c.QueryInt("within_hours", 24)) * time.Hour
	reminders, err := h.orderService.DueReminders(c.UserContext(), within)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"reminders": reminders, "count": len(reminders)})
}
