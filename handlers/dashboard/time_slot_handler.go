package handlers

import (
	"smartbite.app/configs/configslog"
	"smartbite.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TimeSlotHandler global zaman dilimi kataloğu yönetimi (admin).
type TimeSlotHandler struct {
	timeSlotService services.ITimeSlotService
}

// NewTimeSlotHandler yeni bir TimeSlotHandler örneği oluşturur.
func NewTimeSlotHandler() *TimeSlotHandler {
	return &TimeSlotHandler{timeSlotService: services.NewTimeSlotService()}
}

// CreateTimeSlot POST /dashboard/time-slots
func (h *TimeSlotHandler) CreateTimeSlot(c *fiber.Ctx) error {
	var input services.TimeSlotInput
	if err := c.BodyParser(&input); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}
	slot, err := h.timeSlotService.CreateTimeSlot(c.UserContext(), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// ListTimeSlots GET /dashboard/time-slots?include_inactive=true
func (h *TimeSlotHandler) ListTimeSlots(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive", false)
	slots, err := h.timeSlotService.ListTimeSlots(c.UserContext(), includeInactive)
	if err != nil {
		configslog.Log.Error("ListTimeSlots: servis hatası", zap.Error(err))
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"time_slots": slots})
}

// GetTimeSlot GET /dashboard/time-slots/:id
func (h *TimeSlotHandler) GetTimeSlot(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	slot, err := h.timeSlotService.GetTimeSlot(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(slot)
}

// UpdateTimeSlot PUT /dashboard/time-slots/:id
func (h *TimeSlotHandler) UpdateTimeSlot(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var input services.TimeSlotInput
	if err := c.BodyParser(&input); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}
	slot, err := h.timeSlotService.UpdateTimeSlot(c.UserContext(), id, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(slot)
}

// DeleteTimeSlot DELETE /dashboard/time-slots/:id
// Referanslı dilimler silinmez, pasife alınır.
func (h *TimeSlotHandler) DeleteTimeSlot(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	if err := h.timeSlotService.DeleteTimeSlot(c.UserContext(), id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
