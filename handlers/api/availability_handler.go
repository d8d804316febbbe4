package handlers

import (
	"strconv"
	"time"

	"smartbite.app/configs/configslog"
	"smartbite.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// maxAvailabilityDays tek istekte sorgulanabilecek gün sayısı tavanı.
const maxAvailabilityDays = 14

// AvailabilityHandler public slot müsaitlik sorgularını yönetir.
type AvailabilityHandler struct {
	capacityService services.ISlotCapacityService
}

// NewAvailabilityHandler yeni bir AvailabilityHandler örneği oluşturur.
func NewAvailabilityHandler() *AvailabilityHandler {
	return &AvailabilityHandler{capacityService: services.NewSlotCapacityService()}
}

// GetSlotAvailability GET /api/restaurants/:id/slot-availability
// Sorgu parametreleri: start_date (YYYY-MM-DD, varsayılan bugün),
// days (1-14, varsayılan 2).
func (h *AvailabilityHandler) GetSlotAvailability(c *fiber.Ctx) error {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	startDate, err := parseDateQuery(c, "start_date", time.Now().UTC())
	if err != nil {
		return serviceError(c, err)
	}
	days := 2
	if raw := c.Query("days"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 1 {
			return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz days parametresi"))
		}
		days = parsed
	}
	if days > maxAvailabilityDays {
		days = maxAvailabilityDays
	}

	availability, err := h.capacityService.ListAvailability(c.UserContext(), restaurantID, startDate, days)
	if err != nil {
		if statusForServiceError(err) == fiber.StatusInternalServerError {
			configslog.Log.Error("GetSlotAvailability: servis hatası",
				zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"restaurant_id": restaurantID, "availability": availability})
}
