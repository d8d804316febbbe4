package handlers

import (
	"smartbite.app/configs/configslog"
	"smartbite.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SlotConfigHandler restoran slot yapılandırması yönetimi (admin).
type SlotConfigHandler struct {
	configService services.ISlotConfigService
}

// NewSlotConfigHandler yeni bir SlotConfigHandler örneği oluşturur.
func NewSlotConfigHandler() *SlotConfigHandler {
	return &SlotConfigHandler{configService: services.NewSlotConfigService()}
}

// CreateConfig POST /dashboard/restaurants/:id/slot-configs/:slotId
func (h *SlotConfigHandler) CreateConfig(c *fiber.Ctx) error {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	timeSlotID, err := paramID(c, "slotId")
	if err != nil {
		return serviceError(c, err)
	}
	var input services.SlotConfigInput
	if err := c.BodyParser(&input); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}

	config, err := h.configService.CreateConfig(c.UserContext(), restaurantID, timeSlotID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(config)
}

// BulkCreateConfig POST /dashboard/restaurants/:id/slot-configs/bulk
func (h *SlotConfigHandler) BulkCreateConfig(c *fiber.Ctx) error {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var body struct {
		TimeSlotIDs []uint `json:"time_slot_ids"`
		services.SlotConfigInput
	}
	if err := c.BodyParser(&body); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}
	if len(body.TimeSlotIDs) == 0 {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "time_slot_ids boş olamaz"))
	}

	result, err := h.configService.BulkCreateConfig(c.UserContext(), restaurantID, body.TimeSlotIDs, body.SlotConfigInput)
	if err != nil {
		configslog.Log.Error("BulkCreateConfig: servis hatası",
			zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListConfigs GET /dashboard/restaurants/:id/slot-configs
func (h *SlotConfigHandler) ListConfigs(c *fiber.Ctx) error {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	configs, err := h.configService.ListConfigs(c.UserContext(), restaurantID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"configs": configs})
}

// UpdateConfig PUT /dashboard/slot-configs/:id
func (h *SlotConfigHandler) UpdateConfig(c *fiber.Ctx) error {
	configID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var input services.SlotConfigUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}

	config, err := h.configService.UpdateConfig(c.UserContext(), configID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(config)
}
