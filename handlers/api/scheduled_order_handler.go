package handlers

import (
	"smartbite.app/configs/configslog"
	"smartbite.app/pkg/queryparams"
	"smartbite.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ScheduledOrderHandler sipariş uç noktalarını yönetir.
type ScheduledOrderHandler struct {
	orderService services.IScheduledOrderService
}

// NewScheduledOrderHandler yeni bir ScheduledOrderHandler örneği oluşturur.
func NewScheduledOrderHandler() *ScheduledOrderHandler {
	return &ScheduledOrderHandler{orderService: services.NewScheduledOrderService()}
}

// CreateOrder POST /api/orders
func (h *ScheduledOrderHandler) CreateOrder(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return serviceError(c, err)
	}
	var input services.ScheduledOrderInput
	if err := c.BodyParser(&input); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}

	order, err := h.orderService.CreateOrder(c.UserContext(), userID, input)
	if err != nil {
		if statusForServiceError(err) == fiber.StatusInternalServerError {
			configslog.Log.Error("CreateOrder: servis hatası", zap.Uint("user_id", userID), zap.Error(err))
		}
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetOrder GET /api/orders/:id
func (h *ScheduledOrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return serviceError(c, err)
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	order, err := h.orderService.GetOrder(c.UserContext(), orderID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// ListOrders GET /api/orders
func (h *ScheduledOrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return serviceError(c, err)
	}
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz sorgu parametreleri"))
	}

	result, err := h.orderService.ListOrders(c.UserContext(), userID, params)
	if err != nil {
		configslog.Log.Error("ListOrders: servis hatası", zap.Uint("user_id", userID), zap.Error(err))
		return serviceError(c, err)
	}
	return c.JSON(result)
}

// UpcomingOrders GET /api/orders/upcoming
func (h *ScheduledOrderHandler) UpcomingOrders(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return serviceError(c, err)
	}
	orders, err := h.orderService.UpcomingScheduled(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("UpcomingOrders: servis hatası", zap.Uint("user_id", userID), zap.Error(err))
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// RescheduleOrder PUT /api/orders/:id/reschedule
func (h *ScheduledOrderHandler) RescheduleOrder(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return serviceError(c, err)
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var input services.RescheduleInput
	if err := c.BodyParser(&input); err != nil {
		return serviceError(c, fiber.NewError(fiber.StatusBadRequest, "geçersiz istek gövdesi"))
	}

	order, err := h.orderService.RescheduleOrder(c.UserContext(), orderID, userID, input)
	if err != nil {
		if statusForServiceError(err) == fiber.StatusInternalServerError {
			configslog.Log.Error("RescheduleOrder: servis hatası",
				zap.Uint("order_id", orderID), zap.Uint("user_id", userID), zap.Error(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(order)
}

// CancelScheduledOrder POST /api/orders/:id/cancel-scheduled
func (h *ScheduledOrderHandler) CancelScheduledOrder(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return serviceError(c, err)
	}
	orderID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var input struct {
		Reason string `json:"reason"`
	}
	// Gövde isteğe bağlı; parse hatası nedensiz iptale düşer.
	_ = c.BodyParser(&input)

	order, err := h.orderService.CancelScheduledOrder(c.UserContext(), orderID, userID, input.Reason)
	if err != nil {
		if statusForServiceError(err) == fiber.StatusInternalServerError {
			configslog.Log.Error("CancelScheduledOrder: servis hatası",
				zap.Uint("order_id", orderID), zap.Uint("user_id", userID), zap.Error(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(order)
}
