package handlers

import (
	"errors"
	"strconv"
	"time"

	"smartbite.app/services"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "geçersiz "+name+" parametresi")
	}
	return uint(id), nil
}

func parseDateQuery(c *fiber.Ctx, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "geçersiz "+name+" parametresi, beklenen format: "+dateLayout)
	}
	return date, nil
}

// serviceError admin API için hata eşlemesi; public API ile aynı sınıflama.
func serviceError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrTimeSlotNotFound),
		errors.Is(err, services.ErrConfigNotFound),
		errors.Is(err, services.ErrAvailabilityNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidDayOfWeek):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrConfigAlreadyExists):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrSlotCapacityFull),
		errors.Is(err, services.ErrSlotNotBookable),
		errors.Is(err, services.ErrInvalidOrderState),
		errors.Is(err, services.ErrInvalidStatusChange):
		status = fiber.StatusUnprocessableEntity
	}

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "beklenmeyen bir hata oluştu"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
