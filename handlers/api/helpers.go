package handlers

import (
	"errors"
	"strconv"
	"time"

	"smartbite.app/services"

	"github.com/gofiber/fiber/v2"
)

// dateLayout API'de tarih alanlarının kabul edilen formatı.
const dateLayout = "2006-01-02"

// currentUserID X-User-ID başlığından kimliği okur. Oturum altyapısı
// devreye alınana kadar API bu başlıkla çalışır.
func currentUserID(c *fiber.Ctx) (uint, error) {
	raw := c.Get("X-User-ID")
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "X-User-ID başlığı eksik")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "geçersiz X-User-ID başlığı")
	}
	return uint(id), nil
}

// paramID :id benzeri path parametresini çözer.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "geçersiz "+name+" parametresi")
	}
	return uint(id), nil
}

// parseDateQuery sorgu parametresindeki tarihi çözer; boşsa fallback döner.
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

// statusForServiceError servis hata sınıfını HTTP durum koduna eşler.
func statusForServiceError(err error) int {
	switch {
	case errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrTimeSlotNotFound),
		errors.Is(err, services.ErrConfigNotFound),
		errors.Is(err, services.ErrAvailabilityNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidDayOfWeek):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrConfigAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrSlotCapacityFull),
		errors.Is(err, services.ErrSlotNotBookable),
		errors.Is(err, services.ErrBookingFailed),
		errors.Is(err, services.ErrRescheduleWindowClosed),
		errors.Is(err, services.ErrInvalidOrderState),
		errors.Is(err, services.ErrInvalidStatusChange):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// serviceError servis hatasını JSON gövdeyle döndürür. Beklenmeyen hatalar
// istemciye detay sızdırmaz.
func serviceError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}
	status := statusForServiceError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "beklenmeyen bir hata oluştu"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
