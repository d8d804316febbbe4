package handlers

import (
	"fmt"
	"time"

	"smartbite.app/configs/configslog"
	"smartbite.app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SlotReportHandler slot doluluk raporu indirme ucu (admin).
type SlotReportHandler struct {
	reportService services.ISlotReportService
}

// NewSlotReportHandler yeni bir SlotReportHandler örneği oluşturur.
func NewSlotReportHandler() *SlotReportHandler {
	return &SlotReportHandler{reportService: services.NewSlotReportService()}
}

// DownloadUtilizationReport GET /dashboard/restaurants/:id/slot-report
// Sorgu parametreleri: from, to (YYYY-MM-DD; varsayılan son 7 gün).
func (h *SlotReportHandler) DownloadUtilizationReport(c *fiber.Ctx) error {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	now := time.Now().UTC()
	from, err := parseDateQuery(c, "from", now.AddDate(0, 0, -7))
	if err != nil {
		return serviceError(c, err)
	}
	to, err := parseDateQuery(c, "to", now)
	if err != nil {
		return serviceError(c, err)
	}

	buf, err := h.reportService.UtilizationReport(c.UserContext(), restaurantID, from, to)
	if err != nil {
		configslog.Log.Error("DownloadUtilizationReport: servis hatası",
			zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		return serviceError(c, err)
	}

	filename := fmt.Sprintf("slot-report-%d-%s.xlsx", restaurantID, now.Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
