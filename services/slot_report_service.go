package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"smartbite.app/models"
	"smartbite.app/repositories"

	"github.com/xuri/excelize/v2"
)

// ISlotReportService slot doluluk raporu üretimi (admin).
type ISlotReportService interface {
	UtilizationReport(ctx context.Context, restaurantID uint, from, to time.Time) (*bytes.Buffer, error)
}

// SlotReportService ISlotReportService arayüzünü uygular.
type SlotReportService struct {
	availabilityRepo repositories.ISlotAvailabilityRepository
	restaurantRepo   repositories.IRestaurantRepository
}

// NewSlotReportService yeni bir SlotReportService örneği oluşturur.
func NewSlotReportService() ISlotReportService {
	return &SlotReportService{
		availabilityRepo: repositories.NewSlotAvailabilityRepository(),
		restaurantRepo:   repositories.NewRestaurantRepository(),
	}
}

var reportColumns = []string{
	"Tarih", "Zaman Dilimi", "Toplam Kapasite", "Rezervasyon",
	"Kalan Kapasite", "Doluluk %", "Müsait", "Manuel Kapalı",
}

// sheetName restoran adını xlsx sayfa adı sınırına (31 karakter) indirir.
// Türkçe adlarda çok baytlı karakter bölünmesin diye rune bazında kesilir.
func sheetName(name string) string {
	runes := []rune(name)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}

// UtilizationReport tarih aralığındaki defter satırlarını xlsx olarak döker.
func (s *SlotReportService) UtilizationReport(ctx context.Context, restaurantID uint, from, to time.Time) (*bytes.Buffer, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: bitiş tarihi başlangıçtan önce olamaz", ErrInvalidInput)
	}
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	rows, err := s.availabilityRepo.FindRangeByRestaurant(ctx, restaurantID, from, to)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := sheetName(restaurant.Name)
	file.SetSheetName("Sheet1", sheet)

	for i, col := range reportColumns {
		cell, cellErr := excelize.CoordinatesToCellName(i+1, 1)
		if cellErr != nil {
			return nil, cellErr
		}
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}
	if style, styleErr := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); styleErr == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(reportColumns), 1)
		_ = file.SetCellStyle(sheet, startCell, endCell, style)
	}

	for rowIdx, availability := range rows {
		utilization := 0.0
		if availability.TotalCapacity > 0 {
			utilization = float64(availability.BookedOrders) / float64(availability.TotalCapacity) * 100
		}
		values := []interface{}{
			models.DateOnly(availability.Date).Format("2006-01-02"),
			availability.TimeSlot.Name,
			availability.TotalCapacity,
			availability.BookedOrders,
			availability.RemainingCapacity,
			fmt.Sprintf("%.1f", utilization),
			availability.Bookable(),
			availability.IsManuallyDisabled,
		}
		for colIdx, value := range values {
			cell, cellErr := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if cellErr != nil {
				return nil, cellErr
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

var _ ISlotReportService = (*SlotReportService)(nil)
