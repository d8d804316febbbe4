package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartbite.app/configs/configslog"
	"smartbite.app/models"
	"smartbite.app/repositories"

	"go.uber.org/zap"
)

// TimeSlotInput zaman dilimi oluşturma/güncelleme girdisi.
type TimeSlotInput struct {
	Name         string `json:"name"`
	StartTime    string `json:"start_time"` // "16:00"
	EndTime      string `json:"end_time"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// ITimeSlotService global zaman dilimi kataloğu işlemleri (admin).
type ITimeSlotService interface {
	CreateTimeSlot(ctx context.Context, input TimeSlotInput) (*models.TimeSlot, error)
	GetTimeSlot(ctx context.Context, id uint) (*models.TimeSlot, error)
	ListTimeSlots(ctx context.Context, includeInactive bool) ([]models.TimeSlot, error)
	UpdateTimeSlot(ctx context.Context, id uint, input TimeSlotInput) (*models.TimeSlot, error)
	DeleteTimeSlot(ctx context.Context, id uint) error
}

// TimeSlotService ITimeSlotService arayüzünü uygular.
type TimeSlotService struct {
	repo repositories.ITimeSlotRepository
}

// NewTimeSlotService yeni bir TimeSlotService örneği oluşturur.
func NewTimeSlotService() ITimeSlotService {
	return &TimeSlotService{repo: repositories.NewTimeSlotRepository()}
}

// validateTimeSlotInput temel alan doğrulamaları.
func validateTimeSlotInput(input TimeSlotInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: dilim adı zorunludur", ErrInvalidInput)
	}
	start, err := time.Parse(models.ClockLayout, input.StartTime)
	if err != nil {
		return fmt.Errorf("%w: başlangıç saati 'SS:DD' formatında olmalı", ErrInvalidInput)
	}
	end, err := time.Parse(models.ClockLayout, input.EndTime)
	if err != nil {
		return fmt.Errorf("%w: bitiş saati 'SS:DD' formatında olmalı", ErrInvalidInput)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: bitiş saati başlangıçtan sonra olmalı", ErrInvalidInput)
	}
	return nil
}

// CreateTimeSlot yeni bir global zaman dilimi oluşturur.
func (s *TimeSlotService) CreateTimeSlot(ctx context.Context, input TimeSlotInput) (*models.TimeSlot, error) {
	if err := validateTimeSlotInput(input); err != nil {
		return nil, err
	}
	slot := models.TimeSlot{
		Name:         input.Name,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}
	if input.IsActive != nil {
		slot.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, &slot); err != nil {
		configslog.Log.Error("TimeSlotService.CreateTimeSlot: oluşturma hatası", zap.Error(err))
		return nil, err
	}
	return &slot, nil
}

// GetTimeSlot dilimi ID ile döndürür.
func (s *TimeSlotService) GetTimeSlot(ctx context.Context, id uint) (*models.TimeSlot, error) {
	slot, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		return nil, err
	}
	return slot, nil
}

// ListTimeSlots dilimleri display_order sırasıyla listeler.
func (s *TimeSlotService) ListTimeSlots(ctx context.Context, includeInactive bool) ([]models.TimeSlot, error) {
	return s.repo.FindAll(ctx, includeInactive)
}

// UpdateTimeSlot dilimi günceller.
func (s *TimeSlotService) UpdateTimeSlot(ctx context.Context, id uint, input TimeSlotInput) (*models.TimeSlot, error) {
	slot, err := s.GetTimeSlot(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateTimeSlotInput(input); err != nil {
		return nil, err
	}
	slot.Name = input.Name
	slot.StartTime = input.StartTime
	slot.EndTime = input.EndTime
	slot.DisplayOrder = input.DisplayOrder
	if input.IsActive != nil {
		slot.IsActive = *input.IsActive
	}
	if err := s.repo.Update(ctx, slot); err != nil {
		configslog.Log.Error("TimeSlotService.UpdateTimeSlot: güncelleme hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return slot, nil
}

// DeleteTimeSlot referanssız dilimi kalıcı siler; config, defter satırı veya
// geçmiş sipariş referans veriyorsa yalnızca pasifleştirir.
func (s *TimeSlotService) DeleteTimeSlot(ctx context.Context, id uint) error {
	slot, err := s.GetTimeSlot(ctx, id)
	if err != nil {
		return err
	}
	referenced, err := s.repo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		configslog.SLog.Infof("Zaman dilimi %d referanslı, silmek yerine pasifleştiriliyor.", id)
		return s.repo.Deactivate(ctx, id)
	}
	return s.repo.HardDelete(ctx, slot)
}

var _ ITimeSlotService = (*TimeSlotService)(nil)
