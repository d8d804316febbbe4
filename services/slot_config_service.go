package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"smartbite.app/configs/configslog"
	"smartbite.app/models"
	"smartbite.app/repositories"

	"go.uber.org/zap"
)

// SlotConfigInput yapılandırma oluşturma girdisi.
type SlotConfigInput struct {
	MaxOrdersPerSlot int      `json:"max_orders_per_slot"`
	IsEnabled        *bool    `json:"is_enabled,omitempty"`
	DaysOfWeek       []string `json:"days_of_week,omitempty"`
	MinAdvanceHours  int      `json:"min_advance_hours"`
	MaxAdvanceDays   int      `json:"max_advance_days"`
	SlotSurcharge    float64  `json:"slot_surcharge"`
}

// SlotConfigUpdateInput kısmi güncelleme girdisi: yalnızca nil olmayan
// alanlar değişir (tam değiştirme değil).
type SlotConfigUpdateInput struct {
	MaxOrdersPerSlot *int      `json:"max_orders_per_slot,omitempty"`
	IsEnabled        *bool     `json:"is_enabled,omitempty"`
	DaysOfWeek       *[]string `json:"days_of_week,omitempty"`
	MinAdvanceHours  *int      `json:"min_advance_hours,omitempty"`
	MaxAdvanceDays   *int      `json:"max_advance_days,omitempty"`
	SlotSurcharge    *float64  `json:"slot_surcharge,omitempty"`
}

// BulkSlotConfigResult toplu oluşturma sonucu.
type BulkSlotConfigResult struct {
	CreatedCount int                           `json:"created_count"`
	Configs      []models.RestaurantSlotConfig `json:"configs"`
}

// ISlotConfigService restoran slot yapılandırması işlemleri (admin).
type ISlotConfigService interface {
	CreateConfig(ctx context.Context, restaurantID, timeSlotID uint, input SlotConfigInput) (*models.RestaurantSlotConfig, error)
	BulkCreateConfig(ctx context.Context, restaurantID uint, timeSlotIDs []uint, input SlotConfigInput) (*BulkSlotConfigResult, error)
	UpdateConfig(ctx context.Context, configID uint, input SlotConfigUpdateInput) (*models.RestaurantSlotConfig, error)
	ListConfigs(ctx context.Context, restaurantID uint) ([]models.RestaurantSlotConfig, error)
}

// SlotConfigService ISlotConfigService arayüzünü uygular.
type SlotConfigService struct {
	configRepo     repositories.ISlotConfigRepository
	timeSlotRepo   repositories.ITimeSlotRepository
	restaurantRepo repositories.IRestaurantRepository
}

// NewSlotConfigService yeni bir SlotConfigService örneği oluşturur.
func NewSlotConfigService() ISlotConfigService {
	return &SlotConfigService{
		configRepo:     repositories.NewSlotConfigRepository(),
		timeSlotRepo:   repositories.NewTimeSlotRepository(),
		restaurantRepo: repositories.NewRestaurantRepository(),
	}
}

// normalizeDays gün adlarını yedi kanonik ada karşı doğrular ve küçük harfe
// çevirir. Eşleşmeyen ad ValidationError ile reddedilir (geçersiz değer
// hata mesajında belirtilir).
func normalizeDays(days []string) ([]string, error) {
	if len(days) == 0 {
		return nil, nil
	}
	normalized := make([]string, 0, len(days))
	for _, day := range days {
		canonical, ok := canonicalDay(day)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidDayOfWeek, day)
		}
		normalized = append(normalized, canonical)
	}
	return normalized, nil
}

// validateConfigInput temel alan doğrulamaları.
func validateConfigInput(input SlotConfigInput) error {
	if input.MaxOrdersPerSlot <= 0 {
		return fmt.Errorf("%w: slot başına sipariş kapasitesi pozitif olmalı", ErrInvalidInput)
	}
	if input.MinAdvanceHours < 0 {
		return fmt.Errorf("%w: minimum ön süre negatif olamaz", ErrInvalidInput)
	}
	if input.MaxAdvanceDays <= 0 {
		return fmt.Errorf("%w: maksimum gün sayısı pozitif olmalı", ErrInvalidInput)
	}
	if input.SlotSurcharge < 0 {
		return fmt.Errorf("%w: slot ek ücreti negatif olamaz", ErrInvalidInput)
	}
	return nil
}

// CreateConfig (restaurant, slot) çifti için yeni yapılandırma oluşturur.
// Çift zaten yapılandırılmışsa ConflictError, restoran/dilim yoksa NotFound.
func (s *SlotConfigService) CreateConfig(ctx context.Context, restaurantID, timeSlotID uint, input SlotConfigInput) (*models.RestaurantSlotConfig, error) {
	if err := validateConfigInput(input); err != nil {
		return nil, err
	}
	days, err := normalizeDays(input.DaysOfWeek)
	if err != nil {
		return nil, err
	}

	exists, err := s.restaurantRepo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRestaurantNotFound
	}
	if _, err := s.timeSlotRepo.FindByID(ctx, timeSlotID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		return nil, err
	}
	if _, err := s.configRepo.FindByPair(ctx, restaurantID, timeSlotID); err == nil {
		return nil, ErrConfigAlreadyExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	config := models.RestaurantSlotConfig{
		RestaurantID:     restaurantID,
		TimeSlotID:       timeSlotID,
		MaxOrdersPerSlot: input.MaxOrdersPerSlot,
		IsEnabled:        true,
		MinAdvanceHours:  input.MinAdvanceHours,
		MaxAdvanceDays:   input.MaxAdvanceDays,
		SlotSurcharge:    input.SlotSurcharge,
	}
	if input.IsEnabled != nil {
		config.IsEnabled = *input.IsEnabled
	}
	if err := config.SetDayNames(days); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.configRepo.Create(ctx, &config); err != nil {
		configslog.Log.Error("SlotConfigService.CreateConfig: oluşturma hatası",
			zap.Uint("restaurant_id", restaurantID), zap.Uint("time_slot_id", timeSlotID), zap.Error(err))
		return nil, err
	}
	return &config, nil
}

// BulkCreateConfig birden çok dilimi aynı parametrelerle yapılandırır.
// Dilim başına idempotent: bilinmeyen veya zaten yapılandırılmış dilimler
// sessizce atlanır, batch asla kısmen başarısız olmaz. Gerçekten oluşturulan
// sayı ve kayıtlar döner.
func (s *SlotConfigService) BulkCreateConfig(ctx context.Context, restaurantID uint, timeSlotIDs []uint, input SlotConfigInput) (*BulkSlotConfigResult, error) {
	if err := validateConfigInput(input); err != nil {
		return nil, err
	}
	days, err := normalizeDays(input.DaysOfWeek)
	if err != nil {
		return nil, err
	}

	exists, err := s.restaurantRepo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRestaurantNotFound
	}

	result := &BulkSlotConfigResult{Configs: []models.RestaurantSlotConfig{}}
	for _, timeSlotID := range timeSlotIDs {
		// Her dilim bağımsız işlenir.
		if _, err := s.timeSlotRepo.FindByID(ctx, timeSlotID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if _, err := s.configRepo.FindByPair(ctx, restaurantID, timeSlotID); err == nil {
			continue
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}

		config := models.RestaurantSlotConfig{
			RestaurantID:     restaurantID,
			TimeSlotID:       timeSlotID,
			MaxOrdersPerSlot: input.MaxOrdersPerSlot,
			IsEnabled:        true,
			MinAdvanceHours:  input.MinAdvanceHours,
			MaxAdvanceDays:   input.MaxAdvanceDays,
			SlotSurcharge:    input.SlotSurcharge,
		}
		if input.IsEnabled != nil {
			config.IsEnabled = *input.IsEnabled
		}
		if err := config.SetDayNames(days); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.configRepo.Create(ctx, &config); err != nil {
			configslog.Log.Error("SlotConfigService.BulkCreateConfig: oluşturma hatası",
				zap.Uint("restaurant_id", restaurantID), zap.Uint("time_slot_id", timeSlotID), zap.Error(err))
			continue
		}
		result.CreatedCount++
		result.Configs = append(result.Configs, config)
	}
	return result, nil
}

// UpdateConfig yalnızca verilen alanları değiştirir. Sonradan yapılan
// kapasite değişiklikleri daha önce materialize edilmiş defter satırlarını
// etkilemez (snapshot davranışı).
func (s *SlotConfigService) UpdateConfig(ctx context.Context, configID uint, input SlotConfigUpdateInput) (*models.RestaurantSlotConfig, error) {
	if _, err := s.configRepo.FindByID(ctx, configID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.MaxOrdersPerSlot != nil {
		if *input.MaxOrdersPerSlot <= 0 {
			return nil, fmt.Errorf("%w: slot başına sipariş kapasitesi pozitif olmalı", ErrInvalidInput)
		}
		fields["max_orders_per_slot"] = *input.MaxOrdersPerSlot
	}
	if input.IsEnabled != nil {
		fields["is_enabled"] = *input.IsEnabled
	}
	if input.DaysOfWeek != nil {
		days, err := normalizeDays(*input.DaysOfWeek)
		if err != nil {
			return nil, err
		}
		if days == nil {
			fields["days_of_week"] = nil
		} else {
			raw, err := json.Marshal(days)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			fields["days_of_week"] = string(raw)
		}
	}
	if input.MinAdvanceHours != nil {
		if *input.MinAdvanceHours < 0 {
			return nil, fmt.Errorf("%w: minimum ön süre negatif olamaz", ErrInvalidInput)
		}
		fields["min_advance_hours"] = *input.MinAdvanceHours
	}
	if input.MaxAdvanceDays != nil {
		if *input.MaxAdvanceDays <= 0 {
			return nil, fmt.Errorf("%w: maksimum gün sayısı pozitif olmalı", ErrInvalidInput)
		}
		fields["max_advance_days"] = *input.MaxAdvanceDays
	}
	if input.SlotSurcharge != nil {
		if *input.SlotSurcharge < 0 {
			return nil, fmt.Errorf("%w: slot ek ücreti negatif olamaz", ErrInvalidInput)
		}
		fields["slot_surcharge"] = *input.SlotSurcharge
	}

	if err := s.configRepo.UpdateFields(ctx, configID, fields); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return s.configRepo.FindByID(ctx, configID)
}

// ListConfigs restoranın tüm yapılandırmalarını döndürür.
func (s *SlotConfigService) ListConfigs(ctx context.Context, restaurantID uint) ([]models.RestaurantSlotConfig, error) {
	exists, err := s.restaurantRepo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRestaurantNotFound
	}
	return s.configRepo.FindAllByRestaurant(ctx, restaurantID)
}

var _ ISlotConfigService = (*SlotConfigService)(nil)
