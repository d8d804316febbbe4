package repositories

import (
	"context"
	"errors"

	"smartbite.app/configs"
	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ISlotConfigRepository restoran slot yapılandırması veritabanı işlemleri.
type ISlotConfigRepository interface {
	Create(ctx context.Context, config *models.RestaurantSlotConfig) error
	FindByID(ctx context.Context, id uint) (*models.RestaurantSlotConfig, error)
	FindByPair(ctx context.Context, restaurantID, timeSlotID uint) (*models.RestaurantSlotConfig, error)
	FindAllByRestaurant(ctx context.Context, restaurantID uint) ([]models.RestaurantSlotConfig, error)
	FindEnabledByRestaurant(ctx context.Context, restaurantID uint) ([]models.RestaurantSlotConfig, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
}

// SlotConfigRepository ISlotConfigRepository arayüzünü uygular.
type SlotConfigRepository struct {
	db *gorm.DB
}

// NewSlotConfigRepository yeni bir SlotConfigRepository örneği oluşturur.
func NewSlotConfigRepository() ISlotConfigRepository {
	return &SlotConfigRepository{db: configs.GetDB()}
}

// NewSlotConfigRepositoryTx transaction'a bağlı örnek oluşturur.
func NewSlotConfigRepositoryTx(tx *gorm.DB) ISlotConfigRepository {
	return &SlotConfigRepository{db: tx}
}

func (r *SlotConfigRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni bir slot yapılandırması oluşturur.
func (r *SlotConfigRepository) Create(ctx context.Context, config *models.RestaurantSlotConfig) error {
	if config == nil || config.RestaurantID == 0 || config.TimeSlotID == 0 {
		return errors.New("geçersiz slot yapılandırması")
	}
	return r.getDB(ctx).Create(config).Error
}

// FindByID yapılandırmayı ID ile bulur (TimeSlot preload edilir).
func (r *SlotConfigRepository) FindByID(ctx context.Context, id uint) (*models.RestaurantSlotConfig, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Config ID")
	}
	var config models.RestaurantSlotConfig
	err := r.getDB(ctx).Preload("TimeSlot").First(&config, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SlotConfigRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &config, nil
}

// FindByPair (restaurant, time_slot) çiftine ait yapılandırmayı bulur.
func (r *SlotConfigRepository) FindByPair(ctx context.Context, restaurantID, timeSlotID uint) (*models.RestaurantSlotConfig, error) {
	var config models.RestaurantSlotConfig
	err := r.getDB(ctx).
		Where("restaurant_id = ? AND time_slot_id = ?", restaurantID, timeSlotID).
		First(&config).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SlotConfigRepository.FindByPair: DB error",
			zap.Uint("restaurant_id", restaurantID), zap.Uint("time_slot_id", timeSlotID), zap.Error(err))
		return nil, err
	}
	return &config, nil
}

// FindAllByRestaurant restoranın tüm yapılandırmalarını döndürür.
func (r *SlotConfigRepository) FindAllByRestaurant(ctx context.Context, restaurantID uint) ([]models.RestaurantSlotConfig, error) {
	var configList []models.RestaurantSlotConfig
	err := r.getDB(ctx).Preload("TimeSlot").
		Where("restaurant_id = ?", restaurantID).
		Find(&configList).Error
	if err != nil {
		configslog.Log.Error("SlotConfigRepository.FindAllByRestaurant: DB error",
			zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		return nil, err
	}
	return configList, nil
}

// FindEnabledByRestaurant yalnızca etkin yapılandırmaları döndürür;
// uygunluk türetimi bu listeyle çalışır.
func (r *SlotConfigRepository) FindEnabledByRestaurant(ctx context.Context, restaurantID uint) ([]models.RestaurantSlotConfig, error) {
	var configList []models.RestaurantSlotConfig
	err := r.getDB(ctx).Preload("TimeSlot").
		Where("restaurant_id = ? AND is_enabled = ?", restaurantID, true).
		Find(&configList).Error
	if err != nil {
		configslog.Log.Error("SlotConfigRepository.FindEnabledByRestaurant: DB error",
			zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		return nil, err
	}
	return configList, nil
}

// UpdateFields yalnızca verilen alanları günceller (kısmi güncelleme).
func (r *SlotConfigRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if id == 0 {
		return errors.New("geçersiz Config ID")
	}
	if len(fields) == 0 {
		return nil
	}
	result := r.getDB(ctx).Model(&models.RestaurantSlotConfig{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		configslog.Log.Error("SlotConfigRepository.UpdateFields: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ISlotConfigRepository = (*SlotConfigRepository)(nil)
