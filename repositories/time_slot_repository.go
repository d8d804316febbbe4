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

// ITimeSlotRepository global zaman dilimi kataloğunun veritabanı işlemleri.
type ITimeSlotRepository interface {
	Create(ctx context.Context, slot *models.TimeSlot) error
	FindByID(ctx context.Context, id uint) (*models.TimeSlot, error)
	FindAll(ctx context.Context, includeInactive bool) ([]models.TimeSlot, error)
	Update(ctx context.Context, slot *models.TimeSlot) error
	Deactivate(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, slot *models.TimeSlot) error
	IsReferenced(ctx context.Context, id uint) (bool, error)
}

// TimeSlotRepository ITimeSlotRepository arayüzünü uygular.
type TimeSlotRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.TimeSlot]
}

// NewTimeSlotRepository yeni bir TimeSlotRepository örneği oluşturur.
func NewTimeSlotRepository() ITimeSlotRepository {
	db := configs.GetDB()
	base := NewBaseRepository[models.TimeSlot](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "display_order", "is_active"})
	return &TimeSlotRepository{db: db, base: base}
}

// NewTimeSlotRepositoryTx transaction'a bağlı örnek oluşturur.
func NewTimeSlotRepositoryTx(tx *gorm.DB) ITimeSlotRepository {
	return &TimeSlotRepository{db: tx, base: NewBaseRepository[models.TimeSlot](tx)}
}

func (r *TimeSlotRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create yeni bir zaman dilimi oluşturur.
func (r *TimeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	if slot == nil {
		return errors.New("oluşturulacak zaman dilimi geçerli değil")
	}
	return r.getDB(ctx).Create(slot).Error
}

// FindByID zaman dilimini ID ile bulur.
func (r *TimeSlotRepository) FindByID(ctx context.Context, id uint) (*models.TimeSlot, error) {
	if id == 0 {
		return nil, errors.New("geçersiz TimeSlot ID")
	}
	var slot models.TimeSlot
	err := r.getDB(ctx).First(&slot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("TimeSlotRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &slot, nil
}

// FindAll dilimleri display_order sırasıyla döndürür.
func (r *TimeSlotRepository) FindAll(ctx context.Context, includeInactive bool) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	query := r.getDB(ctx).Model(&models.TimeSlot{})
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_order asc").Find(&slots).Error
	if err != nil {
		configslog.Log.Error("TimeSlotRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return slots, nil
}

// Update zaman dilimini Save ile günceller.
func (r *TimeSlotRepository) Update(ctx context.Context, slot *models.TimeSlot) error {
	if slot == nil || slot.ID == 0 {
		return errors.New("güncellenecek zaman dilimi geçerli değil")
	}
	return r.getDB(ctx).Save(slot).Error
}

// Deactivate dilimi pasifleştirir (soft-deactivate, satır silinmez).
func (r *TimeSlotRepository) Deactivate(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz TimeSlot ID")
	}
	result := r.getDB(ctx).Model(&models.TimeSlot{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HardDelete dilimi kalıcı olarak siler; yalnızca referanssız dilimler için
// çağrılmalıdır (servis katmanı IsReferenced ile kontrol eder).
func (r *TimeSlotRepository) HardDelete(ctx context.Context, slot *models.TimeSlot) error {
	if slot == nil || slot.ID == 0 {
		return errors.New("silinecek zaman dilimi geçerli değil")
	}
	return r.getDB(ctx).Unscoped().Delete(slot).Error
}

// IsReferenced dilimin config, defter satırı veya sipariş tarafından
// referans edilip edilmediğini söyler.
func (r *TimeSlotRepository) IsReferenced(ctx context.Context, id uint) (bool, error) {
	db := r.getDB(ctx)

	var count int64
	if err := db.Model(&models.RestaurantSlotConfig{}).Where("time_slot_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := db.Model(&models.SlotAvailability{}).Where("time_slot_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := db.Model(&models.Order{}).Where("scheduled_time_slot_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ ITimeSlotRepository = (*TimeSlotRepository)(nil)
