package repositories

import (
	"context"
	"errors"
	"time"

	"smartbite.app/configs"
	"smartbite.app/configs/configslog"
	"smartbite.app/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ISlotAvailabilityRepository kapasite defterinin veritabanı işlemleri.
// ReserveUnit/ReleaseUnit tek bir koşullu UPDATE ile çalışır: satır başına
// read-modify-write veritabanında atomik olarak serileştirilir ve etkilenen
// satır sayısı sonucu belirler (eşzamanlılık sözleşmesi).
type ISlotAvailabilityRepository interface {
	FindByID(ctx context.Context, id uint) (*models.SlotAvailability, error)
	FindByTriple(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) (*models.SlotAvailability, error)
	FindByTripleForUpdate(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) (*models.SlotAvailability, error)
	GetOrCreate(ctx context.Context, seed *models.SlotAvailability) (*models.SlotAvailability, error)
	ReserveUnit(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) (bool, error)
	ReleaseUnit(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) (bool, error)
	UpdateManualDisable(ctx context.Context, id uint, disabled bool) error
	UpdateCapacity(ctx context.Context, id uint, totalCapacity int) error
	FindRangeByRestaurant(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.SlotAvailability, error)
}

// SlotAvailabilityRepository ISlotAvailabilityRepository arayüzünü uygular.
type SlotAvailabilityRepository struct {
	db *gorm.DB
}

// NewSlotAvailabilityRepository yeni bir SlotAvailabilityRepository örneği oluşturur.
func NewSlotAvailabilityRepository() ISlotAvailabilityRepository {
	return &SlotAvailabilityRepository{db: configs.GetDB()}
}

// NewSlotAvailabilityRepositoryTx transaction'a bağlı örnek oluşturur.
func NewSlotAvailabilityRepositoryTx(tx *gorm.DB) ISlotAvailabilityRepository {
	return &SlotAvailabilityRepository{db: tx}
}

func (r *SlotAvailabilityRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByID defter satırını ID ile bulur.
func (r *SlotAvailabilityRepository) FindByID(ctx context.Context, id uint) (*models.SlotAvailability, error) {
	if id == 0 {
		return nil, errors.New("geçersiz SlotAvailability ID")
	}
	var availability models.SlotAvailability
	err := r.getDB(ctx).First(&availability, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SlotAvailabilityRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &availability, nil
}

// FindByTriple satırı doğal anahtarıyla bulur.
func (r *SlotAvailabilityRepository) FindByTriple(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) (*models.SlotAvailability, error) {
	return r.findByTriple(r.getDB(ctx), restaurantID, timeSlotID, date)
}

// FindByTripleForUpdate satırı SELECT ... FOR UPDATE ile kilitleyerek okur.
// Yalnızca açık bir transaction içinde anlamlıdır. SQLite FOR UPDATE
// desteklemez; orada yazmalar zaten serileştiği için kilit atlanır.
func (r *SlotAvailabilityRepository) FindByTripleForUpdate(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) (*models.SlotAvailability, error) {
	db := r.getDB(ctx)
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.findByTriple(db, restaurantID, timeSlotID, date)
}

func (r *SlotAvailabilityRepository) findByTriple(db *gorm.DB, restaurantID, timeSlotID uint, date time.Time) (*models.SlotAvailability, error) {
	var availability models.SlotAvailability
	err := db.
		Where("restaurant_id = ? AND time_slot_id = ? AND date = ?",
			restaurantID, timeSlotID, models.DateOnly(date)).
		First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SlotAvailabilityRepository.findByTriple: DB error",
			zap.Uint("restaurant_id", restaurantID), zap.Uint("time_slot_id", timeSlotID),
			zap.Time("date", date), zap.Error(err))
		return nil, err
	}
	return &availability, nil
}

// GetOrCreate satırı tembel olarak materialize eder. İki eşzamanlı ilk
// kontrol tek satır üretsin diye doğal anahtar üzerinde ON CONFLICT DO
// NOTHING upsert kullanılır; ardından satır tekrar okunur. Mevcut satır
// hiçbir şekilde değiştirilmez (kapasite snapshot'ı korunur).
func (r *SlotAvailabilityRepository) GetOrCreate(ctx context.Context, seed *models.SlotAvailability) (*models.SlotAvailability, error) {
	if seed == nil || seed.RestaurantID == 0 || seed.TimeSlotID == 0 {
		return nil, errors.New("geçersiz slot uygunluk kaydı")
	}
	seed.Date = models.DateOnly(seed.Date)

	err := r.getDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "restaurant_id"},
			{Name: "time_slot_id"},
			{Name: "date"},
		},
		DoNothing: true,
	}).Create(seed).Error
	if err != nil {
		configslog.Log.Error("SlotAvailabilityRepository.GetOrCreate: upsert error",
			zap.Uint("restaurant_id", seed.RestaurantID), zap.Uint("time_slot_id", seed.TimeSlotID),
			zap.Time("date", seed.Date), zap.Error(err))
		return nil, err
	}

	return r.findByTriple(r.getDB(ctx), seed.RestaurantID, seed.TimeSlotID, seed.Date)
}

// ReserveUnit bir kapasite birimini atomik olarak rezerve eder. Koşullu
// UPDATE yalnızca rezerve edilebilir satırı etkiler; son birim alındığında
// is_available aynı ifadede false'a düşer. false dönerse ya satır yok ya da
// kapasite/uygunluk koşulu sağlanmadı.
func (r *SlotAvailabilityRepository) ReserveUnit(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) (bool, error) {
	result := r.getDB(ctx).Model(&models.SlotAvailability{}).
		Where("restaurant_id = ? AND time_slot_id = ? AND date = ?",
			restaurantID, timeSlotID, models.DateOnly(date)).
		Where("remaining_capacity > 0 AND is_available = ? AND is_manually_disabled = ?", true, false).
		Updates(map[string]interface{}{
			"booked_orders":      gorm.Expr("booked_orders + 1"),
			"remaining_capacity": gorm.Expr("remaining_capacity - 1"),
			"is_available":       gorm.Expr("remaining_capacity - 1 > 0"),
		})
	if result.Error != nil {
		configslog.Log.Error("SlotAvailabilityRepository.ReserveUnit: DB error",
			zap.Uint("restaurant_id", restaurantID), zap.Uint("time_slot_id", timeSlotID),
			zap.Time("date", date), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReleaseUnit bir kapasite birimini geri verir. booked_orders tabanı sıfırda
// kilitlidir: serbest bırakılacak rezervasyon yoksa no-op. Kalan kapasite
// toplamdan yeniden hesaplanır; admin toplam kapasiteyi rezervasyonların
// altına çekmiş olsa bile 0 <= remaining <= total aralığı korunur. Kapasite
// geri geldiğinde is_available tekrar true olur; manuel kapatma bayrağına
// dokunulmaz.
func (r *SlotAvailabilityRepository) ReleaseUnit(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) (bool, error) {
	result := r.getDB(ctx).Model(&models.SlotAvailability{}).
		Where("restaurant_id = ? AND time_slot_id = ? AND date = ?",
			restaurantID, timeSlotID, models.DateOnly(date)).
		Where("booked_orders > 0").
		Updates(map[string]interface{}{
			"booked_orders": gorm.Expr("booked_orders - 1"),
			"remaining_capacity": gorm.Expr(
				"CASE WHEN total_capacity - (booked_orders - 1) < 0 THEN 0 ELSE total_capacity - (booked_orders - 1) END"),
			"is_available": gorm.Expr("total_capacity - (booked_orders - 1) > 0"),
		})
	if result.Error != nil {
		configslog.Log.Error("SlotAvailabilityRepository.ReleaseUnit: DB error",
			zap.Uint("restaurant_id", restaurantID), zap.Uint("time_slot_id", timeSlotID),
			zap.Time("date", date), zap.Error(result.Error))
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateManualDisable admin müdahale bayrağını değiştirir; sayaçlara dokunmaz.
func (r *SlotAvailabilityRepository) UpdateManualDisable(ctx context.Context, id uint, disabled bool) error {
	result := r.getDB(ctx).Model(&models.SlotAvailability{}).
		Where("id = ?", id).
		Update("is_manually_disabled", disabled)
	if result.Error != nil {
		configslog.Log.Error("SlotAvailabilityRepository.UpdateManualDisable: DB error",
			zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCapacity materialize edilmiş satırın toplam kapasitesini değiştirir.
// Kalan kapasite yeniden hesaplanır ve sıfırın altına inmez (clamp); mevcut
// rezervasyonlar asla zorla iptal edilmez.
func (r *SlotAvailabilityRepository) UpdateCapacity(ctx context.Context, id uint, totalCapacity int) error {
	if totalCapacity < 0 {
		return errors.New("toplam kapasite negatif olamaz")
	}
	result := r.getDB(ctx).Model(&models.SlotAvailability{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_capacity": totalCapacity,
			"remaining_capacity": gorm.Expr(
				"CASE WHEN ? - booked_orders < 0 THEN 0 ELSE ? - booked_orders END",
				totalCapacity, totalCapacity),
			"is_available": gorm.Expr("? - booked_orders > 0", totalCapacity),
		})
	if result.Error != nil {
		configslog.Log.Error("SlotAvailabilityRepository.UpdateCapacity: DB error",
			zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindRangeByRestaurant rapor için tarih aralığındaki satırları döndürür.
func (r *SlotAvailabilityRepository) FindRangeByRestaurant(ctx context.Context, restaurantID uint, from, to time.Time) ([]models.SlotAvailability, error) {
	var rows []models.SlotAvailability
	err := r.getDB(ctx).Preload("TimeSlot").
		Where("restaurant_id = ? AND date >= ? AND date <= ?",
			restaurantID, models.DateOnly(from), models.DateOnly(to)).
		Order("date asc").
		Find(&rows).Error
	if err != nil {
		configslog.Log.Error("SlotAvailabilityRepository.FindRangeByRestaurant: DB error",
			zap.Uint("restaurant_id", restaurantID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

var _ ISlotAvailabilityRepository = (*SlotAvailabilityRepository)(nil)
