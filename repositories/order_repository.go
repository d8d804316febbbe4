package repositories

import (
	"context"
	"errors"
	"time"

	"smartbite.app/configs"
	"smartbite.app/configs/configslog"
	"smartbite.app/models"
	"smartbite.app/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IOrderRepository sipariş veritabanı işlemleri. FindByIDForUser sahiplik
// sözleşmesini uygular: sipariş başka kullanıcıya aitse ErrNotFound döner.
type IOrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (*models.Order, error)
	FindAllByUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Order, int64, error)
	FindUpcomingScheduled(ctx context.Context, userID uint, now time.Time) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
}

// OrderRepository IOrderRepository arayüzünü uygular.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository yeni bir OrderRepository örneği oluşturur.
func NewOrderRepository() IOrderRepository {
	return &OrderRepository{db: configs.GetDB()}
}

// NewOrderRepositoryTx transaction'a bağlı örnek oluşturur.
func NewOrderRepositoryTx(tx *gorm.DB) IOrderRepository {
	return &OrderRepository{db: tx}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create siparişi kalemleriyle birlikte oluşturur (GORM association).
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order == nil || order.UserID == 0 || order.RestaurantID == 0 {
		return errors.New("geçersiz sipariş")
	}
	return r.getDB(ctx).Create(order).Error
}

// FindByID siparişi kalemleri ve zaman dilimiyle birlikte bulur.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Order ID")
	}
	var order models.Order
	err := r.getDB(ctx).Preload("Items").Preload("TimeSlot").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("OrderRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &order, nil
}

// FindByIDForUser siparişi sahiplik kontrolüyle bulur.
func (r *OrderRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*models.Order, error) {
	if id == 0 || userID == 0 {
		return nil, errors.New("geçersiz Order veya User ID")
	}
	var order models.Order
	err := r.getDB(ctx).Preload("Items").Preload("TimeSlot").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("OrderRepository.FindByIDForUser: DB error",
			zap.Uint("id", id), zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &order, nil
}

// FindAllByUserPaginated kullanıcının sipariş geçmişini sayfalayarak döndürür.
func (r *OrderRepository) FindAllByUserPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Order, int64, error) {
	var orders []models.Order
	var totalCount int64
	db := r.getDB(ctx)

	query := db.Model(&models.Order{}).Where("user_id = ?", userID)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("OrderRepository.Count (Paginated): DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return orders, 0, nil
	}

	err := query.Preload("Items").Preload("TimeSlot").
		Order("created_at desc").
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&orders).Error
	if err != nil {
		configslog.Log.Error("OrderRepository.Find (Paginated): DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, totalCount, err
	}
	return orders, totalCount, nil
}

// FindUpcomingScheduled kullanıcının gelecekteki planlı siparişlerini döndürür
// (yalnızca pending/confirmed).
func (r *OrderRepository) FindUpcomingScheduled(ctx context.Context, userID uint, now time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.getDB(ctx).Preload("Items").Preload("TimeSlot").
		Where("user_id = ? AND order_type = ? AND scheduled_date >= ? AND status IN ?",
			userID, models.OrderTypeScheduled, now,
			[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusConfirmed}).
		Order("scheduled_date asc").
		Find(&orders).Error
	if err != nil {
		configslog.Log.Error("OrderRepository.FindUpcomingScheduled: DB error",
			zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return orders, nil
}

// Update siparişi Save ile günceller.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	if order == nil || order.ID == 0 {
		return errors.New("güncellenecek sipariş geçerli değil")
	}
	return r.getDB(ctx).Save(order).Error
}

// UpdateFields yalnızca verilen alanları günceller.
func (r *OrderRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if id == 0 {
		return errors.New("geçersiz Order ID")
	}
	result := r.getDB(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		configslog.Log.Error("OrderRepository.UpdateFields: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IOrderRepository = (*OrderRepository)(nil)
