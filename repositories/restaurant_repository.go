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

// IRestaurantRepository slot çekirdeğinin restoran işbirlikçisinden tükettiği
// dar sözleşme: varlık kontrolü ve kayıt okuma.
type IRestaurantRepository interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*models.Restaurant, error)
}

// RestaurantRepository IRestaurantRepository arayüzünü uygular.
type RestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository yeni bir RestaurantRepository örneği oluşturur.
func NewRestaurantRepository() IRestaurantRepository {
	return &RestaurantRepository{db: configs.GetDB()}
}

// NewRestaurantRepositoryTx transaction'a bağlı örnek oluşturur.
func NewRestaurantRepositoryTx(tx *gorm.DB) IRestaurantRepository {
	return &RestaurantRepository{db: tx}
}

func (r *RestaurantRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Exists restoranın mevcut ve aktif olup olmadığını döndürür.
func (r *RestaurantRepository) Exists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Restaurant{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("RestaurantRepository.Exists: DB error", zap.Uint("id", id), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// FindByID restoranı ID ile bulur.
func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	if id == 0 {
		return nil, errors.New("geçersiz Restaurant ID")
	}
	var restaurant models.Restaurant
	err := r.getDB(ctx).First(&restaurant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("RestaurantRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &restaurant, nil
}

var _ IRestaurantRepository = (*RestaurantRepository)(nil)
