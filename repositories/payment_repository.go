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
)

// IPaymentRepository ödeme işbirlikçisinin dar sözleşmesi. MarkRefunded
// tamamlanmış ödeme yoksa sessizce no-op'tur (best-effort yan etki).
type IPaymentRepository interface {
	FindByOrderID(ctx context.Context, orderID uint) (*models.Payment, error)
	MarkRefunded(ctx context.Context, orderID uint) error
}

// PaymentRepository IPaymentRepository arayüzünü uygular.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository yeni bir PaymentRepository örneği oluşturur.
func NewPaymentRepository() IPaymentRepository {
	return &PaymentRepository{db: configs.GetDB()}
}

// NewPaymentRepositoryTx transaction'a bağlı örnek oluşturur.
func NewPaymentRepositoryTx(tx *gorm.DB) IPaymentRepository {
	return &PaymentRepository{db: tx}
}

func (r *PaymentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByOrderID siparişe ait ödemeyi bulur.
func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID uint) (*models.Payment, error) {
	if orderID == 0 {
		return nil, errors.New("geçersiz Order ID")
	}
	var payment models.Payment
	err := r.getDB(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PaymentRepository.FindByOrderID: DB error", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

// MarkRefunded tamamlanmış ödemeyi iade olarak işaretler. Ödeme yoksa veya
// tamamlanmış değilse no-op.
func (r *PaymentRepository) MarkRefunded(ctx context.Context, orderID uint) error {
	if orderID == 0 {
		return errors.New("geçersiz Order ID")
	}
	now := time.Now().UTC()
	result := r.getDB(ctx).Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", orderID, models.PaymentStatusCompleted).
		Updates(map[string]interface{}{
			"status":        models.PaymentStatusRefunded,
			"refund_amount": gorm.Expr("amount"),
			"refunded_at":   now,
		})
	if result.Error != nil {
		configslog.Log.Error("PaymentRepository.MarkRefunded: DB error", zap.Uint("order_id", orderID), zap.Error(result.Error))
		return result.Error
	}
	return nil
}

var _ IPaymentRepository = (*PaymentRepository)(nil)
