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

// IReminderRepository planlı sipariş hatırlatma kayıtları.
type IReminderRepository interface {
	Create(ctx context.Context, reminder *models.ScheduledOrderReminder) error
	FindPendingBefore(ctx context.Context, deadline time.Time) ([]models.ScheduledOrderReminder, error)
}

// ReminderRepository IReminderRepository arayüzünü uygular.
type ReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository yeni bir ReminderRepository örneği oluşturur.
func NewReminderRepository() IReminderRepository {
	return &ReminderRepository{db: configs.GetDB()}
}

// NewReminderRepositoryTx transaction'a bağlı örnek oluşturur.
func NewReminderRepositoryTx(tx *gorm.DB) IReminderRepository {
	return &ReminderRepository{db: tx}
}

func (r *ReminderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create sipariş için hatırlatma kaydı oluşturur.
func (r *ReminderRepository) Create(ctx context.Context, reminder *models.ScheduledOrderReminder) error {
	if reminder == nil || reminder.OrderID == 0 {
		return errors.New("geçersiz hatırlatma kaydı")
	}
	return r.getDB(ctx).Create(reminder).Error
}

// FindPendingBefore teslimatı deadline'dan önce olan ve henüz tüm
// hatırlatmaları gönderilmemiş kayıtları döndürür. Bildirim gönderen dış
// işbirlikçi bu listeyle çalışır.
func (r *ReminderRepository) FindPendingBefore(ctx context.Context, deadline time.Time) ([]models.ScheduledOrderReminder, error) {
	var reminders []models.ScheduledOrderReminder
	err := r.getDB(ctx).
		Joins("JOIN orders ON orders.id = scheduled_order_reminders.order_id").
		Where("orders.scheduled_date <= ? AND orders.status IN ?", deadline,
			[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusConfirmed}).
		Where("NOT (reminder_1_sent AND reminder_2_sent AND reminder_3_sent)").
		Find(&reminders).Error
	if err != nil {
		configslog.Log.Error("ReminderRepository.FindPendingBefore: DB error", zap.Error(err))
		return nil, err
	}
	return reminders, nil
}

var _ IReminderRepository = (*ReminderRepository)(nil)
