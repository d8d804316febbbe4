package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartbite.app/configs/configsdatabase"
	"smartbite.app/configs/configslog"
	"smartbite.app/models"
	"smartbite.app/pkg/metrics"
	"smartbite.app/pkg/queryparams"
	"smartbite.app/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// taxRate sipariş ara toplamına uygulanan vergi oranı.
const taxRate = 0.05

// rescheduleWindow planlı teslimat saatine bu süreden az kaldığında
// yeniden planlama kapanır.
const rescheduleWindow = 2 * time.Hour

// OrderItemInput sipariş kalemi girdisi.
type OrderItemInput struct {
	MenuItemID          *uint   `json:"menu_item_id,omitempty"`
	ItemName            string  `json:"item_name"`
	UnitPrice           float64 `json:"unit_price"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// ScheduledOrderInput sipariş oluşturma girdisi. OrderType "scheduled"
// olduğunda ScheduledDate ve ScheduledTimeSlotID zorunludur.
type ScheduledOrderInput struct {
	RestaurantID         uint             `json:"restaurant_id"`
	OrderType            models.OrderType `json:"order_type"`
	ScheduledDate        *time.Time       `json:"scheduled_date,omitempty"`
	ScheduledTimeSlotID  *uint            `json:"scheduled_time_slot_id,omitempty"`
	DeliveryInstructions string           `json:"delivery_instructions,omitempty"`
	Items                []OrderItemInput `json:"items"`
}

// RescheduleInput yeniden planlama girdisi.
type RescheduleInput struct {
	ScheduledDate       time.Time `json:"scheduled_date"`
	ScheduledTimeSlotID uint      `json:"scheduled_time_slot_id"`
}

// IScheduledOrderService planlı sipariş koordinatörü: sipariş yaşam
// döngüsünü kapasite defteriyle senkron tutar.
type IScheduledOrderService interface {
	CreateOrder(ctx context.Context, userID uint, input ScheduledOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, orderID, userID uint) (*models.Order, error)
	ListOrders(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpcomingScheduled(ctx context.Context, userID uint) ([]models.Order, error)
	RescheduleOrder(ctx context.Context, orderID, userID uint, input RescheduleInput) (*models.Order, error)
	CancelScheduledOrder(ctx context.Context, orderID, userID uint, reason string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, next models.OrderStatus) (*models.Order, error)
	DueReminders(ctx context.Context, within time.Duration) ([]models.ScheduledOrderReminder, error)
}

// ScheduledOrderService IScheduledOrderService arayüzünü uygular.
type ScheduledOrderService struct {
	db              *gorm.DB
	orderRepo       repositories.IOrderRepository
	paymentRepo     repositories.IPaymentRepository
	reminderRepo    repositories.IReminderRepository
	restaurantRepo  repositories.IRestaurantRepository
	timeSlotRepo    repositories.ITimeSlotRepository
	capacityService ISlotCapacityService
}

// NewScheduledOrderService yeni bir ScheduledOrderService örneği oluşturur.
func NewScheduledOrderService() IScheduledOrderService {
	return &ScheduledOrderService{
		db:              configsdatabase.GetDB(),
		orderRepo:       repositories.NewOrderRepository(),
		paymentRepo:     repositories.NewPaymentRepository(),
		reminderRepo:    repositories.NewReminderRepository(),
		restaurantRepo:  repositories.NewRestaurantRepository(),
		timeSlotRepo:    repositories.NewTimeSlotRepository(),
		capacityService: NewSlotCapacityService(),
	}
}

// generateOrderNumber benzersiz sipariş numarası üretir: SB + zaman damgası
// + kısa rastgele ek.
func generateOrderNumber() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("SB%s%s", time.Now().UTC().Format("20060102150405"), strings.ToUpper(suffix))
}

func validateOrderInput(input ScheduledOrderInput) error {
	if input.RestaurantID == 0 {
		return fmt.Errorf("%w: restoran belirtilmeli", ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return fmt.Errorf("%w: sipariş en az bir kalem içermeli", ErrInvalidInput)
	}
	for _, item := range input.Items {
		if item.ItemName == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
			return fmt.Errorf("%w: geçersiz sipariş kalemi", ErrInvalidInput)
		}
	}
	if input.OrderType == models.OrderTypeScheduled {
		if input.ScheduledDate == nil || input.ScheduledTimeSlotID == nil {
			return fmt.Errorf("%w: planlı sipariş için tarih ve zaman dilimi zorunlu", ErrInvalidInput)
		}
	}
	return nil
}

// CreateOrder yeni sipariş oluşturur. Planlı siparişlerde kapasite
// rezervasyonu ve sipariş kaydı tek transaction içindedir: rezervasyon
// alınamazsa hiçbir sipariş kaydı oluşmaz.
func (s *ScheduledOrderService) CreateOrder(ctx context.Context, userID uint, input ScheduledOrderInput) (*models.Order, error) {
	if err := validateOrderInput(input); err != nil {
		return nil, err
	}
	if input.OrderType == "" {
		input.OrderType = models.OrderTypeInstant
	}

	restaurant, err := s.restaurantRepo.FindByID(ctx, input.RestaurantID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	order := &models.Order{
		OrderNumber:          generateOrderNumber(),
		UserID:               userID,
		RestaurantID:         input.RestaurantID,
		OrderType:            input.OrderType,
		Status:               models.OrderStatusPending,
		DeliveryFee:          restaurant.DeliveryFee,
		DeliveryInstructions: input.DeliveryInstructions,
	}
	for _, item := range input.Items {
		total := item.UnitPrice * float64(item.Quantity)
		order.Subtotal += total
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID:          item.MenuItemID,
			ItemName:            item.ItemName,
			UnitPrice:           item.UnitPrice,
			Quantity:            item.Quantity,
			TotalPrice:          total,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	order.TaxAmount = order.Subtotal * taxRate
	order.TotalAmount = order.Subtotal + order.TaxAmount + order.DeliveryFee - order.DiscountAmount

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)

		if input.OrderType == models.OrderTypeScheduled {
			slot, slotErr := s.timeSlotRepo.FindByID(txCtx, *input.ScheduledTimeSlotID)
			if slotErr != nil {
				if errors.Is(slotErr, repositories.ErrNotFound) {
					return ErrTimeSlotNotFound
				}
				return slotErr
			}
			day := models.DateOnly(*input.ScheduledDate)
			if resErr := s.capacityService.Reserve(txCtx, input.RestaurantID, slot.ID, day); resErr != nil {
				var svcErr SlotServiceError
				if errors.As(resErr, &svcErr) {
					configslog.SLog.Infow("CreateOrder: slot rezervasyonu reddedildi",
						"restaurant_id", input.RestaurantID, "time_slot_id", slot.ID,
						"date", day.Format("2006-01-02"), "reason", resErr.Error())
					return ErrBookingFailed
				}
				return resErr
			}
			scheduled, startErr := slot.StartsAt(day)
			if startErr != nil {
				return startErr
			}
			order.ScheduledDate = &scheduled
			order.ScheduledTimeSlotID = &slot.ID
		}

		if createErr := repositories.NewOrderRepositoryTx(tx).Create(txCtx, order); createErr != nil {
			return createErr
		}

		if input.OrderType == models.OrderTypeScheduled {
			reminder := &models.ScheduledOrderReminder{OrderID: order.ID}
			if remErr := repositories.NewReminderRepositoryTx(tx).Create(txCtx, reminder); remErr != nil {
				return remErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if order.IsScheduled() {
		metrics.ScheduledOrders.WithLabelValues("created").Inc()
	}
	configslog.Log.Info("Sipariş oluşturuldu",
		zap.String("order_number", order.OrderNumber), zap.Uint("user_id", userID),
		zap.String("order_type", string(order.OrderType)))
	return s.orderRepo.FindByID(ctx, order.ID)
}

// GetOrder siparişi sahiplik kontrolüyle getirir.
func (s *ScheduledOrderService) GetOrder(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListOrders kullanıcının siparişlerini sayfalı döndürür.
func (s *ScheduledOrderService) ListOrders(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	orders, total, err := s.orderRepo.FindAllByUserPaginated(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(orders, total, params), nil
}

// UpcomingScheduled kullanıcının gelecekteki planlı siparişlerini döndürür.
func (s *ScheduledOrderService) UpcomingScheduled(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orderRepo.FindUpcomingScheduled(ctx, userID, time.Now().UTC())
}

// RescheduleOrder planlı siparişi yeni (tarih, dilim) çiftine taşır.
// Eski birimin iadesi ve yeni birimin rezervasyonu tek transaction içinde
// yapılır; yeni dilim doluysa sipariş eski diliminde kalır. Teslimat
// saatine iki saatten az kaldıysa pencere kapalıdır.
func (s *ScheduledOrderService) RescheduleOrder(ctx context.Context, orderID, userID uint, input RescheduleInput) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if !order.IsScheduled() || order.ScheduledDate == nil || order.ScheduledTimeSlotID == nil {
		return nil, fmt.Errorf("%w: yalnızca planlı siparişler yeniden planlanabilir", ErrInvalidInput)
	}
	if !order.CanModify() {
		return nil, ErrInvalidOrderState
	}
	if time.Until(*order.ScheduledDate) < rescheduleWindow {
		return nil, ErrRescheduleWindowClosed
	}

	newSlot, err := s.timeSlotRepo.FindByID(ctx, input.ScheduledTimeSlotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		return nil, err
	}
	newDay := models.DateOnly(input.ScheduledDate)
	oldDay := models.DateOnly(*order.ScheduledDate)
	oldSlotID := *order.ScheduledTimeSlotID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)
		if rbErr := s.capacityService.Rebook(txCtx, order.RestaurantID, oldSlotID, oldDay, newSlot.ID, newDay); rbErr != nil {
			return rbErr
		}
		scheduled, startErr := newSlot.StartsAt(newDay)
		if startErr != nil {
			return startErr
		}
		return repositories.NewOrderRepositoryTx(tx).UpdateFields(txCtx, order.ID, map[string]interface{}{
			"scheduled_date":         scheduled,
			"scheduled_time_slot_id": newSlot.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.ScheduledOrders.WithLabelValues("rescheduled").Inc()
	configslog.Log.Info("Sipariş yeniden planlandı",
		zap.Uint("order_id", order.ID), zap.Uint("new_time_slot_id", newSlot.ID),
		zap.String("new_date", newDay.Format("2006-01-02")))
	return s.orderRepo.FindByID(ctx, order.ID)
}

// CancelScheduledOrder planlı siparişi iptal eder ve tuttuğu kapasite
// birimini iade eder. Ödeme iadesi transaction dışında en iyi çaba ile
// tetiklenir; başarısızlığı iptali geri almaz, yalnızca loglanır.
func (s *ScheduledOrderService) CancelScheduledOrder(ctx context.Context, orderID, userID uint, reason string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if !order.CanModify() {
		return nil, ErrInvalidOrderState
	}

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)
		if order.IsScheduled() && order.ScheduledDate != nil && order.ScheduledTimeSlotID != nil {
			if relErr := s.capacityService.Release(txCtx, order.RestaurantID, *order.ScheduledTimeSlotID, *order.ScheduledDate); relErr != nil {
				return relErr
			}
		}
		return repositories.NewOrderRepositoryTx(tx).UpdateFields(txCtx, order.ID, map[string]interface{}{
			"status":              models.OrderStatusCancelled,
			"cancelled_at":        now,
			"cancellation_reason": reason,
		})
	})
	if err != nil {
		return nil, err
	}

	// İade commit sonrasında tetiklenir; kapasite iadesini asla bloke etmez.
	if refundErr := s.paymentRepo.MarkRefunded(ctx, order.ID); refundErr != nil {
		configslog.Log.Error("CancelScheduledOrder: ödeme iadesi tetiklenemedi",
			zap.Uint("order_id", order.ID), zap.Error(refundErr))
	}

	metrics.ScheduledOrders.WithLabelValues("cancelled").Inc()
	configslog.Log.Info("Sipariş iptal edildi",
		zap.Uint("order_id", order.ID), zap.String("reason", reason))
	return s.orderRepo.FindByID(ctx, order.ID)
}

// UpdateStatus admin durum akışı. İptal bu akıştan yapılamaz; iptal
// kapasite iadesi gerektirdiğinden CancelScheduledOrder kullanılır.
func (s *ScheduledOrderService) UpdateStatus(ctx context.Context, orderID uint, next models.OrderStatus) (*models.Order, error) {
	if next == models.OrderStatusCancelled {
		return nil, ErrInvalidStatusChange
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !order.CanTransitionTo(next) {
		return nil, ErrInvalidStatusChange
	}

	now := time.Now().UTC()
	fields := map[string]interface{}{"status": next}
	switch next {
	case models.OrderStatusConfirmed:
		fields["confirmed_at"] = now
	case models.OrderStatusDelivered:
		fields["delivered_at"] = now
	}
	if err := s.orderRepo.UpdateFields(ctx, orderID, fields); err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, orderID)
}

// DueReminders teslimatı within süresi içinde olan ve hatırlatmaları
// tamamlanmamış kayıtları döndürür. Bildirim gönderimi dış işbirlikçinin
// işidir, burada yalnızca liste üretilir.
func (s *ScheduledOrderService) DueReminders(ctx context.Context, within time.Duration) ([]models.ScheduledOrderReminder, error) {
	if within <= 0 {
		within = 24 * time.Hour
	}
	return s.reminderRepo.FindPendingBefore(ctx, time.Now().UTC().Add(within))
}

var _ IScheduledOrderService = (*ScheduledOrderService)(nil)
