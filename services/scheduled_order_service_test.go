package services

import (
	"context"
	"testing"
	"time"

	"smartbite.app/models"
	"smartbite.app/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{Name: "Müşteri", Email: "musteri@example.com"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func scheduledInput(restaurantID, timeSlotID uint, date time.Time) ScheduledOrderInput {
	return ScheduledOrderInput{
		RestaurantID:        restaurantID,
		OrderType:           models.OrderTypeScheduled,
		ScheduledDate:       &date,
		ScheduledTimeSlotID: &timeSlotID,
		Items: []OrderItemInput{
			{ItemName: "Adana Dürüm", UnitPrice: 120, Quantity: 2},
			{ItemName: "Ayran", UnitPrice: 20, Quantity: 1},
		},
	}
}

func TestScheduledOrderService_CreateOrder(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	seedConfig(t, db, restaurant.ID, slot.ID, 5)
	user := seedUser(t, db)
	service := NewScheduledOrderService()
	ctx := context.Background()

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	order, err := service.CreateOrder(ctx, user.ID, scheduledInput(restaurant.ID, slot.ID, date))
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.OrderTypeScheduled, order.OrderType)
	require.NotNil(t, order.ScheduledDate)
	// ScheduledDate = tarih + slot başlangıç saati.
	assert.Equal(t, time.Date(2026, 9, 1, 16, 0, 0, 0, time.UTC), order.ScheduledDate.UTC())
	require.NotNil(t, order.ScheduledTimeSlotID)
	assert.Equal(t, slot.ID, *order.ScheduledTimeSlotID)

	// Fiyatlandırma: 260 ara toplam + %5 vergi + teslimat ücreti.
	assert.InDelta(t, 260, order.Subtotal, 0.001)
	assert.InDelta(t, 13, order.TaxAmount, 0.001)
	assert.InDelta(t, 283, order.TotalAmount, 0.001)
	assert.Len(t, order.Items, 2)

	// Kapasite birimi düştü.
	var row models.SlotAvailability
	require.NoError(t, db.Where("time_slot_id = ?", slot.ID).First(&row).Error)
	assert.Equal(t, 1, row.BookedOrders)

	// Hatırlatma kaydı oluştu.
	var reminder models.ScheduledOrderReminder
	require.NoError(t, db.Where("order_id = ?", order.ID).First(&reminder).Error)
	assert.Equal(t, 24, reminder.Reminder1Hours)
}

func TestScheduledOrderService_CreateOrder_BookingFailure(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	// Kapasite 1: ikinci sipariş reddedilmeli.
	seedAvailability(t, db, restaurant.ID, slot.ID, date, 1)
	seedConfig(t, db, restaurant.ID, slot.ID, 1)
	user := seedUser(t, db)
	service := NewScheduledOrderService()
	ctx := context.Background()

	_, err := service.CreateOrder(ctx, user.ID, scheduledInput(restaurant.ID, slot.ID, date))
	require.NoError(t, err)

	_, err = service.CreateOrder(ctx, user.ID, scheduledInput(restaurant.ID, slot.ID, date))
	assert.ErrorIs(t, err, ErrBookingFailed)
	assert.Equal(t, "slot not available", err.Error())

	// Başarısız rezervasyon sipariş kaydı bırakmaz.
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestScheduledOrderService_CreateOrder_Validation(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db)
	service := NewScheduledOrderService()
	ctx := context.Background()

	// Planlı sipariş tarih ve dilim olmadan oluşturulamaz.
	input := ScheduledOrderInput{
		RestaurantID: restaurant.ID,
		OrderType:    models.OrderTypeScheduled,
		Items:        []OrderItemInput{{ItemName: "Lahmacun", UnitPrice: 60, Quantity: 1}},
	}
	_, err := service.CreateOrder(ctx, user.ID, input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Boş kalem listesi geçersiz.
	input.Items = nil
	_, err = service.CreateOrder(ctx, user.ID, input)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScheduledOrderService_Reschedule(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	oldSlot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	newSlot := seedTimeSlot(t, db, "6-7 PM", "18:00", "19:00")
	seedConfig(t, db, restaurant.ID, oldSlot.ID, 5)
	seedConfig(t, db, restaurant.ID, newSlot.ID, 5)
	user := seedUser(t, db)
	service := NewScheduledOrderService()
	ctx := context.Background()

	date := time.Now().UTC().AddDate(0, 0, 2)
	order, err := service.CreateOrder(ctx, user.ID, scheduledInput(restaurant.ID, oldSlot.ID, date))
	require.NoError(t, err)

	newDate := date.AddDate(0, 0, 1)
	updated, err := service.RescheduleOrder(ctx, order.ID, user.ID, RescheduleInput{
		ScheduledDate:       newDate,
		ScheduledTimeSlotID: newSlot.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, newSlot.ID, *updated.ScheduledTimeSlotID)
	assert.Equal(t, 18, updated.ScheduledDate.UTC().Hour())

	// Eski birim iade edildi, yeni birim tutuldu.
	var oldRow, newRow models.SlotAvailability
	require.NoError(t, db.Where("time_slot_id = ?", oldSlot.ID).First(&oldRow).Error)
	require.NoError(t, db.Where("time_slot_id = ?", newSlot.ID).First(&newRow).Error)
	assert.Equal(t, 0, oldRow.BookedOrders)
	assert.Equal(t, 1, newRow.BookedOrders)
}

func TestScheduledOrderService_Reschedule_WindowClosed(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	user := seedUser(t, db)
	service := NewScheduledOrderService()
	ctx := context.Background()

	// Teslimata 1 saat kalmış sipariş.
	soon := time.Now().UTC().Add(time.Hour)
	slotID := slot.ID
	order := models.Order{
		OrderNumber:         "SB-TEST-1",
		UserID:              user.ID,
		RestaurantID:        restaurant.ID,
		OrderType:           models.OrderTypeScheduled,
		Status:              models.OrderStatusPending,
		Subtotal:            100,
		TotalAmount:         100,
		ScheduledDate:       &soon,
		ScheduledTimeSlotID: &slotID,
	}
	require.NoError(t, db.Create(&order).Error)

	_, err := service.RescheduleOrder(ctx, order.ID, user.ID, RescheduleInput{
		ScheduledDate:       time.Now().UTC().AddDate(0, 0, 1),
		ScheduledTimeSlotID: slot.ID,
	})
	assert.ErrorIs(t, err, ErrRescheduleWindowClosed)
}

func TestScheduledOrderService_Cancel(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	seedConfig(t, db, restaurant.ID, slot.ID, 5)
	user := seedUser(t, db)
	service := NewScheduledOrderService()
	ctx := context.Background()

	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	order, err := service.CreateOrder(ctx, user.ID, scheduledInput(restaurant.ID, slot.ID, date))
	require.NoError(t, err)

	// Tamamlanmış ödeme iptalde iadeye dönmeli.
	payment := models.Payment{OrderID: order.ID, Amount: order.TotalAmount, Status: models.PaymentStatusCompleted}
	require.NoError(t, db.Create(&payment).Error)

	cancelled, err := service.CancelScheduledOrder(ctx, order.ID, user.ID, "Fikrim değişti")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, "Fikrim değişti", cancelled.CancellationReason)

	// Kapasite iade edildi.
	var row models.SlotAvailability
	require.NoError(t, db.Where("time_slot_id = ?", slot.ID).First(&row).Error)
	assert.Equal(t, 0, row.BookedOrders)

	// Ödeme iade olarak işaretlendi.
	var refreshed models.Payment
	require.NoError(t, db.First(&refreshed, payment.ID).Error)
	assert.Equal(t, models.PaymentStatusRefunded, refreshed.Status)
	assert.InDelta(t, order.TotalAmount, refreshed.RefundAmount, 0.001)

	// İptal edilmiş sipariş tekrar iptal edilemez.
	_, err = service.CancelScheduledOrder(ctx, order.ID, user.ID, "tekrar")
	assert.ErrorIs(t, err, ErrInvalidOrderState)
}

func TestScheduledOrderService_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db)
	service := NewScheduledOrderService()
	ctx := context.Background()

	order := models.Order{
		OrderNumber:  "SB-TEST-2",
		UserID:       user.ID,
		RestaurantID: restaurant.ID,
		OrderType:    models.OrderTypeInstant,
		Status:       models.OrderStatusPending,
		Subtotal:     100,
		TotalAmount:  100,
	}
	require.NoError(t, db.Create(&order).Error)

	updated, err := service.UpdateStatus(ctx, order.ID, models.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, updated.Status)
	assert.NotNil(t, updated.ConfirmedAt)

	// Ara durum atlanamaz.
	_, err = service.UpdateStatus(ctx, order.ID, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)

	// İptal bu akıştan yapılamaz.
	_, err = service.UpdateStatus(ctx, order.ID, models.OrderStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestScheduledOrderService_ListAndUpcoming(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	seedConfig(t, db, restaurant.ID, slot.ID, 5)
	user := seedUser(t, db)
	other := models.User{Name: "Diğer", Email: "diger@example.com"}
	require.NoError(t, db.Create(&other).Error)
	service := NewScheduledOrderService()
	ctx := context.Background()

	date := time.Now().UTC().AddDate(0, 0, 1)
	order, err := service.CreateOrder(ctx, user.ID, scheduledInput(restaurant.ID, slot.ID, date))
	require.NoError(t, err)

	result, err := service.ListOrders(ctx, user.ID, queryparams.DefaultListParams("created_at"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Meta.TotalItems)

	// Sahiplik: başka kullanıcı siparişi göremez.
	_, err = service.GetOrder(ctx, order.ID, other.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	upcoming, err := service.UpcomingScheduled(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, order.ID, upcoming[0].ID)

	empty, err := service.UpcomingScheduled(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestScheduledOrderService_DueReminders(t *testing.T) {
	db := newTestDB(t)
	restaurant := seedRestaurant(t, db)
	slot := seedTimeSlot(t, db, "4-5 PM", "16:00", "17:00")
	seedConfig(t, db, restaurant.ID, slot.ID, 5)
	user := seedUser(t, db)
	service := NewScheduledOrderService()
	ctx := context.Background()

	date := time.Now().UTC().AddDate(0, 0, 2)
	order, err := service.CreateOrder(ctx, user.ID, scheduledInput(restaurant.ID, slot.ID, date))
	require.NoError(t, err)

	// Teslimat 2 gün sonra, 24 saatlik pencerede hatırlatma yok.
	due, err := service.DueReminders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, due)

	// Teslimatı yaklaştır, kayıt pencereye girer.
	soon := time.Now().UTC().Add(time.Hour)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("scheduled_date", soon).Error)

	due, err = service.DueReminders(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, order.ID, due[0].OrderID)

	// Tüm hatırlatmalar gönderilmişse liste boşalır.
	require.NoError(t, db.Model(&models.ScheduledOrderReminder{}).
		Where("order_id = ?", order.ID).
		Updates(map[string]interface{}{
			"reminder_1_sent": true,
			"reminder_2_sent": true,
			"reminder_3_sent": true,
		}).Error)

	due, err = service.DueReminders(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Empty(t, due)
}
