package models

import "time"

// OrderStatus sipariş durum makinesinin durumları.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderType sipariş tipi: anında veya planlı teslimat.
type OrderType string

const (
	OrderTypeInstant   OrderType = "instant"
	OrderTypeScheduled OrderType = "scheduled"
)

// orderTransitions admin akışındaki geçerli ileri geçişler.
// İptal, kapasite iadesiyle birlikte ayrı akışta (CancelScheduledOrder) ele alınır.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed},
	OrderStatusConfirmed:      {OrderStatusPreparing},
	OrderStatusPreparing:      {OrderStatusReady},
	OrderStatusReady:          {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
}

// Order sipariş kaydıdır. order_type=scheduled olduğunda ScheduledDate ve
// ScheduledTimeSlotID sipariş tek bir SlotAvailability satırına bağlar;
// pending/confirmed durumdaki her planlı sipariş o satırda tam bir kapasite
// birimi tutar.
type Order struct {
	BaseModel
	OrderNumber  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	RestaurantID uint   `gorm:"not null;index" json:"restaurant_id"`

	OrderType OrderType   `gorm:"type:varchar(20);default:'instant';index" json:"order_type"`
	Status    OrderStatus `gorm:"type:varchar(30);default:'pending';index" json:"status"`

	// Fiyatlandırma
	Subtotal       float64 `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	TaxAmount      float64 `gorm:"type:numeric(12,2);default:0" json:"tax_amount"`
	DeliveryFee    float64 `gorm:"type:numeric(12,2);default:0" json:"delivery_fee"`
	DiscountAmount float64 `gorm:"type:numeric(12,2);default:0" json:"discount_amount"`
	TotalAmount    float64 `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	// Planlı teslimat: ScheduledDate tarih + slot başlangıç saatinin birleşimidir.
	ScheduledDate       *time.Time `gorm:"index" json:"scheduled_date,omitempty"`
	ScheduledTimeSlotID *uint      `gorm:"index" json:"scheduled_time_slot_id,omitempty"`

	DeliveryInstructions  string     `gorm:"type:text" json:"delivery_instructions,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`

	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`

	// GORM İlişkileri
	User       User        `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Restaurant Restaurant  `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	TimeSlot   *TimeSlot   `gorm:"foreignKey:ScheduledTimeSlotID" json:"time_slot,omitempty"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// IsScheduled planlı teslimat siparişi mi.
func (o *Order) IsScheduled() bool {
	return o.OrderType == OrderTypeScheduled
}

// CanModify yalnızca pending/confirmed durumda iptal ve yeniden planlamaya izin verilir.
func (o *Order) CanModify() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// CanTransitionTo admin durum akışında geçişin geçerliliğini kontrol eder.
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem sipariş kalemi; menü kalemi silinse bile geçmiş korunabilsin
// diye ad ve fiyat sipariş anında kopyalanır.
type OrderItem struct {
	BaseModel
	OrderID    uint  `gorm:"not null;index" json:"order_id"`
	MenuItemID *uint `gorm:"index" json:"menu_item_id,omitempty"`

	ItemName            string  `gorm:"type:varchar(255);not null" json:"item_name"`
	UnitPrice           float64 `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity            int     `gorm:"not null;default:1" json:"quantity"`
	TotalPrice          float64 `gorm:"type:numeric(12,2);not null" json:"total_price"`
	SpecialInstructions string  `gorm:"type:text" json:"special_instructions,omitempty"`
}
