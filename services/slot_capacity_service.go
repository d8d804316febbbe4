package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"smartbite.app/configs/configsdatabase"
	"smartbite.app/configs/configslog"
	"smartbite.app/models"
	"smartbite.app/pkg/metrics"
	"smartbite.app/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reserveRetryCount geçici sürücü hatalarında en fazla kaç ek deneme
// yapılacağını belirler. Kapasite yetersizliği asla yeniden denenmez.
const reserveRetryCount = 2

// reserveRetryDelay iki deneme arasındaki bekleme süresi.
const reserveRetryDelay = 50 * time.Millisecond

// isTransientDBError sürücünün kilit/serileştirme sınıfı hatalarını ayırt
// eder; yalnızca bunlar yeniden denenir, kalıcı hatalar hemen yüzeye çıkar.
// Postgres: 40001 (serialization_failure), 40P01 (deadlock_detected),
// 55P03 (lock_not_available). SQLite: busy/locked.
func isTransientDBError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"sqlstate 40001", "sqlstate 40p01", "sqlstate 55p03",
		"deadlock", "database is locked", "database table is locked", "busy",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// SlotAvailabilityCheck tek bir dilimin müsaitlik durumu.
type SlotAvailabilityCheck struct {
	TimeSlotID        uint    `json:"time_slot_id"`
	SlotName          string  `json:"slot_name"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	TotalCapacity     int     `json:"total_capacity"`
	BookedOrders      int     `json:"booked_orders"`
	RemainingCapacity int     `json:"remaining_capacity"`
	IsAvailable       bool    `json:"is_available"`
	Reason            *string `json:"reason,omitempty"`
	SlotSurcharge     float64 `json:"slot_surcharge"`
}

// DateAvailability bir takvim gününün sunulan dilimleri.
type DateAvailability struct {
	Date  string                  `json:"date"`
	Slots []SlotAvailabilityCheck `json:"slots"`
}

// ISlotCapacityService dilim kapasite motoru: müsaitlik sorgusu ve
// atomik rezervasyon/iade işlemleri.
type ISlotCapacityService interface {
	ListAvailability(ctx context.Context, restaurantID uint, startDate time.Time, days int) ([]DateAvailability, error)
	Reserve(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) error
	Release(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) error
	Rebook(ctx context.Context, restaurantID, oldTimeSlotID uint, oldDate time.Time, newTimeSlotID uint, newDate time.Time) error
	SetManualDisable(ctx context.Context, availabilityID uint, disabled bool) (*models.SlotAvailability, error)
	UpdateAvailability(ctx context.Context, availabilityID uint, disabled *bool, totalCapacity *int) (*models.SlotAvailability, error)
}

// SlotCapacityService ISlotCapacityService arayüzünü uygular.
type SlotCapacityService struct {
	db               *gorm.DB
	availabilityRepo repositories.ISlotAvailabilityRepository
	configRepo       repositories.ISlotConfigRepository
	restaurantRepo   repositories.IRestaurantRepository
}

// NewSlotCapacityService yeni bir SlotCapacityService örneği oluşturur.
func NewSlotCapacityService() ISlotCapacityService {
	return &SlotCapacityService{
		db:               configsdatabase.GetDB(),
		availabilityRepo: repositories.NewSlotAvailabilityRepository(),
		configRepo:       repositories.NewSlotConfigRepository(),
		restaurantRepo:   repositories.NewRestaurantRepository(),
	}
}

// ListAvailability restoranın startDate'ten itibaren days gün için sunulan
// dilimlerini döndürür. Yalnızca etkin yapılandırmaya sahip, aktif ve
// gün/pencere filtrelerinden geçen dilimler listelenir; pencere dışı
// dilimler tamamen atlanır. Listelenen her dilim için defter satırı
// tembelce materialize edilir.
func (s *SlotCapacityService) ListAvailability(ctx context.Context, restaurantID uint, startDate time.Time, days int) ([]DateAvailability, error) {
	if days < 1 {
		days = 1
	}
	exists, err := s.restaurantRepo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRestaurantNotFound
	}

	configs, err := s.configRepo.FindEnabledByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	start := models.DateOnly(startDate)
	result := make([]DateAvailability, 0, days)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		day := DateAvailability{Date: date.Format("2006-01-02"), Slots: []SlotAvailabilityCheck{}}

		for idx := range configs {
			config := &configs[idx]
			if config.TimeSlot.ID == 0 || !config.TimeSlot.IsActive {
				continue
			}
			if !slotOffered(config, &config.TimeSlot, date, now) {
				continue
			}

			seed := &models.SlotAvailability{
				RestaurantID:      restaurantID,
				TimeSlotID:        config.TimeSlotID,
				Date:              date,
				TotalCapacity:     config.MaxOrdersPerSlot,
				RemainingCapacity: config.MaxOrdersPerSlot,
				IsAvailable:       config.MaxOrdersPerSlot > 0,
			}
			availability, err := s.availabilityRepo.GetOrCreate(ctx, seed)
			if err != nil {
				configslog.Log.Error("SlotCapacityService.ListAvailability: defter satırı oluşturulamadı",
					zap.Uint("restaurant_id", restaurantID), zap.Uint("time_slot_id", config.TimeSlotID),
					zap.String("date", day.Date), zap.Error(err))
				return nil, err
			}

			check := SlotAvailabilityCheck{
				TimeSlotID:        config.TimeSlotID,
				SlotName:          config.TimeSlot.Name,
				StartTime:         config.TimeSlot.StartTime,
				EndTime:           config.TimeSlot.EndTime,
				TotalCapacity:     availability.TotalCapacity,
				BookedOrders:      availability.BookedOrders,
				RemainingCapacity: availability.RemainingCapacity,
				IsAvailable:       availability.Bookable(),
				SlotSurcharge:     config.SlotSurcharge,
			}
			if reason := availability.UnavailableReason(); reason != "" {
				check.Reason = &reason
			}
			day.Slots = append(day.Slots, check)
		}
		result = append(result, day)
	}
	return result, nil
}

// Reserve (restaurant, slot, date) üçlüsünden atomik olarak bir birim
// kapasite düşer. Satır yoksa etkin yapılandırmadan tembelce oluşturulur.
// Kapasite dolu veya dilim kapalıysa CapacityError döner; geçici sürücü
// hataları kısa gecikmeyle sınırlı sayıda yeniden denenir.
func (s *SlotCapacityService) Reserve(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) error {
	day := models.DateOnly(date)

	_, err := s.availabilityRepo.FindByTriple(ctx, restaurantID, timeSlotID, day)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		config, cfgErr := s.configRepo.FindByPair(ctx, restaurantID, timeSlotID)
		if cfgErr != nil {
			if errors.Is(cfgErr, repositories.ErrNotFound) {
				return ErrAvailabilityNotFound
			}
			return cfgErr
		}
		if !config.IsEnabled {
			return ErrSlotNotBookable
		}
		seed := &models.SlotAvailability{
			RestaurantID:      restaurantID,
			TimeSlotID:        timeSlotID,
			Date:              day,
			TotalCapacity:     config.MaxOrdersPerSlot,
			RemainingCapacity: config.MaxOrdersPerSlot,
			IsAvailable:       config.MaxOrdersPerSlot > 0,
		}
		if _, err = s.availabilityRepo.GetOrCreate(ctx, seed); err != nil {
			return err
		}
	}

	var reserved bool
	for attempt := 0; ; attempt++ {
		reserved, err = s.availabilityRepo.ReserveUnit(ctx, restaurantID, timeSlotID, day)
		if err == nil || attempt >= reserveRetryCount || !isTransientDBError(err) {
			break
		}
		configslog.Log.Warn("SlotCapacityService.Reserve: geçici hata, yeniden deneniyor",
			zap.Uint("restaurant_id", restaurantID), zap.Uint("time_slot_id", timeSlotID),
			zap.Int("attempt", attempt+1), zap.Error(err))
		time.Sleep(reserveRetryDelay)
	}
	if err != nil {
		metrics.SlotReservations.WithLabelValues("error").Inc()
		return err
	}
	if reserved {
		metrics.SlotReservations.WithLabelValues("success").Inc()
		return nil
	}

	// Deneme başarısız: nedenini ayırt etmek için satırı yeniden oku.
	current, readErr := s.availabilityRepo.FindByTriple(ctx, restaurantID, timeSlotID, day)
	if readErr != nil {
		metrics.SlotReservations.WithLabelValues("error").Inc()
		return readErr
	}
	if current.IsManuallyDisabled {
		metrics.SlotReservations.WithLabelValues("not_bookable").Inc()
		return ErrSlotNotBookable
	}
	if current.RemainingCapacity <= 0 {
		metrics.SlotReservations.WithLabelValues("capacity_full").Inc()
		return ErrSlotCapacityFull
	}
	metrics.SlotReservations.WithLabelValues("not_bookable").Inc()
	return ErrSlotNotBookable
}

// Release daha önce düşülen bir birimi iade eder. booked_orders sıfırsa
// işlem sessizce atlanır, hiçbir sayaç eksiye düşmez.
func (s *SlotCapacityService) Release(ctx context.Context, restaurantID, timeSlotID uint, date time.Time) error {
	released, err := s.availabilityRepo.ReleaseUnit(ctx, restaurantID, timeSlotID, models.DateOnly(date))
	if err != nil {
		return err
	}
	if released {
		metrics.SlotReleases.WithLabelValues("released").Inc()
	} else {
		metrics.SlotReleases.WithLabelValues("noop").Inc()
		configslog.SLog.Warnw("Release: iade edilecek rezervasyon bulunamadı",
			"restaurant_id", restaurantID, "time_slot_id", timeSlotID,
			"date", models.DateOnly(date).Format("2006-01-02"))
	}
	return nil
}

// Rebook eski üçlüyü iade edip yeni üçlüden rezervasyon yapar; iki adım
// tek transaction içinde çalışır. Yeni dilim doluysa iade geri alınır ve
// sipariş eski diliminde kalır.
func (s *SlotCapacityService) Rebook(ctx context.Context, restaurantID, oldTimeSlotID uint, oldDate time.Time, newTimeSlotID uint, newDate time.Time) error {
	run := func(txCtx context.Context) error {
		// Kaynak satırı transaction boyunca kilitle; eşzamanlı rebook'lar
		// aynı satır üzerinde sıralanır.
		if _, err := s.availabilityRepo.FindByTripleForUpdate(txCtx, restaurantID, oldTimeSlotID, oldDate); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrAvailabilityNotFound
			}
			return err
		}
		if err := s.Release(txCtx, restaurantID, oldTimeSlotID, oldDate); err != nil {
			return err
		}
		return s.Reserve(txCtx, restaurantID, newTimeSlotID, newDate)
	}
	if _, ok := repositories.TxFromContext(ctx); ok {
		return run(ctx)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return run(repositories.ContextWithTx(ctx, tx))
	})
}

// SetManualDisable dilimi manuel olarak kapatır veya açar. Açarken
// is_available kalan kapasiteden yeniden türetilir.
func (s *SlotCapacityService) SetManualDisable(ctx context.Context, availabilityID uint, disabled bool) (*models.SlotAvailability, error) {
	if _, err := s.availabilityRepo.FindByID(ctx, availabilityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	if err := s.availabilityRepo.UpdateManualDisable(ctx, availabilityID, disabled); err != nil {
		return nil, err
	}
	return s.availabilityRepo.FindByID(ctx, availabilityID)
}

// UpdateAvailability defter satırının manuel kapatma bayrağını ve/veya
// toplam kapasitesini günceller. Kapasite düşürüldüğünde kalan kapasite
// sıfırın altına inmez; mevcut rezervasyonlar asla iptal edilmez.
func (s *SlotCapacityService) UpdateAvailability(ctx context.Context, availabilityID uint, disabled *bool, totalCapacity *int) (*models.SlotAvailability, error) {
	if disabled == nil && totalCapacity == nil {
		return nil, ErrInvalidInput
	}
	if totalCapacity != nil && *totalCapacity < 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.availabilityRepo.FindByID(ctx, availabilityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	if totalCapacity != nil {
		if err := s.availabilityRepo.UpdateCapacity(ctx, availabilityID, *totalCapacity); err != nil {
			return nil, err
		}
	}
	if disabled != nil {
		if err := s.availabilityRepo.UpdateManualDisable(ctx, availabilityID, *disabled); err != nil {
			return nil, err
		}
	}
	return s.availabilityRepo.FindByID(ctx, availabilityID)
}

var _ ISlotCapacityService = (*SlotCapacityService)(nil)
