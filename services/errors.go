package services

// SlotServiceError planlı teslimat çekirdeğinin servis hataları.
type SlotServiceError string

func (e SlotServiceError) Error() string { return string(e) }

// Hata sabitleri. Kapasite/rezervasyon hataları beklenen, kullanıcıya dönen
// durumlardır; otomatik yeniden denenmezler (aynı girdiyle denemek anlamsız,
// kullanıcı başka slot seçmeli).
const (
	// Bulunamadı
	ErrRestaurantNotFound   SlotServiceError = "restoran bulunamadı"
	ErrTimeSlotNotFound     SlotServiceError = "zaman dilimi bulunamadı"
	ErrConfigNotFound       SlotServiceError = "slot yapılandırması bulunamadı"
	ErrAvailabilityNotFound SlotServiceError = "slot uygunluk kaydı bulunamadı"
	ErrOrderNotFound        SlotServiceError = "sipariş bulunamadı"

	// Doğrulama
	ErrInvalidInput     SlotServiceError = "geçersiz girdi verisi"
	ErrInvalidDayOfWeek SlotServiceError = "geçersiz gün adı"

	// Çakışma
	ErrConfigAlreadyExists SlotServiceError = "bu slot için yapılandırma zaten mevcut"

	// Kapasite
	ErrSlotCapacityFull SlotServiceError = "slot kapasitesi dolu"
	ErrSlotNotBookable  SlotServiceError = "slot rezervasyona kapalı"

	// Sipariş akışı
	ErrBookingFailed          SlotServiceError = "slot not available"
	ErrRescheduleWindowClosed SlotServiceError = "teslimata 2 saatten az kaldığı için sipariş yeniden planlanamaz"
	ErrInvalidOrderState      SlotServiceError = "sipariş bu durumda değiştirilemez"
	ErrInvalidStatusChange    SlotServiceError = "geçersiz sipariş durumu geçişi"
)
