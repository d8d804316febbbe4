package models

// Restaurant slot çekirdeğinin dış işbirlikçisidir; burada yalnızca FK
// hedefi ve "restoran mevcut mu" kontrolü için minimum alanlarla tutulur.
// Menü/katalog yönetimi bu servisin kapsamı dışındadır.
type Restaurant struct {
	BaseModel
	Name        string  `gorm:"type:varchar(200);not null" json:"name"`
	IsActive    bool    `gorm:"not null;index" json:"is_active"`
	DeliveryFee float64 `gorm:"type:numeric(12,2);default:0" json:"delivery_fee"`
}
