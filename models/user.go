package models

// User sipariş sahipliği ve admin işlemleri için minimum kullanıcı kaydı.
// Kimlik doğrulama akışları (şifre/OAuth) bu servisin kapsamı dışındadır;
// PasswordHash yalnızca sistem kullanıcısı seed'i için tutulur.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(200)" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
}
