package models

import (
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// BaseModel hook'larına taşımak için kullanılır.
const ContextUserIDKey contextKey = "user_id"

// BaseModel tüm tablolara gömülen ortak alanlar: ID, zaman damgaları,
// soft delete ve işlemi yapan kullanıcı bilgisi.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate context'teki kullanıcı ID'sini CreatedBy/UpdatedBy alanlarına yazar.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := tx.Statement.Context.Value(ContextUserIDKey).(uint); ok && userID > 0 {
		m.CreatedBy = &userID
		m.UpdatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'teki kullanıcı ID'sini UpdatedBy alanına yazar.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := tx.Statement.Context.Value(ContextUserIDKey).(uint); ok && userID > 0 {
		m.UpdatedBy = &userID
	}
	return nil
}
