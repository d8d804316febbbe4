package repositories

import (
	"context"

	"gorm.io/gorm"
)

type txContextKey struct{}

// ContextWithTx transaction'ı context'e koyar; repository'lerin getDB
// yardımcıları önce context'teki tx'i kullanır. Böylece servisler arası
// transaction paylaşımı context üzerinden akar.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// TxFromContext context'te taşınan transaction'ı döndürür.
func TxFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok && tx != nil
}
