package persistence

import (
	"context"

	"github.com/hoshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerResetter implements LedgerResetter using GORM
type GormLedgerResetter struct {
	db *gorm.DB
}

// NewGormLedgerResetter creates a new GormLedgerResetter
func NewGormLedgerResetter(db *gorm.DB) *GormLedgerResetter {
	return &GormLedgerResetter{db: db}
}

// Reset deletes daily reports, cash transactions, order items and orders, in
// that order, inside one transaction. Products, reviews and expense
// categories are kept.
func (r *GormLedgerResetter) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{
			&models.DailyReportModel{},
			&models.CashTransactionModel{},
			&models.OrderItemModel{},
			&models.OrderModel{},
		} {
			if err := all.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
