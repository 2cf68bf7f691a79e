package persistence

import (
	"context"

	"github.com/hoshop/backend/internal/domain/finance"
	"github.com/hoshop/backend/internal/domain/trade"
	"github.com/hoshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// inRange scopes a query to column values inside r
func inRange(column string, r finance.TimeRange) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where(column+" >= ?", r.From.UTC())
		if r.Bounded() {
			db = db.Where(column+" < ?", r.To.UTC())
		}
		return db
	}
}

// GormCashTransactionRepository implements CashTransactionRepository using GORM
type GormCashTransactionRepository struct {
	db *gorm.DB
}

// NewGormCashTransactionRepository creates a new GormCashTransactionRepository
func NewGormCashTransactionRepository(db *gorm.DB) *GormCashTransactionRepository {
	return &GormCashTransactionRepository{db: db}
}

// Create appends a transaction and assigns its ID
func (r *GormCashTransactionRepository) Create(ctx context.Context, tx *finance.CashTransaction) error {
	model := models.CashTransactionModelFromDomain(tx)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	tx.ID = model.ID
	return nil
}

// IncomeExistsForOrder reports whether an income transaction references the
// order. Expenses booked against the order (courier fees) do not count.
func (r *GormCashTransactionRepository) IncomeExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CashTransactionModel{}).
		Where("order_id = ? AND type = ?", orderID, finance.TransactionTypeIncome).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRecent returns up to limit transactions matching the filters, newest first
func (r *GormCashTransactionRepository) FindRecent(ctx context.Context, txType *finance.TransactionType, source *finance.TransactionSource, limit int) ([]finance.CashTransaction, error) {
	query := r.db.WithContext(ctx).Model(&models.CashTransactionModel{})
	if txType != nil {
		query = query.Where("type = ?", *txType)
	}
	if source != nil {
		query = query.Where("source = ?", *source)
	}

	var rows []models.CashTransactionModel
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	txs := make([]finance.CashTransaction, len(rows))
	for i := range rows {
		txs[i] = *rows[i].ToDomain()
	}
	return txs, nil
}

// SumByType totals amounts of one type created within rng
func (r *GormCashTransactionRepository) SumByType(ctx context.Context, txType finance.TransactionType, rng finance.TimeRange) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&models.CashTransactionModel{}).
		Scopes(inRange("created_at", rng)).
		Where("type = ?", txType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// AmountsByType lists (created_at, amount) of one type created within rng
func (r *GormCashTransactionRepository) AmountsByType(ctx context.Context, txType finance.TransactionType, rng finance.TimeRange) ([]finance.DatedAmount, error) {
	var rows []models.CashTransactionModel
	if err := r.db.WithContext(ctx).
		Select("created_at", "amount").
		Scopes(inRange("created_at", rng)).
		Where("type = ?", txType).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.DatedAmount, len(rows))
	for i, row := range rows {
		out[i] = finance.DatedAmount{At: row.CreatedAt, Amount: row.Amount}
	}
	return out, nil
}

// ExpenseByCategory totals expenses created within rng per category name.
// Uncategorized expenses come back with an empty name.
func (r *GormCashTransactionRepository) ExpenseByCategory(ctx context.Context, rng finance.TimeRange) ([]finance.CategoryAmount, error) {
	var rows []struct {
		Name   string
		Amount int64
	}
	err := r.db.WithContext(ctx).
		Table("cash_transactions AS ct").
		Select("COALESCE(ec.name, '') AS name, COALESCE(SUM(ct.amount), 0) AS amount").
		Joins("LEFT JOIN expense_categories ec ON ec.id = ct.expense_category_id").
		Scopes(inRange("ct.created_at", rng)).
		Where("ct.type = ?", finance.TransactionTypeExpense).
		Group("ec.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]finance.CategoryAmount, len(rows))
	for i, row := range rows {
		out[i] = finance.CategoryAmount{Name: row.Name, Amount: row.Amount}
	}
	return out, nil
}

// GormOrderLedgerReader implements OrderLedgerReader using GORM. Revenue
// orders have a completed payment and are not cancelled.
type GormOrderLedgerReader struct {
	db *gorm.DB
}

// NewGormOrderLedgerReader creates a new GormOrderLedgerReader
func NewGormOrderLedgerReader(db *gorm.DB) *GormOrderLedgerReader {
	return &GormOrderLedgerReader{db: db}
}

func revenueOrders(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".payment_status = ? AND "+table+".status <> ?",
			trade.PaymentStatusCompleted, trade.OrderStatusCancelled)
	}
}

// Revenue totals revenue and counts revenue orders created within rng
func (r *GormOrderLedgerReader) Revenue(ctx context.Context, rng finance.TimeRange) (int64, int64, error) {
	var row struct {
		Revenue int64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(revenueOrders("orders"), inRange("orders.created_at", rng)).
		Select("COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS count").
		Scan(&row).Error
	return row.Revenue, row.Count, err
}

// ItemsSold sums item quantities of revenue orders created within rng
func (r *GormOrderLedgerReader) ItemsSold(ctx context.Context, rng finance.TimeRange) (int64, error) {
	var sold int64
	err := r.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Scopes(revenueOrders("orders"), inRange("orders.created_at", rng)).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&sold).Error
	return sold, err
}

// StatusCounts counts orders created within rng per stored status
func (r *GormOrderLedgerReader) StatusCounts(ctx context.Context, rng finance.TimeRange) ([]finance.StatusCount, error) {
	var rows []finance.StatusCount
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Scopes(inRange("created_at", rng)).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// RevenueAmounts lists (created_at, total) of revenue orders created within rng
func (r *GormOrderLedgerReader) RevenueAmounts(ctx context.Context, rng finance.TimeRange) ([]finance.DatedAmount, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Select("created_at", "total").
		Scopes(revenueOrders("orders"), inRange("orders.created_at", rng)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.DatedAmount, len(rows))
	for i, row := range rows {
		out[i] = finance.DatedAmount{At: row.CreatedAt, Amount: row.Total}
	}
	return out, nil
}

// OrderExists reports whether an order with the id exists
func (r *GormOrderLedgerReader) OrderExists(ctx context.Context, orderID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindUnrecorded returns up to limit orders with a completed payment and no
// income transaction referencing them, newest first
func (r *GormOrderLedgerReader) FindUnrecorded(ctx context.Context, limit int) ([]finance.UnrecordedOrder, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("payment_status = ?", trade.PaymentStatusCompleted).
		Where("NOT EXISTS (SELECT 1 FROM cash_transactions ct WHERE ct.order_id = orders.id AND ct.type = ?)",
			finance.TransactionTypeIncome).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]finance.UnrecordedOrder, len(rows))
	for i, row := range rows {
		out[i] = finance.UnrecordedOrder{
			OrderID:       row.ID,
			Total:         row.Total,
			PaymentMethod: row.PaymentMethod,
			UserID:        row.UserID,
			CreatedAt:     row.CreatedAt,
		}
	}
	return out, nil
}
