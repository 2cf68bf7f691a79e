package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/hoshop/backend/internal/domain/finance"
	"github.com/hoshop/backend/internal/domain/trade"
	"github.com/hoshop/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, db *Database, status trade.OrderStatus, payment trade.PaymentStatus, total, qty int64, at time.Time) *models.OrderModel {
	t.Helper()
	o := &models.OrderModel{
		BaseModel:     models.BaseModel{CreatedAt: at, UpdatedAt: at},
		Status:        status,
		PaymentMethod: "qris",
		PaymentStatus: payment,
		Subtotal:      total,
		Total:         total,
		Items: []models.OrderItemModel{
			{ProductID: 1, ProductName: "Madu", ProductPrice: total / qty, Quantity: qty},
		},
	}
	require.NoError(t, db.DB.Create(o).Error)
	return o
}

func seedTx(t *testing.T, db *Database, txType finance.TransactionType, amount int64, categoryID, orderID *int64, at time.Time) {
	t.Helper()
	require.NoError(t, db.DB.Create(&models.CashTransactionModel{
		Type:              txType,
		Amount:            amount,
		PaymentMethod:     finance.PaymentCash,
		Source:            finance.SourceStore,
		ExpenseCategoryID: categoryID,
		OrderID:           orderID,
		CreatedAt:         at,
	}).Error)
}

func TestGormCashTransactionRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	repo := NewGormCashTransactionRepository(db.DB)

	rent := &models.ExpenseCategoryModel{Name: "Rent", Slug: "rent", CreatedAt: baseTime}
	require.NoError(t, db.DB.Create(rent).Error)

	seedTx(t, db, finance.TransactionTypeIncome, 20000, nil, nil, baseTime.Add(-2*time.Hour))
	seedTx(t, db, finance.TransactionTypeExpense, 5000, &rent.ID, nil, baseTime.Add(-time.Hour))
	seedTx(t, db, finance.TransactionTypeExpense, 3000, nil, nil, baseTime.Add(-30*time.Minute))
	seedTx(t, db, finance.TransactionTypeExpense, 7000, &rent.ID, nil, baseTime.Add(-72*time.Hour))

	window := finance.Since(baseTime.Add(-24 * time.Hour))

	t.Run("Create assigns an id", func(t *testing.T) {
		orderID := int64(77)
		tx, err := finance.NewCashTransaction(finance.CashTransactionInput{
			Type:    finance.TransactionTypeIncome,
			Amount:  1000,
			OrderID: &orderID,
		}, baseTime.Add(-48*time.Hour))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx))
		assert.NotZero(t, tx.ID)

		exists, err := repo.IncomeExistsForOrder(ctx, orderID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.IncomeExistsForOrder(ctx, 78)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("SumByType honours the range", func(t *testing.T) {
		expense, err := repo.SumByType(ctx, finance.TransactionTypeExpense, window)
		require.NoError(t, err)
		assert.Equal(t, int64(8000), expense)

		all, err := repo.SumByType(ctx, finance.TransactionTypeExpense, finance.Since(time.Time{}))
		require.NoError(t, err)
		assert.Equal(t, int64(15000), all)

		bounded, err := repo.SumByType(ctx, finance.TransactionTypeExpense,
			finance.Between(baseTime.Add(-2*time.Hour), baseTime.Add(-45*time.Minute)))
		require.NoError(t, err)
		assert.Equal(t, int64(5000), bounded)
	})

	t.Run("AmountsByType lists oldest first", func(t *testing.T) {
		rows, err := repo.AmountsByType(ctx, finance.TransactionTypeExpense, window)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(5000), rows[0].Amount)
		assert.True(t, rows[0].At.Equal(baseTime.Add(-time.Hour)))
	})

	t.Run("ExpenseByCategory groups uncategorized under an empty name", func(t *testing.T) {
		rows, err := repo.ExpenseByCategory(ctx, window)
		require.NoError(t, err)
		got := make(map[string]int64)
		for _, r := range rows {
			got[r.Name] = r.Amount
		}
		assert.Equal(t, map[string]int64{"Rent": 5000, "": 3000}, got)
	})

	t.Run("FindRecent filters and orders newest first", func(t *testing.T) {
		expense := finance.TransactionTypeExpense
		rows, err := repo.FindRecent(ctx, &expense, nil, 2)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(3000), rows[0].Amount)
		assert.Equal(t, int64(5000), rows[1].Amount)

		website := finance.SourceWebsite
		rows, err = repo.FindRecent(ctx, nil, &website, 10)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("an expense on an order is not its income", func(t *testing.T) {
		orderID := int64(79)
		seedTx(t, db, finance.TransactionTypeExpense, 8000, nil, &orderID, baseTime.Add(-48*time.Hour))

		exists, err := repo.IncomeExistsForOrder(ctx, orderID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormOrderLedgerReader(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)
	reader := NewGormOrderLedgerReader(db.DB)

	delivered := seedOrder(t, db, trade.OrderStatusDelivered, trade.PaymentStatusCompleted, 50000, 2, baseTime.Add(-time.Hour))
	paid := seedOrder(t, db, trade.OrderStatusPaid, trade.PaymentStatusCompleted, 30000, 3, baseTime.Add(-2*time.Hour))
	seedOrder(t, db, trade.OrderStatusPending, trade.PaymentStatusPending, 10000, 1, baseTime.Add(-3*time.Hour))
	cancelled := seedOrder(t, db, trade.OrderStatusCancelled, trade.PaymentStatusCompleted, 40000, 4, baseTime.Add(-4*time.Hour))
	seedOrder(t, db, trade.OrderStatusDelivered, trade.PaymentStatusCompleted, 99000, 1, baseTime.Add(-96*time.Hour))

	window := finance.Since(baseTime.Add(-24 * time.Hour))

	t.Run("Revenue counts completed non-cancelled orders", func(t *testing.T) {
		revenue, count, err := reader.Revenue(ctx, window)
		require.NoError(t, err)
		assert.Equal(t, int64(80000), revenue)
		assert.Equal(t, int64(2), count)
	})

	t.Run("ItemsSold follows the revenue filter", func(t *testing.T) {
		sold, err := reader.ItemsSold(ctx, window)
		require.NoError(t, err)
		assert.Equal(t, int64(5), sold)
	})

	t.Run("StatusCounts groups raw statuses", func(t *testing.T) {
		rows, err := reader.StatusCounts(ctx, window)
		require.NoError(t, err)
		got := make(map[string]int64)
		for _, r := range rows {
			got[r.Status] = r.Count
		}
		assert.Equal(t, map[string]int64{"delivered": 1, "paid": 1, "pending": 1, "cancelled": 1}, got)
	})

	t.Run("RevenueAmounts lists revenue orders", func(t *testing.T) {
		rows, err := reader.RevenueAmounts(ctx, window)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(30000), rows[0].Amount)
		assert.Equal(t, int64(50000), rows[1].Amount)
	})

	t.Run("OrderExists", func(t *testing.T) {
		exists, err := reader.OrderExists(ctx, paid.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = reader.OrderExists(ctx, 424242)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("FindUnrecorded skips orders with an income row", func(t *testing.T) {
		seedTx(t, db, finance.TransactionTypeIncome, 30000, nil, &paid.ID, baseTime)
		// a courier fee booked against the order leaves it unrecorded
		seedTx(t, db, finance.TransactionTypeExpense, 8000, nil, &delivered.ID, baseTime)

		rows, err := reader.FindUnrecorded(ctx, 10)
		require.NoError(t, err)
		ids := make([]int64, len(rows))
		for i, r := range rows {
			ids[i] = r.OrderID
		}
		assert.Contains(t, ids, delivered.ID)
		assert.Contains(t, ids, cancelled.ID)
		assert.NotContains(t, ids, paid.ID)
		assert.Len(t, ids, 3)
		assert.Equal(t, delivered.ID, ids[0])

		limited, err := reader.FindUnrecorded(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}

func TestGormLedgerResetter_Reset(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	product := seedProduct(t, db, "madu", 25000, int64Ptr(4), true)
	order := seedOrder(t, db, trade.OrderStatusPaid, trade.PaymentStatusCompleted, 25000, 1, baseTime)
	seedTx(t, db, finance.TransactionTypeIncome, 25000, nil, &order.ID, baseTime)
	require.NoError(t, db.DB.Create(&models.DailyReportModel{ReportDate: "2025-03-10", ClosedAt: baseTime, CreatedAt: baseTime}).Error)

	require.NoError(t, NewGormLedgerResetter(db.DB).Reset(ctx))

	for _, model := range []any{&models.DailyReportModel{}, &models.CashTransactionModel{}, &models.OrderItemModel{}, &models.OrderModel{}} {
		var count int64
		require.NoError(t, db.DB.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	kept, err := NewGormProductRepository(db.DB).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), *kept.Stock)
	assert.Equal(t, int64(25000), kept.Price)
}
