package finance

import (
	"context"
)

// CashTransactionRepository defines the interface for ledger persistence
type CashTransactionRepository interface {
	// Create appends a transaction and assigns its ID
	Create(ctx context.Context, tx *CashTransaction) error

	// IncomeExistsForOrder reports whether an income transaction references the order
	IncomeExistsForOrder(ctx context.Context, orderID int64) (bool, error)

	// FindRecent returns up to limit transactions matching the filters, newest first
	FindRecent(ctx context.Context, txType *TransactionType, source *TransactionSource, limit int) ([]CashTransaction, error)

	// SumByType totals amounts of one type created within r
	SumByType(ctx context.Context, txType TransactionType, r TimeRange) (int64, error)

	// AmountsByType lists (created_at, amount) of one type created within r
	AmountsByType(ctx context.Context, txType TransactionType, r TimeRange) ([]DatedAmount, error)

	// ExpenseByCategory totals expenses created within r, grouped by category
	// name; uncategorized expenses come back with an empty name.
	ExpenseByCategory(ctx context.Context, r TimeRange) ([]CategoryAmount, error)
}

// OrderLedgerReader reads the order side of the ledger: completed orders
// that are not cancelled, which are what the shop counts as revenue.
type OrderLedgerReader interface {
	// Revenue totals revenue and counts revenue orders created within r
	Revenue(ctx context.Context, r TimeRange) (revenue int64, count int64, err error)

	// ItemsSold sums item quantities of revenue orders created within r
	ItemsSold(ctx context.Context, r TimeRange) (int64, error)

	// StatusCounts counts orders created within r per stored status
	StatusCounts(ctx context.Context, r TimeRange) ([]StatusCount, error)

	// RevenueAmounts lists (created_at, total) of revenue orders created within r
	RevenueAmounts(ctx context.Context, r TimeRange) ([]DatedAmount, error)

	// FindUnrecorded returns up to limit completed orders with no income
	// transaction referencing them, newest first
	FindUnrecorded(ctx context.Context, limit int) ([]UnrecordedOrder, error)

	// OrderExists reports whether an order with the id exists
	OrderExists(ctx context.Context, orderID int64) (bool, error)
}

// DailyReportRepository defines the interface for closed day persistence
type DailyReportRepository interface {
	// Upsert inserts the report or replaces the figures of the one with the same date
	Upsert(ctx context.Context, report *DailyReport) error

	// FindByDate finds the closed report of a day
	FindByDate(ctx context.Context, date string) (*DailyReport, error)
}

// ExpenseCategoryRepository defines the interface for expense category persistence
type ExpenseCategoryRepository interface {
	// FindAll lists categories ordered by name
	FindAll(ctx context.Context) ([]ExpenseCategory, error)

	// FindByID finds a category by ID
	FindByID(ctx context.Context, id int64) (*ExpenseCategory, error)

	// ExistsByNameOrSlug checks for a clash on either unique column
	ExistsByNameOrSlug(ctx context.Context, name, slug string) (bool, error)

	// Create stores a category and assigns its ID
	Create(ctx context.Context, category *ExpenseCategory) error
}

// LedgerResetter wipes transactional data for a demo reset. Catalog and
// expense categories survive.
type LedgerResetter interface {
	// Reset deletes daily reports, cash transactions, order items and orders in one transaction
	Reset(ctx context.Context) error
}
