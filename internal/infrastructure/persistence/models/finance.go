package models

import (
	"time"

	"github.com/hoshop/backend/internal/domain/finance"
)

// CashTransactionModel is the persistence model of an append-only ledger row
type CashTransactionModel struct {
	ID                int64                     `gorm:"primaryKey;autoIncrement"`
	Type              finance.TransactionType   `gorm:"type:varchar(10);not null;index:idx_cash_tx_type_created,priority:1"`
	Amount            int64                     `gorm:"not null"`
	Description       string                    `gorm:"type:text"`
	PaymentMethod     finance.PaymentMethod     `gorm:"type:varchar(20);not null"`
	Source            finance.TransactionSource `gorm:"type:varchar(20);not null"`
	OrderID           *int64                    `gorm:"index"`
	ExpenseCategoryID *int64                    `gorm:"index"`
	CreatedBy         *string                   `gorm:"type:varchar(64)"`
	CreatedAt         time.Time                 `gorm:"not null;autoCreateTime:false;index:idx_cash_tx_type_created,priority:2"`
}

// TableName returns the table name for GORM
func (CashTransactionModel) TableName() string {
	return "cash_transactions"
}

// ToDomain converts the persistence model to a domain CashTransaction
func (m *CashTransactionModel) ToDomain() *finance.CashTransaction {
	return &finance.CashTransaction{
		ID:                m.ID,
		Type:              m.Type,
		Amount:            m.Amount,
		Description:       m.Description,
		PaymentMethod:     m.PaymentMethod,
		Source:            m.Source,
		OrderID:           m.OrderID,
		ExpenseCategoryID: m.ExpenseCategoryID,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt,
	}
}

// CashTransactionModelFromDomain creates a new persistence model from a domain CashTransaction
func CashTransactionModelFromDomain(tx *finance.CashTransaction) *CashTransactionModel {
	return &CashTransactionModel{
		ID:                tx.ID,
		Type:              tx.Type,
		Amount:            tx.Amount,
		Description:       tx.Description,
		PaymentMethod:     tx.PaymentMethod,
		Source:            tx.Source,
		OrderID:           tx.OrderID,
		ExpenseCategoryID: tx.ExpenseCategoryID,
		CreatedBy:         tx.CreatedBy,
		CreatedAt:         UTC(tx.CreatedAt),
	}
}

// DailyReportModel is the persistence model of a closed day.
// ReportDate holds the YYYY-MM-DD key and is unique.
type DailyReportModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	ReportDate   string    `gorm:"type:varchar(10);not null;uniqueIndex"`
	TotalIncome  int64     `gorm:"not null"`
	TotalExpense int64     `gorm:"not null"`
	NetProfit    int64     `gorm:"not null"`
	OrderCount   int64     `gorm:"not null"`
	Notes        string    `gorm:"type:text"`
	ClosedBy     *string   `gorm:"type:varchar(64)"`
	ClosedAt     time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName returns the table name for GORM
func (DailyReportModel) TableName() string {
	return "daily_reports"
}

// ToDomain converts the persistence model to a domain DailyReport
func (m *DailyReportModel) ToDomain() *finance.DailyReport {
	return &finance.DailyReport{
		ID:           m.ID,
		Date:         m.ReportDate,
		TotalIncome:  m.TotalIncome,
		TotalExpense: m.TotalExpense,
		NetProfit:    m.NetProfit,
		OrderCount:   m.OrderCount,
		Notes:        m.Notes,
		ClosedBy:     m.ClosedBy,
		ClosedAt:     m.ClosedAt,
		CreatedAt:    m.CreatedAt,
	}
}

// DailyReportModelFromDomain creates a new persistence model from a domain DailyReport
func DailyReportModelFromDomain(r *finance.DailyReport) *DailyReportModel {
	return &DailyReportModel{
		ID:           r.ID,
		ReportDate:   r.Date,
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		NetProfit:    r.NetProfit,
		OrderCount:   r.OrderCount,
		Notes:        r.Notes,
		ClosedBy:     r.ClosedBy,
		ClosedAt:     UTC(r.ClosedAt),
		CreatedAt:    UTC(r.CreatedAt),
	}
}

// ExpenseCategoryModel is the persistence model of an expense category
type ExpenseCategoryModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug        string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the persistence model to a domain ExpenseCategory
func (m *ExpenseCategoryModel) ToDomain() *finance.ExpenseCategory {
	return &finance.ExpenseCategory{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

// ExpenseCategoryModelFromDomain creates a new persistence model from a domain ExpenseCategory
func ExpenseCategoryModelFromDomain(c *finance.ExpenseCategory) *ExpenseCategoryModel {
	return &ExpenseCategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   UTC(c.CreatedAt),
	}
}

// AllModels lists every model in dependency order, for auto-migration
func AllModels() []any {
	return []any{
		&ProductModel{},
		&ReviewModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ExpenseCategoryModel{},
		&CashTransactionModel{},
		&DailyReportModel{},
	}
}
