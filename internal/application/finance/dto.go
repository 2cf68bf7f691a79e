package finance

import (
	"time"

	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/hoshop/backend/internal/domain/finance"
)

// DashboardStatsResponse is the dashboard aggregate of one period
type DashboardStatsResponse struct {
	Period        string               `json:"period"`
	Revenue       int64                `json:"revenue"`
	OrderCount    int64                `json:"order_count"`
	Income        int64                `json:"income"`
	Expense       int64                `json:"expense"`
	NetProfit     int64                `json:"net_profit"`
	AvgOrderValue int64                `json:"avg_order_value"`
	TotalItems    int64                `json:"total_items"`
	AvgRating     float64              `json:"avg_rating"`
	ReviewCount   int64                `json:"review_count"`
	OrderCounts   OrderCountsResponse  `json:"order_counts"`
	ChartData     []ChartPointResponse `json:"chart_data"`
	PieData       []PieSliceResponse   `json:"pie_data"`
}

// OrderCountsResponse holds the three status buckets
type OrderCountsResponse struct {
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
}

// ChartPointResponse is one day of the chart
type ChartPointResponse struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Revenue int64  `json:"revenue"`
	Expense int64  `json:"expense"`
}

// PieSliceResponse is the expense total of one category
type PieSliceResponse struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// TransactionsQuery selects a window of the merged feed
type TransactionsQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=income expense"`
	Source string `form:"source" binding:"omitempty,oneof=store gofood grabfood shopeefood website other"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// LedgerEntryResponse is one row of the merged feed
type LedgerEntryResponse struct {
	ID                int64     `json:"id"`
	RealID            int64     `json:"real_id"`
	IsOrder           bool      `json:"is_order"`
	Type              string    `json:"type"`
	Amount            int64     `json:"amount"`
	Description       string    `json:"description"`
	PaymentMethod     string    `json:"payment_method"`
	Source            string    `json:"source"`
	OrderID           *int64    `json:"order_id"`
	ExpenseCategoryID *int64    `json:"expense_category_id"`
	CreatedBy         *string   `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateTransactionRequest represents a manually entered ledger row
type CreateTransactionRequest struct {
	Type              string `json:"type" binding:"required,oneof=income expense"`
	Amount            int64  `json:"amount" binding:"required,gt=0"`
	Description       string `json:"description" binding:"max=500"`
	PaymentMethod     string `json:"payment_method" binding:"max=50"`
	Source            string `json:"source" binding:"omitempty,oneof=store gofood grabfood shopeefood website other"`
	OrderID           *int64 `json:"order_id" binding:"omitempty,gt=0"`
	ExpenseCategoryID *int64 `json:"expense_category_id" binding:"omitempty,gt=0"`
}

// DaySummaryResponse is one day of the dynamic daily view
type DaySummaryResponse struct {
	Date         string `json:"date"`
	TotalIncome  int64  `json:"total_income"`
	TotalExpense int64  `json:"total_expense"`
	NetProfit    int64  `json:"net_profit"`
	OrderCount   int64  `json:"order_count"`
}

// CloseDailyReportRequest closes one day; an empty date closes today
type CloseDailyReportRequest struct {
	Date  string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Notes string `json:"notes" binding:"max=2000"`
}

// DailyReportResponse is a closed day
type DailyReportResponse struct {
	ID           int64     `json:"id"`
	Date         string    `json:"date"`
	TotalIncome  int64     `json:"total_income"`
	TotalExpense int64     `json:"total_expense"`
	NetProfit    int64     `json:"net_profit"`
	OrderCount   int64     `json:"order_count"`
	Notes        string    `json:"notes"`
	ClosedBy     *string   `json:"closed_by"`
	ClosedAt     time.Time `json:"closed_at"`
}

// CreateExpenseCategoryRequest represents a new expense category
type CreateExpenseCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Slug        string `json:"slug" binding:"max=100"`
	Description string `json:"description" binding:"max=500"`
}

// ExpenseCategoryResponse represents an expense category
type ExpenseCategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// InventoryStatsResponse is the stock valuation snapshot
type InventoryStatsResponse struct {
	TotalProducts int64                   `json:"total_products"`
	LowStock      int64                   `json:"low_stock"`
	OutOfStock    int64                   `json:"out_of_stock"`
	TotalValue    int64                   `json:"total_value"`
	Products      []InventoryItemResponse `json:"products"`
}

// InventoryItemResponse is one product of the inventory snapshot
type InventoryItemResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Stock    *int64 `json:"stock"`
	Price    int64  `json:"price"`
	IsActive bool   `json:"is_active"`
}

// ToDashboardStatsResponse converts the domain aggregate
func ToDashboardStatsResponse(s finance.DashboardStats) DashboardStatsResponse {
	chart := make([]ChartPointResponse, len(s.Chart))
	for i, p := range s.Chart {
		chart[i] = ChartPointResponse{Date: p.Date, Label: p.Label, Revenue: p.Revenue, Expense: p.Expense}
	}
	pie := make([]PieSliceResponse, len(s.ExpenseBreakdown))
	for i, c := range s.ExpenseBreakdown {
		pie[i] = PieSliceResponse{Name: c.Name, Value: c.Amount}
	}
	return DashboardStatsResponse{
		Period:        string(s.Period),
		Revenue:       s.Revenue,
		OrderCount:    s.OrderCount,
		Income:        s.Income,
		Expense:       s.Expense,
		NetProfit:     s.NetProfit,
		AvgOrderValue: s.AvgOrderValue,
		TotalItems:    s.TotalItems,
		AvgRating:     s.AvgRating,
		ReviewCount:   s.ReviewCount,
		OrderCounts: OrderCountsResponse{
			Completed: s.Orders.Completed,
			Pending:   s.Orders.Pending,
			Cancelled: s.Orders.Cancelled,
		},
		ChartData: chart,
		PieData:   pie,
	}
}

// ToLedgerEntryResponses converts feed entries
func ToLedgerEntryResponses(entries []finance.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntryResponse{
			ID:                e.ID,
			RealID:            e.RealID,
			IsOrder:           e.IsOrder,
			Type:              string(e.Type),
			Amount:            e.Amount,
			Description:       e.Description,
			PaymentMethod:     string(e.PaymentMethod),
			Source:            string(e.Source),
			OrderID:           e.OrderID,
			ExpenseCategoryID: e.ExpenseCategoryID,
			CreatedBy:         e.CreatedBy,
			CreatedAt:         e.CreatedAt,
		}
	}
	return out
}

// ToDaySummaryResponses converts the dynamic daily view
func ToDaySummaryResponses(days []finance.DaySummary) []DaySummaryResponse {
	out := make([]DaySummaryResponse, len(days))
	for i, d := range days {
		out[i] = DaySummaryResponse{
			Date:         d.Date,
			TotalIncome:  d.TotalIncome,
			TotalExpense: d.TotalExpense,
			NetProfit:    d.NetProfit,
			OrderCount:   d.OrderCount,
		}
	}
	return out
}

// ToDailyReportResponse converts a closed day
func ToDailyReportResponse(r *finance.DailyReport) DailyReportResponse {
	return DailyReportResponse{
		ID:           r.ID,
		Date:         r.Date,
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		NetProfit:    r.NetProfit,
		OrderCount:   r.OrderCount,
		Notes:        r.Notes,
		ClosedBy:     r.ClosedBy,
		ClosedAt:     r.ClosedAt,
	}
}

// ToExpenseCategoryResponse converts an expense category
func ToExpenseCategoryResponse(c *finance.ExpenseCategory) ExpenseCategoryResponse {
	return ExpenseCategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// ToInventoryStatsResponse converts the inventory snapshot
func ToInventoryStatsResponse(s finance.InventoryStats) InventoryStatsResponse {
	products := make([]InventoryItemResponse, len(s.Products))
	for i := range s.Products {
		products[i] = toInventoryItem(&s.Products[i])
	}
	return InventoryStatsResponse{
		TotalProducts: s.TotalProducts,
		LowStock:      s.LowStock,
		OutOfStock:    s.OutOfStock,
		TotalValue:    s.TotalValue,
		Products:      products,
	}
}

func toInventoryItem(p *catalog.Product) InventoryItemResponse {
	return InventoryItemResponse{
		ID:       p.ID,
		Name:     p.Name,
		Slug:     p.Slug,
		Stock:    p.Stock,
		Price:    p.Price,
		IsActive: p.IsActive,
	}
}
