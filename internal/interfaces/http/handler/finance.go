package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/hoshop/backend/internal/application/finance"
	"github.com/hoshop/backend/internal/interfaces/http/middleware"
)

// FinanceHandler serves the back-office ledger endpoints
type FinanceHandler struct {
	BaseHandler
	financeService *financeapp.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *financeapp.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// StatsQuery selects the dashboard period
type StatsQuery struct {
	Period string `form:"period"`
}

// DailyReportsQuery bounds the dynamic daily view
type DailyReportsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// Stats handles GET /finance/stats
func (h *FinanceHandler) Stats(c *gin.Context) {
	var query StatsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	stats, err := h.financeService.DashboardStats(c.Request.Context(), query.Period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Transactions handles GET /finance/transactions
func (h *FinanceHandler) Transactions(c *gin.Context) {
	var query financeapp.TransactionsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	entries, err := h.financeService.Transactions(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// CreateTransaction handles POST /finance/transactions
func (h *FinanceHandler) CreateTransaction(c *gin.Context) {
	var req financeapp.CreateTransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.financeService.CreateTransaction(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// DailyReports handles GET /finance/daily-reports
func (h *FinanceHandler) DailyReports(c *gin.Context) {
	var query DailyReportsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	days, err := h.financeService.DailyReports(c.Request.Context(), query.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, days)
}

// CloseDailyReport handles POST /finance/daily-reports/close
func (h *FinanceHandler) CloseDailyReport(c *gin.Context) {
	var req financeapp.CloseDailyReportRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}

	report, err := h.financeService.CloseDailyReport(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// ExpenseCategories handles GET /finance/expense-categories
func (h *FinanceHandler) ExpenseCategories(c *gin.Context) {
	categories, err := h.financeService.ExpenseCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// CreateExpenseCategory handles POST /finance/expense-categories
func (h *FinanceHandler) CreateExpenseCategory(c *gin.Context) {
	var req financeapp.CreateExpenseCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.financeService.CreateExpenseCategory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Inventory handles GET /finance/inventory
func (h *FinanceHandler) Inventory(c *gin.Context) {
	stats, err := h.financeService.Inventory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Reset handles DELETE /finance/reset
func (h *FinanceHandler) Reset(c *gin.Context) {
	if err := h.financeService.Reset(c.Request.Context(), middleware.GetActor(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Orders and ledger data have been reset"})
}
