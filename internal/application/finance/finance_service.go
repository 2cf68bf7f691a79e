package finance

import (
	"context"
	"errors"
	"time"

	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/hoshop/backend/internal/domain/finance"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// MaxDailyReportDays bounds the dynamic daily view
const MaxDailyReportDays = 366

// FinanceService aggregates the ledger for the back office. Every read is
// recomputed from the orders and cash transactions tables.
type FinanceService struct {
	ledgerRepo   finance.CashTransactionRepository
	orderReader  finance.OrderLedgerReader
	reportRepo   finance.DailyReportRepository
	categoryRepo finance.ExpenseCategoryRepository
	productRepo  catalog.ProductRepository
	reviewRepo   catalog.ReviewRepository
	resetter     finance.LedgerResetter
	clock        shared.Clock
	location     *time.Location
	allowReset   bool
	logger       *zap.Logger
	metrics      *telemetry.ShopMetrics
}

// FinanceServiceConfig holds the collaborators of FinanceService
type FinanceServiceConfig struct {
	LedgerRepo   finance.CashTransactionRepository
	OrderReader  finance.OrderLedgerReader
	ReportRepo   finance.DailyReportRepository
	CategoryRepo finance.ExpenseCategoryRepository
	ProductRepo  catalog.ProductRepository
	ReviewRepo   catalog.ReviewRepository
	Resetter     finance.LedgerResetter
	Clock        shared.Clock
	// Location decides calendar-day boundaries; UTC when nil
	Location *time.Location
	// AllowReset enables the destructive demo reset
	AllowReset bool
	Logger     *zap.Logger
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(cfg FinanceServiceConfig) *FinanceService {
	s := &FinanceService{
		ledgerRepo:   cfg.LedgerRepo,
		orderReader:  cfg.OrderReader,
		reportRepo:   cfg.ReportRepo,
		categoryRepo: cfg.CategoryRepo,
		productRepo:  cfg.ProductRepo,
		reviewRepo:   cfg.ReviewRepo,
		resetter:     cfg.Resetter,
		clock:        cfg.Clock,
		location:     cfg.Location,
		allowReset:   cfg.AllowReset,
		logger:       cfg.Logger,
	}
	if s.clock == nil {
		s.clock = shared.SystemClock{}
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// SetMetrics sets the shop metrics collector
func (s *FinanceService) SetMetrics(m *telemetry.ShopMetrics) {
	s.metrics = m
}

// DashboardStats computes revenue, cash flow, order buckets, the daily chart
// and the expense breakdown over the requested period.
func (s *FinanceService) DashboardStats(ctx context.Context, rawPeriod string) (*DashboardStatsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "DashboardStats", telemetry.SpanAttrPeriod, rawPeriod)
	defer span.End()

	period, err := finance.ParsePeriod(rawPeriod)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	start := period.Start(now)
	window := finance.Since(start)

	revenue, orderCount, err := s.orderReader.Revenue(ctx, window)
	if err != nil {
		return nil, err
	}
	income, err := s.ledgerRepo.SumByType(ctx, finance.TransactionTypeIncome, window)
	if err != nil {
		return nil, err
	}
	expense, err := s.ledgerRepo.SumByType(ctx, finance.TransactionTypeExpense, window)
	if err != nil {
		return nil, err
	}
	statusCounts, err := s.orderReader.StatusCounts(ctx, window)
	if err != nil {
		return nil, err
	}
	itemsSold, err := s.orderReader.ItemsSold(ctx, window)
	if err != nil {
		return nil, err
	}
	revenueRows, err := s.orderReader.RevenueAmounts(ctx, window)
	if err != nil {
		return nil, err
	}
	expenseRows, err := s.ledgerRepo.AmountsByType(ctx, finance.TransactionTypeExpense, window)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.ledgerRepo.ExpenseByCategory(ctx, window)
	if err != nil {
		return nil, err
	}
	ratings, err := s.reviewRepo.Summary(ctx)
	if err != nil {
		return nil, err
	}

	stats := finance.DashboardStats{
		Period:           period,
		Revenue:          revenue,
		OrderCount:       orderCount,
		Income:           income,
		Expense:          expense,
		NetProfit:        income - expense,
		AvgOrderValue:    finance.AverageOrderValue(revenue, orderCount),
		TotalItems:       itemsSold,
		AvgRating:        finance.RoundRating(ratings.Average),
		ReviewCount:      ratings.Count,
		Orders:           finance.CountByBucket(statusCounts),
		Chart:            finance.BuildChart(start, now, revenueRows, expenseRows, s.location),
		ExpenseBreakdown: finance.BuildExpenseBreakdown(byCategory),
	}
	response := ToDashboardStatsResponse(stats)
	return &response, nil
}

// Transactions returns a window of the merged feed: stored cash transactions
// plus completed orders whose income has not been booked yet.
func (s *FinanceService) Transactions(ctx context.Context, query TransactionsQuery) ([]LedgerEntryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "Transactions")
	defer span.End()

	q := finance.FeedQuery{Limit: query.Limit, Offset: query.Offset}
	if query.Type != "" {
		t := finance.TransactionType(query.Type)
		if !t.IsValid() {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Transaction type must be income or expense")
		}
		q.Type = &t
	}
	if query.Source != "" {
		src := finance.TransactionSource(query.Source)
		if !src.IsValid() {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Unknown transaction source")
		}
		q.Source = &src
	}
	q = q.Normalize()

	txs, err := s.ledgerRepo.FindRecent(ctx, q.Type, q.Source, q.Window())
	if err != nil {
		return nil, err
	}
	var unrecorded []finance.UnrecordedOrder
	if q.IncludesDerived() {
		unrecorded, err = s.orderReader.FindUnrecorded(ctx, q.Window())
		if err != nil {
			return nil, err
		}
	}

	return ToLedgerEntryResponses(finance.MergeFeed(txs, unrecorded, q)), nil
}

// CreateTransaction books a manual cash movement
func (s *FinanceService) CreateTransaction(ctx context.Context, actor shared.Actor, req CreateTransactionRequest) (*LedgerEntryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "CreateTransaction")
	defer span.End()

	if req.ExpenseCategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ExpenseCategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError(shared.CodeInvalidInput, "Expense category not found")
			}
			return nil, err
		}
	}
	if req.OrderID != nil {
		exists, err := s.orderReader.OrderExists(ctx, *req.OrderID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order not found")
		}
	}

	tx, err := finance.NewCashTransaction(finance.CashTransactionInput{
		Type:              finance.TransactionType(req.Type),
		Amount:            req.Amount,
		Description:       req.Description,
		PaymentMethod:     req.PaymentMethod,
		Source:            finance.TransactionSource(req.Source),
		OrderID:           req.OrderID,
		ExpenseCategoryID: req.ExpenseCategoryID,
		CreatedBy:         actor.UserIDPtr(),
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordLedgerEntry(ctx, string(tx.Type), string(tx.Source), tx.Amount)
	}
	s.logger.Info("Cash transaction recorded",
		zap.Int64("transaction_id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.Int64("amount", tx.Amount),
		zap.String("source", string(tx.Source)),
	)

	response := ToLedgerEntryResponses([]finance.LedgerEntry{finance.EntryFromTransaction(*tx)})[0]
	return &response, nil
}

// DailyReports returns the live per-day view of the trailing days, newest first
func (s *FinanceService) DailyReports(ctx context.Context, days int) ([]DaySummaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "DailyReports")
	defer span.End()

	if days <= 0 {
		days = finance.DefaultDailyReportDays
	}
	if days > MaxDailyReportDays {
		days = MaxDailyReportDays
	}

	today, _ := finance.DayBounds(s.clock.Now(), s.location)
	window := finance.Since(today.AddDate(0, 0, -(days - 1)))

	orders, income, expense, err := s.dayActivity(ctx, window)
	if err != nil {
		return nil, err
	}
	return ToDaySummaryResponses(finance.SummarizeDays(orders, income, expense, s.location, days)), nil
}

// CloseDailyReport freezes one calendar day. Closing a day again replaces
// the earlier figures.
func (s *FinanceService) CloseDailyReport(ctx context.Context, actor shared.Actor, req CloseDailyReportRequest) (*DailyReportResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "finance", "CloseDailyReport")
	defer span.End()

	now := s.clock.Now()
	day := now
	if req.Date != "" {
		parsed, err := finance.ParseDay(req.Date, s.location)
		if err != nil {
			return nil, err
		}
		day = parsed
	}
	start, end := finance.DayBounds(day, s.location)

	orders, income, expense, err := s.dayActivity(ctx, finance.Between(start, end))
	if err != nil {
		return nil, err
	}
	summary := finance.SummarizeDay(finance.DayKey(start, s.location), orders, income, expense)
	report := finance.NewDailyReport(summary, req.Notes, actor.UserIDPtr(), now)

	if err := s.reportRepo.Upsert(ctx, report); err != nil {
		return nil, err
	}
	s.logger.Info("Daily report closed",
		zap.String("date", report.Date),
		zap.Int64("net_profit", report.NetProfit),
		zap.String("closed_by", actor.UserID),
	)

	response := ToDailyReportResponse(report)
	return &response, nil
}

// dayActivity loads the three inputs of the per-day aggregation
func (s *FinanceService) dayActivity(ctx context.Context, r finance.TimeRange) (orders, income, expense []finance.DatedAmount, err error) {
	if orders, err = s.orderReader.RevenueAmounts(ctx, r); err != nil {
		return nil, nil, nil, err
	}
	if income, err = s.ledgerRepo.AmountsByType(ctx, finance.TransactionTypeIncome, r); err != nil {
		return nil, nil, nil, err
	}
	if expense, err = s.ledgerRepo.AmountsByType(ctx, finance.TransactionTypeExpense, r); err != nil {
		return nil, nil, nil, err
	}
	return orders, income, expense, nil
}

// ExpenseCategories lists all expense categories
func (s *FinanceService) ExpenseCategories(ctx context.Context) ([]ExpenseCategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ExpenseCategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToExpenseCategoryResponse(&categories[i])
	}
	return out, nil
}

// CreateExpenseCategory creates an expense category with a unique name and slug
func (s *FinanceService) CreateExpenseCategory(ctx context.Context, req CreateExpenseCategoryRequest) (*ExpenseCategoryResponse, error) {
	category, err := finance.NewExpenseCategory(req.Name, req.Slug, req.Description, s.clock.Now())
	if err != nil {
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByNameOrSlug(ctx, category.Name, category.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Expense category with this name or slug already exists")
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	response := ToExpenseCategoryResponse(category)
	return &response, nil
}

// Inventory values the whole catalog at list price
func (s *FinanceService) Inventory(ctx context.Context) (*InventoryStatsResponse, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	response := ToInventoryStatsResponse(finance.SummarizeInventory(products))
	return &response, nil
}

// Reset wipes orders and the ledger for a fresh demo. Products, reviews and
// expense categories are kept.
func (s *FinanceService) Reset(ctx context.Context, actor shared.Actor) error {
	if !s.allowReset {
		return shared.NewDomainError(shared.CodeForbidden, "Reset is disabled in this environment")
	}
	if err := s.resetter.Reset(ctx); err != nil {
		return err
	}
	s.logger.Warn("Transactional data reset",
		zap.String("user_id", actor.UserID),
		zap.String("role", string(actor.Role)),
	)
	return nil
}
