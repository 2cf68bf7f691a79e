package finance

import (
	"sort"
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
)

// DayLayout is the calendar-day key format used across the ledger
const DayLayout = "2006-01-02"

// DefaultDailyReportDays is the trailing window of the dynamic daily view
const DefaultDailyReportDays = 30

// DayKey returns the calendar day of t in loc
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// DayBounds returns [start, end) of the calendar day holding t in loc
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// ParseDay parses a YYYY-MM-DD day key in loc
func ParseDay(raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, raw, loc)
	if err != nil {
		return time.Time{}, shared.NewDomainError(shared.CodeInvalidInput, "Date must be formatted as YYYY-MM-DD")
	}
	return t, nil
}

// DaySummary is one calendar day of activity
type DaySummary struct {
	Date         string
	TotalIncome  int64
	TotalExpense int64
	NetProfit    int64
	OrderCount   int64
}

// DailyReport is a frozen day summary written by the close-day action
type DailyReport struct {
	ID           int64
	Date         string
	TotalIncome  int64
	TotalExpense int64
	NetProfit    int64
	OrderCount   int64
	Notes        string
	ClosedBy     *string
	ClosedAt     time.Time
	CreatedAt    time.Time
}

// NewDailyReport freezes a day summary
func NewDailyReport(summary DaySummary, notes string, closedBy *string, now time.Time) *DailyReport {
	return &DailyReport{
		Date:         summary.Date,
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		NetProfit:    summary.TotalIncome - summary.TotalExpense,
		OrderCount:   summary.OrderCount,
		Notes:        notes,
		ClosedBy:     closedBy,
		ClosedAt:     now,
		CreatedAt:    now,
	}
}

// DatedAmount is a single amount at a point in time, the raw input of day bucketing
type DatedAmount struct {
	At     time.Time
	Amount int64
}

// SummarizeDays buckets completed-order revenue, cash income and cash
// expense by calendar day. Days without any activity are omitted; the
// result is newest first and truncated to limit when limit > 0.
func SummarizeDays(orders, income, expense []DatedAmount, loc *time.Location, limit int) []DaySummary {
	days := make(map[string]*DaySummary)
	get := func(t time.Time) *DaySummary {
		key := DayKey(t, loc)
		d, ok := days[key]
		if !ok {
			d = &DaySummary{Date: key}
			days[key] = d
		}
		return d
	}

	for _, o := range orders {
		d := get(o.At)
		d.TotalIncome += o.Amount
		d.OrderCount++
	}
	for _, i := range income {
		get(i.At).TotalIncome += i.Amount
	}
	for _, e := range expense {
		get(e.At).TotalExpense += e.Amount
	}

	out := make([]DaySummary, 0, len(days))
	for _, d := range days {
		d.NetProfit = d.TotalIncome - d.TotalExpense
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SummarizeDay folds one day's activity into a single summary, including empty days
func SummarizeDay(day string, orders, income, expense []DatedAmount) DaySummary {
	s := DaySummary{Date: day}
	for _, o := range orders {
		s.TotalIncome += o.Amount
		s.OrderCount++
	}
	for _, i := range income {
		s.TotalIncome += i.Amount
	}
	for _, e := range expense {
		s.TotalExpense += e.Amount
	}
	s.NetProfit = s.TotalIncome - s.TotalExpense
	return s
}
