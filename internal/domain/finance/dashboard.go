package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StatusBucket groups order statuses for the dashboard
type StatusBucket string

const (
	BucketCompleted StatusBucket = "completed"
	BucketPending   StatusBucket = "pending"
	BucketCancelled StatusBucket = "cancelled"
)

// BucketForStatus maps a stored order status onto a dashboard bucket.
// refunded is not an order state today but rows written by older versions
// may still carry it.
func BucketForStatus(status string) (StatusBucket, bool) {
	switch status {
	case "delivered", "shipped", "paid":
		return BucketCompleted, true
	case "pending", "processing":
		return BucketPending, true
	case "cancelled", "refunded":
		return BucketCancelled, true
	}
	return "", false
}

// StatusCount is the number of orders in one stored status
type StatusCount struct {
	Status string
	Count  int64
}

// OrderCounts holds the bucketed order counts
type OrderCounts struct {
	Completed int64
	Pending   int64
	Cancelled int64
}

// CountByBucket folds per-status counts into buckets
func CountByBucket(rows []StatusCount) OrderCounts {
	var c OrderCounts
	for _, r := range rows {
		bucket, ok := BucketForStatus(r.Status)
		if !ok {
			continue
		}
		switch bucket {
		case BucketCompleted:
			c.Completed += r.Count
		case BucketPending:
			c.Pending += r.Count
		case BucketCancelled:
			c.Cancelled += r.Count
		}
	}
	return c
}

// ChartPoint is one day of the revenue/expense chart
type ChartPoint struct {
	Date    string
	Label   string
	Revenue int64
	Expense int64
}

// BuildChart returns one point per calendar day from start to now inclusive,
// zero-filled, oldest first. Revenue and expense rows are bucketed in loc.
func BuildChart(start, now time.Time, revenue, expense []DatedAmount, loc *time.Location) []ChartPoint {
	byDay := make(map[string]*ChartPoint)
	var points []*ChartPoint

	day, _ := DayBounds(start, loc)
	last := DayKey(now, loc)
	for {
		key := day.Format(DayLayout)
		p := &ChartPoint{Date: key, Label: day.Format("Jan 2")}
		byDay[key] = p
		points = append(points, p)
		if key >= last {
			break
		}
		day = day.AddDate(0, 0, 1)
	}

	for _, r := range revenue {
		if p, ok := byDay[DayKey(r.At, loc)]; ok {
			p.Revenue += r.Amount
		}
	}
	for _, e := range expense {
		if p, ok := byDay[DayKey(e.At, loc)]; ok {
			p.Expense += e.Amount
		}
	}

	out := make([]ChartPoint, len(points))
	for i, p := range points {
		out[i] = *p
	}
	return out
}

// CategoryAmount is the expense total of one category; Name is empty for
// expenses without a category.
type CategoryAmount struct {
	Name   string
	Amount int64
}

// BuildExpenseBreakdown labels uncategorized expenses, merges duplicates and
// drops non-positive slices. Largest first.
func BuildExpenseBreakdown(rows []CategoryAmount) []CategoryAmount {
	totals := make(map[string]int64)
	for _, r := range rows {
		name := r.Name
		if name == "" {
			name = UncategorizedLabel
		}
		totals[name] += r.Amount
	}

	out := make([]CategoryAmount, 0, len(totals))
	for name, amount := range totals {
		if amount <= 0 {
			continue
		}
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AverageOrderValue is revenue / count rounded to the nearest integer, 0 without orders
func AverageOrderValue(revenue, count int64) int64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromInt(revenue).
		Div(decimal.NewFromInt(count)).
		Round(0).
		IntPart()
}

// RoundRating rounds an average rating to two decimals
func RoundRating(avg float64) float64 {
	r, _ := decimal.NewFromFloat(avg).Round(2).Float64()
	return r
}

// DashboardStats is the aggregate view over one period
type DashboardStats struct {
	Period           Period
	Revenue          int64
	OrderCount       int64
	Income           int64
	Expense          int64
	NetProfit        int64
	AvgOrderValue    int64
	TotalItems       int64
	AvgRating        float64
	ReviewCount      int64
	Orders           OrderCounts
	Chart            []ChartPoint
	ExpenseBreakdown []CategoryAmount
}
