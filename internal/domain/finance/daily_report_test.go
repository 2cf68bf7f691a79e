package finance

import (
	"testing"
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	start, end := DayBounds(time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC), wib)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, wib), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
	assert.Equal(t, "2025-03-10", DayKey(start, wib))
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-03-10", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDay("10/03/2025", time.UTC)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestSummarizeDays(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2025, 3, d, h, 0, 0, 0, time.UTC) }

	orders := []DatedAmount{{day(8, 10), 50000}, {day(8, 15), 25000}, {day(10, 9), 30000}}
	income := []DatedAmount{{day(9, 11), 12000}, {day(10, 12), 8000}}
	expense := []DatedAmount{{day(8, 18), 20000}, {day(9, 8), 3000}}

	got := SummarizeDays(orders, income, expense, time.UTC, 0)

	require.Len(t, got, 3)
	assert.Equal(t, DaySummary{Date: "2025-03-10", TotalIncome: 38000, NetProfit: 38000, OrderCount: 1}, got[0])
	assert.Equal(t, DaySummary{Date: "2025-03-09", TotalIncome: 12000, TotalExpense: 3000, NetProfit: 9000}, got[1])
	assert.Equal(t, DaySummary{Date: "2025-03-08", TotalIncome: 75000, TotalExpense: 20000, NetProfit: 55000, OrderCount: 2}, got[2])

	t.Run("limit keeps newest days", func(t *testing.T) {
		got := SummarizeDays(orders, income, expense, time.UTC, 2)
		require.Len(t, got, 2)
		assert.Equal(t, "2025-03-10", got[0].Date)
	})
}

func TestSummarizeDay(t *testing.T) {
	s := SummarizeDay("2025-03-10", nil, nil, nil)
	assert.Equal(t, DaySummary{Date: "2025-03-10"}, s)

	s = SummarizeDay("2025-03-10",
		[]DatedAmount{{Amount: 50000}},
		[]DatedAmount{{Amount: 10000}},
		[]DatedAmount{{Amount: 70000}})
	assert.Equal(t, int64(60000), s.TotalIncome)
	assert.Equal(t, int64(-10000), s.NetProfit)
	assert.Equal(t, int64(1), s.OrderCount)
}

func TestNewDailyReport(t *testing.T) {
	closer := "owner-1"
	r := NewDailyReport(DaySummary{Date: "2025-03-10", TotalIncome: 100, TotalExpense: 40, OrderCount: 2}, "ok", &closer, testNow)

	assert.Equal(t, "2025-03-10", r.Date)
	assert.Equal(t, int64(60), r.NetProfit)
	assert.Equal(t, testNow, r.ClosedAt)
	assert.Equal(t, &closer, r.ClosedBy)
}
