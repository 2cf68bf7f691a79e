package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedQuery_Normalize(t *testing.T) {
	q := FeedQuery{}.Normalize()
	assert.Equal(t, DefaultFeedLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)

	q = FeedQuery{Limit: 1000, Offset: -3}.Normalize()
	assert.Equal(t, MaxFeedLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, MaxFeedLimit, q.Window())
}

func TestFeedQuery_IncludesDerived(t *testing.T) {
	income, expense := TransactionTypeIncome, TransactionTypeExpense
	website, store := SourceWebsite, SourceStore

	assert.True(t, FeedQuery{}.IncludesDerived())
	assert.True(t, FeedQuery{Type: &income, Source: &website}.IncludesDerived())
	assert.False(t, FeedQuery{Type: &expense}.IncludesDerived())
	assert.False(t, FeedQuery{Source: &store}.IncludesDerived())
}

func TestMergeFeed(t *testing.T) {
	at := func(min int) time.Time { return testNow.Add(time.Duration(min) * time.Minute) }

	txs := []CashTransaction{
		{ID: 3, Type: TransactionTypeExpense, Amount: 5000, Source: SourceStore, CreatedAt: at(30)},
		{ID: 2, Type: TransactionTypeIncome, Amount: 80000, Source: SourceWebsite, OrderID: int64Ptr(7), CreatedAt: at(10)},
		{ID: 1, Type: TransactionTypeIncome, Amount: 12000, Source: SourceStore, CreatedAt: at(0)},
	}
	orders := []UnrecordedOrder{
		{OrderID: 9, Total: 45000, PaymentMethod: "qris", CreatedAt: at(20)},
		// recorded meanwhile, must not show twice
		{OrderID: 7, Total: 80000, PaymentMethod: "cash", CreatedAt: at(5)},
	}

	t.Run("merges newest first", func(t *testing.T) {
		got := MergeFeed(txs, orders, FeedQuery{})
		require.Len(t, got, 4)

		assert.Equal(t, int64(3), got[0].ID)
		assert.True(t, got[1].IsOrder)
		assert.Equal(t, int64(0), got[1].ID)
		assert.Equal(t, int64(9), got[1].RealID)
		assert.Equal(t, "Order #9", got[1].Description)
		assert.Equal(t, SourceWebsite, got[1].Source)
		assert.Equal(t, PaymentQRIS, got[1].PaymentMethod)
		assert.Equal(t, TransactionTypeIncome, got[1].Type)
		assert.Equal(t, int64(2), got[2].ID)
		assert.Equal(t, int64(1), got[3].ID)
	})

	t.Run("honours offset and limit", func(t *testing.T) {
		got := MergeFeed(txs, orders, FeedQuery{Limit: 2, Offset: 1})
		require.Len(t, got, 2)
		assert.Equal(t, int64(9), got[0].RealID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("offset past the end", func(t *testing.T) {
		got := MergeFeed(txs, orders, FeedQuery{Offset: 10})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("expense filter drops derived entries", func(t *testing.T) {
		expense := TransactionTypeExpense
		got := MergeFeed(txs[:1], orders, FeedQuery{Type: &expense})
		require.Len(t, got, 1)
		assert.False(t, got[0].IsOrder)
	})

	t.Run("expense against an order keeps the derived income", func(t *testing.T) {
		courier := []CashTransaction{
			{ID: 4, Type: TransactionTypeExpense, Amount: 8000, Source: SourceStore, OrderID: int64Ptr(9), CreatedAt: at(40)},
		}
		got := MergeFeed(courier, orders[:1], FeedQuery{})
		require.Len(t, got, 2)
		assert.Equal(t, int64(4), got[0].ID)
		assert.True(t, got[1].IsOrder)
		assert.Equal(t, int64(9), got[1].RealID)
		assert.Equal(t, int64(45000), got[1].Amount)
	})

	t.Run("derived entries keep the order's payment method", func(t *testing.T) {
		bank := []UnrecordedOrder{{OrderID: 11, Total: 30000, PaymentMethod: "Bank BCA", CreatedAt: at(50)}}
		got := MergeFeed(nil, bank, FeedQuery{})
		require.Len(t, got, 1)
		assert.Equal(t, PaymentMethod("Bank BCA"), got[0].PaymentMethod)
	})
}
