package finance

import (
	"fmt"
	"sort"
	"time"
)

// Feed paging defaults
const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 200
)

// LedgerEntry is one row of the merged transaction feed. Derived entries
// stand in for completed orders that have no cash transaction yet; they
// carry ID 0, IsOrder true and the order id as RealID.
type LedgerEntry struct {
	ID                int64
	RealID            int64
	IsOrder           bool
	Type              TransactionType
	Amount            int64
	Description       string
	PaymentMethod     PaymentMethod
	Source            TransactionSource
	OrderID           *int64
	ExpenseCategoryID *int64
	CreatedBy         *string
	CreatedAt         time.Time
}

// UnrecordedOrder is a completed order without a ledger row
type UnrecordedOrder struct {
	OrderID       int64
	Total         int64
	PaymentMethod string
	UserID        *string
	CreatedAt     time.Time
}

// FeedQuery selects a window of the merged feed
type FeedQuery struct {
	Type   *TransactionType
	Source *TransactionSource
	Limit  int
	Offset int
}

// Normalize applies the feed defaults and bounds
func (q FeedQuery) Normalize() FeedQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultFeedLimit
	}
	if q.Limit > MaxFeedLimit {
		q.Limit = MaxFeedLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// Window is how many newest rows each source must supply so the merged
// slice [Offset, Offset+Limit) is exact.
func (q FeedQuery) Window() int {
	return q.Offset + q.Limit
}

// IncludesDerived reports whether derived order entries can match the filters
func (q FeedQuery) IncludesDerived() bool {
	if q.Type != nil && *q.Type != TransactionTypeIncome {
		return false
	}
	if q.Source != nil && *q.Source != SourceWebsite {
		return false
	}
	return true
}

// EntryFromTransaction wraps a stored transaction as a feed entry
func EntryFromTransaction(tx CashTransaction) LedgerEntry {
	return LedgerEntry{
		ID:                tx.ID,
		RealID:            tx.ID,
		Type:              tx.Type,
		Amount:            tx.Amount,
		Description:       tx.Description,
		PaymentMethod:     tx.PaymentMethod,
		Source:            tx.Source,
		OrderID:           tx.OrderID,
		ExpenseCategoryID: tx.ExpenseCategoryID,
		CreatedBy:         tx.CreatedBy,
		CreatedAt:         tx.CreatedAt,
	}
}

// EntryFromOrder synthesizes the income entry of an unrecorded order
func EntryFromOrder(o UnrecordedOrder) LedgerEntry {
	orderID := o.OrderID
	return LedgerEntry{
		RealID:        o.OrderID,
		IsOrder:       true,
		Type:          TransactionTypeIncome,
		Amount:        o.Total,
		Description:   fmt.Sprintf("Order #%d", o.OrderID),
		PaymentMethod: PaymentMethod(o.PaymentMethod),
		Source:        SourceWebsite,
		OrderID:       &orderID,
		CreatedBy:     o.UserID,
		CreatedAt:     o.CreatedAt,
	}
}

// MergeFeed unions stored transactions with derived order entries, newest
// first, and returns the [Offset, Offset+Limit) slice. A derived entry whose
// order already has a stored income row is dropped.
func MergeFeed(txs []CashTransaction, orders []UnrecordedOrder, q FeedQuery) []LedgerEntry {
	q = q.Normalize()

	recorded := make(map[int64]struct{}, len(txs))
	entries := make([]LedgerEntry, 0, len(txs)+len(orders))
	for _, tx := range txs {
		if tx.OrderID != nil && tx.Type == TransactionTypeIncome {
			recorded[*tx.OrderID] = struct{}{}
		}
		entries = append(entries, EntryFromTransaction(tx))
	}
	if q.IncludesDerived() {
		for _, o := range orders {
			if _, ok := recorded[o.OrderID]; ok {
				continue
			}
			entries = append(entries, EntryFromOrder(o))
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].RealID > entries[j].RealID
	})

	if q.Offset >= len(entries) {
		return []LedgerEntry{}
	}
	end := q.Offset + q.Limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[q.Offset:end]
}
