package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/domain/trade"
)

// TransactionType distinguishes money coming in from money going out
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid checks if the type is a valid TransactionType
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// TransactionSource is the sales channel a cash movement came through
type TransactionSource string

const (
	SourceStore      TransactionSource = "store"
	SourceGoFood     TransactionSource = "gofood"
	SourceGrabFood   TransactionSource = "grabfood"
	SourceShopeeFood TransactionSource = "shopeefood"
	SourceWebsite    TransactionSource = "website"
	SourceOther      TransactionSource = "other"
)

// IsValid checks if the source is a valid TransactionSource
func (s TransactionSource) IsValid() bool {
	switch s {
	case SourceStore, SourceGoFood, SourceGrabFood, SourceShopeeFood, SourceWebsite, SourceOther:
		return true
	}
	return false
}

// PaymentMethod is the ledger's closed set of payment methods
type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "cash"
	PaymentQRIS      PaymentMethod = "qris"
	PaymentTransfer  PaymentMethod = "transfer"
	PaymentShopeePay PaymentMethod = "shopeepay"
	PaymentGoPay     PaymentMethod = "gopay"
	PaymentOVO       PaymentMethod = "ovo"
)

// IsValid checks if the payment method is one the ledger knows
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentQRIS, PaymentTransfer, PaymentShopeePay, PaymentGoPay, PaymentOVO:
		return true
	}
	return false
}

// NormalizePaymentMethod maps a free-text method name, as customers type it at
// checkout, onto the ledger enum. Anything unknown is booked as cash.
func NormalizePaymentMethod(raw string) PaymentMethod {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	if m.IsValid() {
		return m
	}
	return PaymentCash
}

// CashTransaction is an append-only ledger entry
type CashTransaction struct {
	ID                int64
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

// CashTransactionInput holds the fields of a manually entered transaction
type CashTransactionInput struct {
	Type              TransactionType
	Amount            int64
	Description       string
	PaymentMethod     string
	Source            TransactionSource
	OrderID           *int64
	ExpenseCategoryID *int64
	CreatedBy         *string
}

// NewCashTransaction validates and creates a ledger entry.
// Source defaults to the physical store, payment method to cash.
func NewCashTransaction(in CashTransactionInput, now time.Time) (*CashTransaction, error) {
	if !in.Type.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Transaction type must be income or expense")
	}
	if in.Amount <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Transaction amount must be positive")
	}
	source := in.Source
	if source == "" {
		source = SourceStore
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown transaction source %q", in.Source))
	}
	if in.ExpenseCategoryID != nil && in.Type != TransactionTypeExpense {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Only expenses can carry an expense category")
	}

	return &CashTransaction{
		Type:              in.Type,
		Amount:            in.Amount,
		Description:       in.Description,
		PaymentMethod:     NormalizePaymentMethod(in.PaymentMethod),
		Source:            source,
		OrderID:           in.OrderID,
		ExpenseCategoryID: in.ExpenseCategoryID,
		CreatedBy:         in.CreatedBy,
		CreatedAt:         now,
	}, nil
}

// NewOrderIncome builds the income entry booked when an order is paid
func NewOrderIncome(order *trade.Order, now time.Time) *CashTransaction {
	orderID := order.ID
	return &CashTransaction{
		Type:          TransactionTypeIncome,
		Amount:        order.Total,
		Description:   OrderIncomeDescription(order),
		PaymentMethod: NormalizePaymentMethod(order.PaymentMethod),
		Source:        SourceWebsite,
		OrderID:       &orderID,
		CreatedBy:     order.UserID,
		CreatedAt:     now,
	}
}

// OrderIncomeDescription renders "Order #12: Madu Hutan x2, Madu Klanceng x1"
func OrderIncomeDescription(order *trade.Order) string {
	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
	}
	return fmt.Sprintf("Order #%d: %s", order.ID, strings.Join(parts, ", "))
}
