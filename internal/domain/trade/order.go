package trade

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// AllOrderStatuses lists every status in lifecycle order
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	return slices.Contains(AllOrderStatuses, s)
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves the status
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancellation is allowed from every state before delivery.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	}
	return false
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// IsValid checks if the payment status is valid
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

// GuestContact holds the contact details of a guest checkout
type GuestContact struct {
	Name  string
	Email string
	Phone string
}

// OrderItem is an immutable snapshot of a product line at checkout time.
// Later edits to the product never alter it.
type OrderItem struct {
	ID           int64
	OrderID      int64
	ProductID    int64
	ProductName  string
	ProductPrice int64
	Quantity     int64
}

// LineTotal returns price × quantity
func (i OrderItem) LineTotal() int64 {
	return i.ProductPrice * i.Quantity
}

// Order is the aggregate root for a customer purchase
type Order struct {
	shared.BaseEntity
	UserID           *string
	Guest            GuestContact
	Status           OrderStatus
	PaymentMethod    string
	PaymentStatus    PaymentStatus
	Subtotal         int64
	Total            int64
	ShippingAddress  string
	Notes            string
	DeliveryRating   *int
	DeliveryFeedback string
	Items            []OrderItem
}

// NewOrder creates a pending order without items
func NewOrder(userID *string, guest GuestContact, paymentMethod, shippingAddress, notes string, now time.Time) (*Order, error) {
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Payment method is required")
	}
	return &Order{
		BaseEntity:      shared.NewBaseEntity(now),
		UserID:          userID,
		Guest:           guest,
		Status:          OrderStatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   PaymentStatusPending,
		ShippingAddress: shippingAddress,
		Notes:           notes,
		Items:           make([]OrderItem, 0),
	}, nil
}

// AddItem snapshots a product line onto a pending order and recomputes totals
func (o *Order) AddItem(productID int64, productName string, productPrice, quantity int64) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot add items to a non-pending order")
	}
	if quantity <= 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be positive")
	}
	if productPrice < 0 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product price cannot be negative")
	}

	o.Items = append(o.Items, OrderItem{
		OrderID:      o.ID,
		ProductID:    productID,
		ProductName:  productName,
		ProductPrice: productPrice,
		Quantity:     quantity,
	})
	o.recalculateTotals()
	return nil
}

// recalculateTotals sets subtotal to Σ(price × quantity); no tax or shipping is applied
func (o *Order) recalculateTotals() {
	var subtotal int64
	for _, item := range o.Items {
		subtotal += item.LineTotal()
	}
	o.Subtotal = subtotal
	o.Total = subtotal
}

// TotalQuantity returns the number of units across all lines
func (o *Order) TotalQuantity() int64 {
	var qty int64
	for _, item := range o.Items {
		qty += item.Quantity
	}
	return qty
}

// TransitionTo moves the order to target.
// Marking an order paid also completes its payment.
func (o *Order) TransitionTo(target OrderStatus, now time.Time) error {
	if !target.IsValid() {
		return shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot change order status from %s to %s", o.Status, target))
	}

	o.Status = target
	if target == OrderStatusPaid {
		o.PaymentStatus = PaymentStatusCompleted
	}
	o.Touch(now)
	return nil
}

// Receive is the customer's "I received it" action.
// It reports false when the order was already delivered.
func (o *Order) Receive(now time.Time) (bool, error) {
	switch o.Status {
	case OrderStatusDelivered:
		return false, nil
	case OrderStatusShipped, OrderStatusProcessing:
		o.Status = OrderStatusDelivered
		o.Touch(now)
		return true, nil
	}
	return false, shared.NewDomainError(shared.CodeInvalidState,
		fmt.Sprintf("Cannot receive an order in %s status", o.Status))
}

// Rate records the customer's delivery rating
func (o *Order) Rate(rating int, feedback string, now time.Time) error {
	if rating < 1 || rating > 5 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Delivery rating must be between 1 and 5")
	}
	if o.Status != OrderStatusDelivered {
		return shared.NewDomainError(shared.CodeInvalidState, "Only delivered orders can be rated")
	}
	if o.DeliveryRating != nil {
		return shared.ErrAlreadyRated
	}

	o.DeliveryRating = &rating
	o.DeliveryFeedback = feedback
	o.Touch(now)
	return nil
}

// IsOwnedBy reports whether the order belongs to userID
func (o *Order) IsOwnedBy(userID string) bool {
	return o.UserID != nil && *o.UserID == userID
}

// CheckAccess enforces that a customer only reaches their own orders.
// Staff see everything; anonymous callers may look orders up by id.
func (o *Order) CheckAccess(actor shared.Actor) error {
	if actor.IsStaff() || !actor.IsAuthenticated() {
		return nil
	}
	if !o.IsOwnedBy(actor.UserID) {
		return shared.NewDomainError(shared.CodeForbidden, "Access denied")
	}
	return nil
}

// ReviewerName picks the name shown on reviews left for this order
func (o *Order) ReviewerName(supplied string) string {
	if name := strings.TrimSpace(supplied); name != "" {
		return name
	}
	if name := strings.TrimSpace(o.Guest.Name); name != "" {
		return name
	}
	return ""
}

// OrderFilter narrows order listings
type OrderFilter struct {
	shared.Filter
	UserID *string
	Status *OrderStatus
}
