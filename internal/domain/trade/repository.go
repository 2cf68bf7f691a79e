package trade

import (
	"context"
	"time"

	"github.com/hoshop/backend/internal/domain/catalog"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindAll lists orders matching the filter, newest first, with the total match count
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, int64, error)

	// Place inserts the order and its items and takes the ordered quantities
	// out of tracked product stock, all in one transaction. A line whose
	// product no longer has enough stock rolls everything back with
	// shared.ErrInsufficientStock.
	Place(ctx context.Context, order *Order) error

	// UpdateStatus persists status, payment status and updated_at, provided
	// the stored status still equals from. Otherwise shared.ErrConcurrencyConflict.
	UpdateStatus(ctx context.Context, order *Order, from OrderStatus) error

	// MarkDeliveredIfShipped moves a shipped order to delivered.
	// It reports false, without error, when the order is no longer shipped.
	MarkDeliveredIfShipped(ctx context.Context, id int64, now time.Time) (bool, error)

	// SaveRating stores the delivery rating and inserts the product reviews in
	// one transaction. shared.ErrAlreadyRated when a rating already exists.
	SaveRating(ctx context.Context, order *Order, reviews []*catalog.Review) error
}
