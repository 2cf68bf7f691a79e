package catalog

import (
	"context"

	"github.com/hoshop/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll returns every product, active or not, ordered by name
	FindAll(ctx context.Context) ([]Product, error)

	// FindActive returns all active products
	FindActive(ctx context.Context) ([]Product, error)

	// ExistsBySlug checks whether a slug is already taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// SaveBatch inserts reviews in one statement
	SaveBatch(ctx context.Context, reviews []*Review) error

	// FindApprovedByProduct lists approved reviews of a product, newest first
	FindApprovedByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]Review, int64, error)

	// Summary returns the average rating and count over all reviews
	Summary(ctx context.Context) (RatingSummary, error)
}
