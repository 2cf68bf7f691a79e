package catalog

import (
	"strings"
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
)

// LowStockThreshold is the stock level below which a product counts as low on stock
const LowStockThreshold = 10

// Product represents a sellable item in the catalog.
// Price is expressed in the smallest currency unit. A nil Stock means the
// product's stock is not tracked and never limits an order.
type Product struct {
	shared.BaseEntity
	Name        string
	Slug        string
	Description string
	Price       int64
	Stock       *int64
	ImageURL    string
	IsActive    bool
	IsFeatured  bool
}

// NewProduct creates a new active product, deriving its slug from the name
func NewProduct(name string, price int64, stock *int64, now time.Time) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product price cannot be negative")
	}
	if stock != nil && *stock < 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product stock cannot be negative")
	}

	slug := Slugify(name)
	if slug == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Product name must contain at least one letter or digit")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(now),
		Name:       name,
		Slug:       slug,
		Price:      price,
		Stock:      stock,
		IsActive:   true,
	}, nil
}

// TracksStock reports whether the product has a tracked stock level
func (p *Product) TracksStock() bool {
	return p.Stock != nil
}

// CanFulfil reports whether quantity units can be taken from stock
func (p *Product) CanFulfil(quantity int64) bool {
	if !p.TracksStock() {
		return true
	}
	return *p.Stock >= quantity
}

// StockLevel returns the stock with untracked stock read as zero
func (p *Product) StockLevel() int64 {
	if !p.TracksStock() {
		return 0
	}
	return *p.Stock
}

// IsLowStock reports whether the product is below LowStockThreshold.
// Untracked stock counts as zero.
func (p *Product) IsLowStock() bool {
	return p.StockLevel() < LowStockThreshold
}

// IsOutOfStock reports whether the product has no units left.
// Untracked stock counts as zero.
func (p *Product) IsOutOfStock() bool {
	return p.StockLevel() == 0
}

// StockValue returns stock × price
func (p *Product) StockValue() int64 {
	return p.StockLevel() * p.Price
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError(shared.CodeInvalidInput, "Product name cannot exceed 200 characters")
	}
	return nil
}
