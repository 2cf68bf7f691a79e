package finance

import (
	"strings"
	"time"

	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/hoshop/backend/internal/domain/shared"
)

// UncategorizedLabel names expenses booked without a category
const UncategorizedLabel = "Uncategorized"

// ExpenseCategory is a lookup dimension for expense transactions
type ExpenseCategory struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
}

// NewExpenseCategory creates a category; an empty slug is derived from the name
func NewExpenseCategory(name, slug, description string, now time.Time) (*ExpenseCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Category name is required")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Category name cannot exceed 100 characters")
	}

	slug = catalog.Slugify(slug)
	if slug == "" {
		slug = catalog.Slugify(name)
	}
	if slug == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Category slug is required")
	}

	return &ExpenseCategory{
		Name:        name,
		Slug:        slug,
		Description: description,
		CreatedAt:   now,
	}, nil
}
