package persistence

import (
	"context"

	"github.com/hoshop/backend/internal/domain/finance"
	"github.com/hoshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormExpenseCategoryRepository implements ExpenseCategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// FindAll lists categories ordered by name
func (r *GormExpenseCategoryRepository) FindAll(ctx context.Context) ([]finance.ExpenseCategory, error) {
	var rows []models.ExpenseCategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]finance.ExpenseCategory, len(rows))
	for i := range rows {
		categories[i] = *rows[i].ToDomain()
	}
	return categories, nil
}

// FindByID finds a category by ID
func (r *GormExpenseCategoryRepository) FindByID(ctx context.Context, id int64) (*finance.ExpenseCategory, error) {
	var model models.ExpenseCategoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByNameOrSlug checks for a clash on either unique column
func (r *GormExpenseCategoryRepository) ExistsByNameOrSlug(ctx context.Context, name, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ExpenseCategoryModel{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores a category and assigns its ID
func (r *GormExpenseCategoryRepository) Create(ctx context.Context, category *finance.ExpenseCategory) error {
	model := models.ExpenseCategoryModelFromDomain(category)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	category.ID = model.ID
	return nil
}
