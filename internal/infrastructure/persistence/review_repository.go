package persistence

import (
	"context"

	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// SaveBatch inserts reviews in one statement
func (r *GormReviewRepository) SaveBatch(ctx context.Context, reviews []*catalog.Review) error {
	return insertReviews(r.db.WithContext(ctx), reviews)
}

func insertReviews(db *gorm.DB, reviews []*catalog.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	rows := make([]*models.ReviewModel, len(reviews))
	for i, review := range reviews {
		rows[i] = models.ReviewModelFromDomain(review)
	}
	if err := db.Create(&rows).Error; err != nil {
		return translateError(err)
	}
	for i, row := range rows {
		reviews[i].ID = row.ID
	}
	return nil
}

// FindApprovedByProduct lists approved reviews of a product, newest first
func (r *GormReviewRepository) FindApprovedByProduct(ctx context.Context, productID int64, filter shared.Filter) ([]catalog.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Where("product_id = ? AND is_approved = ?", productID, true).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ReviewModel
	if err := query.Order("created_at DESC, id DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	reviews := make([]catalog.Review, len(rows))
	for i := range rows {
		reviews[i] = *rows[i].ToDomain()
	}
	return reviews, total, nil
}

// Summary returns the average rating and count over all reviews
func (r *GormReviewRepository) Summary(ctx context.Context) (catalog.RatingSummary, error) {
	var row struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Scan(&row).Error
	if err != nil {
		return catalog.RatingSummary{}, err
	}
	return catalog.RatingSummary{Average: row.Average, Count: row.Count}, nil
}
