package persistence

import (
	"context"

	"github.com/hoshop/backend/internal/domain/finance"
	"github.com/hoshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyReportRepository implements DailyReportRepository using GORM
type GormDailyReportRepository struct {
	db *gorm.DB
}

// NewGormDailyReportRepository creates a new GormDailyReportRepository
func NewGormDailyReportRepository(db *gorm.DB) *GormDailyReportRepository {
	return &GormDailyReportRepository{db: db}
}

// Upsert inserts the report or replaces the figures of the one with the same date.
// The original created_at of a re-closed day is kept.
func (r *GormDailyReportRepository) Upsert(ctx context.Context, report *finance.DailyReport) error {
	model := models.DailyReportModelFromDomain(report)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "report_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_income", "total_expense", "net_profit", "order_count",
			"notes", "closed_by", "closed_at",
		}),
	}).Create(model).Error
	if err != nil {
		return translateError(err)
	}
	if model.ID != 0 {
		report.ID = model.ID
	}
	return nil
}

// FindByDate finds the closed report of a day
func (r *GormDailyReportRepository) FindByDate(ctx context.Context, date string) (*finance.DailyReport, error) {
	var model models.DailyReportModel
	if err := r.db.WithContext(ctx).First(&model, "report_date = ?", date).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}
