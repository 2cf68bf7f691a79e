package persistence

import (
	"context"
	"sort"
	"time"

	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/domain/trade"
	"github.com/hoshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id ASC")
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items", preloadItems).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists orders matching the filter, newest first, with the total match count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := query.Preload("Items", preloadItems).Order("created_at DESC, id DESC")
	if filter.PageSize > 0 {
		page = page.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	var rows []models.OrderModel
	if err := page.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]trade.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// Place inserts the order and its items and takes the ordered quantities out
// of tracked product stock in one transaction. Quantities of repeated product
// lines are summed before the stock check.
func (r *GormOrderRepository) Place(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range quantitiesByProduct(order.Items) {
			if err := takeStock(tx, line.productID, line.quantity); err != nil {
				return err
			}
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return translateError(err)
	}

	order.ID = model.ID
	for i := range order.Items {
		order.Items[i].ID = model.Items[i].ID
		order.Items[i].OrderID = model.ID
	}
	return nil
}

type productQuantity struct {
	productID int64
	quantity  int64
}

// quantitiesByProduct sums line quantities per product, ordered by product id
// so concurrent checkouts lock rows in the same order.
func quantitiesByProduct(items []trade.OrderItem) []productQuantity {
	sums := make(map[int64]int64, len(items))
	for _, item := range items {
		sums[item.ProductID] += item.Quantity
	}
	out := make([]productQuantity, 0, len(sums))
	for id, qty := range sums {
		out = append(out, productQuantity{productID: id, quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].productID < out[j].productID })
	return out
}

// takeStock decrements tracked stock only when enough remains. Untracked
// stock is left alone.
func takeStock(tx *gorm.DB, productID, quantity int64) error {
	res := tx.Model(&models.ProductModel{}).
		Where("id = ? AND stock IS NOT NULL AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var untracked int64
	if err := tx.Model(&models.ProductModel{}).
		Where("id = ? AND stock IS NULL", productID).
		Count(&untracked).Error; err != nil {
		return err
	}
	if untracked > 0 {
		return nil
	}
	return shared.ErrInsufficientStock
}

// UpdateStatus persists status, payment status and updated_at provided the
// stored status still equals from
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order, from trade.OrderStatus) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", order.ID, from).
		Updates(map[string]any{
			"status":         order.Status,
			"payment_status": order.PaymentStatus,
			"updated_at":     models.UTC(order.UpdatedAt),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return r.missingOr(db, order.ID, shared.ErrConcurrencyConflict)
}

// MarkDeliveredIfShipped moves a shipped order to delivered and reports
// whether this call made the change
func (r *GormOrderRepository) MarkDeliveredIfShipped(ctx context.Context, id int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", id, trade.OrderStatusShipped).
		Updates(map[string]any{
			"status":     trade.OrderStatusDelivered,
			"updated_at": now.UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SaveRating stores the delivery rating and inserts the product reviews in one
// transaction. Only the first rating of an order is kept.
func (r *GormOrderRepository) SaveRating(ctx context.Context, order *trade.Order, reviews []*catalog.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.OrderModel{}).
			Where("id = ? AND delivery_rating IS NULL", order.ID).
			Updates(map[string]any{
				"delivery_rating":   order.DeliveryRating,
				"delivery_feedback": order.DeliveryFeedback,
				"updated_at":        models.UTC(order.UpdatedAt),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return r.missingOr(tx, order.ID, shared.ErrAlreadyRated)
		}
		return insertReviews(tx, reviews)
	})
}

// missingOr returns ErrNotFound when the order is gone, otherwise err
func (r *GormOrderRepository) missingOr(db *gorm.DB, id int64, err error) error {
	var count int64
	if cerr := db.Model(&models.OrderModel{}).Where("id = ?", id).Count(&count).Error; cerr != nil {
		return cerr
	}
	if count == 0 {
		return shared.ErrNotFound
	}
	return err
}
