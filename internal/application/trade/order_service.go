package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/hoshop/backend/internal/domain/finance"
	"github.com/hoshop/backend/internal/domain/shared"
	"github.com/hoshop/backend/internal/domain/trade"
	"github.com/hoshop/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderService handles the order lifecycle: checkout, status changes,
// customer receipt, rating and the lazy shipped → delivered expiry.
type OrderService struct {
	orderRepo        trade.OrderRepository
	productRepo      catalog.ProductRepository
	ledgerRepo       finance.CashTransactionRepository
	clock            shared.Clock
	logger           *zap.Logger
	autoDeliverAfter time.Duration
	metrics          *telemetry.ShopMetrics
}

// OrderServiceConfig holds the collaborators of OrderService
type OrderServiceConfig struct {
	OrderRepo        trade.OrderRepository
	ProductRepo      catalog.ProductRepository
	LedgerRepo       finance.CashTransactionRepository
	Clock            shared.Clock
	Logger           *zap.Logger
	AutoDeliverAfter time.Duration
}

// NewOrderService creates a new OrderService
func NewOrderService(cfg OrderServiceConfig) *OrderService {
	s := &OrderService{
		orderRepo:        cfg.OrderRepo,
		productRepo:      cfg.ProductRepo,
		ledgerRepo:       cfg.LedgerRepo,
		clock:            cfg.Clock,
		logger:           cfg.Logger,
		autoDeliverAfter: cfg.AutoDeliverAfter,
	}
	if s.clock == nil {
		s.clock = shared.SystemClock{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.autoDeliverAfter <= 0 {
		s.autoDeliverAfter = trade.DefaultAutoDeliverAfter
	}
	return s
}

// SetMetrics sets the shop metrics collector
func (s *OrderService) SetMetrics(m *telemetry.ShopMetrics) {
	s.metrics = m
}

// Create places an order. Every line is validated against the active
// catalog before anything is written; the order, its items and the stock
// decrement are then committed together.
func (s *OrderService) Create(ctx context.Context, actor shared.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "Create")
	defer span.End()

	if len(req.Items) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Order must contain at least one item")
	}

	products, err := s.productRepo.FindActive(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	byID := make(map[int64]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// duplicate lines share one stock check
	requested := make(map[int64]int64, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, "Quantity must be positive")
		}
		if _, ok := byID[item.ProductID]; !ok {
			return nil, shared.NewDomainError(shared.CodeProductNotFound,
				fmt.Sprintf("Product %d not found", item.ProductID))
		}
		requested[item.ProductID] += item.Quantity
	}
	for productID, qty := range requested {
		p := byID[productID]
		if !p.CanFulfil(qty) {
			return nil, shared.NewDomainError(shared.CodeInsufficientStock,
				fmt.Sprintf("Insufficient stock for %s: %d available, %d requested", p.Name, p.StockLevel(), qty))
		}
	}

	now := s.clock.Now()
	guest := trade.GuestContact{Name: req.GuestName, Email: req.GuestEmail, Phone: req.GuestPhone}
	order, err := trade.NewOrder(actor.UserIDPtr(), guest, req.PaymentMethod, req.ShippingAddress, req.Notes, now)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		p := byID[item.ProductID]
		if err := order.AddItem(p.ID, p.Name, p.Price, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Place(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated(ctx, order.PaymentMethod, order.Total)
	}
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)),
		zap.Int64("units", order.TotalQuantity()),
		zap.Bool("guest", order.UserID == nil),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// Get loads an order for the actor. A shipped order past the auto-delivery
// threshold is moved to delivered as part of the read.
func (s *OrderService) Get(ctx context.Context, actor shared.Actor, id int64) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "Get", telemetry.SpanAttrOrderID, id)
	defer span.End()

	order, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus applies an admin status change. Marking an order paid also
// books its income in the ledger.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "UpdateStatus",
		telemetry.SpanAttrOrderID, id,
		telemetry.SpanAttrOrderStatus, req.Status,
	)
	defer span.End()

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	target := trade.OrderStatus(req.Status)
	if err := order.TransitionTo(target, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order, from); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordStatusTransition(ctx, string(from), string(target))
	}
	s.logger.Info("Order status changed",
		zap.Int64("order_id", order.ID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)

	if target == trade.OrderStatusPaid {
		s.recordIncome(ctx, order)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Receive is the customer's confirmation that the parcel arrived
func (s *OrderService) Receive(ctx context.Context, actor shared.Actor, id int64) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "Receive")
	defer span.End()

	order, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	from := order.Status
	changed, err := order.Receive(s.clock.Now())
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.orderRepo.UpdateStatus(ctx, order, from); err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.RecordStatusTransition(ctx, string(from), string(order.Status))
		}
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Rate stores the delivery rating and one approved review per rated product
func (s *OrderService) Rate(ctx context.Context, actor shared.Actor, id int64, req RateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "Rate")
	defer span.End()

	order, err := s.loadForActor(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := order.Rate(req.DeliveryRating, req.DeliveryFeedback, now); err != nil {
		return nil, err
	}

	ordered := make(map[int64]bool, len(order.Items))
	for _, item := range order.Items {
		ordered[item.ProductID] = true
	}
	reviewer := order.ReviewerName(req.GuestName)
	reviews := make([]*catalog.Review, 0, len(req.ProductRatings))
	for _, pr := range req.ProductRatings {
		if !ordered[pr.ProductID] {
			return nil, shared.NewDomainError(shared.CodeInvalidInput,
				fmt.Sprintf("Product %d is not part of order %d", pr.ProductID, order.ID))
		}
		review, err := catalog.NewReview(pr.ProductID, actor.UserIDPtr(), reviewer, pr.Rating, pr.Comment, true, now)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := s.orderRepo.SaveRating(ctx, order, reviews); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// ListMine lists the actor's own orders, newest first
func (s *OrderService) ListMine(ctx context.Context, actor shared.Actor, query ListOrdersQuery) (*OrderListResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Authentication required")
	}
	filter, err := buildOrderFilter(query)
	if err != nil {
		return nil, err
	}
	userID := actor.UserID
	filter.UserID = &userID
	return s.list(ctx, filter)
}

// ListAll lists every order for the back office, newest first
func (s *OrderService) ListAll(ctx context.Context, query ListOrdersQuery) (*OrderListResponse, error) {
	filter, err := buildOrderFilter(query)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, filter)
}

func (s *OrderService) list(ctx context.Context, filter trade.OrderFilter) (*OrderListResponse, error) {
	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &OrderListResponse{
		Orders: ToOrderResponses(orders),
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.PageSize,
	}, nil
}

func buildOrderFilter(query ListOrdersQuery) (trade.OrderFilter, error) {
	filter := trade.OrderFilter{Filter: shared.DefaultFilter()}
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.Limit > 0 {
		filter.PageSize = query.Limit
	}
	if filter.PageSize > MaxOrderPageSize {
		filter.PageSize = MaxOrderPageSize
	}
	if query.Status != "" {
		status := trade.OrderStatus(query.Status)
		if !status.IsValid() {
			return filter, shared.NewDomainError(shared.CodeInvalidInput,
				fmt.Sprintf("Unknown order status %q", query.Status))
		}
		filter.Status = &status
	}
	return filter, nil
}

// loadForActor finds the order, enforces ownership and then settles a
// pending auto-delivery.
func (s *OrderService) loadForActor(ctx context.Context, actor shared.Actor, id int64) (*trade.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.CheckAccess(actor); err != nil {
		return nil, err
	}
	return s.settleAutoDelivery(ctx, order)
}

// settleAutoDelivery performs the lazy shipped → delivered transition.
// The write is conditional on the order still being shipped, so concurrent
// readers race harmlessly; the loser reloads what the winner wrote.
func (s *OrderService) settleAutoDelivery(ctx context.Context, order *trade.Order) (*trade.Order, error) {
	now := s.clock.Now()
	if !trade.AutoDeliver(order.Status, order.UpdatedAt, now, s.autoDeliverAfter) {
		return order, nil
	}

	changed, err := s.orderRepo.MarkDeliveredIfShipped(ctx, order.ID, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return s.orderRepo.FindByID(ctx, order.ID)
	}

	order.ApplyAutoDelivery(now, s.autoDeliverAfter)
	if s.metrics != nil {
		s.metrics.RecordAutoDelivery(ctx)
	}
	s.logger.Info("Order auto-delivered",
		zap.Int64("order_id", order.ID),
		zap.Duration("after", s.autoDeliverAfter),
	)
	return order, nil
}

// recordIncome books the income of a paid order. A failure is logged and
// left to the feed's reconstruction of unrecorded orders.
func (s *OrderService) recordIncome(ctx context.Context, order *trade.Order) {
	if s.ledgerRepo == nil {
		return
	}

	exists, err := s.ledgerRepo.IncomeExistsForOrder(ctx, order.ID)
	if err != nil {
		s.logger.Error("Failed to check ledger for paid order",
			zap.Int64("order_id", order.ID), zap.Error(err))
		return
	}
	if exists {
		return
	}

	tx := finance.NewOrderIncome(order, s.clock.Now())
	if err := s.ledgerRepo.Create(ctx, tx); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return
		}
		s.logger.Error("Failed to record income for paid order",
			zap.Int64("order_id", order.ID), zap.Error(err))
		return
	}
	if s.metrics != nil {
		s.metrics.RecordLedgerEntry(ctx, string(tx.Type), string(tx.Source), tx.Amount)
	}
}
