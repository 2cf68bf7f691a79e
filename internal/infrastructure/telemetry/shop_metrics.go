package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// StockMetricsProvider reads catalog stock health for periodic collection
type StockMetricsProvider interface {
	// LowStockCount returns the number of active products below the low-stock threshold
	LowStockCount(ctx context.Context) (int64, error)
}

// ShopMetrics records order lifecycle and ledger activity.
type ShopMetrics struct {
	logger *zap.Logger

	orderCreatedTotal     *Counter
	orderAmount           *Histogram
	statusTransitionTotal *Counter
	autoDeliveryTotal     *Counter
	ledgerEntryTotal      *Counter
	ledgerAmountTotal     *Counter
	lowStockProducts      *Gauge

	stockProvider StockMetricsProvider
	stopChan      chan struct{}
	stopOnce      sync.Once
	collectOnce   sync.Once
}

// ShopMetricsConfig holds configuration for ShopMetrics.
type ShopMetricsConfig struct {
	Meter         metric.Meter
	Logger        *zap.Logger
	StockProvider StockMetricsProvider
}

// NewShopMetrics creates the shop instruments on the given meter.
func NewShopMetrics(cfg ShopMetricsConfig) (*ShopMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &ShopMetrics{
		logger:        logger,
		stockProvider: cfg.StockProvider,
		stopChan:      make(chan struct{}),
	}

	var err error
	if sm.orderCreatedTotal, err = NewCounter(cfg.Meter,
		"shop_order_created_total", "Total number of orders placed", "{orders}"); err != nil {
		return nil, err
	}
	if sm.orderAmount, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "shop_order_amount",
		Description: "Distribution of order totals in rupiah",
		Unit:        "{IDR}",
		Boundaries:  OrderAmountBuckets,
	}); err != nil {
		return nil, err
	}
	if sm.statusTransitionTotal, err = NewCounter(cfg.Meter,
		"shop_order_status_transition_total", "Total number of order status changes", "{transitions}"); err != nil {
		return nil, err
	}
	if sm.autoDeliveryTotal, err = NewCounter(cfg.Meter,
		"shop_order_auto_delivered_total", "Shipped orders moved to delivered on read", "{orders}"); err != nil {
		return nil, err
	}
	if sm.ledgerEntryTotal, err = NewCounter(cfg.Meter,
		"shop_ledger_entry_total", "Total number of cash transactions booked", "{entries}"); err != nil {
		return nil, err
	}
	if sm.ledgerAmountTotal, err = NewCounter(cfg.Meter,
		"shop_ledger_amount_total", "Sum of booked cash transaction amounts in rupiah", "{IDR}"); err != nil {
		return nil, err
	}
	if sm.lowStockProducts, err = NewGauge(cfg.Meter,
		"shop_low_stock_products", "Active products below the low-stock threshold", "{products}"); err != nil {
		return nil, err
	}
	return sm, nil
}

// RecordOrderCreated counts a placed order and its total
func (sm *ShopMetrics) RecordOrderCreated(ctx context.Context, paymentMethod string, amount int64) {
	sm.orderCreatedTotal.Inc(ctx, AttrPaymentMethod.String(paymentMethod))
	sm.orderAmount.Record(ctx, float64(amount), AttrPaymentMethod.String(paymentMethod))
}

// RecordStatusTransition counts an order status change
func (sm *ShopMetrics) RecordStatusTransition(ctx context.Context, from, to string) {
	sm.statusTransitionTotal.Inc(ctx, AttrFromStatus.String(from), AttrToStatus.String(to))
}

// RecordAutoDelivery counts a shipped order delivered by the read path
func (sm *ShopMetrics) RecordAutoDelivery(ctx context.Context) {
	sm.autoDeliveryTotal.Inc(ctx)
}

// RecordLedgerEntry counts a booked cash transaction and its amount
func (sm *ShopMetrics) RecordLedgerEntry(ctx context.Context, entryType, source string, amount int64) {
	attrs := []attribute.KeyValue{AttrEntryType.String(entryType), AttrEntrySource.String(source)}
	sm.ledgerEntryTotal.Inc(ctx, attrs...)
	sm.ledgerAmountTotal.Add(ctx, amount, attrs...)
}

// StartPeriodicCollection samples the low-stock gauge every interval
// (default 5 minutes) until Stop is called or ctx is cancelled.
func (sm *ShopMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	sm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go sm.runPeriodicCollection(ctx, interval)
	})
}

func (sm *ShopMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sm.collectStock(ctx)
	for {
		select {
		case <-sm.stopChan:
			sm.logger.Info("Stopping periodic shop metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.collectStock(ctx)
		}
	}
}

func (sm *ShopMetrics) collectStock(ctx context.Context) {
	if sm.stockProvider == nil {
		return
	}
	count, err := sm.stockProvider.LowStockCount(ctx)
	if err != nil {
		sm.logger.Warn("Failed to read low stock count", zap.Error(err))
		return
	}
	sm.lowStockProducts.Record(ctx, count)
}

// Stop stops the periodic collection.
func (sm *ShopMetrics) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stopChan)
	})
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewShopMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
