package trade

import "time"

// DefaultAutoDeliverAfter is how long a shipped order waits before it is
// considered delivered without anyone confirming it.
const DefaultAutoDeliverAfter = 5 * time.Minute

// AutoDeliver decides whether an order must move from shipped to delivered.
// It is evaluated lazily whenever an order is read: a shipped order whose
// last update is older than after is due for delivery.
func AutoDeliver(status OrderStatus, updatedAt, now time.Time, after time.Duration) bool {
	if status != OrderStatusShipped || updatedAt.IsZero() {
		return false
	}
	return updatedAt.Before(now.Add(-after))
}

// ApplyAutoDelivery performs the auto-delivery transition on the aggregate and
// reports whether anything changed.
func (o *Order) ApplyAutoDelivery(now time.Time, after time.Duration) bool {
	if !AutoDeliver(o.Status, o.UpdatedAt, now, after) {
		return false
	}
	o.Status = OrderStatusDelivered
	o.Touch(now)
	return true
}
