package trade

import (
	"time"

	"github.com/hoshop/backend/internal/domain/trade"
)

// Listing bounds for order queries
const (
	DefaultOrderPageSize = 20
	MaxOrderPageSize     = 100
)

// CreateOrderRequest represents a checkout request. Guests leave the
// identity out and fill the contact fields instead.
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string             `json:"payment_method" binding:"required,min=1,max=50"`
	ShippingAddress string             `json:"shipping_address" binding:"max=1000"`
	Notes           string             `json:"notes" binding:"max=1000"`
	GuestName       string             `json:"guest_name" binding:"max=200"`
	GuestEmail      string             `json:"guest_email" binding:"omitempty,email,max=200"`
	GuestPhone      string             `json:"guest_phone" binding:"max=50"`
}

// OrderItemRequest is one requested product line
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int64 `json:"quantity" binding:"required,gt=0"`
}

// UpdateOrderStatusRequest represents an admin status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RateOrderRequest represents a delivery rating with optional product reviews
type RateOrderRequest struct {
	DeliveryRating   int                    `json:"delivery_rating" binding:"required,min=1,max=5"`
	DeliveryFeedback string                 `json:"delivery_feedback" binding:"max=2000"`
	GuestName        string                 `json:"guest_name" binding:"max=200"`
	ProductRatings   []ProductRatingRequest `json:"product_ratings" binding:"dive"`
}

// ProductRatingRequest is the review of one ordered product
type ProductRatingRequest struct {
	ProductID int64  `json:"product_id" binding:"required,gt=0"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}

// ListOrdersQuery holds paging and filtering of order listings
type ListOrdersQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Status string `form:"status"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               int64               `json:"id"`
	UserID           *string             `json:"user_id"`
	GuestName        string              `json:"guest_name,omitempty"`
	GuestEmail       string              `json:"guest_email,omitempty"`
	GuestPhone       string              `json:"guest_phone,omitempty"`
	Status           string              `json:"status"`
	PaymentMethod    string              `json:"payment_method"`
	PaymentStatus    string              `json:"payment_status"`
	Subtotal         int64               `json:"subtotal"`
	Total            int64               `json:"total"`
	ShippingAddress  string              `json:"shipping_address"`
	Notes            string              `json:"notes"`
	DeliveryRating   *int                `json:"delivery_rating"`
	DeliveryFeedback string              `json:"delivery_feedback,omitempty"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderItemResponse represents a snapshotted order line
type OrderItemResponse struct {
	ID           int64  `json:"id"`
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice int64  `json:"product_price"`
	Quantity     int64  `json:"quantity"`
	LineTotal    int64  `json:"line_total"`
}

// OrderListResponse is a page of orders
type OrderListResponse struct {
	Orders []OrderResponse
	Total  int64
	Page   int
	Limit  int
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal(),
		}
	}
	return OrderResponse{
		ID:               o.ID,
		UserID:           o.UserID,
		GuestName:        o.Guest.Name,
		GuestEmail:       o.Guest.Email,
		GuestPhone:       o.Guest.Phone,
		Status:           string(o.Status),
		PaymentMethod:    o.PaymentMethod,
		PaymentStatus:    string(o.PaymentStatus),
		Subtotal:         o.Subtotal,
		Total:            o.Total,
		ShippingAddress:  o.ShippingAddress,
		Notes:            o.Notes,
		DeliveryRating:   o.DeliveryRating,
		DeliveryFeedback: o.DeliveryFeedback,
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}
