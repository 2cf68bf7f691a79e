package models

import (
	"github.com/hoshop/backend/internal/domain/trade"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	BaseModel
	UserID           *string             `gorm:"type:varchar(64);index"`
	GuestName        string              `gorm:"type:varchar(100)"`
	GuestEmail       string              `gorm:"type:varchar(200)"`
	GuestPhone       string              `gorm:"type:varchar(50)"`
	Status           trade.OrderStatus   `gorm:"type:varchar(20);not null;index"`
	PaymentMethod    string              `gorm:"type:varchar(50);not null"`
	PaymentStatus    trade.PaymentStatus `gorm:"type:varchar(20);not null;index"`
	Subtotal         int64               `gorm:"not null"`
	Total            int64               `gorm:"not null"`
	ShippingAddress  string              `gorm:"type:text"`
	Notes            string              `gorm:"type:text"`
	DeliveryRating   *int
	DeliveryFeedback string           `gorm:"type:text"`
	Items            []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *trade.Order {
	items := make([]trade.OrderItem, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}
	return &trade.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Guest: trade.GuestContact{
			Name:  m.GuestName,
			Email: m.GuestEmail,
			Phone: m.GuestPhone,
		},
		Status:           m.Status,
		PaymentMethod:    m.PaymentMethod,
		PaymentStatus:    m.PaymentStatus,
		Subtotal:         m.Subtotal,
		Total:            m.Total,
		ShippingAddress:  m.ShippingAddress,
		Notes:            m.Notes,
		DeliveryRating:   m.DeliveryRating,
		DeliveryFeedback: m.DeliveryFeedback,
		Items:            items,
	}
}

// FromDomain populates the persistence model, items included, from a domain Order
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.GuestName = o.Guest.Name
	m.GuestEmail = o.Guest.Email
	m.GuestPhone = o.Guest.Phone
	m.Status = o.Status
	m.PaymentMethod = o.PaymentMethod
	m.PaymentStatus = o.PaymentStatus
	m.Subtotal = o.Subtotal
	m.Total = o.Total
	m.ShippingAddress = o.ShippingAddress
	m.Notes = o.Notes
	m.DeliveryRating = o.DeliveryRating
	m.DeliveryFeedback = o.DeliveryFeedback
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
		}
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model of a product line snapshot
type OrderItemModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	OrderID      int64  `gorm:"not null;index"`
	ProductID    int64  `gorm:"not null;index"`
	ProductName  string `gorm:"type:varchar(200);not null"`
	ProductPrice int64  `gorm:"not null"`
	Quantity     int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() trade.OrderItem {
	return trade.OrderItem{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		ProductPrice: m.ProductPrice,
		Quantity:     m.Quantity,
	}
}
