package models

import (
	"github.com/hoshop/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
// Stock is nullable: NULL means the product's stock is not tracked.
type ProductModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	Price       int64  `gorm:"not null"`
	Stock       *int64
	ImageURL    string `gorm:"type:varchar(500)"`
	IsActive    bool   `gorm:"not null;index"`
	IsFeatured  bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		ImageURL:    m.ImageURL,
		IsActive:    m.IsActive,
		IsFeatured:  m.IsFeatured,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Slug = p.Slug
	m.Description = p.Description
	m.Price = p.Price
	m.Stock = p.Stock
	m.ImageURL = p.ImageURL
	m.IsActive = p.IsActive
	m.IsFeatured = p.IsFeatured
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ReviewModel is the persistence model for product reviews
type ReviewModel struct {
	BaseModel
	ProductID  int64   `gorm:"not null;index:idx_review_product_approved,priority:1"`
	UserID     *string `gorm:"type:varchar(64)"`
	GuestName  string  `gorm:"type:varchar(100);not null"`
	Rating     int     `gorm:"not null"`
	Comment    string  `gorm:"type:text"`
	IsApproved bool    `gorm:"not null;index:idx_review_product_approved,priority:2"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		GuestName:  m.GuestName,
		Rating:     m.Rating,
		Comment:    m.Comment,
		IsApproved: m.IsApproved,
	}
}

// ReviewModelFromDomain creates a new persistence model from a domain Review
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		ProductID:  r.ProductID,
		UserID:     r.UserID,
		GuestName:  r.GuestName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
