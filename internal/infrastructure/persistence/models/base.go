package models

import (
	"time"

	"github.com/hoshop/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for mutable entities.
// It maps to the domain's BaseEntity. Timestamps are owned by the domain
// clock, so GORM's automatic stamping is switched off.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = UTC(e.CreatedAt)
	m.UpdatedAt = UTC(e.UpdatedAt)
}

// UTC converts t to UTC, leaving the zero time untouched
func UTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
