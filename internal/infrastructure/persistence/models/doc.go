// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags or infrastructure concerns
// 2. Persistence models hold all GORM annotations and table mappings
// 3. ToDomain/FromDomain convert between the two
// 4. Repositories only ever hand domain types to their callers
//
// Timestamps are normalized to UTC on the way in so range predicates compare
// correctly on every supported driver.
//
// Structure:
// - base.go: BaseModel shared by mutable entities
// - catalog.go: products and reviews
// - trade.go: orders and their item snapshots
// - finance.go: cash transactions, daily reports, expense categories
package models
