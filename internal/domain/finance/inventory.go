package finance

import (
	"github.com/hoshop/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// InventoryStats is a stock valuation snapshot over the whole catalog
type InventoryStats struct {
	TotalProducts int64
	LowStock      int64
	OutOfStock    int64
	TotalValue    int64
	Products      []catalog.Product
}

// SummarizeInventory counts low and empty stock and values the catalog at
// list price. Products without tracked stock count as zero units.
func SummarizeInventory(products []catalog.Product) InventoryStats {
	stats := InventoryStats{
		TotalProducts: int64(len(products)),
		Products:      products,
	}
	value := decimal.Zero
	for i := range products {
		p := &products[i]
		if p.IsLowStock() {
			stats.LowStock++
		}
		if p.IsOutOfStock() {
			stats.OutOfStock++
		}
		value = value.Add(decimal.NewFromInt(p.StockValue()))
	}
	stats.TotalValue = value.IntPart()
	return stats
}
