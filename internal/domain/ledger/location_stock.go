package ledger

import (
	"sort"
	"time"
)

// LocationStock is the current quantity of one product held at one warehouse.
// Rows are upserted lazily on the first movement touching the pair and are
// never physically deleted; a fully drained location stays at zero.
type LocationStock struct {
	ID          uint   `gorm:"primaryKey"`
	ProductID   uint   `gorm:"not null;uniqueIndex:idx_location_stocks_warehouse_product,priority:2"`
	WarehouseID string `gorm:"type:varchar(32);not null;uniqueIndex:idx_location_stocks_warehouse_product,priority:1"`
	Quantity    int64  `gorm:"not null"`
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (LocationStock) TableName() string {
	return "location_stocks"
}

// StockKey identifies one LocationStock row.
type StockKey struct {
	ProductID   uint
	WarehouseID string
}

// SortStockKeys orders keys ascending by warehouse then product. Every
// caller that locks more than one row must lock in this order; two transfers
// touching overlapping warehouse pairs would otherwise deadlock.
func SortStockKeys(keys []StockKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].WarehouseID != keys[j].WarehouseID {
			return keys[i].WarehouseID < keys[j].WarehouseID
		}
		return keys[i].ProductID < keys[j].ProductID
	})
}
