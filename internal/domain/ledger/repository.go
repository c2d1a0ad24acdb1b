package ledger

import (
	"context"
	"time"
)

// MovementView is a denormalized movement row for dashboard display, joined
// with product, warehouse and user labels.
type MovementView struct {
	ID                 uint         `json:"id"`
	CreatedAt          time.Time    `json:"createdAt"`
	Type               MovementType `json:"type"`
	Quantity           int64        `json:"quantity"`
	ProductID          uint         `json:"productId"`
	ProductName        string       `json:"productName"`
	ProductReference   string       `json:"productReference"`
	FromWarehouseID    *string      `json:"fromWarehouseId"`
	FromWarehouseLabel *string      `json:"fromWarehouseLabel"`
	ToWarehouseID      *string      `json:"toWarehouseId"`
	ToWarehouseLabel   *string      `json:"toWarehouseLabel"`
	Reference          string       `json:"reference"`
	Reason             string       `json:"reason"`
	UserID             uint         `json:"userId"`
	UserName           string       `json:"userName"`
}

// MovementStats aggregates ledger activity over a time window.
type MovementStats struct {
	TotalCount       int64 `json:"totalCount"`
	DistinctProducts int64 `json:"distinctProducts"`
	EntriesSum       int64 `json:"entriesSum"`
	ExitsSum         int64 `json:"exitsSum"`
	TransferCount    int64 `json:"transferCount"`
	AdjustmentCount  int64 `json:"adjustmentCount"`
}

// MovementRepository defines the interface for movement persistence
type MovementRepository interface {
	// Create appends a movement to the ledger
	Create(ctx context.Context, m *Movement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uint) (*Movement, error)

	// Delete removes a movement row. Callers must have applied the
	// compensating stock effect within the same transaction.
	Delete(ctx context.Context, id uint) error

	// FindViewsSince lists movements created at or after the given time,
	// most recent first, bounded by limit, joined with display labels.
	FindViewsSince(ctx context.Context, since time.Time, limit int) ([]MovementView, error)

	// StatsSince aggregates movement statistics over the window
	StatsSince(ctx context.Context, since time.Time) (MovementStats, error)
}

// LocationStockRepository defines the interface for per-location stock
// persistence. LockForUpdate is the location stock resolver: it acquires
// row locks in the fixed global order, creating a missing row at zero so
// first touches serialize like any other write.
type LocationStockRepository interface {
	// LockForUpdate locks each row for the transaction's lifetime and
	// returns current quantities. A key with no row yet is materialized
	// at zero before its lock is taken.
	LockForUpdate(ctx context.Context, keys []StockKey) (map[StockKey]int64, error)

	// Upsert writes the new quantity for a key
	Upsert(ctx context.Context, key StockKey, quantity int64) error
}

// ProductStockRepository maintains the denormalized per-product aggregate.
// The aggregate is ledger-owned: only the movement executor and the reversal
// engine may call AdjustAggregate, always inside the movement's transaction.
type ProductStockRepository interface {
	// AdjustAggregate adds delta to the product's aggregate stock
	AdjustAggregate(ctx context.Context, productID uint, delta int64) error
}
