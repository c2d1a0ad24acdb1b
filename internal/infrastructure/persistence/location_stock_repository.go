package persistence

import (
	"context"
	"time"

	"github.com/stockledger/backend/internal/domain/ledger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationStockRepository implements LocationStockRepository using GORM.
// It is the location stock resolver: rows are locked in a fixed global order,
// and a key touched for the first time is materialized at zero before the
// lock is taken.
type GormLocationStockRepository struct {
	db *gorm.DB
}

// NewGormLocationStockRepository creates a new GormLocationStockRepository
func NewGormLocationStockRepository(db *gorm.DB) *GormLocationStockRepository {
	return &GormLocationStockRepository{db: db}
}

// LockForUpdate acquires a row-level lock on each key's row and returns the
// current quantities. A missing row is first materialized at zero with an
// insert that yields to an existing row; locking a plain SELECT on an absent
// row would lock nothing, and two first movements against the same pair
// could then both read zero and overwrite each other. Keys are locked
// ascending by (warehouse, product) so concurrent transfers over overlapping
// warehouse pairs cannot deadlock. Locks are held until the enclosing
// transaction commits or rolls back.
func (r *GormLocationStockRepository) LockForUpdate(ctx context.Context, keys []ledger.StockKey) (map[ledger.StockKey]int64, error) {
	ordered := make([]ledger.StockKey, len(keys))
	copy(ordered, keys)
	ledger.SortStockKeys(ordered)

	quantities := make(map[ledger.StockKey]int64, len(ordered))
	for _, key := range ordered {
		seed := ledger.LocationStock{
			ProductID:   key.ProductID,
			WarehouseID: key.WarehouseID,
			Quantity:    0,
			UpdatedAt:   time.Now(),
		}
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
				DoNothing: true,
			}).
			Create(&seed).Error; err != nil {
			return nil, err
		}

		query := r.db.WithContext(ctx)
		// SQLite serializes writers at the database level and rejects the
		// FOR UPDATE syntax, so the clause is applied on Postgres only.
		if r.db.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var row ledger.LocationStock
		if err := query.
			Where("warehouse_id = ? AND product_id = ?", key.WarehouseID, key.ProductID).
			Take(&row).Error; err != nil {
			return nil, err
		}
		quantities[key] = row.Quantity
	}
	return quantities, nil
}

// Upsert writes the new quantity for a key, creating the row on first touch.
func (r *GormLocationStockRepository) Upsert(ctx context.Context, key ledger.StockKey, quantity int64) error {
	row := ledger.LocationStock{
		ProductID:   key.ProductID,
		WarehouseID: key.WarehouseID,
		Quantity:    quantity,
		UpdatedAt:   time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "warehouse_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(&row).Error
}

var _ ledger.LocationStockRepository = (*GormLocationStockRepository)(nil)
