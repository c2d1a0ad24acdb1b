package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/stockledger/backend/internal/domain/ledger"
	"github.com/stockledger/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create appends a movement to the ledger
func (r *GormMovementRepository) Create(ctx context.Context, m *ledger.Movement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByID finds a movement by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uint) (*ledger.Movement, error) {
	var m ledger.Movement
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Delete removes a movement row
func (r *GormMovementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ledger.Movement{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindViewsSince lists movements in the window, most recent first, joined
// with product, warehouse and user labels for display.
func (r *GormMovementRepository) FindViewsSince(ctx context.Context, since time.Time, limit int) ([]ledger.MovementView, error) {
	views := make([]ledger.MovementView, 0, limit)
	err := r.db.WithContext(ctx).
		Table("stock_movements").
		Select(`stock_movements.id,
			stock_movements.created_at,
			stock_movements.type,
			stock_movements.quantity,
			stock_movements.product_id,
			COALESCE(products.name, '') AS product_name,
			COALESCE(products.reference, '') AS product_reference,
			stock_movements.from_warehouse_id,
			wf.label AS from_warehouse_label,
			stock_movements.to_warehouse_id,
			wt.label AS to_warehouse_label,
			stock_movements.reference,
			COALESCE(stock_movements.reason, '') AS reason,
			stock_movements.user_id,
			COALESCE(users.name, '') AS user_name`).
		Joins("LEFT JOIN products ON products.id = stock_movements.product_id").
		Joins("LEFT JOIN warehouses wf ON wf.id = stock_movements.from_warehouse_id").
		Joins("LEFT JOIN warehouses wt ON wt.id = stock_movements.to_warehouse_id").
		Joins("LEFT JOIN users ON users.id = stock_movements.user_id").
		Where("stock_movements.created_at >= ?", since).
		Order("stock_movements.created_at DESC").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// StatsSince aggregates movement statistics over the window
func (r *GormMovementRepository) StatsSince(ctx context.Context, since time.Time) (ledger.MovementStats, error) {
	var stats ledger.MovementStats
	err := r.db.WithContext(ctx).
		Table("stock_movements").
		Select(`COUNT(*) AS total_count,
			COUNT(DISTINCT product_id) AS distinct_products,
			COALESCE(SUM(CASE WHEN type = 'in' THEN quantity ELSE 0 END), 0) AS entries_sum,
			COALESCE(SUM(CASE WHEN type = 'out' THEN quantity ELSE 0 END), 0) AS exits_sum,
			COALESCE(SUM(CASE WHEN type = 'transfer' THEN 1 ELSE 0 END), 0) AS transfer_count,
			COALESCE(SUM(CASE WHEN type = 'adjustment' THEN 1 ELSE 0 END), 0) AS adjustment_count`).
		Where("created_at >= ?", since).
		Scan(&stats).Error
	if err != nil {
		return ledger.MovementStats{}, err
	}
	return stats, nil
}

var _ ledger.MovementRepository = (*GormMovementRepository)(nil)
