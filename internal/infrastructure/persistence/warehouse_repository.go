package persistence

import (
	"context"

	"github.com/stockledger/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindAll lists all warehouses ordered by ID
func (r *GormWarehouseRepository) FindAll(ctx context.Context) ([]catalog.Warehouse, error) {
	var warehouses []catalog.Warehouse
	if err := r.db.WithContext(ctx).Order("id").Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

var _ catalog.WarehouseRepository = (*GormWarehouseRepository)(nil)
