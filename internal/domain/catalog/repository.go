package catalog

import "context"

// ProductRepository defines read access to catalog products
type ProductRepository interface {
	// FindAll lists products ordered by name
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uint) (*Product, error)
}

// WarehouseRepository defines read access to the warehouse registry
type WarehouseRepository interface {
	// FindAll lists all warehouses ordered by ID
	FindAll(ctx context.Context) ([]Warehouse, error)
}
