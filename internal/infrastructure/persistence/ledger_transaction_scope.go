package persistence

import (
	"context"

	appledger "github.com/stockledger/backend/internal/application/ledger"
	"github.com/stockledger/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Row locks taken through the scoped repositories are held until the
// transaction commits or rolls back; a panic inside the function also rolls
// back, so an open transaction can never leak.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Movements returns the movement repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Movements() ledger.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// LocationStocks returns the location stock repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LocationStocks() ledger.LocationStockRepository {
	return NewGormLocationStockRepository(r.tx)
}

// ProductStocks returns the aggregate stock repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductStocks() ledger.ProductStockRepository {
	return NewGormProductRepository(r.tx)
}

var _ appledger.TransactionScope = (*GormTransactionScope)(nil)
var _ appledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
